// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package transitions

import (
	"github.com/churnops/mlreg/cmd/mlreg/utils"
	"github.com/churnops/mlreg/pkg/api/payload"
	"github.com/spf13/cobra"
)

func reviewCmd(approve bool) *cobra.Command {
	verb, past := "reject", "Rejected"
	if approve {
		verb, past = "approve", "Approved"
	}
	cmd := &cobra.Command{
		Use:   verb + " MODEL VERSION STAGE",
		Short: "Review a transition request: " + verb + " it.",
		Example: utils.CombineExamples([]utils.Example{
			{
				Comment: verb + " the request moving version 3 to Staging",
				Line:    "mlreg transitions " + verb + " hhar_churn 3 staging --comment 'validation passed'",
			},
		}),
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			stage, err := payload.ParseStage(args[2])
			if err != nil {
				return err
			}
			comment, err := cmd.Flags().GetString("comment")
			if err != nil {
				return err
			}
			req := &payload.ReviewTransitionRequest{
				Name:    args[0],
				Version: args[1],
				Stage:   stage,
				Comment: comment,
			}
			s, err := utils.NewSession(cmd)
			if err != nil {
				return err
			}
			review := s.Client.RejectTransitionRequest
			if approve {
				archive, err := cmd.Flags().GetBool("archive-existing")
				if err != nil {
					return err
				}
				req.ArchiveExistingVersions = &archive
				review = s.Client.ApproveTransitionRequest
			}
			if _, err = review(cmd.Context(), req); err != nil {
				return s.HandleError(cmd, err)
			}
			cmd.Printf("%s transition of %s version %s to %s\n", past, args[0], args[1], stage)
			return nil
		},
	}
	cmd.Flags().StringP("comment", "c", "", "review comment")
	if approve {
		cmd.Flags().Bool("archive-existing", false, "archive versions currently in STAGE")
	}
	return cmd
}
