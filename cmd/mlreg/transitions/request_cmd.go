// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package transitions

import (
	"github.com/churnops/mlreg/cmd/mlreg/utils"
	"github.com/churnops/mlreg/pkg/api/payload"
	"github.com/spf13/cobra"
)

func requestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "request MODEL VERSION STAGE",
		Short: "Request a stage transition for a model version.",
		Example: utils.CombineExamples([]utils.Example{
			{
				Comment: "request version 3 to be moved to Staging",
				Line:    "mlreg transitions request hhar_churn 3 staging --comment 'beats current baseline'",
			},
			{
				Comment: "archive the current Production versions once the request is approved",
				Line:    "mlreg transitions request hhar_churn 3 production --archive-existing",
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
			archive, err := cmd.Flags().GetBool("archive-existing")
			if err != nil {
				return err
			}
			s, err := utils.NewSession(cmd)
			if err != nil {
				return err
			}
			_, err = s.Client.CreateTransitionRequest(cmd.Context(), &payload.CreateTransitionRequest{
				Name:                    args[0],
				Version:                 args[1],
				Stage:                   stage,
				Comment:                 comment,
				ArchiveExistingVersions: archive,
			})
			if err != nil {
				return s.HandleError(cmd, err)
			}
			cmd.Printf("Requested transition of %s version %s to %s\n", args[0], args[1], stage)
			return nil
		},
	}
	cmd.Flags().StringP("comment", "c", "", "comment attached to the request")
	cmd.Flags().Bool("archive-existing", false, "archive versions currently in STAGE when the request is approved")
	return cmd
}
