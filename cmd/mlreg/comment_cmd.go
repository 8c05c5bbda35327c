// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package mlreg

import (
	"strings"

	"github.com/churnops/mlreg/cmd/mlreg/utils"
	"github.com/churnops/mlreg/pkg/api/payload"
	"github.com/spf13/cobra"
)

func newCommentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment MODEL VERSION TEXT...",
		Short: "Comment on a model version.",
		Example: utils.CombineExamples([]utils.Example{
			{
				Comment: "leave a comment on version 3",
				Line:    "mlreg comment hhar_churn 3 'F1 improved by 2 points over v2'",
			},
		}),
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := utils.NewSession(cmd)
			if err != nil {
				return err
			}
			c, err := s.Client.CreateComment(cmd.Context(), &payload.CreateCommentRequest{
				Name:    args[0],
				Version: args[1],
				Comment: strings.Join(args[2:], " "),
			})
			if err != nil {
				return s.HandleError(cmd, err)
			}
			if c != nil && c.ID != "" {
				cmd.Printf("Created comment %s on %s version %s\n", c.ID, args[0], args[1])
			} else {
				cmd.Printf("Created comment on %s version %s\n", args[0], args[1])
			}
			return nil
		},
	}
	return cmd
}
