// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package transitions

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/churnops/mlreg/cmd/mlreg/utils"
	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list MODEL VERSION",
		Short: "List open transition requests of a model version.",
		Example: utils.CombineExamples([]utils.Example{
			{
				Comment: "list open requests of version 3",
				Line:    "mlreg transitions list hhar_churn 3",
			},
		}),
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := utils.NewSession(cmd)
			if err != nil {
				return err
			}
			sl, err := s.Client.ListTransitionRequests(cmd.Context(), args[0], args[1])
			if err != nil {
				return s.HandleError(cmd, err)
			}
			if len(sl) == 0 {
				cmd.Println("No open transition requests")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTO STAGE\tUSER\tCREATED\tCOMMENT")
			for _, a := range sl {
				created := "-"
				if a.CreationTimestamp > 0 {
					created = time.UnixMilli(a.CreationTimestamp).UTC().Format(time.RFC3339)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", a.ID, a.ToStage, a.UserID, created, a.Comment)
			}
			return tw.Flush()
		},
	}
	return cmd
}
