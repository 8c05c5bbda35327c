// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package transitions

import "github.com/spf13/cobra"

func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transitions",
		Short: "Request, list and review model version stage transitions",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Usage()
		},
	}
	cmd.AddCommand(requestCmd())
	cmd.AddCommand(listCmd())
	cmd.AddCommand(reviewCmd(true))
	cmd.AddCommand(reviewCmd(false))
	return cmd
}
