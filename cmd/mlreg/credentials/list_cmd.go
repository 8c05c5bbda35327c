// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package credentials

import (
	"github.com/churnops/mlreg/pkg/credentials"
	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved credentials by URL prefix.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := credentials.NewStore()
			if err != nil {
				return err
			}
			for _, u := range s.URIs() {
				cmd.Println(u.String())
			}
			return nil
		},
	}
	return cmd
}
