// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package credentials

import (
	"net/url"
	"strings"

	"github.com/churnops/mlreg/pkg/credentials"
	"github.com/spf13/cobra"
)

func removeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove URL...",
		Short: "Remove credentials saved for URLs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := credentials.NewStore()
			if err != nil {
				return err
			}
			for _, v := range args {
				u, err := url.Parse(strings.TrimRight(v, "/"))
				if err != nil {
					return err
				}
				if ok := s.Delete(*u); ok {
					cmd.Printf("Removed credentials for %s\n", v)
				}
			}
			if err = s.Flush(); err != nil {
				return err
			}
			cmd.Printf("Saved changes to %s\n", s.Path())
			return nil
		},
	}
	return cmd
}
