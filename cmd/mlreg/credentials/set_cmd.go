// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package credentials

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/churnops/mlreg/cmd/mlreg/utils"
	"github.com/churnops/mlreg/pkg/credentials"
	"github.com/spf13/cobra"
)

func setCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set WORKSPACE_URL",
		Short: "Save an access token for a workspace.",
		Long:  "Save an access token for a workspace. The token is used by every command talking to WORKSPACE_URL or any url under it, unless --token is given.",
		Example: utils.CombineExamples([]utils.Example{
			{
				Comment: "prompt for the token",
				Line:    "mlreg credentials set https://my-workspace.cloud.databricks.com",
			},
			{
				Comment: "read the token from a file",
				Line:    "mlreg credentials set https://my-workspace.cloud.databricks.com --token-location ./token.txt",
			},
		}),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokLoc, err := cmd.Flags().GetString("token-location")
			if err != nil {
				return err
			}
			u, err := url.Parse(strings.TrimRight(args[0], "/"))
			if err != nil {
				return err
			}
			if u.Scheme == "" || u.Host == "" {
				return fmt.Errorf("invalid workspace url %q", args[0])
			}
			var token string
			if tokLoc != "" {
				b, err := os.ReadFile(tokLoc)
				if err != nil {
					return err
				}
				token = strings.TrimSpace(string(b))
			} else {
				token, err = utils.PromptForSecret(cmd, "Token")
				if err != nil {
					return err
				}
			}
			if token == "" {
				return fmt.Errorf("empty token")
			}
			cs, err := credentials.NewStore()
			if err != nil {
				return err
			}
			cs.Set(*u, token)
			if err = cs.Flush(); err != nil {
				return err
			}
			cmd.Printf("Saved credentials to %s\n", cs.Path())
			return nil
		},
	}
	cmd.Flags().String("token-location", "", "read the token from this file")
	return cmd
}
