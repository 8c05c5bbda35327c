// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package mlreg

import (
	"strings"

	"github.com/churnops/mlreg/cmd/mlreg/config"
	"github.com/churnops/mlreg/cmd/mlreg/credentials"
	"github.com/churnops/mlreg/cmd/mlreg/transitions"
	"github.com/churnops/mlreg/cmd/mlreg/utils"
	"github.com/churnops/mlreg/cmd/mlreg/webhooks"
	"github.com/spf13/cobra"
)

func RootCmd() *cobra.Command {
	var cleanup func()
	utils.UserAgent = "mlreg/" + strings.TrimSpace(version)
	rootCmd := &cobra.Command{
		Use:   "mlreg",
		Short: "Manage model registry webhooks, transitions and promotions",
		Long:  "mlreg talks to the model registry REST API of a workspace: it manages registry webhooks, stage transition requests and comments, promotes the best run of an experiment and relays webhook events to Slack.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
			cleanup, err = utils.SetupLogger(cmd)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if cleanup != nil {
				cleanup()
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Usage()
		},
	}
	utils.BindGlobalFlags(rootCmd.PersistentFlags())
	utils.AddLoggerFlags(rootCmd.PersistentFlags())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCommentCmd())
	rootCmd.AddCommand(newPromoteCmd())
	rootCmd.AddCommand(newRelayCmd())
	rootCmd.AddCommand(webhooks.RootCmd())
	rootCmd.AddCommand(transitions.RootCmd())
	rootCmd.AddCommand(credentials.RootCmd())
	rootCmd.AddCommand(config.RootCmd())
	return rootCmd
}
