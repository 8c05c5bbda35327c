// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package mlreg

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/churnops/mlreg/cmd/mlreg/utils"
	"github.com/churnops/mlreg/pkg/relay"
	"github.com/spf13/cobra"
)

func newRelayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "relay",
		Short: "Receive registry webhook deliveries and forward them to Slack.",
		Long:  "Start an HTTP server accepting registry webhook deliveries on " + relay.PathHooks + ". Deliveries are checked against slack.secret (or --secret) and forwarded to the urls of matching relay.routes, or to slack.webhookURL when no route is declared.",
		Example: utils.CombineExamples([]utils.Example{
			{
				Comment: "start the relay on port 8080",
				Line:    "mlreg relay",
			},
			{
				Comment: "start the relay with an explicit secret",
				Line:    "mlreg relay --port 9000 --secret $WEBHOOK_SECRET",
			},
		}),
		Args: cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := utils.OpenConfig()
			if err != nil {
				return err
			}
			port, err := cmd.Flags().GetInt("port")
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("port") {
				port = c.RelayPort()
			}
			secret, err := cmd.Flags().GetString("secret")
			if err != nil {
				return err
			}
			if secret == "" {
				secret = c.RelaySecret()
			}
			routes := relay.RoutesFromConfig(c)
			if len(routes) == 0 {
				return fmt.Errorf("nothing to relay to. Set slack.webhookURL or relay.routes in config")
			}
			logger := utils.GetLogger(cmd)
			h, err := relay.NewHandler(relay.Options{
				Secret: secret,
				Routes: routes,
				Logger: logger,
			})
			if err != nil {
				return err
			}
			var readTimeout, writeTimeout time.Duration
			if c.Relay != nil {
				readTimeout = time.Duration(c.Relay.ReadTimeout)
				writeTimeout = time.Duration(c.Relay.WriteTimeout)
			}
			s := relay.NewServer(h, readTimeout, writeTimeout, logger)
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			go func() {
				<-ctx.Done()
				s.Close()
			}()
			if secret == "" {
				cmd.PrintErrln("Warning: no secret set, deliveries are not verified")
			}
			cmd.Printf("Relaying %d route(s) on :%d\n", len(routes), port)
			return s.Start(fmt.Sprintf(":%d", port))
		},
	}
	cmd.Flags().IntP("port", "p", 0, "port to listen on (default 8080)")
	cmd.Flags().String("secret", "", "shared secret verifying deliveries. Defaults to slack.secret")
	return cmd
}
