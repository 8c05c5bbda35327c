// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package webhooks

import (
	"fmt"

	"github.com/churnops/mlreg/cmd/mlreg/utils"
	"github.com/churnops/mlreg/pkg/api/payload"
	"github.com/spf13/cobra"
)

func testCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test WEBHOOK_ID",
		Short: "Fire a webhook with a mock event.",
		Example: utils.CombineExamples([]utils.Example{
			{
				Comment: "test a webhook with its first event",
				Line:    "mlreg webhooks test 8a2f3c",
			},
			{
				Comment: "test a webhook with a specific event",
				Line:    "mlreg webhooks test 8a2f3c --event MODEL_VERSION_TRANSITIONED_STAGE",
			},
		}),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := utils.NewSession(cmd)
			if err != nil {
				return err
			}
			eventStr, err := cmd.Flags().GetString("event")
			if err != nil {
				return err
			}
			var event payload.EventKind
			if eventStr != "" {
				if event, err = payload.ParseEventKind(eventStr); err != nil {
					return err
				}
			}
			res, err := s.Client.TestWebhook(cmd.Context(), args[0], event)
			if err != nil {
				return s.HandleError(cmd, err)
			}
			cmd.Printf("Status code: %d\n", res.StatusCode)
			if res.Body != "" {
				cmd.Println(res.Body)
			}
			if res.StatusCode >= 300 {
				return fmt.Errorf("webhook %s answered with status %d", args[0], res.StatusCode)
			}
			return nil
		},
	}
	cmd.Flags().StringP("event", "e", "", "event of the mock payload. Defaults to the first event of the webhook")
	return cmd
}
