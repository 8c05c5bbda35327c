// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package webhooks

import (
	"github.com/churnops/mlreg/cmd/mlreg/utils"
	"github.com/churnops/mlreg/pkg/api/payload"
	"github.com/spf13/cobra"
)

func updateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update WEBHOOK_ID",
		Short: "Update a registry webhook.",
		Long:  "Update a registry webhook. Only the given fields change.",
		Example: utils.CombineExamples([]utils.Example{
			{
				Comment: "enable a webhook",
				Line:    "mlreg webhooks update 8a2f3c --status ACTIVE",
			},
			{
				Comment: "change the events of a webhook",
				Line:    "mlreg webhooks update 8a2f3c -e MODEL_VERSION_CREATED -e TRANSITION_REQUEST_CREATED",
			},
		}),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := utils.NewSession(cmd)
			if err != nil {
				return err
			}
			req := &payload.UpdateWebhookRequest{ID: args[0]}
			if req.Events, err = getEvents(cmd); err != nil {
				return err
			}
			if cmd.Flags().Changed("description") {
				desc, err := cmd.Flags().GetString("description")
				if err != nil {
					return err
				}
				req.Description = &desc
			}
			statusStr, err := cmd.Flags().GetString("status")
			if err != nil {
				return err
			}
			if statusStr != "" {
				if req.Status, err = payload.ParseWebhookStatus(statusStr); err != nil {
					return err
				}
			}
			tf, err := getTargetFlags(cmd)
			if err != nil {
				return err
			}
			req.JobSpec, req.HTTPURLSpec = buildTarget(s, tf)
			w, err := s.Client.UpdateWebhook(cmd.Context(), req)
			if err != nil {
				return s.HandleError(cmd, err)
			}
			cmd.Printf("Updated webhook %s\n", w.ID)
			return nil
		},
	}
	addEventFlag(cmd.Flags(), "replace the events of the webhook, can be repeated")
	addTargetFlags(cmd.Flags())
	cmd.Flags().String("description", "", "new description")
	cmd.Flags().String("status", "", "ACTIVE or DISABLED")
	return cmd
}
