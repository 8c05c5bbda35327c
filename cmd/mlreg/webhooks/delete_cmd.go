// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package webhooks

import (
	"fmt"

	"github.com/churnops/mlreg/cmd/mlreg/utils"
	"github.com/spf13/cobra"
)

func deleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete WEBHOOK_ID...",
		Short: "Delete registry webhooks.",
		Example: utils.CombineExamples([]utils.Example{
			{
				Comment: "delete two webhooks",
				Line:    "mlreg webhooks delete 8a2f3c 91bd07",
			},
			{
				Comment: "delete every webhook of a model",
				Line:    "mlreg webhooks delete --all --model hhar_churn",
			},
		}),
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := cmd.Flags().GetBool("all")
			if err != nil {
				return err
			}
			if all && len(args) > 0 {
				return fmt.Errorf("webhook ids and --all are mutually exclusive")
			}
			if !all && len(args) == 0 {
				return fmt.Errorf("pass webhook ids or --all")
			}
			s, err := utils.NewSession(cmd)
			if err != nil {
				return err
			}
			ids := args
			if all {
				model, err := utils.ModelName(cmd, s.Config)
				if err != nil {
					return err
				}
				ids, err = webhookIDs(cmd, s, model)
				if err != nil {
					return s.HandleError(cmd, err)
				}
			}
			for _, id := range ids {
				if err := s.Client.DeleteWebhook(cmd.Context(), id); err != nil {
					return s.HandleError(cmd, err)
				}
				cmd.Printf("Deleted webhook %s\n", id)
			}
			return nil
		},
	}
	cmd.Flags().Bool("all", false, "delete every webhook of the model")
	cmd.Flags().StringP("model", "m", "", "model of --all. Defaults to model.name from config")
	return cmd
}
