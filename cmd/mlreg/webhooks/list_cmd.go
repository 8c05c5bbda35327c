// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package webhooks

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/churnops/mlreg/cmd/mlreg/utils"
	"github.com/churnops/mlreg/pkg/api/payload"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func statusString(s payload.WebhookStatus) string {
	switch s {
	case payload.StatusActive:
		return color.GreenString(string(s))
	case payload.StatusDisabled:
		return color.YellowString(string(s))
	case "":
		return "-"
	}
	return string(s)
}

func joinEvents(events []payload.EventKind) string {
	sl := make([]string, len(events))
	for i, e := range events {
		sl[i] = string(e)
	}
	return strings.Join(sl, ",")
}

func writeWebhooks(out io.Writer, webhooks []payload.Webhook) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tMODEL\tSTATUS\tEVENTS\tTARGET")
	for i := range webhooks {
		w := &webhooks[i]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", w.ID, w.ModelName, statusString(w.Status), joinEvents(w.Events), w.Target())
	}
	return tw.Flush()
}

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registry webhooks.",
		Long:  "List registry webhooks, optionally only those of a model or only those subscribed to some events. Every page is fetched.",
		Example: utils.CombineExamples([]utils.Example{
			{
				Comment: "list every webhook of the workspace",
				Line:    "mlreg webhooks list",
			},
			{
				Comment: "list webhooks of a model firing on stage transitions",
				Line:    "mlreg webhooks list --model hhar_churn -e MODEL_VERSION_TRANSITIONED_STAGE",
			},
		}),
		Args: cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := utils.NewSession(cmd)
			if err != nil {
				return err
			}
			model, err := cmd.Flags().GetString("model")
			if err != nil {
				return err
			}
			events, err := getEvents(cmd)
			if err != nil {
				return err
			}
			asJSON, err := cmd.Flags().GetBool("json")
			if err != nil {
				return err
			}
			sl, err := s.Client.ListWebhooks(cmd.Context(), &payload.ListWebhooksRequest{
				ModelName: model,
				Events:    events,
			})
			if err != nil {
				return s.HandleError(cmd, err)
			}
			if asJSON {
				return printJSON(cmd, sl)
			}
			if len(sl) == 0 {
				cmd.Println("No webhooks found")
				return nil
			}
			return writeWebhooks(cmd.OutOrStdout(), sl)
		},
	}
	cmd.Flags().StringP("model", "m", "", "only list webhooks of this model")
	addEventFlag(cmd.Flags(), "only list webhooks subscribed to this event, can be repeated")
	cmd.Flags().Bool("json", false, "print webhooks as JSON")
	return cmd
}
