// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package webhooks

import (
	"strings"

	"github.com/churnops/mlreg/cmd/mlreg/utils"
	"github.com/churnops/mlreg/pkg/api/payload"
	"github.com/spf13/cobra"
)

func webhookIDs(cmd *cobra.Command, s *utils.Session, model string) ([]string, error) {
	sl, err := s.Client.ListWebhooks(cmd.Context(), &payload.ListWebhooksRequest{ModelName: model})
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(sl))
	for i, w := range sl {
		ids[i] = w.ID
	}
	return ids, nil
}

// sameWebhook reports whether existing already does what spec declares.
// Secrets and tokens are never returned by the registry so they are not
// compared.
func sameWebhook(existing *payload.Webhook, spec *payload.Webhook) bool {
	if existing.ModelName != spec.ModelName || existing.Target() != spec.Target() {
		return false
	}
	if existing.JobSpec != nil && spec.JobSpec != nil && existing.JobSpec.WorkspaceURL != "" &&
		strings.TrimSuffix(existing.JobSpec.WorkspaceURL, "/") != strings.TrimSuffix(spec.JobSpec.WorkspaceURL, "/") {
		return false
	}
	if spec.Status != "" && existing.Status != "" && existing.Status != spec.Status {
		return false
	}
	return existing.SubscribesTo(spec.Events) && spec.SubscribesTo(existing.Events)
}

func applyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Create the webhooks declared in config.",
		Long:  "Create every webhook declared under `webhooks` in config. A declared webhook is skipped when the model already has a webhook with the same target and events.",
		Example: utils.CombineExamples([]utils.Example{
			{
				Comment: "create declared webhooks",
				Line:    "mlreg webhooks apply",
			},
			{
				Comment: "show what would be created",
				Line:    "mlreg webhooks apply --dry-run",
			},
		}),
		Args: cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			dryRun, err := cmd.Flags().GetBool("dry-run")
			if err != nil {
				return err
			}
			s, err := utils.NewSession(cmd)
			if err != nil {
				return err
			}
			specs, err := s.Config.WebhookSpecs(s.Token)
			if err != nil {
				return err
			}
			if len(specs) == 0 {
				cmd.Println("No webhooks declared in config")
				return nil
			}
			existing := map[string][]payload.Webhook{}
			for _, spec := range specs {
				sl, ok := existing[spec.ModelName]
				if !ok {
					sl, err = s.Client.ListWebhooks(cmd.Context(), &payload.ListWebhooksRequest{ModelName: spec.ModelName})
					if err != nil {
						return s.HandleError(cmd, err)
					}
					existing[spec.ModelName] = sl
				}
				var found *payload.Webhook
				for i := range sl {
					if sameWebhook(&sl[i], spec) {
						found = &sl[i]
						break
					}
				}
				if found != nil {
					cmd.Printf("Unchanged %s (%s -> %s)\n", found.ID, spec.ModelName, spec.Target())
					continue
				}
				if dryRun {
					cmd.Printf("Would create webhook (%s -> %s)\n", spec.ModelName, spec.Target())
					continue
				}
				w, err := s.Client.CreateWebhook(cmd.Context(), spec)
				if err != nil {
					return s.HandleError(cmd, err)
				}
				existing[spec.ModelName] = append(existing[spec.ModelName], *w)
				cmd.Printf("Created webhook %s (%s -> %s)\n", w.ID, w.ModelName, w.Target())
			}
			return nil
		},
	}
	cmd.Flags().Bool("dry-run", false, "only print webhooks that would be created")
	return cmd
}
