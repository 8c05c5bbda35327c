// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package webhooks

import (
	"github.com/churnops/mlreg/cmd/mlreg/utils"
	"github.com/churnops/mlreg/pkg/api/payload"
	"github.com/spf13/cobra"
)

func buildTarget(s *utils.Session, f *targetFlags) (*payload.JobSpec, *payload.HTTPURLSpec) {
	var (
		job  *payload.JobSpec
		hook *payload.HTTPURLSpec
	)
	if f.JobID != "" {
		job = &payload.JobSpec{
			JobID:        s.Config.JobID(f.JobID),
			WorkspaceURL: f.JobWorkspaceURL,
			AccessToken:  f.JobToken,
		}
		if job.WorkspaceURL == "" {
			job.WorkspaceURL = s.WorkspaceURL
		}
		if job.AccessToken == "" {
			job.AccessToken = s.Token
		}
	}
	if f.URL != "" {
		hook = &payload.HTTPURLSpec{
			URL:                   s.Config.ResolveURL(f.URL),
			Secret:                f.Secret,
			Authorization:         f.Authorization,
			EnableSSLVerification: f.SSLVerification,
		}
		if f.URL == "slack" && hook.Secret == "" {
			hook.Secret = s.Config.RelaySecret()
		}
	}
	return job, hook
}

func createCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create { --job-id JOB | --url URL } --event EVENT...",
		Short: "Create a registry webhook.",
		Long:  "Create a registry webhook that either triggers a job or posts the event payload to an url whenever one of the given events happens to the model.",
		Example: utils.CombineExamples([]utils.Example{
			{
				Comment: "trigger job 11507 whenever a transition request is created",
				Line:    "mlreg webhooks create --model hhar_churn --job-id 11507 -e TRANSITION_REQUEST_CREATED",
			},
			{
				Comment: "notify slack when a version is created or changes stage",
				Line:    "mlreg webhooks create --url https://hooks.slack.com/services/... -e MODEL_VERSION_CREATED -e MODEL_VERSION_TRANSITIONED_STAGE",
			},
			{
				Comment: "create the webhook disabled, it can be enabled later with `mlreg webhooks update`",
				Line:    "mlreg webhooks create --job-id validation -e MODEL_VERSION_CREATED --status DISABLED",
			},
		}),
		Args: cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := utils.NewSession(cmd)
			if err != nil {
				return err
			}
			model, err := utils.ModelName(cmd, s.Config)
			if err != nil {
				return err
			}
			events, err := getEvents(cmd)
			if err != nil {
				return err
			}
			desc, err := cmd.Flags().GetString("description")
			if err != nil {
				return err
			}
			statusStr, err := cmd.Flags().GetString("status")
			if err != nil {
				return err
			}
			var status payload.WebhookStatus
			if statusStr != "" {
				if status, err = payload.ParseWebhookStatus(statusStr); err != nil {
					return err
				}
			}
			tf, err := getTargetFlags(cmd)
			if err != nil {
				return err
			}
			asJSON, err := cmd.Flags().GetBool("json")
			if err != nil {
				return err
			}
			w := &payload.Webhook{
				ModelName:   model,
				Events:      events,
				Description: desc,
				Status:      status,
			}
			w.JobSpec, w.HTTPURLSpec = buildTarget(s, tf)
			res, err := s.Client.CreateWebhook(cmd.Context(), w)
			if err != nil {
				return s.HandleError(cmd, err)
			}
			if asJSON {
				return printJSON(cmd, res)
			}
			cmd.Printf("Created webhook %s (%s -> %s)\n", res.ID, res.ModelName, res.Target())
			return nil
		},
	}
	cmd.Flags().StringP("model", "m", "", "registered model name. Defaults to model.name from config")
	addEventFlag(cmd.Flags(), "event that fires the webhook, can be repeated")
	addTargetFlags(cmd.Flags())
	cmd.Flags().String("description", "", "webhook description")
	cmd.Flags().String("status", "", "ACTIVE or DISABLED (default ACTIVE)")
	cmd.Flags().Bool("json", false, "print the created webhook as JSON")
	return cmd
}
