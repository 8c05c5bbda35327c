// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package conf

import (
	"fmt"

	"github.com/churnops/mlreg/pkg/api/payload"
)

// Webhook declares a registry webhook. Exactly one of Job and URL must be set.
type Webhook struct {
	// Model overrides model.name for this webhook
	Model string `yaml:"model,omitempty" json:"model,omitempty"`

	// Events is the list of events that fire the webhook. Must not be empty
	Events []payload.EventKind `yaml:"events" json:"events"`

	Description string                `yaml:"description,omitempty" json:"description,omitempty"`
	Status      payload.WebhookStatus `yaml:"status,omitempty" json:"status,omitempty"`

	// Job is a name under `jobs` or a raw job id. The job runs in
	// workspace.url with the token the webhook is applied with.
	Job string `yaml:"job,omitempty" json:"job,omitempty"`

	// URL receives the event payload. "slack" means slack.webhookURL
	URL string `yaml:"url,omitempty" json:"url,omitempty"`

	// Secret signs deliveries to URL. Defaults to slack.secret when URL is "slack"
	Secret string `yaml:"secret,omitempty" json:"secret,omitempty"`
}

// WebhookSpecs turns declared webhooks into registry payloads. token is used
// as the access token of job webhooks.
func (c *Config) WebhookSpecs(token string) ([]*payload.Webhook, error) {
	res := make([]*payload.Webhook, 0, len(c.Webhooks))
	for i, w := range c.Webhooks {
		spec := &payload.Webhook{
			ModelName:   w.Model,
			Events:      payload.CanonicalEvents(w.Events),
			Description: w.Description,
			Status:      w.Status,
		}
		if spec.ModelName == "" {
			spec.ModelName = c.ModelName()
		}
		switch {
		case w.Job != "" && w.URL != "":
			return nil, fmt.Errorf("webhooks[%d]: job and url are mutually exclusive", i)
		case w.Job != "":
			spec.JobSpec = &payload.JobSpec{
				JobID:        c.JobID(w.Job),
				WorkspaceURL: c.WorkspaceURL(),
				AccessToken:  token,
			}
		case w.URL != "":
			spec.HTTPURLSpec = &payload.HTTPURLSpec{
				URL:    c.ResolveURL(w.URL),
				Secret: w.Secret,
			}
			if w.URL == "slack" && w.Secret == "" {
				spec.HTTPURLSpec.Secret = c.RelaySecret()
			}
		default:
			return nil, fmt.Errorf("webhooks[%d]: either job or url must be set", i)
		}
		if err := payload.Validate(spec); err != nil {
			return nil, fmt.Errorf("webhooks[%d]: %w", i, err)
		}
		res = append(res, spec)
	}
	return res, nil
}
