// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package webhooks

import (
	"testing"

	"github.com/churnops/mlreg/pkg/api/payload"
	"github.com/stretchr/testify/assert"
)

func TestSameWebhook(t *testing.T) {
	declared := &payload.Webhook{
		ModelName: "hhar_churn",
		Events:    []payload.EventKind{payload.EventTransitionRequestCreated, payload.EventModelVersionCreated},
		JobSpec:   &payload.JobSpec{JobID: "11507", WorkspaceURL: "https://a.cloud.databricks.com", AccessToken: "tok"},
	}
	existing := &payload.Webhook{
		ID:        "w1",
		ModelName: "hhar_churn",
		Status:    payload.StatusActive,
		Events:    []payload.EventKind{payload.EventModelVersionCreated, payload.EventTransitionRequestCreated},
		JobSpec:   &payload.JobSpec{JobID: "11507", WorkspaceURL: "https://a.cloud.databricks.com/"},
	}
	assert.True(t, sameWebhook(existing, declared))

	existing.JobSpec.WorkspaceURL = "https://b.cloud.databricks.com"
	assert.False(t, sameWebhook(existing, declared))

	// the registry may omit the workspace of a job webhook
	existing.JobSpec.WorkspaceURL = ""
	assert.True(t, sameWebhook(existing, declared))

	existing.Events = []payload.EventKind{payload.EventModelVersionCreated}
	assert.False(t, sameWebhook(existing, declared))
	existing.Events = append(existing.Events, payload.EventTransitionRequestCreated, payload.EventRegisteredModelCreated)
	assert.False(t, sameWebhook(existing, declared))
	existing.Events = existing.Events[:2]

	existing.Status = payload.StatusDisabled
	declared.Status = payload.StatusActive
	assert.False(t, sameWebhook(existing, declared))
	declared.Status = ""
	assert.True(t, sameWebhook(existing, declared))

	existing.JobSpec = nil
	existing.HTTPURLSpec = &payload.HTTPURLSpec{URL: "https://hooks.slack.com/services/T/B/X"}
	assert.False(t, sameWebhook(existing, declared))
}
