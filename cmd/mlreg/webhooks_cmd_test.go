// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package mlreg

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	"github.com/churnops/mlreg/pkg/api/payload"
	"github.com/churnops/mlreg/pkg/conf"
	"github.com/churnops/mlreg/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebhooksCreateCmd(t *testing.T) {
	isolate(t)
	m := testutils.NewMockRegistry(t)
	m.HandleJSON(http.MethodPost, "registry-webhooks/create", http.StatusOK, map[string]interface{}{
		"webhook": map[string]interface{}{"id": "abc123", "creation_timestamp": 1650000000000},
	})

	cmd := registryCmd(m, "tok",
		"webhooks", "create", "--model", "hhar_churn", "--job-id", "11507",
		"-e", "transition_request_created",
	)
	assertCmdOutput(t, cmd, "Created webhook abc123 (hhar_churn -> job:11507)\n")
	req := m.LastRequest(t)
	assert.Equal(t, "Bearer tok", req.Header.Get("Authorization"))
	assert.JSONEq(t, `{
		"model_name": "hhar_churn",
		"events": ["TRANSITION_REQUEST_CREATED"],
		"status": "ACTIVE",
		"job_spec": {"job_id": "11507", "workspace_url": "`+m.URL+`", "access_token": "tok"}
	}`, string(req.Body))

	cmd = registryCmd(m, "tok",
		"webhooks", "create", "--model", "hhar_churn", "--url", "https://hooks.slack.com/services/T/B/X",
		"--secret", "s3cr3t", "-e", "MODEL_VERSION_CREATED", "-e", "MODEL_VERSION_TRANSITIONED_STAGE",
		"--status", "disabled",
	)
	assertCmdOutput(t, cmd, "Created webhook abc123 (hhar_churn -> https://hooks.slack.com/services/T/B/X)\n")
	assert.JSONEq(t, `{
		"model_name": "hhar_churn",
		"events": ["MODEL_VERSION_CREATED", "MODEL_VERSION_TRANSITIONED_STAGE"],
		"status": "DISABLED",
		"http_url_spec": {"url": "https://hooks.slack.com/services/T/B/X", "secret": "s3cr3t"}
	}`, string(m.LastRequest(t).Body))
}

func TestWebhooksCreateCmdUsesConfig(t *testing.T) {
	dir := isolate(t)
	m := testutils.NewMockRegistry(t)
	m.HandleJSON(http.MethodPost, "registry-webhooks/create", http.StatusOK, map[string]interface{}{
		"webhook": map[string]interface{}{"id": "w1"},
	})
	writeLocalConfig(t, dir, &conf.Config{
		Model: &conf.Model{Name: "hhar_churn"},
		Jobs:  map[string]string{"validation": "11507"},
		Slack: &conf.Slack{WebhookURL: "https://hooks.slack.com/services/T/B/X", Secret: "s3cr3t"},
	})

	cmd := registryCmd(m, "tok", "webhooks", "create", "--job-id", "validation", "-e", "MODEL_VERSION_CREATED")
	assertCmdOutput(t, cmd, "Created webhook w1 (hhar_churn -> job:11507)\n")

	cmd = registryCmd(m, "tok", "webhooks", "create", "--url", "slack", "-e", "MODEL_VERSION_CREATED")
	assertCmdOutput(t, cmd, "Created webhook w1 (hhar_churn -> https://hooks.slack.com/services/T/B/X)\n")
	w := &payload.Webhook{}
	req := m.LastRequest(t)
	req.DecodeBody(t, w)
	assert.Equal(t, "s3cr3t", w.HTTPURLSpec.Secret)
}

func TestWebhooksCreateCmdInvalid(t *testing.T) {
	isolate(t)
	m := testutils.NewMockRegistry(t)

	assertCmdFailed(t, registryCmd(m, "tok", "webhooks", "create", "--job-id", "1", "-e", "MODEL_VERSION_CREATED"),
		"", "model name is not set")
	assertCmdFailed(t, registryCmd(m, "tok", "webhooks", "create", "-m", "m", "--job-id", "1", "-e", "COMMENT_CREATED"),
		"", "COMMENT_CREATED")
	assertCmdFailed(t, registryCmd(m, "tok", "webhooks", "create", "-m", "m", "-e", "MODEL_VERSION_CREATED"),
		"", "required_action")
	assertCmdFailed(t, registryCmd(m, "tok", "webhooks", "create", "-m", "m", "--job-id", "1", "--url", "https://x.com", "-e", "MODEL_VERSION_CREATED"),
		"", "single_action")
	assert.Empty(t, m.Requests())
}

func outputRows(s string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		rows = append(rows, strings.Fields(line))
	}
	return rows
}

func TestWebhooksListCmd(t *testing.T) {
	isolate(t)
	m := testutils.NewMockRegistry(t)
	m.HandleJSON(http.MethodGet, "registry-webhooks/list", http.StatusOK, map[string]interface{}{})

	cmd := registryCmd(m, "tok", "webhooks", "list")
	assertCmdOutput(t, cmd, "No webhooks found\n")
	assert.Empty(t, m.LastRequest(t).Body)

	m.HandleJSON(http.MethodGet, "registry-webhooks/list", http.StatusOK, map[string]interface{}{
		"webhooks": []map[string]interface{}{
			{
				"id": "w1", "model_name": "hhar_churn", "status": "ACTIVE",
				"events":   []string{"MODEL_VERSION_CREATED", "TRANSITION_REQUEST_CREATED"},
				"job_spec": map[string]string{"job_id": "11507", "workspace_url": "https://x.cloud.databricks.com"},
			},
			{
				"id": "w2", "model_name": "hhar_churn", "status": "DISABLED",
				"events":        []string{"MODEL_VERSION_TRANSITIONED_STAGE"},
				"http_url_spec": map[string]string{"url": "https://hooks.slack.com/services/T/B/X"},
			},
		},
	})
	cmd = registryCmd(m, "tok", "webhooks", "list", "--model", "hhar_churn", "-e", "MODEL_VERSION_CREATED")
	buf := bytes.NewBufferString("")
	cmd.SetOut(buf)
	require.NoError(t, cmd.Execute())
	assert.Equal(t, [][]string{
		{"ID", "MODEL", "STATUS", "EVENTS", "TARGET"},
		{"w1", "hhar_churn", "ACTIVE", "MODEL_VERSION_CREATED,TRANSITION_REQUEST_CREATED", "job:11507"},
		{"w2", "hhar_churn", "DISABLED", "MODEL_VERSION_TRANSITIONED_STAGE", "https://hooks.slack.com/services/T/B/X"},
	}, outputRows(buf.String()))
	q := m.LastRequest(t).Query
	assert.Equal(t, "hhar_churn", q.Get("model_name"))
	assert.Equal(t, []string{"MODEL_VERSION_CREATED"}, q["events"])
}

func TestWebhooksUpdateCmd(t *testing.T) {
	isolate(t)
	m := testutils.NewMockRegistry(t)
	m.HandleJSON(http.MethodPatch, "registry-webhooks/update", http.StatusOK, map[string]interface{}{
		"webhook": map[string]interface{}{"id": "w1", "status": "ACTIVE"},
	})

	cmd := registryCmd(m, "tok", "webhooks", "update", "w1", "--status", "active", "--description", "")
	assertCmdOutput(t, cmd, "Updated webhook w1\n")
	assert.JSONEq(t, `{"id":"w1","status":"ACTIVE","description":""}`, string(m.LastRequest(t).Body))

	m.HandleJSON(http.MethodPatch, "registry-webhooks/update", http.StatusNotFound, map[string]string{
		"error_code": "RESOURCE_DOES_NOT_EXIST",
		"message":    "Webhook w9 does not exist",
	})
	assertCmdFailed(t, registryCmd(m, "tok", "webhooks", "update", "w9", "-e", "MODEL_VERSION_CREATED"),
		"", "RESOURCE_DOES_NOT_EXIST")
}

func TestWebhooksDeleteCmd(t *testing.T) {
	isolate(t)
	m := testutils.NewMockRegistry(t)
	m.HandleJSON(http.MethodDelete, "registry-webhooks/delete", http.StatusOK, map[string]interface{}{})

	cmd := registryCmd(m, "tok", "webhooks", "delete", "w1", "w2")
	assertCmdOutput(t, cmd, "Deleted webhook w1\nDeleted webhook w2\n")
	reqs := m.Requests()
	require.Len(t, reqs, 2)
	assert.JSONEq(t, `{"id":"w1"}`, string(reqs[0].Body))
	assert.JSONEq(t, `{"id":"w2"}`, string(reqs[1].Body))

	m.HandleJSON(http.MethodGet, "registry-webhooks/list", http.StatusOK, map[string]interface{}{
		"webhooks": []map[string]interface{}{{"id": "w3"}, {"id": "w4"}},
	})
	cmd = registryCmd(m, "tok", "webhooks", "delete", "--all", "-m", "hhar_churn")
	assertCmdOutput(t, cmd, "Deleted webhook w3\nDeleted webhook w4\n")

	n := len(m.Requests())
	assertCmdFailed(t, registryCmd(m, "tok", "webhooks", "delete", "--all", "w5"), "", "mutually exclusive")
	assertCmdFailed(t, registryCmd(m, "tok", "webhooks", "delete"), "", "pass webhook ids or --all")
	assert.Len(t, m.Requests(), n)
}

func TestWebhooksTestCmd(t *testing.T) {
	isolate(t)
	m := testutils.NewMockRegistry(t)
	m.HandleJSON(http.MethodPost, "registry-webhooks/test", http.StatusOK, map[string]interface{}{
		"webhook": map[string]interface{}{"status_code": 200, "body": "ok"},
	})

	cmd := registryCmd(m, "tok", "webhooks", "test", "w1", "--event", "model_version_created")
	assertCmdOutput(t, cmd, "Status code: 200\nok\n")
	assert.JSONEq(t, `{"id":"w1","event":"MODEL_VERSION_CREATED"}`, string(m.LastRequest(t).Body))

	m.HandleJSON(http.MethodPost, "registry-webhooks/test", http.StatusOK, map[string]interface{}{
		"webhook": map[string]interface{}{"status_code": 500, "body": "boom"},
	})
	assertCmdFailed(t, registryCmd(m, "tok", "webhooks", "test", "w1"), "Status code: 500\nboom\n", "status 500")
}

func TestWebhooksApplyCmd(t *testing.T) {
	dir := isolate(t)
	m := testutils.NewMockRegistry(t)
	writeLocalConfig(t, dir, &conf.Config{
		Model: &conf.Model{Name: "hhar_churn"},
		Jobs:  map[string]string{"validation": "11507"},
		Slack: &conf.Slack{WebhookURL: "https://hooks.slack.com/services/T/B/X"},
		Webhooks: []conf.Webhook{
			{
				Events: []payload.EventKind{payload.EventTransitionRequestCreated},
				Job:    "validation",
			},
			{
				Events: []payload.EventKind{payload.EventModelVersionTransitionedStage, payload.EventModelVersionCreated},
				URL:    "slack",
			},
		},
	})
	m.HandleJSON(http.MethodGet, "registry-webhooks/list", http.StatusOK, map[string]interface{}{
		"webhooks": []map[string]interface{}{{
			"id": "w1", "model_name": "hhar_churn", "status": "ACTIVE",
			"events":        []string{"MODEL_VERSION_CREATED", "MODEL_VERSION_TRANSITIONED_STAGE"},
			"http_url_spec": map[string]string{"url": "https://hooks.slack.com/services/T/B/X"},
		}},
	})
	m.HandleJSON(http.MethodPost, "registry-webhooks/create", http.StatusOK, map[string]interface{}{
		"webhook": map[string]interface{}{"id": "w2"},
	})

	cmd := registryCmd(m, "tok", "webhooks", "apply", "--dry-run")
	assertCmdOutput(t, cmd, strings.Join([]string{
		"Would create webhook (hhar_churn -> job:11507)",
		"Unchanged w1 (hhar_churn -> https://hooks.slack.com/services/T/B/X)",
		"",
	}, "\n"))
	assert.Equal(t, []string{"GET registry-webhooks/list"}, m.Endpoints())

	cmd = registryCmd(m, "tok", "webhooks", "apply")
	assertCmdOutput(t, cmd, strings.Join([]string{
		"Created webhook w2 (hhar_churn -> job:11507)",
		"Unchanged w1 (hhar_churn -> https://hooks.slack.com/services/T/B/X)",
		"",
	}, "\n"))
	assert.JSONEq(t, `{
		"model_name": "hhar_churn",
		"events": ["TRANSITION_REQUEST_CREATED"],
		"status": "ACTIVE",
		"job_spec": {"job_id": "11507", "workspace_url": "`+m.URL+`", "access_token": "tok"}
	}`, string(m.Requests()[2].Body))
}
