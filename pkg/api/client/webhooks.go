// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/churnops/mlreg/pkg/api"
	"github.com/churnops/mlreg/pkg/api/payload"
)

// CreateWebhook registers w and returns a copy of it carrying the id assigned
// by the registry. Status defaults to ACTIVE.
func (c *Client) CreateWebhook(ctx context.Context, w *payload.Webhook) (*payload.Webhook, error) {
	if w == nil {
		return nil, &payload.ValidationError{Fields: []string{"webhook: required"}}
	}
	req := *w
	req.ID = ""
	req.Events = payload.CanonicalEvents(req.Events)
	if req.Status == "" {
		req.Status = payload.StatusActive
	}
	if err := payload.Validate(&req); err != nil {
		return nil, err
	}
	cr := &payload.CreateWebhookResponse{}
	if err := c.Request(ctx, http.MethodPost, api.PathCreateWebhook, nil, &req, cr); err != nil {
		return nil, err
	}
	res := req
	if cr.Webhook != nil {
		res.ID = cr.Webhook.ID
		res.CreationTimestamp = cr.Webhook.CreationTimestamp
		res.LastUpdatedTimestamp = cr.Webhook.LastUpdatedTimestamp
	}
	return &res, nil
}

func listQuery(req *payload.ListWebhooksRequest) url.Values {
	v := url.Values{}
	if req.ModelName != "" {
		v.Set("model_name", req.ModelName)
	}
	for _, e := range req.Events {
		v.Add("events", string(e))
	}
	if req.MaxResults > 0 {
		v.Set("max_results", strconv.Itoa(req.MaxResults))
	}
	if req.PageToken != "" {
		v.Set("page_token", req.PageToken)
	}
	return v
}

// ListWebhooks returns every webhook matching req in server order, following
// page tokens until the last page.
func (c *Client) ListWebhooks(ctx context.Context, req *payload.ListWebhooksRequest) ([]payload.Webhook, error) {
	if req == nil {
		req = &payload.ListWebhooksRequest{}
	}
	page := *req
	page.Events = payload.CanonicalEvents(req.Events)
	if err := payload.Validate(&page); err != nil {
		return nil, err
	}
	webhooks := []payload.Webhook{}
	for {
		lr := &payload.ListWebhooksResponse{}
		if err := c.Request(ctx, http.MethodGet, api.PathListWebhooks, listQuery(&page), nil, lr); err != nil {
			return nil, err
		}
		webhooks = append(webhooks, lr.Webhooks...)
		if lr.NextPageToken == "" || lr.NextPageToken == page.PageToken {
			break
		}
		page.PageToken = lr.NextPageToken
	}
	return webhooks, nil
}

func (c *Client) UpdateWebhook(ctx context.Context, req *payload.UpdateWebhookRequest) (*payload.Webhook, error) {
	if req == nil {
		return nil, &payload.ValidationError{Fields: []string{"id: required"}}
	}
	patch := *req
	patch.Events = payload.CanonicalEvents(req.Events)
	if err := payload.Validate(&patch); err != nil {
		return nil, err
	}
	ur := &payload.UpdateWebhookResponse{}
	if err := c.Request(ctx, http.MethodPatch, api.PathUpdateWebhook, nil, &patch, ur); err != nil {
		return nil, err
	}
	if ur.Webhook == nil {
		return &payload.Webhook{ID: req.ID}, nil
	}
	return ur.Webhook, nil
}

func (c *Client) DeleteWebhook(ctx context.Context, id string) error {
	req := &payload.DeleteWebhookRequest{ID: id}
	if err := payload.Validate(req); err != nil {
		return err
	}
	return c.Request(ctx, http.MethodDelete, api.PathDeleteWebhook, nil, req, nil)
}

// TestWebhook asks the registry to fire webhook id with a mock event. An
// empty event lets the registry pick the first event of the webhook.
func (c *Client) TestWebhook(ctx context.Context, id string, event payload.EventKind) (*payload.WebhookTestResult, error) {
	req := &payload.TestWebhookRequest{ID: id, Event: event.Canonical()}
	if err := payload.Validate(req); err != nil {
		return nil, err
	}
	tr := &payload.TestWebhookResponse{}
	if err := c.Request(ctx, http.MethodPost, api.PathTestWebhook, nil, req, tr); err != nil {
		return nil, err
	}
	if tr.Webhook == nil {
		return &payload.WebhookTestResult{}, nil
	}
	return tr.Webhook, nil
}
