// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package apiclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/churnops/mlreg/pkg/api"
	"github.com/churnops/mlreg/pkg/api/payload"
)

func (c *Client) CreateRegisteredModel(ctx context.Context, req *payload.CreateRegisteredModelRequest) (*payload.RegisteredModel, error) {
	if err := payload.Validate(req); err != nil {
		return nil, err
	}
	rr := &payload.RegisteredModelResponse{}
	if err := c.Request(ctx, http.MethodPost, api.PathCreateRegisteredModel, nil, req, rr); err != nil {
		return nil, err
	}
	return rr.RegisteredModel, nil
}

func (c *Client) UpdateRegisteredModel(ctx context.Context, req *payload.UpdateRegisteredModelRequest) (*payload.RegisteredModel, error) {
	if err := payload.Validate(req); err != nil {
		return nil, err
	}
	rr := &payload.RegisteredModelResponse{}
	if err := c.Request(ctx, http.MethodPatch, api.PathUpdateRegisteredModel, nil, req, rr); err != nil {
		return nil, err
	}
	return rr.RegisteredModel, nil
}

func (c *Client) CreateModelVersion(ctx context.Context, req *payload.CreateModelVersionRequest) (*payload.ModelVersion, error) {
	if err := payload.Validate(req); err != nil {
		return nil, err
	}
	mr := &payload.ModelVersionResponse{}
	if err := c.Request(ctx, http.MethodPost, api.PathCreateModelVersion, nil, req, mr); err != nil {
		return nil, err
	}
	return mr.ModelVersion, nil
}

func (c *Client) GetModelVersion(ctx context.Context, name, version string) (*payload.ModelVersion, error) {
	q := url.Values{}
	q.Set("name", name)
	q.Set("version", version)
	mr := &payload.ModelVersionResponse{}
	if err := c.Request(ctx, http.MethodGet, api.PathGetModelVersion, q, nil, mr); err != nil {
		return nil, err
	}
	return mr.ModelVersion, nil
}

func (c *Client) UpdateModelVersion(ctx context.Context, req *payload.UpdateModelVersionRequest) (*payload.ModelVersion, error) {
	if err := payload.Validate(req); err != nil {
		return nil, err
	}
	mr := &payload.ModelVersionResponse{}
	if err := c.Request(ctx, http.MethodPatch, api.PathUpdateModelVersion, nil, req, mr); err != nil {
		return nil, err
	}
	return mr.ModelVersion, nil
}

func (c *Client) SetRunTag(ctx context.Context, req *payload.SetRunTagRequest) error {
	if err := payload.Validate(req); err != nil {
		return err
	}
	return c.Request(ctx, http.MethodPost, api.PathSetRunTag, nil, req, nil)
}

// SearchRuns returns a single page of runs. runs/search takes its filter in a
// POST body, unlike the webhook list endpoint.
func (c *Client) SearchRuns(ctx context.Context, req *payload.SearchRunsRequest) (*payload.SearchRunsResponse, error) {
	if err := payload.Validate(req); err != nil {
		return nil, err
	}
	sr := &payload.SearchRunsResponse{}
	if err := c.Request(ctx, http.MethodPost, api.PathSearchRuns, nil, req, sr); err != nil {
		return nil, err
	}
	return sr, nil
}
