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

func (c *Client) CreateTransitionRequest(ctx context.Context, req *payload.CreateTransitionRequest) (*payload.TransitionRequest, error) {
	if err := payload.Validate(req); err != nil {
		return nil, err
	}
	cr := &payload.CreateTransitionResponse{}
	if err := c.Request(ctx, http.MethodPost, api.PathCreateTransitionRequest, nil, req, cr); err != nil {
		return nil, err
	}
	return cr.Request, nil
}

// ListTransitionRequests returns the open transition requests of a model version
func (c *Client) ListTransitionRequests(ctx context.Context, name, version string) ([]payload.Activity, error) {
	q := url.Values{}
	q.Set("name", name)
	q.Set("version", version)
	lr := &payload.ListTransitionRequestsResponse{}
	if err := c.Request(ctx, http.MethodGet, api.PathListTransitionRequests, q, nil, lr); err != nil {
		return nil, err
	}
	return lr.Requests, nil
}

func (c *Client) reviewTransitionRequest(ctx context.Context, endpoint string, req *payload.ReviewTransitionRequest) (*payload.Activity, error) {
	if err := payload.Validate(req); err != nil {
		return nil, err
	}
	rr := &payload.ReviewTransitionResponse{}
	if err := c.Request(ctx, http.MethodPost, endpoint, nil, req, rr); err != nil {
		return nil, err
	}
	return rr.Activity, nil
}

func (c *Client) ApproveTransitionRequest(ctx context.Context, req *payload.ReviewTransitionRequest) (*payload.Activity, error) {
	if req != nil && req.ArchiveExistingVersions == nil {
		r := *req
		archive := false
		r.ArchiveExistingVersions = &archive
		req = &r
	}
	return c.reviewTransitionRequest(ctx, api.PathApproveTransitionRequest, req)
}

func (c *Client) RejectTransitionRequest(ctx context.Context, req *payload.ReviewTransitionRequest) (*payload.Activity, error) {
	if req != nil && req.ArchiveExistingVersions != nil {
		r := *req
		r.ArchiveExistingVersions = nil
		req = &r
	}
	return c.reviewTransitionRequest(ctx, api.PathRejectTransitionRequest, req)
}

func (c *Client) CreateComment(ctx context.Context, req *payload.CreateCommentRequest) (*payload.Comment, error) {
	if err := payload.Validate(req); err != nil {
		return nil, err
	}
	cr := &payload.CreateCommentResponse{}
	if err := c.Request(ctx, http.MethodPost, api.PathCreateComment, nil, req, cr); err != nil {
		return nil, err
	}
	return cr.Comment, nil
}
