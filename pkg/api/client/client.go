// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/churnops/mlreg/pkg/api"
	"github.com/go-logr/logr"
)

const DefaultTimeout = 30 * time.Second

type ClientOption func(c *Client)

// WithHeader adds header to every request
func WithHeader(header http.Header) ClientOption {
	return func(c *Client) {
		c.requestOptions = append(c.requestOptions, WithRequestHeader(header))
	}
}

// WithHTTPClient replaces the underlying http client. WithTimeout applied
// afterward modifies the given client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.client = client
	}
}

func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.client.Timeout = timeout
	}
}

// Client talks to the model registry REST API of a single workspace. It holds
// no mutable state and is safe for concurrent use.
type Client struct {
	client *http.Client
	// origin is the scheme + host name of the workspace
	origin         string
	requestOptions []RequestOption
	logger         logr.Logger
}

func NewClient(origin, token string, logger logr.Logger, opts ...ClientOption) (*Client, error) {
	if origin == "" {
		return nil, fmt.Errorf("empty workspace url")
	}
	if token == "" {
		return nil, fmt.Errorf("empty access token")
	}
	if logger.GetSink() == nil {
		logger = logr.Discard()
	}
	c := &Client{
		client: &http.Client{
			Timeout: DefaultTimeout,
		},
		origin:         strings.TrimSuffix(origin, "/"),
		requestOptions: []RequestOption{WithRequestAuthorization(token)},
		logger:         logger.WithName("Client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) Origin() string {
	return c.origin
}

func (c *Client) logPayload(msg, method string, u fmt.Stringer, payload interface{}) {
	if payload == nil || !c.logger.V(1).Enabled() {
		return
	}
	b, err := json.MarshalIndent(payload, "  ", "  ")
	if err != nil {
		return
	}
	c.logger.V(1).Info(msg, "method", method, "url", u.String(), "body", string(b))
}

// Request sends one request to endpoint (relative to /api/2.0/mlflow/). GET
// requests carry query only; every other method sends body as JSON. When
// result is not nil the response body is decoded into it.
func (c *Client) Request(ctx context.Context, method, endpoint string, query url.Values, body, result interface{}, opts ...RequestOption) error {
	u, err := url.Parse(c.origin + api.PathPrefix + strings.TrimPrefix(endpoint, "/"))
	if err != nil {
		return err
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	var reader io.Reader
	if method != http.MethodGet && body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return err
	}
	if reader != nil {
		req.Header.Set("Content-Type", api.CTJSON)
	}
	req.Header.Set("Accept", api.CTJSON)
	for _, opt := range c.requestOptions {
		opt(req)
	}
	for _, opt := range opts {
		opt(req)
	}
	if method != http.MethodGet {
		c.logPayload("request", method, u, body)
	} else {
		c.logger.V(1).Info("request", "method", method, "url", u.String())
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return &TransportError{Method: method, URL: u.String(), Err: err}
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Method: method, URL: u.String(), Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return NewRemoteError(resp.StatusCode, b)
	}
	if result == nil || len(bytes.TrimSpace(b)) == 0 {
		return nil
	}
	if err = json.Unmarshal(b, result); err != nil {
		return fmt.Errorf("error decoding response of %s %s: %w", method, endpoint, err)
	}
	c.logPayload("response", method, u, result)
	return nil
}
