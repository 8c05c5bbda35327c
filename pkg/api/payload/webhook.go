// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package payload

import (
	"fmt"
	"strings"
)

type EventKind string

const (
	EventRegisteredModelCreated        EventKind = "REGISTERED_MODEL_CREATED"
	EventModelVersionCreated           EventKind = "MODEL_VERSION_CREATED"
	EventTransitionRequestCreated      EventKind = "TRANSITION_REQUEST_CREATED"
	EventModelVersionTransitionedStage EventKind = "MODEL_VERSION_TRANSITIONED_STAGE"

	// EventModelRegistered is accepted on input and sent as
	// REGISTERED_MODEL_CREATED
	EventModelRegistered EventKind = "MODEL_REGISTERED"
)

// AllEvents lists every event a webhook can subscribe to
var AllEvents = []EventKind{
	EventRegisteredModelCreated,
	EventModelVersionCreated,
	EventTransitionRequestCreated,
	EventModelVersionTransitionedStage,
}

func (e EventKind) String() string {
	return string(e)
}

// Canonical returns the name the registry uses for e
func (e EventKind) Canonical() EventKind {
	if e == EventModelRegistered {
		return EventRegisteredModelCreated
	}
	return e
}

func (e EventKind) Valid() bool {
	c := e.Canonical()
	for _, v := range AllEvents {
		if v == c {
			return true
		}
	}
	return false
}

// CanonicalEvents returns a copy of sl with aliases replaced
func CanonicalEvents(sl []EventKind) []EventKind {
	if sl == nil {
		return nil
	}
	res := make([]EventKind, len(sl))
	for i, e := range sl {
		res[i] = e.Canonical()
	}
	return res
}

// ParseEventKind accepts event names case-insensitively. "MODEL_REGISTERED" is
// accepted as an alias of REGISTERED_MODEL_CREATED.
func ParseEventKind(s string) (EventKind, error) {
	e := EventKind(strings.ToUpper(strings.TrimSpace(s)))
	if !e.Valid() {
		return "", fmt.Errorf("unknown event %q", s)
	}
	return e.Canonical(), nil
}

func ParseEventKinds(sl []string) ([]EventKind, error) {
	if len(sl) == 0 {
		return nil, nil
	}
	res := make([]EventKind, 0, len(sl))
	for _, s := range sl {
		e, err := ParseEventKind(s)
		if err != nil {
			return nil, err
		}
		res = append(res, e)
	}
	return res, nil
}

type WebhookStatus string

const (
	StatusActive   WebhookStatus = "ACTIVE"
	StatusDisabled WebhookStatus = "DISABLED"
)

func ParseWebhookStatus(s string) (WebhookStatus, error) {
	switch v := WebhookStatus(strings.ToUpper(s)); v {
	case StatusActive, StatusDisabled:
		return v, nil
	}
	return "", fmt.Errorf("unknown webhook status %q", s)
}

// JobSpec triggers a job in the given workspace when the webhook fires
type JobSpec struct {
	JobID        string `json:"job_id" yaml:"jobID" validate:"required"`
	WorkspaceURL string `json:"workspace_url" yaml:"workspaceURL" validate:"required,url"`
	AccessToken  string `json:"access_token" yaml:"accessToken" validate:"required"`
}

// HTTPURLSpec posts the event payload to URL when the webhook fires
type HTTPURLSpec struct {
	URL string `json:"url" yaml:"url" validate:"required,url"`

	// Secret, when set, makes the registry sign each delivery with
	// HMAC-SHA256 in header X-Databricks-Signature
	Secret string `json:"secret,omitempty" yaml:"secret,omitempty"`

	EnableSSLVerification *bool  `json:"enable_ssl_verification,omitempty" yaml:"enableSSLVerification,omitempty"`
	Authorization         string `json:"authorization,omitempty" yaml:"authorization,omitempty"`
}

type Webhook struct {
	ID          string        `json:"id,omitempty"`
	ModelName   string        `json:"model_name" validate:"required"`
	Events      []EventKind   `json:"events" validate:"required,min=1,dive,event"`
	Description string        `json:"description,omitempty"`
	Status      WebhookStatus `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE DISABLED"`
	JobSpec     *JobSpec      `json:"job_spec,omitempty" validate:"omitempty"`
	HTTPURLSpec *HTTPURLSpec  `json:"http_url_spec,omitempty" validate:"omitempty"`

	CreationTimestamp    int64 `json:"creation_timestamp,omitempty"`
	LastUpdatedTimestamp int64 `json:"last_updated_timestamp,omitempty"`
}

// Target returns the job id or URL this webhook fires at
func (w *Webhook) Target() string {
	switch {
	case w.JobSpec != nil:
		return "job:" + w.JobSpec.JobID
	case w.HTTPURLSpec != nil:
		return w.HTTPURLSpec.URL
	}
	return ""
}

// SubscribesTo reports whether w lists every event in events
func (w *Webhook) SubscribesTo(events []EventKind) bool {
	m := map[EventKind]struct{}{}
	for _, e := range w.Events {
		m[e] = struct{}{}
	}
	for _, e := range events {
		if _, ok := m[e]; !ok {
			return false
		}
	}
	return true
}

type CreateWebhookResponse struct {
	Webhook *Webhook `json:"webhook"`
}

type ListWebhooksRequest struct {
	ModelName  string
	Events     []EventKind `validate:"omitempty,dive,event"`
	MaxResults int         `validate:"gte=0"`
	PageToken  string
}

type ListWebhooksResponse struct {
	Webhooks      []Webhook `json:"webhooks"`
	NextPageToken string    `json:"next_page_token,omitempty"`
}

// UpdateWebhookRequest only carries the fields that should change. Nil or
// empty fields are left untouched by the registry.
type UpdateWebhookRequest struct {
	ID          string        `json:"id" validate:"required"`
	Description *string       `json:"description,omitempty"`
	Events      []EventKind   `json:"events,omitempty" validate:"omitempty,min=1,dive,event"`
	Status      WebhookStatus `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE DISABLED"`
	JobSpec     *JobSpec      `json:"job_spec,omitempty" validate:"omitempty"`
	HTTPURLSpec *HTTPURLSpec  `json:"http_url_spec,omitempty" validate:"omitempty"`
}

type UpdateWebhookResponse struct {
	Webhook *Webhook `json:"webhook"`
}

type DeleteWebhookRequest struct {
	ID string `json:"id" validate:"required"`
}

type TestWebhookRequest struct {
	ID    string    `json:"id" validate:"required"`
	Event EventKind `json:"event,omitempty" validate:"omitempty,event"`
}

type WebhookTestResult struct {
	StatusCode int    `json:"status_code"`
	Body       string `json:"body"`
}

type TestWebhookResponse struct {
	Webhook *WebhookTestResult `json:"webhook"`
}
