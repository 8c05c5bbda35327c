// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package payload

// Event is the body the registry posts to an HTTP webhook target
type Event struct {
	Event          EventKind `json:"event"`
	WebhookID      string    `json:"webhook_id"`
	EventTimestamp int64     `json:"event_timestamp"`
	ModelName      string    `json:"model_name"`
	Version        string    `json:"version,omitempty"`
	ToStage        Stage     `json:"to_stage,omitempty"`
	FromStage      Stage     `json:"from_stage,omitempty"`

	// Text is a human readable summary, already formatted for Slack
	Text string `json:"text,omitempty"`
}
