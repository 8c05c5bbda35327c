// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package payload

import (
	"fmt"
	"strings"
)

type Stage string

const (
	StageNone       Stage = "None"
	StageStaging    Stage = "Staging"
	StageProduction Stage = "Production"
	StageArchived   Stage = "Archived"
)

// ParseStage accepts any letter case, e.g. "staging"
func ParseStage(s string) (Stage, error) {
	for _, v := range []Stage{StageNone, StageStaging, StageProduction, StageArchived} {
		if strings.EqualFold(strings.TrimSpace(s), string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid stage %q, valid stages are None, Staging, Production and Archived", s)
}

type CreateTransitionRequest struct {
	Name    string `json:"name" validate:"required"`
	Version string `json:"version" validate:"required"`
	Stage   Stage  `json:"stage" validate:"required,oneof=None Staging Production Archived"`
	Comment string `json:"comment,omitempty"`

	// ArchiveExistingVersions is only honored when the request is approved
	ArchiveExistingVersions bool `json:"archive_existing_versions,omitempty"`
}

type Activity struct {
	ID                   string `json:"id,omitempty"`
	ActivityType         string `json:"activity_type,omitempty"`
	FromStage            Stage  `json:"from_stage,omitempty"`
	ToStage              Stage  `json:"to_stage,omitempty"`
	UserID               string `json:"user_id,omitempty"`
	Comment              string `json:"comment,omitempty"`
	SystemComment        string `json:"system_comment,omitempty"`
	CreationTimestamp    int64  `json:"creation_timestamp,omitempty"`
	LastUpdatedTimestamp int64  `json:"last_updated_timestamp,omitempty"`
}

type TransitionRequest struct {
	ToStage           Stage  `json:"to_stage"`
	UserID            string `json:"user_id,omitempty"`
	Comment           string `json:"comment,omitempty"`
	CreationTimestamp int64  `json:"creation_timestamp,omitempty"`
}

type CreateTransitionResponse struct {
	Request *TransitionRequest `json:"request"`
}

type ListTransitionRequestsResponse struct {
	Requests []Activity `json:"requests"`
}

// ReviewTransitionRequest approves or rejects a pending transition request
type ReviewTransitionRequest struct {
	Name    string `json:"name" validate:"required"`
	Version string `json:"version" validate:"required"`
	Stage   Stage  `json:"stage" validate:"required,oneof=None Staging Production Archived"`
	Comment string `json:"comment,omitempty"`

	// only sent on approve
	ArchiveExistingVersions *bool `json:"archive_existing_versions,omitempty"`
}

type ReviewTransitionResponse struct {
	Activity *Activity `json:"activity"`
}

type CreateCommentRequest struct {
	Name    string `json:"name" validate:"required"`
	Version string `json:"version" validate:"required"`
	Comment string `json:"comment" validate:"required"`
}

type Comment struct {
	ID                   string `json:"id"`
	UserID               string `json:"user_id,omitempty"`
	Comment              string `json:"comment"`
	CreationTimestamp    int64  `json:"creation_timestamp,omitempty"`
	LastUpdatedTimestamp int64  `json:"last_updated_timestamp,omitempty"`
}

type CreateCommentResponse struct {
	Comment *Comment `json:"comment"`
}
