// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package payload

type ModelVersionStatus string

const (
	ModelVersionPendingRegistration ModelVersionStatus = "PENDING_REGISTRATION"
	ModelVersionFailedRegistration  ModelVersionStatus = "FAILED_REGISTRATION"
	ModelVersionReady               ModelVersionStatus = "READY"
)

type RegisteredModel struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type CreateRegisteredModelRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
}

type RegisteredModelResponse struct {
	RegisteredModel *RegisteredModel `json:"registered_model"`
}

type UpdateRegisteredModelRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type ModelVersion struct {
	Name          string             `json:"name"`
	Version       string             `json:"version"`
	Source        string             `json:"source,omitempty"`
	RunID         string             `json:"run_id,omitempty"`
	Status        ModelVersionStatus `json:"status,omitempty"`
	StatusMessage string             `json:"status_message,omitempty"`
	CurrentStage  Stage              `json:"current_stage,omitempty"`
	Description   string             `json:"description,omitempty"`
}

type CreateModelVersionRequest struct {
	Name        string `json:"name" validate:"required"`
	Source      string `json:"source" validate:"required"`
	RunID       string `json:"run_id,omitempty"`
	Description string `json:"description,omitempty"`
}

type ModelVersionResponse struct {
	ModelVersion *ModelVersion `json:"model_version"`
}

type UpdateModelVersionRequest struct {
	Name        string `json:"name" validate:"required"`
	Version     string `json:"version" validate:"required"`
	Description string `json:"description"`
}
