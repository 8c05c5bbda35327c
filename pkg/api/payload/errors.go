// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package payload

const (
	ErrorCodeResourceDoesNotExist = "RESOURCE_DOES_NOT_EXIST"
	ErrorCodeResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS"
)

// Error is the body the registry sends along with a non-2xx status
type Error struct {
	ErrorCode string `json:"error_code,omitempty"`
	Message   string `json:"message,omitempty"`
}
