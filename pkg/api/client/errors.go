// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/churnops/mlreg/pkg/api/payload"
)

// ErrNotFound matches any RemoteError with status 404 via errors.Is
var ErrNotFound = errors.New("not found")

// RemoteError is any non-2xx answer from the registry
type RemoteError struct {
	Code      int
	ErrorCode string
	Message   string
	Body      []byte
}

func NewRemoteError(code int, body []byte) *RemoteError {
	e := &RemoteError{
		Code: code,
		Body: body,
	}
	pe := &payload.Error{}
	if err := json.Unmarshal(body, pe); err == nil && (pe.ErrorCode != "" || pe.Message != "") {
		e.ErrorCode = pe.ErrorCode
		e.Message = pe.Message
	} else {
		e.Message = strings.TrimSpace(string(body))
	}
	return e
}

func (err *RemoteError) Error() string {
	if err.ErrorCode != "" {
		return fmt.Sprintf("status %d: %s: %s", err.Code, err.ErrorCode, err.Message)
	}
	return fmt.Sprintf("status %d: %s", err.Code, err.Message)
}

// NotFound reports a 404 or a RESOURCE_DOES_NOT_EXIST error code
func (err *RemoteError) NotFound() bool {
	return err.Code == http.StatusNotFound || err.ErrorCode == payload.ErrorCodeResourceDoesNotExist
}

func (err *RemoteError) Is(target error) bool {
	return target == ErrNotFound && err.NotFound()
}

func UnwrapRemoteError(err error) *RemoteError {
	var v *RemoteError
	if errors.As(err, &v) {
		return v
	}
	return nil
}

// TransportError means the request never got an HTTP answer
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (err *TransportError) Error() string {
	return fmt.Sprintf("%s %s: %v", err.Method, err.URL, err.Err)
}

func (err *TransportError) Unwrap() error {
	return err.Err
}
