// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package apiclient

import (
	"net/http"
)

// RequestOption modifies a single outgoing request
type RequestOption func(r *http.Request)

func WithRequestHeader(header http.Header) RequestOption {
	return func(r *http.Request) {
		for k, sl := range header {
			for _, v := range sl {
				r.Header.Add(k, v)
			}
		}
	}
}

func WithRequestAuthorization(token string) RequestOption {
	return func(r *http.Request) {
		if token != "" {
			r.Header.Set("Authorization", "Bearer "+token)
		}
	}
}
