// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package testutils

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

const registryPrefix = "/api/2.0/mlflow/"

type RecordedRequest struct {
	Method   string
	Endpoint string
	Query    url.Values
	Header   http.Header
	Body     []byte
}

// DecodeBody unmarshals the recorded JSON body into obj
func (r RecordedRequest) DecodeBody(t *testing.T, obj interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Body, obj))
}

// MockRegistry is an httptest server standing in for the registry REST API.
// Every request is recorded; endpoints without a handler answer 404.
type MockRegistry struct {
	*httptest.Server
	mu       sync.Mutex
	requests []RecordedRequest
	handlers map[string]http.HandlerFunc
}

func NewMockRegistry(t *testing.T) *MockRegistry {
	t.Helper()
	m := &MockRegistry{
		handlers: map[string]http.HandlerFunc{},
	}
	m.Server = httptest.NewServer(http.HandlerFunc(m.serveHTTP))
	t.Cleanup(m.Close)
	return m
}

func handlerKey(method, endpoint string) string {
	return method + " " + strings.Trim(endpoint, "/")
}

func (m *MockRegistry) serveHTTP(rw http.ResponseWriter, r *http.Request) {
	b, _ := io.ReadAll(r.Body)
	endpoint := strings.Trim(strings.TrimPrefix(r.URL.Path, registryPrefix), "/")
	m.mu.Lock()
	m.requests = append(m.requests, RecordedRequest{
		Method:   r.Method,
		Endpoint: endpoint,
		Query:    r.URL.Query(),
		Header:   r.Header.Clone(),
		Body:     b,
	})
	h, ok := m.handlers[handlerKey(r.Method, endpoint)]
	m.mu.Unlock()
	if !ok {
		WriteJSON(rw, http.StatusNotFound, map[string]string{
			"error_code": "ENDPOINT_NOT_FOUND",
			"message":    "no handler for " + r.Method + " " + endpoint,
		})
		return
	}
	h(rw, r)
}

func (m *MockRegistry) Handle(method, endpoint string, h http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[handlerKey(method, endpoint)] = h
}

// HandleJSON answers method + endpoint with a fixed status and JSON body
func (m *MockRegistry) HandleJSON(method, endpoint string, status int, obj interface{}) {
	m.Handle(method, endpoint, func(rw http.ResponseWriter, r *http.Request) {
		WriteJSON(rw, status, obj)
	})
}

// HandleSequence answers successive calls with successive bodies, repeating
// the last one once exhausted
func (m *MockRegistry) HandleSequence(method, endpoint string, objs ...interface{}) {
	var i int
	var mu sync.Mutex
	m.Handle(method, endpoint, func(rw http.ResponseWriter, r *http.Request) {
		mu.Lock()
		obj := objs[i]
		if i < len(objs)-1 {
			i++
		}
		mu.Unlock()
		WriteJSON(rw, http.StatusOK, obj)
	})
}

func (m *MockRegistry) Requests() []RecordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RecordedRequest(nil), m.requests...)
}

// Endpoints returns "METHOD endpoint" of each recorded request in order
func (m *MockRegistry) Endpoints() []string {
	reqs := m.Requests()
	sl := make([]string, len(reqs))
	for i, r := range reqs {
		sl[i] = r.Method + " " + r.Endpoint
	}
	return sl
}

func (m *MockRegistry) LastRequest(t *testing.T) RecordedRequest {
	t.Helper()
	reqs := m.Requests()
	require.NotEmpty(t, reqs)
	return reqs[len(reqs)-1]
}

func WriteJSON(rw http.ResponseWriter, status int, obj interface{}) {
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(status)
	if obj != nil {
		json.NewEncoder(rw).Encode(obj)
	}
}
