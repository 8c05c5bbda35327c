// SPDX-License-Identifier: Apache-2.0
// Copyright © 2021 Wrangle Ltd

package relay

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/go-logr/logr"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

type loggingMiddleware struct {
	handler http.Handler
	logger  logr.Logger
}

func (h *loggingMiddleware) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: rw, status: http.StatusOK}
	h.handler.ServeHTTP(rec, r)
	h.logger.Info("request",
		"method", r.Method,
		"uri", r.URL.RequestURI(),
		"status", rec.status,
		"elapsed", time.Since(start).String(),
	)
}

func LoggingMiddleware(logger logr.Logger) func(http.Handler) http.Handler {
	return func(handler http.Handler) http.Handler {
		return &loggingMiddleware{handler: handler, logger: logger}
	}
}

type recoveryMiddleware struct {
	handler http.Handler
	logger  logr.Logger
}

func (h *recoveryMiddleware) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	defer func() {
		if v := recover(); v != nil {
			h.logger.Error(fmt.Errorf("%v", v), "panic (recovered)", "stack", string(debug.Stack()))
			http.Error(rw, "internal server error", http.StatusInternalServerError)
		}
	}()
	h.handler.ServeHTTP(rw, r)
}

func RecoveryMiddleware(logger logr.Logger) func(http.Handler) http.Handler {
	return func(handler http.Handler) http.Handler {
		return &recoveryMiddleware{handler: handler, logger: logger}
	}
}
