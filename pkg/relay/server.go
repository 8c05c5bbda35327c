// SPDX-License-Identifier: Apache-2.0
// Copyright © 2021 Wrangle Ltd

package relay

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-logr/logr"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	srv    *http.Server
	logger logr.Logger
}

func NewServer(handler http.Handler, readTimeout, writeTimeout time.Duration, logger logr.Logger) *Server {
	if logger.GetSink() == nil {
		logger = logr.Discard()
	}
	return &Server{
		srv: &http.Server{
			Handler:      handler,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
		logger: logger,
	}
}

// Start serves on addr until Close is called. It returns nil after a clean
// shutdown.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("relay started", "addr", ln.Addr().String())
	if err := s.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.srv.Shutdown(ctx)
}
