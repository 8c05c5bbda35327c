// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package relay

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/churnops/mlreg/pkg/api"
	"github.com/churnops/mlreg/pkg/api/payload"
	"github.com/go-chi/chi/v5"
	"github.com/go-logr/logr"
	"github.com/google/uuid"
)

const (
	PathHooks  = "/hooks/registry"
	PathHealth = "/healthz"

	maxBodySize    = 1 << 20
	forwardTimeout = 10 * time.Second
)

type Options struct {
	// Secret verifies X-Databricks-Signature. Empty disables the check.
	Secret string
	Routes []Route

	// Client forwards messages. Defaults to a client with a 10s timeout.
	Client *http.Client
	Logger logr.Logger
}

// Handler receives registry webhook deliveries and forwards them to the
// matching routes. Routes are fixed at construction.
type Handler struct {
	secret []byte
	routes []compiledRoute
	client *http.Client
	logger logr.Logger
	router chi.Router
}

func NewHandler(opts Options) (*Handler, error) {
	routes, err := compileRoutes(opts.Routes)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger.GetSink() == nil {
		logger = logr.Discard()
	}
	h := &Handler{
		routes: routes,
		client: opts.Client,
		logger: logger.WithName("Relay"),
	}
	if opts.Secret != "" {
		h.secret = []byte(opts.Secret)
	}
	if h.client == nil {
		h.client = &http.Client{Timeout: forwardTimeout}
	}
	r := chi.NewRouter()
	r.Use(RecoveryMiddleware(h.logger), LoggingMiddleware(h.logger))
	r.Get(PathHealth, h.health)
	r.Post(PathHooks, h.receive)
	h.router = r
	return h, nil
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(rw, r)
}

func (h *Handler) health(rw http.ResponseWriter, r *http.Request) {
	writeJSON(rw, http.StatusOK, map[string]string{"status": "ok"})
}

// Sign returns the signature the registry attaches to body
func Sign(secret, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func (h *Handler) verify(r *http.Request, body []byte) bool {
	if h.secret == nil {
		return true
	}
	sig, err := hex.DecodeString(strings.TrimSpace(r.Header.Get(api.HeaderSignature)))
	if err != nil || len(sig) == 0 {
		return false
	}
	mac := hmac.New(sha256.New, h.secret)
	mac.Write(body)
	return hmac.Equal(sig, mac.Sum(nil))
}

type deliveryResponse struct {
	DeliveryID string `json:"delivery_id"`
	Forwarded  int    `json:"forwarded"`
}

func (h *Handler) receive(rw http.ResponseWriter, r *http.Request) {
	id := uuid.New().String()
	logger := h.logger.WithValues("delivery", id)
	body, err := io.ReadAll(http.MaxBytesReader(rw, r.Body, maxBodySize))
	if err != nil {
		http.Error(rw, "cannot read body", http.StatusBadRequest)
		return
	}
	if !h.verify(r, body) {
		logger.Info("signature mismatch", "remote", r.RemoteAddr)
		http.Error(rw, "invalid signature", http.StatusUnauthorized)
		return
	}
	e := &payload.Event{}
	if err = json.Unmarshal(body, e); err != nil {
		http.Error(rw, "invalid payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if !e.Event.Valid() {
		http.Error(rw, fmt.Sprintf("invalid payload: unknown event %q", e.Event), http.StatusBadRequest)
		return
	}
	e.Event = e.Event.Canonical()
	logger.V(1).Info("received", "event", e.Event, "model", e.ModelName, "version", e.Version, "webhook", e.WebhookID)

	msg := &slackMessage{Text: formatEvent(e)}
	var n int
	for i := range h.routes {
		route := &h.routes[i]
		if !route.matches(e) {
			continue
		}
		if err = h.forward(r.Context(), route.URL, msg); err != nil {
			logger.Error(err, "forward failed", "event", e.Event, "model", e.ModelName)
			http.Error(rw, "forward failed", http.StatusBadGateway)
			return
		}
		n++
	}
	logger.Info("delivered", "event", e.Event, "model", e.ModelName, "forwarded", n)
	writeJSON(rw, http.StatusAccepted, &deliveryResponse{DeliveryID: id, Forwarded: n})
}

func (h *Handler) forward(ctx context.Context, target string, msg *slackMessage) error {
	b, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", api.CTJSON)
	resp, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s answered %d: %s", target, resp.StatusCode, strings.TrimSpace(string(b)))
	}
	return nil
}

func writeJSON(rw http.ResponseWriter, status int, obj interface{}) {
	rw.Header().Set("Content-Type", api.CTJSON)
	rw.WriteHeader(status)
	json.NewEncoder(rw).Encode(obj)
}
