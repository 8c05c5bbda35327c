// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package relay

import (
	"fmt"

	"github.com/churnops/mlreg/pkg/api/payload"
	"github.com/churnops/mlreg/pkg/conf"
	"github.com/gobwas/glob"
)

type Route struct {
	// Model is a glob such as "churn_*". Empty matches every model.
	Model  string
	Events []payload.EventKind
	URL    string
}

type compiledRoute struct {
	Route
	pattern glob.Glob
}

func compileRoutes(routes []Route) ([]compiledRoute, error) {
	res := make([]compiledRoute, 0, len(routes))
	for i, r := range routes {
		if r.URL == "" {
			return nil, fmt.Errorf("routes[%d]: empty url", i)
		}
		for _, e := range r.Events {
			if !e.Valid() {
				return nil, fmt.Errorf("routes[%d]: unknown event %q", i, e)
			}
		}
		cr := compiledRoute{Route: r}
		cr.Events = payload.CanonicalEvents(r.Events)
		if r.Model != "" {
			g, err := glob.Compile(r.Model)
			if err != nil {
				return nil, fmt.Errorf("routes[%d]: invalid model pattern %q: %w", i, r.Model, err)
			}
			cr.pattern = g
		}
		res = append(res, cr)
	}
	return res, nil
}

func (r *compiledRoute) matches(e *payload.Event) bool {
	if r.pattern != nil && !r.pattern.Match(e.ModelName) {
		return false
	}
	if len(r.Events) == 0 {
		return true
	}
	for _, k := range r.Events {
		if k == e.Event {
			return true
		}
	}
	return false
}

// RoutesFromConfig reads relay.routes, expanding the "slack" url. Without
// declared routes every event goes to slack.webhookURL when one is set.
func RoutesFromConfig(c *conf.Config) []Route {
	var routes []Route
	if c.Relay != nil {
		for _, r := range c.Relay.Routes {
			routes = append(routes, Route{
				Model:  r.Model,
				Events: r.Events,
				URL:    c.ResolveURL(r.URL),
			})
		}
	}
	if len(routes) == 0 && c.Slack != nil && c.Slack.WebhookURL != "" {
		routes = append(routes, Route{URL: c.Slack.WebhookURL})
	}
	return routes
}
