// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package utils

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	apiclient "github.com/churnops/mlreg/pkg/api/client"
	"github.com/churnops/mlreg/pkg/conf"
	"github.com/churnops/mlreg/pkg/credentials"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// UserAgent is sent with every registry request
var UserAgent = "mlreg"

// Session bundles what a command needs to talk to the registry
type Session struct {
	Config       *conf.Config
	Client       *apiclient.Client
	WorkspaceURL string
	Token        string

	creds *credentials.Store
	// credsURI is the saved url the token came from, nil when the token was
	// given explicitly
	credsURI *url.URL
}

func WorkspaceURL(c *conf.Config) string {
	if s := viper.GetString(KeyWorkspaceURL); s != "" {
		return strings.TrimSuffix(s, "/")
	}
	return strings.TrimSuffix(c.WorkspaceURL(), "/")
}

// NewSession resolves the workspace url (flag > env > config) and token
// (flag > env > saved credentials) then builds a registry client.
func NewSession(cmd *cobra.Command) (*Session, error) {
	c, err := OpenConfig()
	if err != nil {
		return nil, err
	}
	s := &Session{
		Config:       c,
		WorkspaceURL: WorkspaceURL(c),
		Token:        viper.GetString(KeyToken),
	}
	if s.WorkspaceURL == "" {
		return nil, fmt.Errorf("workspace url is not set. Pass --workspace-url, set MLREG_WORKSPACE_URL or workspace.url in config")
	}
	// job webhooks declared in config target the effective workspace
	c.Workspace = &conf.Workspace{URL: s.WorkspaceURL}
	if s.Token == "" {
		s.creds, err = credentials.NewStore()
		if err != nil {
			return nil, err
		}
		u, err := url.Parse(s.WorkspaceURL)
		if err != nil {
			return nil, err
		}
		s.credsURI, s.Token = s.creds.GetTokenMatching(*u)
		if s.Token == "" {
			return nil, fmt.Errorf("no token for %s. Pass --token or save one with:\n  mlreg credentials set %s", s.WorkspaceURL, s.WorkspaceURL)
		}
	}
	timeout := c.ClientTimeout()
	if d := viper.GetDuration(KeyTimeout); d > 0 {
		timeout = d
	}
	s.Client, err = apiclient.NewClient(s.WorkspaceURL, s.Token, GetLogger(cmd),
		apiclient.WithHTTPClient(GetClient(cmd.Context())),
		apiclient.WithTimeout(timeout),
		apiclient.WithHeader(http.Header{"User-Agent": []string{UserAgent}}),
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// HandleError reports invalid credentials and discards the saved token that
// was used, then returns err unchanged.
func (s *Session) HandleError(cmd *cobra.Command, err error) error {
	return HandleHTTPError(cmd, s.creds, s.credsURI, err)
}
