// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package conf

import (
	"time"

	"github.com/churnops/mlreg/pkg/api/payload"
)

const (
	DefaultClientTimeout = Duration(30 * time.Second)
	DefaultPollInterval  = Duration(5 * time.Second)
	DefaultReadyTimeout  = Duration(10 * time.Minute)
	DefaultArtifactPath  = "model"
	DefaultRelayPort     = 8080
)

type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(data []byte) error {
	o, err := time.ParseDuration(string(data))
	if err != nil {
		return err
	}
	*d = Duration(o)
	return nil
}

type Workspace struct {
	// URL is the scheme + host of the workspace hosting the model registry,
	// e.g. "https://my-workspace.cloud.databricks.com"
	URL string `yaml:"url,omitempty" json:"url,omitempty"`
}

type Model struct {
	// Name is the registered model most commands operate on when no model is
	// given explicitly.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
}

type Slack struct {
	// WebhookURL is a Slack incoming webhook. Declared webhooks and relay routes
	// can refer to it with the url "slack".
	WebhookURL string `yaml:"webhookURL,omitempty" json:"webhookURL,omitempty"`

	// Secret is attached to webhooks targeting WebhookURL and checked by the relay
	Secret string `yaml:"secret,omitempty" json:"secret,omitempty"`
}

type Client struct {
	// Timeout bounds every registry request, including reading the response.
	// Defaults to 30s.
	Timeout Duration `yaml:"timeout,omitempty" json:"timeout,omitempty"`
}

type Promote struct {
	// ExperimentIDs are searched for the best run when no run id is given
	ExperimentIDs []string `yaml:"experimentIDs,omitempty" json:"experimentIDs,omitempty"`

	// Metric orders runs, highest first
	Metric string `yaml:"metric,omitempty" json:"metric,omitempty"`

	// ArtifactPath is the model artifact path inside the run. Defaults to "model".
	ArtifactPath string `yaml:"artifactPath,omitempty" json:"artifactPath,omitempty"`

	Stage           payload.Stage `yaml:"stage,omitempty" json:"stage,omitempty"`
	ArchiveExisting *bool         `yaml:"archiveExisting,omitempty" json:"archiveExisting,omitempty"`

	// Tags are set on the run before it is registered
	Tags map[string]string `yaml:"tags,omitempty" json:"tags,omitempty"`

	ModelDescription   string `yaml:"modelDescription,omitempty" json:"modelDescription,omitempty"`
	VersionDescription string `yaml:"versionDescription,omitempty" json:"versionDescription,omitempty"`
	Comment            string `yaml:"comment,omitempty" json:"comment,omitempty"`

	// Schedule is a cron spec ("0 6 1 * *", "@monthly"). When set, `mlreg
	// promote` keeps running and promotes on every tick.
	Schedule string `yaml:"schedule,omitempty" json:"schedule,omitempty"`

	PollInterval Duration `yaml:"pollInterval,omitempty" json:"pollInterval,omitempty"`
	ReadyTimeout Duration `yaml:"readyTimeout,omitempty" json:"readyTimeout,omitempty"`
}

type RelayRoute struct {
	// Model is a glob matched against the event's model name. Empty matches all.
	Model string `yaml:"model,omitempty" json:"model,omitempty"`

	// Events restricts the route to these events. Empty matches all.
	Events []payload.EventKind `yaml:"events,omitempty" json:"events,omitempty"`

	// URL receives the Slack message. "slack" means Slack.WebhookURL.
	URL string `yaml:"url" json:"url"`
}

type Relay struct {
	Port         int          `yaml:"port,omitempty" json:"port,omitempty"`
	ReadTimeout  Duration     `yaml:"readTimeout,omitempty" json:"readTimeout,omitempty"`
	WriteTimeout Duration     `yaml:"writeTimeout,omitempty" json:"writeTimeout,omitempty"`
	Routes       []RelayRoute `yaml:"routes,omitempty" json:"routes,omitempty"`
}

type Config struct {
	Workspace *Workspace `yaml:"workspace,omitempty" json:"workspace,omitempty"`
	Model     *Model     `yaml:"model,omitempty" json:"model,omitempty"`

	// Jobs maps a short name to a job id so declared webhooks can say
	// `job: validation` instead of the raw id.
	Jobs map[string]string `yaml:"jobs,omitempty" json:"jobs,omitempty"`

	Slack *Slack `yaml:"slack,omitempty" json:"slack,omitempty"`

	// Webhooks are created by `mlreg webhooks apply`
	Webhooks []Webhook `yaml:"webhooks,omitempty" json:"webhooks,omitempty"`

	Promote *Promote `yaml:"promote,omitempty" json:"promote,omitempty"`
	Relay   *Relay   `yaml:"relay,omitempty" json:"relay,omitempty"`
	Client  *Client  `yaml:"client,omitempty" json:"client,omitempty"`
}

func (c *Config) WorkspaceURL() string {
	if c.Workspace != nil {
		return c.Workspace.URL
	}
	return ""
}

func (c *Config) ModelName() string {
	if c.Model != nil {
		return c.Model.Name
	}
	return ""
}

func (c *Config) ClientTimeout() time.Duration {
	if c.Client != nil && c.Client.Timeout > 0 {
		return time.Duration(c.Client.Timeout)
	}
	return time.Duration(DefaultClientTimeout)
}

// JobID resolves a job name declared under `jobs`, returning name unchanged
// when it is not declared.
func (c *Config) JobID(name string) string {
	if id, ok := c.Jobs[name]; ok {
		return id
	}
	return name
}

// ResolveURL expands the "slack" shorthand
func (c *Config) ResolveURL(u string) string {
	if u == "slack" && c.Slack != nil {
		return c.Slack.WebhookURL
	}
	return u
}

func (c *Config) RelayPort() int {
	if c.Relay != nil && c.Relay.Port > 0 {
		return c.Relay.Port
	}
	return DefaultRelayPort
}

func (c *Config) RelaySecret() string {
	if c.Slack != nil {
		return c.Slack.Secret
	}
	return ""
}

func (p *Promote) GetArtifactPath() string {
	if p != nil && p.ArtifactPath != "" {
		return p.ArtifactPath
	}
	return DefaultArtifactPath
}

func (p *Promote) GetPollInterval() time.Duration {
	if p != nil && p.PollInterval > 0 {
		return time.Duration(p.PollInterval)
	}
	return time.Duration(DefaultPollInterval)
}

func (p *Promote) GetReadyTimeout() time.Duration {
	if p != nil && p.ReadyTimeout > 0 {
		return time.Duration(p.ReadyTimeout)
	}
	return time.Duration(DefaultReadyTimeout)
}
