// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package promote

import (
	"fmt"
	"strings"
	"time"

	"github.com/churnops/mlreg/pkg/api/payload"
	"github.com/churnops/mlreg/pkg/conf"
)

// Plan describes one promotion: which run to register under which model and
// which stage to request for the new version.
type Plan struct {
	ModelName string

	// RunID skips best-run selection when set
	RunID string

	ExperimentIDs []string
	Metric        string
	// Filter is an optional runs/search filter, e.g. "attributes.status = 'FINISHED'"
	Filter string

	ArtifactPath string

	// Tags are set on the run before registration
	Tags map[string]string

	ModelDescription   string
	VersionDescription string

	Stage           payload.Stage
	ArchiveExisting bool
	Comment         string

	PollInterval time.Duration
	ReadyTimeout time.Duration
}

// PlanFromConfig builds a plan from the promote section of c
func PlanFromConfig(c *conf.Config) *Plan {
	p := c.Promote
	plan := &Plan{
		ModelName:    c.ModelName(),
		ArtifactPath: p.GetArtifactPath(),
		Stage:        payload.StageStaging,
		PollInterval: p.GetPollInterval(),
		ReadyTimeout: p.GetReadyTimeout(),
	}
	if p == nil {
		return plan
	}
	plan.ExperimentIDs = append(plan.ExperimentIDs, p.ExperimentIDs...)
	plan.Metric = p.Metric
	if len(p.Tags) > 0 {
		plan.Tags = make(map[string]string, len(p.Tags))
		for k, v := range p.Tags {
			plan.Tags[k] = v
		}
	}
	plan.ModelDescription = p.ModelDescription
	plan.VersionDescription = p.VersionDescription
	plan.Comment = p.Comment
	if p.Stage != "" {
		plan.Stage = p.Stage
	}
	if p.ArchiveExisting != nil {
		plan.ArchiveExisting = *p.ArchiveExisting
	}
	return plan
}

func (p *Plan) Validate() error {
	var problems []string
	if p.ModelName == "" {
		problems = append(problems, "model name is required")
	}
	if p.RunID == "" {
		if len(p.ExperimentIDs) == 0 {
			problems = append(problems, "either run id or experiment ids must be set")
		}
		if p.Metric == "" {
			problems = append(problems, "metric is required to select the best run")
		}
	}
	switch p.Stage {
	case payload.StageStaging, payload.StageProduction, payload.StageArchived, payload.StageNone:
	default:
		problems = append(problems, fmt.Sprintf("invalid stage %q", p.Stage))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid promotion plan: %s", strings.Join(problems, "; "))
	}
	return nil
}

func (p *Plan) artifactPath() string {
	if p.ArtifactPath != "" {
		return strings.Trim(p.ArtifactPath, "/")
	}
	return conf.DefaultArtifactPath
}

func (p *Plan) pollInterval() time.Duration {
	if p.PollInterval > 0 {
		return p.PollInterval
	}
	return time.Duration(conf.DefaultPollInterval)
}

func (p *Plan) readyTimeout() time.Duration {
	if p.ReadyTimeout > 0 {
		return p.ReadyTimeout
	}
	return time.Duration(conf.DefaultReadyTimeout)
}
