// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package promote

import (
	"context"
	"fmt"
	"sort"
	"time"

	apiclient "github.com/churnops/mlreg/pkg/api/client"
	"github.com/churnops/mlreg/pkg/api/payload"
	"github.com/go-logr/logr"
)

// Registry is the subset of *apiclient.Client a promotion needs
type Registry interface {
	SearchRuns(ctx context.Context, req *payload.SearchRunsRequest) (*payload.SearchRunsResponse, error)
	SetRunTag(ctx context.Context, req *payload.SetRunTagRequest) error
	CreateRegisteredModel(ctx context.Context, req *payload.CreateRegisteredModelRequest) (*payload.RegisteredModel, error)
	UpdateRegisteredModel(ctx context.Context, req *payload.UpdateRegisteredModelRequest) (*payload.RegisteredModel, error)
	CreateModelVersion(ctx context.Context, req *payload.CreateModelVersionRequest) (*payload.ModelVersion, error)
	GetModelVersion(ctx context.Context, name, version string) (*payload.ModelVersion, error)
	UpdateModelVersion(ctx context.Context, req *payload.UpdateModelVersionRequest) (*payload.ModelVersion, error)
	CreateTransitionRequest(ctx context.Context, req *payload.CreateTransitionRequest) (*payload.TransitionRequest, error)
	CreateComment(ctx context.Context, req *payload.CreateCommentRequest) (*payload.Comment, error)
}

type Result struct {
	RunID string
	// MetricValue is the plan metric of the selected run, when the run has it
	MetricValue  *float64
	ModelVersion *payload.ModelVersion
	Request      *payload.TransitionRequest
	Comment      *payload.Comment
}

type Promoter struct {
	client Registry
	logger logr.Logger
}

func NewPromoter(client Registry, logger logr.Logger) *Promoter {
	if logger.GetSink() == nil {
		logger = logr.Discard()
	}
	return &Promoter{
		client: client,
		logger: logger.WithName("Promoter"),
	}
}

// Run executes plan step by step and stops at the first failing step.
// Result holds whatever was done before the failure.
func (p *Promoter) Run(ctx context.Context, plan *Plan) (*Result, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	res := &Result{}
	for _, step := range []struct {
		name string
		fn   func(context.Context, *Plan, *Result) error
	}{
		{"select run", p.selectRun},
		{"tag run", p.tagRun},
		{"ensure registered model", p.ensureModel},
		{"create model version", p.createVersion},
		{"wait for model version", p.waitReady},
		{"update descriptions", p.updateDescriptions},
		{"request transition", p.requestTransition},
		{"comment", p.comment},
	} {
		p.logger.V(1).Info("step", "name", step.name, "model", plan.ModelName)
		if err := step.fn(ctx, plan, res); err != nil {
			return res, fmt.Errorf("%s: %w", step.name, err)
		}
	}
	p.logger.Info("promoted",
		"model", plan.ModelName,
		"version", res.ModelVersion.Version,
		"run", res.RunID,
		"stage", plan.Stage,
	)
	return res, nil
}

func (p *Promoter) selectRun(ctx context.Context, plan *Plan, res *Result) error {
	if plan.RunID != "" {
		res.RunID = plan.RunID
		return nil
	}
	sr, err := p.client.SearchRuns(ctx, &payload.SearchRunsRequest{
		ExperimentIDs: plan.ExperimentIDs,
		Filter:        plan.Filter,
		OrderBy:       []string{fmt.Sprintf("metrics.%s DESC", plan.Metric)},
		MaxResults:    1,
	})
	if err != nil {
		return err
	}
	if len(sr.Runs) == 0 {
		return fmt.Errorf("no run found in experiments %v", plan.ExperimentIDs)
	}
	run := sr.Runs[0]
	res.RunID = run.Info.RunID
	if v, ok := run.Metric(plan.Metric); ok {
		res.MetricValue = &v
	}
	p.logger.Info("selected run", "run", res.RunID, "metric", plan.Metric, "value", res.MetricValue)
	return nil
}

func (p *Promoter) tagRun(ctx context.Context, plan *Plan, res *Result) error {
	keys := make([]string, 0, len(plan.Tags))
	for k := range plan.Tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := p.client.SetRunTag(ctx, &payload.SetRunTagRequest{
			RunID: res.RunID,
			Key:   k,
			Value: plan.Tags[k],
		}); err != nil {
			return err
		}
	}
	return nil
}

func (p *Promoter) ensureModel(ctx context.Context, plan *Plan, res *Result) error {
	_, err := p.client.CreateRegisteredModel(ctx, &payload.CreateRegisteredModelRequest{Name: plan.ModelName})
	if err == nil {
		p.logger.Info("created registered model", "model", plan.ModelName)
		return nil
	}
	if rerr := apiclient.UnwrapRemoteError(err); rerr != nil && rerr.ErrorCode == payload.ErrorCodeResourceAlreadyExists {
		return nil
	}
	return err
}

func (p *Promoter) createVersion(ctx context.Context, plan *Plan, res *Result) error {
	mv, err := p.client.CreateModelVersion(ctx, &payload.CreateModelVersionRequest{
		Name:   plan.ModelName,
		Source: fmt.Sprintf("runs:/%s/%s", res.RunID, plan.artifactPath()),
		RunID:  res.RunID,
	})
	if err != nil {
		return err
	}
	if mv == nil || mv.Version == "" {
		return fmt.Errorf("registry returned no model version")
	}
	res.ModelVersion = mv
	return nil
}

func (p *Promoter) waitReady(ctx context.Context, plan *Plan, res *Result) error {
	ctx, cancel := context.WithTimeout(ctx, plan.readyTimeout())
	defer cancel()
	ticker := time.NewTicker(plan.pollInterval())
	defer ticker.Stop()
	mv := res.ModelVersion
	for {
		switch mv.Status {
		case payload.ModelVersionReady:
			res.ModelVersion = mv
			return nil
		case payload.ModelVersionFailedRegistration:
			return fmt.Errorf("registration of %s version %s failed: %s", mv.Name, mv.Version, mv.StatusMessage)
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("version %s is still %s: %w", mv.Version, mv.Status, ctx.Err())
		case <-ticker.C:
		}
		next, err := p.client.GetModelVersion(ctx, plan.ModelName, res.ModelVersion.Version)
		if err != nil {
			return err
		}
		if next != nil {
			mv = next
		}
	}
}

func (p *Promoter) updateDescriptions(ctx context.Context, plan *Plan, res *Result) error {
	if plan.ModelDescription != "" {
		if _, err := p.client.UpdateRegisteredModel(ctx, &payload.UpdateRegisteredModelRequest{
			Name:        plan.ModelName,
			Description: plan.ModelDescription,
		}); err != nil {
			return err
		}
	}
	if plan.VersionDescription != "" {
		mv, err := p.client.UpdateModelVersion(ctx, &payload.UpdateModelVersionRequest{
			Name:        plan.ModelName,
			Version:     res.ModelVersion.Version,
			Description: plan.VersionDescription,
		})
		if err != nil {
			return err
		}
		if mv != nil {
			res.ModelVersion.Description = mv.Description
		}
	}
	return nil
}

func (p *Promoter) requestTransition(ctx context.Context, plan *Plan, res *Result) error {
	tr, err := p.client.CreateTransitionRequest(ctx, &payload.CreateTransitionRequest{
		Name:                    plan.ModelName,
		Version:                 res.ModelVersion.Version,
		Stage:                   plan.Stage,
		ArchiveExistingVersions: plan.ArchiveExisting,
	})
	if err != nil {
		return err
	}
	res.Request = tr
	return nil
}

func (p *Promoter) comment(ctx context.Context, plan *Plan, res *Result) error {
	if plan.Comment == "" {
		return nil
	}
	c, err := p.client.CreateComment(ctx, &payload.CreateCommentRequest{
		Name:    plan.ModelName,
		Version: res.ModelVersion.Version,
		Comment: plan.Comment,
	})
	if err != nil {
		return err
	}
	res.Comment = c
	return nil
}
