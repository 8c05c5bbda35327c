// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package promote

import (
	"context"
	"net/http"
	"testing"
	"time"

	apiclient "github.com/churnops/mlreg/pkg/api/client"
	"github.com/churnops/mlreg/pkg/api/payload"
	"github.com/churnops/mlreg/pkg/conf"
	"github.com/churnops/mlreg/pkg/testutils"
	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPromoter(t *testing.T, m *testutils.MockRegistry) *Promoter {
	t.Helper()
	c, err := apiclient.NewClient(m.URL, testutils.RandomToken(), logr.Discard())
	require.NoError(t, err)
	return NewPromoter(c, logr.Discard())
}

func versionBody(status payload.ModelVersionStatus) map[string]interface{} {
	return map[string]interface{}{
		"model_version": map[string]interface{}{"name": "hhar_churn", "version": "5", "status": status},
	}
}

func handleHappyPath(m *testutils.MockRegistry) {
	m.HandleJSON(http.MethodPost, "runs/search", http.StatusOK, map[string]interface{}{
		"runs": []map[string]interface{}{{
			"info": map[string]string{"run_id": "best"},
			"data": map[string]interface{}{"metrics": []map[string]interface{}{{"key": "val_f1_score", "value": 0.91}}},
		}},
	})
	m.HandleJSON(http.MethodPost, "runs/set-tag", http.StatusOK, map[string]interface{}{})
	m.HandleJSON(http.MethodPost, "registered-models/create", http.StatusBadRequest, map[string]string{
		"error_code": payload.ErrorCodeResourceAlreadyExists,
		"message":    "Registered Model (name=hhar_churn) already exists.",
	})
	m.HandleJSON(http.MethodPost, "model-versions/create", http.StatusOK, versionBody(payload.ModelVersionPendingRegistration))
	m.HandleSequence(http.MethodGet, "model-versions/get",
		versionBody(payload.ModelVersionPendingRegistration),
		versionBody(payload.ModelVersionReady),
	)
	m.HandleJSON(http.MethodPatch, "registered-models/update", http.StatusOK, map[string]interface{}{
		"registered_model": map[string]string{"name": "hhar_churn"},
	})
	m.HandleJSON(http.MethodPatch, "model-versions/update", http.StatusOK, versionBody(payload.ModelVersionReady))
	m.HandleJSON(http.MethodPost, "transition-requests/create", http.StatusOK, map[string]interface{}{
		"request": map[string]string{"to_stage": "Staging"},
	})
	m.HandleJSON(http.MethodPost, "comments/create", http.StatusOK, map[string]interface{}{
		"comment": map[string]string{"id": "c1", "comment": "new baseline"},
	})
}

func fullPlan() *Plan {
	return &Plan{
		ModelName:     "hhar_churn",
		ExperimentIDs: []string{"1234"},
		Metric:        "val_f1_score",
		Tags: map[string]string{
			"demographic_vars": "SeniorCitizen,gender_Female",
			"db_table":         "ibm_telco_churn.churn_features",
		},
		ModelDescription:   "Predicts customer churn",
		VersionDescription: "Monthly retrain",
		Stage:              payload.StageStaging,
		ArchiveExisting:    true,
		Comment:            "new baseline",
		PollInterval:       time.Millisecond,
		ReadyTimeout:       time.Second,
	}
}

func TestPromoterRun(t *testing.T) {
	m := testutils.NewMockRegistry(t)
	handleHappyPath(m)
	p := newPromoter(t, m)

	res, err := p.Run(context.Background(), fullPlan())
	require.NoError(t, err)
	assert.Equal(t, "best", res.RunID)
	require.NotNil(t, res.MetricValue)
	assert.Equal(t, 0.91, *res.MetricValue)
	assert.Equal(t, "5", res.ModelVersion.Version)
	assert.Equal(t, payload.ModelVersionReady, res.ModelVersion.Status)
	assert.Equal(t, payload.StageStaging, res.Request.ToStage)
	assert.Equal(t, "c1", res.Comment.ID)

	assert.Equal(t, []string{
		"POST runs/search",
		"POST runs/set-tag",
		"POST runs/set-tag",
		"POST registered-models/create",
		"POST model-versions/create",
		"GET model-versions/get",
		"GET model-versions/get",
		"PATCH registered-models/update",
		"PATCH model-versions/update",
		"POST transition-requests/create",
		"POST comments/create",
	}, m.Endpoints())

	reqs := m.Requests()
	assert.JSONEq(t, `{"experiment_ids":["1234"],"order_by":["metrics.val_f1_score DESC"],"max_results":1}`, string(reqs[0].Body))
	assert.JSONEq(t, `{"run_id":"best","key":"db_table","value":"ibm_telco_churn.churn_features"}`, string(reqs[1].Body))
	assert.JSONEq(t, `{"run_id":"best","key":"demographic_vars","value":"SeniorCitizen,gender_Female"}`, string(reqs[2].Body))
	assert.JSONEq(t, `{"name":"hhar_churn","source":"runs:/best/model","run_id":"best"}`, string(reqs[4].Body))
	assert.Equal(t, "5", reqs[5].Query.Get("version"))
	assert.JSONEq(t, `{"name":"hhar_churn","version":"5","stage":"Staging","archive_existing_versions":true}`, string(reqs[9].Body))
}

func TestPromoterRunWithRunID(t *testing.T) {
	m := testutils.NewMockRegistry(t)
	handleHappyPath(m)
	m.HandleJSON(http.MethodPost, "registered-models/create", http.StatusOK, map[string]interface{}{
		"registered_model": map[string]string{"name": "hhar_churn"},
	})
	m.HandleJSON(http.MethodPost, "model-versions/create", http.StatusOK, versionBody(payload.ModelVersionReady))
	p := newPromoter(t, m)

	res, err := p.Run(context.Background(), &Plan{
		ModelName:    "hhar_churn",
		RunID:        "r42",
		ArtifactPath: "/churn_model/",
		Stage:        payload.StageProduction,
	})
	require.NoError(t, err)
	assert.Equal(t, "r42", res.RunID)
	assert.Nil(t, res.MetricValue)
	assert.Nil(t, res.Comment)
	assert.Equal(t, []string{
		"POST registered-models/create",
		"POST model-versions/create",
		"POST transition-requests/create",
	}, m.Endpoints())
	assert.JSONEq(t, `{"name":"hhar_churn","source":"runs:/r42/churn_model","run_id":"r42"}`, string(m.Requests()[1].Body))
}

func TestPromoterStopsAtFirstFailure(t *testing.T) {
	m := testutils.NewMockRegistry(t)
	handleHappyPath(m)
	m.HandleJSON(http.MethodPost, "registered-models/create", http.StatusForbidden, map[string]string{
		"error_code": "PERMISSION_DENIED",
		"message":    "no access",
	})
	p := newPromoter(t, m)

	res, err := p.Run(context.Background(), fullPlan())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ensure registered model")
	rerr := apiclient.UnwrapRemoteError(err)
	require.NotNil(t, rerr)
	assert.Equal(t, http.StatusForbidden, rerr.Code)
	assert.Equal(t, "best", res.RunID)
	assert.Nil(t, res.ModelVersion)
	assert.Equal(t, []string{
		"POST runs/search",
		"POST runs/set-tag",
		"POST runs/set-tag",
		"POST registered-models/create",
	}, m.Endpoints())
}

func TestPromoterFailedRegistration(t *testing.T) {
	m := testutils.NewMockRegistry(t)
	handleHappyPath(m)
	m.HandleSequence(http.MethodGet, "model-versions/get", versionBody(payload.ModelVersionFailedRegistration))
	p := newPromoter(t, m)

	_, err := p.Run(context.Background(), fullPlan())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wait for model version")
	assert.NotContains(t, m.Endpoints(), "POST transition-requests/create")
}

func TestPromoterReadyTimeout(t *testing.T) {
	m := testutils.NewMockRegistry(t)
	handleHappyPath(m)
	m.HandleSequence(http.MethodGet, "model-versions/get", versionBody(payload.ModelVersionPendingRegistration))
	p := newPromoter(t, m)

	plan := fullPlan()
	plan.PollInterval = 5 * time.Millisecond
	plan.ReadyTimeout = 50 * time.Millisecond
	_, err := p.Run(context.Background(), plan)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPromoterNoRuns(t *testing.T) {
	m := testutils.NewMockRegistry(t)
	m.HandleJSON(http.MethodPost, "runs/search", http.StatusOK, map[string]interface{}{})
	p := newPromoter(t, m)

	_, err := p.Run(context.Background(), fullPlan())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no run found")
	assert.Len(t, m.Requests(), 1)
}

func TestPlanValidate(t *testing.T) {
	assert.NoError(t, (&Plan{ModelName: "m", RunID: "r", Stage: payload.StageStaging}).Validate())
	assert.NoError(t, (&Plan{ModelName: "m", ExperimentIDs: []string{"1"}, Metric: "auc", Stage: payload.StageNone}).Validate())
	assert.Error(t, (&Plan{RunID: "r", Stage: payload.StageStaging}).Validate())
	assert.Error(t, (&Plan{ModelName: "m", Stage: payload.StageStaging}).Validate())
	assert.Error(t, (&Plan{ModelName: "m", ExperimentIDs: []string{"1"}, Stage: payload.StageStaging}).Validate())
	assert.Error(t, (&Plan{ModelName: "m", RunID: "r", Stage: "Limbo"}).Validate())
}

func TestPlanFromConfig(t *testing.T) {
	plan := PlanFromConfig(&conf.Config{Model: &conf.Model{Name: "hhar_churn"}})
	assert.Equal(t, &Plan{
		ModelName:    "hhar_churn",
		ArtifactPath: "model",
		Stage:        payload.StageStaging,
		PollInterval: 5 * time.Second,
		ReadyTimeout: 10 * time.Minute,
	}, plan)

	yes := true
	plan = PlanFromConfig(&conf.Config{
		Model: &conf.Model{Name: "hhar_churn"},
		Promote: &conf.Promote{
			ExperimentIDs:   []string{"1234"},
			Metric:          "val_f1_score",
			Stage:           payload.StageProduction,
			ArchiveExisting: &yes,
			Tags:            map[string]string{"db_table": "churn_features"},
			Comment:         "monthly",
			PollInterval:    conf.Duration(time.Second),
		},
	})
	assert.Equal(t, []string{"1234"}, plan.ExperimentIDs)
	assert.Equal(t, "val_f1_score", plan.Metric)
	assert.Equal(t, payload.StageProduction, plan.Stage)
	assert.True(t, plan.ArchiveExisting)
	assert.Equal(t, map[string]string{"db_table": "churn_features"}, plan.Tags)
	assert.Equal(t, "monthly", plan.Comment)
	assert.Equal(t, time.Second, plan.PollInterval)
}
