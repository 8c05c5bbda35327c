// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package apiclient

import (
	"context"
	"net/http"
	"testing"

	"github.com/churnops/mlreg/pkg/api/payload"
	"github.com/churnops/mlreg/pkg/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTransitionRequest(t *testing.T) {
	m := testutils.NewMockRegistry(t)
	m.HandleJSON(http.MethodPost, "transition-requests/create", http.StatusOK, map[string]interface{}{
		"request": map[string]interface{}{"to_stage": "Staging", "comment": "please"},
	})
	c := newTestClient(t, m, "tok")

	tr, err := c.CreateTransitionRequest(context.Background(), &payload.CreateTransitionRequest{
		Name:                    "hhar_churn",
		Version:                 "3",
		Stage:                   payload.StageStaging,
		Comment:                 "please",
		ArchiveExistingVersions: true,
	})
	require.NoError(t, err)
	assert.Equal(t, payload.StageStaging, tr.ToStage)
	assert.JSONEq(t, `{"name":"hhar_churn","version":"3","stage":"Staging","comment":"please","archive_existing_versions":true}`,
		string(m.LastRequest(t).Body))

	_, err = c.CreateTransitionRequest(context.Background(), &payload.CreateTransitionRequest{
		Name: "hhar_churn", Version: "3", Stage: "Limbo",
	})
	assert.Error(t, err)
	assert.Len(t, m.Requests(), 1)
}

func TestReviewTransitionRequest(t *testing.T) {
	m := testutils.NewMockRegistry(t)
	m.HandleJSON(http.MethodPost, "transition-requests/approve", http.StatusOK, map[string]interface{}{
		"activity": map[string]interface{}{"activity_type": "APPROVED_REQUEST", "to_stage": "Staging"},
	})
	m.HandleJSON(http.MethodPost, "transition-requests/reject", http.StatusOK, map[string]interface{}{
		"activity": map[string]interface{}{"activity_type": "REJECTED_REQUEST", "to_stage": "Staging"},
	})
	m.HandleJSON(http.MethodGet, "transition-requests/list", http.StatusOK, map[string]interface{}{
		"requests": []map[string]interface{}{{"id": "1", "to_stage": "Staging"}},
	})
	c := newTestClient(t, m, "tok")
	ctx := context.Background()

	sl, err := c.ListTransitionRequests(ctx, "m", "1")
	require.NoError(t, err)
	require.Len(t, sl, 1)
	assert.Equal(t, payload.StageStaging, sl[0].ToStage)
	assert.Equal(t, "m", m.LastRequest(t).Query.Get("name"))
	assert.Equal(t, "1", m.LastRequest(t).Query.Get("version"))

	a, err := c.ApproveTransitionRequest(ctx, &payload.ReviewTransitionRequest{Name: "m", Version: "1", Stage: payload.StageStaging})
	require.NoError(t, err)
	assert.Equal(t, "APPROVED_REQUEST", a.ActivityType)
	assert.JSONEq(t, `{"name":"m","version":"1","stage":"Staging","archive_existing_versions":false}`, string(m.LastRequest(t).Body))

	archive := true
	a, err = c.RejectTransitionRequest(ctx, &payload.ReviewTransitionRequest{
		Name: "m", Version: "1", Stage: payload.StageStaging, Comment: "tests failed", ArchiveExistingVersions: &archive,
	})
	require.NoError(t, err)
	assert.Equal(t, "REJECTED_REQUEST", a.ActivityType)
	assert.JSONEq(t, `{"name":"m","version":"1","stage":"Staging","comment":"tests failed"}`, string(m.LastRequest(t).Body))
}

func TestCreateComment(t *testing.T) {
	m := testutils.NewMockRegistry(t)
	m.HandleJSON(http.MethodPost, "comments/create", http.StatusOK, map[string]interface{}{
		"comment": map[string]interface{}{"id": "c1", "comment": "baseline"},
	})
	c := newTestClient(t, m, "tok")

	cm, err := c.CreateComment(context.Background(), &payload.CreateCommentRequest{Name: "m", Version: "2", Comment: "baseline"})
	require.NoError(t, err)
	assert.Equal(t, "c1", cm.ID)
	assert.JSONEq(t, `{"name":"m","version":"2","comment":"baseline"}`, string(m.LastRequest(t).Body))

	_, err = c.CreateComment(context.Background(), &payload.CreateCommentRequest{Name: "m", Version: "2"})
	assert.Error(t, err)
}

func TestModelVersionEndpoints(t *testing.T) {
	m := testutils.NewMockRegistry(t)
	m.HandleJSON(http.MethodPost, "model-versions/create", http.StatusOK, map[string]interface{}{
		"model_version": map[string]interface{}{"name": "m", "version": "4", "status": "PENDING_REGISTRATION"},
	})
	m.HandleJSON(http.MethodGet, "model-versions/get", http.StatusOK, map[string]interface{}{
		"model_version": map[string]interface{}{"name": "m", "version": "4", "status": "READY"},
	})
	m.HandleJSON(http.MethodPost, "runs/search", http.StatusOK, map[string]interface{}{
		"runs": []map[string]interface{}{{
			"info": map[string]string{"run_id": "r1"},
			"data": map[string]interface{}{"metrics": []map[string]interface{}{{"key": "f1", "value": 0.8}}},
		}},
	})
	m.HandleJSON(http.MethodPost, "runs/set-tag", http.StatusOK, map[string]interface{}{})
	c := newTestClient(t, m, "tok")
	ctx := context.Background()

	mv, err := c.CreateModelVersion(ctx, &payload.CreateModelVersionRequest{Name: "m", Source: "runs:/r1/model", RunID: "r1"})
	require.NoError(t, err)
	assert.Equal(t, "4", mv.Version)

	mv, err = c.GetModelVersion(ctx, "m", "4")
	require.NoError(t, err)
	assert.Equal(t, payload.ModelVersionReady, mv.Status)

	sr, err := c.SearchRuns(ctx, &payload.SearchRunsRequest{ExperimentIDs: []string{"7"}, OrderBy: []string{"metrics.f1 DESC"}, MaxResults: 1})
	require.NoError(t, err)
	require.Len(t, sr.Runs, 1)
	v, ok := sr.Runs[0].Metric("f1")
	assert.True(t, ok)
	assert.Equal(t, 0.8, v)
	_, ok = sr.Runs[0].Metric("auc")
	assert.False(t, ok)

	require.NoError(t, c.SetRunTag(ctx, &payload.SetRunTagRequest{RunID: "r1", Key: "db_table", Value: "ibm_telco_churn.churn_features"}))
	assert.JSONEq(t, `{"run_id":"r1","key":"db_table","value":"ibm_telco_churn.churn_features"}`, string(m.LastRequest(t).Body))

	_, err = c.SearchRuns(ctx, &payload.SearchRunsRequest{})
	assert.Error(t, err)
}
