// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package payload

type RunInfo struct {
	RunID        string `json:"run_id"`
	ExperimentID string `json:"experiment_id,omitempty"`
	Status       string `json:"status,omitempty"`
	ArtifactURI  string `json:"artifact_uri,omitempty"`
}

type Metric struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

type RunTag struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type RunData struct {
	Metrics []Metric `json:"metrics,omitempty"`
	Tags    []RunTag `json:"tags,omitempty"`
}

type Run struct {
	Info RunInfo `json:"info"`
	Data RunData `json:"data"`
}

// Metric returns the value of metric key and whether the run logged it
func (r *Run) Metric(key string) (float64, bool) {
	for _, m := range r.Data.Metrics {
		if m.Key == key {
			return m.Value, true
		}
	}
	return 0, false
}

type SetRunTagRequest struct {
	RunID string `json:"run_id" validate:"required"`
	Key   string `json:"key" validate:"required"`
	Value string `json:"value"`
}

type SearchRunsRequest struct {
	ExperimentIDs []string `json:"experiment_ids" validate:"required,min=1"`
	Filter        string   `json:"filter,omitempty"`
	OrderBy       []string `json:"order_by,omitempty"`
	MaxResults    int      `json:"max_results,omitempty"`
	PageToken     string   `json:"page_token,omitempty"`
}

type SearchRunsResponse struct {
	Runs          []Run  `json:"runs"`
	NextPageToken string `json:"next_page_token,omitempty"`
}
