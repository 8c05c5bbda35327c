// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package api

const (
	// CTJSON is content type for Json payload
	CTJSON = "application/json"

	// PathPrefix is prepended to every registry endpoint
	PathPrefix = "/api/2.0/mlflow/"

	// HeaderSignature carries the hex encoded HMAC-SHA256 digest of a webhook
	// delivery body when the webhook was registered with a secret
	HeaderSignature = "X-Databricks-Signature"

	PathCreateWebhook = "registry-webhooks/create"
	PathListWebhooks  = "registry-webhooks/list"
	PathUpdateWebhook = "registry-webhooks/update"
	PathDeleteWebhook = "registry-webhooks/delete"
	PathTestWebhook   = "registry-webhooks/test"

	PathCreateTransitionRequest  = "transition-requests/create"
	PathListTransitionRequests   = "transition-requests/list"
	PathApproveTransitionRequest = "transition-requests/approve"
	PathRejectTransitionRequest  = "transition-requests/reject"

	PathCreateComment = "comments/create"

	PathCreateRegisteredModel = "registered-models/create"
	PathUpdateRegisteredModel = "registered-models/update"

	PathCreateModelVersion = "model-versions/create"
	PathGetModelVersion    = "model-versions/get"
	PathUpdateModelVersion = "model-versions/update"

	PathSetRunTag  = "runs/set-tag"
	PathSearchRuns = "runs/search"
)
