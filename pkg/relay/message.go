// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package relay

import (
	"fmt"
	"strings"

	"github.com/churnops/mlreg/pkg/api/payload"
)

type slackMessage struct {
	Text string `json:"text"`
}

func formatEvent(e *payload.Event) string {
	var sb strings.Builder
	switch e.Event {
	case payload.EventRegisteredModelCreated:
		fmt.Fprintf(&sb, "Registered model *%s* was created", e.ModelName)
	case payload.EventModelVersionCreated:
		fmt.Fprintf(&sb, "Version %s of *%s* was created", e.Version, e.ModelName)
	case payload.EventTransitionRequestCreated:
		fmt.Fprintf(&sb, "Transition of *%s* version %s to %s was requested", e.ModelName, e.Version, e.ToStage)
	case payload.EventModelVersionTransitionedStage:
		if e.FromStage != "" {
			fmt.Fprintf(&sb, "*%s* version %s moved from %s to %s", e.ModelName, e.Version, e.FromStage, e.ToStage)
		} else {
			fmt.Fprintf(&sb, "*%s* version %s moved to %s", e.ModelName, e.Version, e.ToStage)
		}
	default:
		fmt.Fprintf(&sb, "%s on *%s*", e.Event, e.ModelName)
	}
	if e.Text != "" {
		sb.WriteString("\n> ")
		sb.WriteString(e.Text)
	}
	return sb.String()
}
