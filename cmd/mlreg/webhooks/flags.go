// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package webhooks

import (
	"encoding/json"
	"strings"

	"github.com/churnops/mlreg/pkg/api/payload"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func addEventFlag(flags *pflag.FlagSet, usage string) {
	flags.StringSliceP("event", "e", nil, usage+". Valid events: "+strings.Join(eventNames(), ", "))
}

func eventNames() []string {
	sl := make([]string, len(payload.AllEvents))
	for i, e := range payload.AllEvents {
		sl[i] = string(e)
	}
	return sl
}

func getEvents(cmd *cobra.Command) ([]payload.EventKind, error) {
	sl, err := cmd.Flags().GetStringSlice("event")
	if err != nil {
		return nil, err
	}
	return payload.ParseEventKinds(sl)
}

func addTargetFlags(flags *pflag.FlagSet) {
	flags.String("job-id", "", "id of the job triggered by the webhook")
	flags.String("job-workspace-url", "", "workspace of the job. Defaults to the registry workspace")
	flags.String("job-token", "", "access token the registry uses to trigger the job. Defaults to the token of this command")
	flags.String("url", "", `url receiving the event payload. "slack" means slack.webhookURL from config`)
	flags.String("secret", "", "shared secret used to sign payloads sent to --url")
	flags.String("authorization", "", "value of the Authorization header sent to --url")
	flags.Bool("enable-ssl-verification", true, "verify the SSL certificate of --url")
}

type targetFlags struct {
	JobID, JobWorkspaceURL, JobToken string
	URL, Secret, Authorization       string
	SSLVerification                  *bool
}

func getTargetFlags(cmd *cobra.Command) (*targetFlags, error) {
	f := &targetFlags{}
	for name, ptr := range map[string]*string{
		"job-id":            &f.JobID,
		"job-workspace-url": &f.JobWorkspaceURL,
		"job-token":         &f.JobToken,
		"url":               &f.URL,
		"secret":            &f.Secret,
		"authorization":     &f.Authorization,
	} {
		v, err := cmd.Flags().GetString(name)
		if err != nil {
			return nil, err
		}
		*ptr = v
	}
	if cmd.Flags().Changed("enable-ssl-verification") {
		v, err := cmd.Flags().GetBool("enable-ssl-verification")
		if err != nil {
			return nil, err
		}
		f.SSLVerification = &v
	}
	return f, nil
}

func printJSON(cmd *cobra.Command, obj interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(obj)
}
