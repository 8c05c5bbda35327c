// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package utils

import (
	"context"
	"net/http"
	"net/url"

	apiclient "github.com/churnops/mlreg/pkg/api/client"
	"github.com/churnops/mlreg/pkg/credentials"
	"github.com/spf13/cobra"
)

type httpClientKey struct{}

func SetClient(ctx context.Context, client *http.Client) context.Context {
	return context.WithValue(ctx, httpClientKey{}, client)
}

// GetClient returns the http client stored in ctx or a fresh one
func GetClient(ctx context.Context) *http.Client {
	if ctx != nil {
		if i := ctx.Value(httpClientKey{}); i != nil {
			return i.(*http.Client)
		}
	}
	return &http.Client{}
}

func discardCredentials(cmd *cobra.Command, cs *credentials.Store, uri *url.URL) error {
	cmd.Printf("Discarding credentials for %s\n", uri.String())
	cs.Delete(*uri)
	return cs.Flush()
}

func HandleHTTPError(cmd *cobra.Command, cs *credentials.Store, uri *url.URL, err error) error {
	if v := apiclient.UnwrapRemoteError(err); v != nil && (v.Code == http.StatusForbidden || v.Code == http.StatusUnauthorized) {
		cmd.Println("Credentials are invalid")
		if cs != nil && uri != nil {
			if err := discardCredentials(cmd, cs, uri); err != nil {
				return err
			}
		}
	}
	return err
}
