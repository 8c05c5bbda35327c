// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package mlreg

import (
	"path/filepath"
	"testing"

	"github.com/churnops/mlreg/pkg/conf"
	conffs "github.com/churnops/mlreg/pkg/conf/fs"
	"github.com/stretchr/testify/require"
)

func TestConfigShowCmd(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, conffs.NewStore(dir, conffs.GlobalSource, "").Save(&conf.Config{
		Workspace: &conf.Workspace{URL: "https://dbc-1.cloud.databricks.com"},
	}))
	writeLocalConfig(t, dir, &conf.Config{Model: &conf.Model{Name: "hhar_churn"}})

	cmd := RootCmd()
	cmd.SetArgs([]string{"config", "show"})
	assertCmdOutput(t, cmd, "workspace:\n  url: https://dbc-1.cloud.databricks.com\nmodel:\n  name: hhar_churn\n")

	cmd = RootCmd()
	cmd.SetArgs([]string{"config", "show", "--local"})
	assertCmdOutput(t, cmd, "model:\n  name: hhar_churn\n")

	cmd = RootCmd()
	cmd.SetArgs([]string{"config", "path", "--local"})
	assertCmdOutput(t, cmd, filepath.Join(dir, ".mlreg.yaml")+"\n")

	cmd = RootCmd()
	cmd.SetArgs([]string{"config", "show", "--local", "--global"})
	assertCmdFailed(t, cmd, "", "only one of")
}

func TestVersionCmd(t *testing.T) {
	cmd := RootCmd()
	cmd.SetArgs([]string{"version"})
	assertCmdOutput(t, cmd, "mlreg v0.1.0\n")
}
