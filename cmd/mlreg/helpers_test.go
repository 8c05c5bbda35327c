// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package mlreg

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/churnops/mlreg/pkg/conf"
	confhelpers "github.com/churnops/mlreg/pkg/conf/helpers"
	"github.com/churnops/mlreg/pkg/testutils"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func assertCmdOutput(t *testing.T, cmd *cobra.Command, output string) {
	t.Helper()
	buf := bytes.NewBufferString("")
	cmd.SetOut(buf)
	err := cmd.Execute()
	assert.Equal(t, output, buf.String())
	require.NoError(t, err)
}

func assertCmdFailed(t *testing.T, cmd *cobra.Command, output string, errMsg string) {
	t.Helper()
	buf := bytes.NewBufferString("")
	cmd.SetOut(buf)
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), errMsg)
	assert.Equal(t, output, buf.String())
}

// isolate gives the test empty system, global and local config, an empty
// credentials store and no registry env vars. It returns the working dir.
func isolate(t *testing.T) string {
	t.Helper()
	_, cleanup := confhelpers.MockSystemConf(t)
	t.Cleanup(cleanup)
	_, cleanup = confhelpers.MockGlobalConf(t, true)
	t.Cleanup(cleanup)
	dir, cleanup := testutils.ChTempDir(t)
	t.Cleanup(cleanup)
	for _, k := range []string{"MLREG_WORKSPACE_URL", "DATABRICKS_HOST", "MLREG_TOKEN", "DATABRICKS_TOKEN", "MLREG_CONFIG", "MLREG_TIMEOUT"} {
		if _, ok := os.LookupEnv(k); ok {
			t.Cleanup(testutils.MockEnv(t, k, ""))
		}
	}
	color.NoColor = true
	return dir
}

func writeLocalConfig(t *testing.T, dir string, c *conf.Config) {
	t.Helper()
	b, err := yaml.Marshal(c)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".mlreg.yaml"), b, 0644))
}

// registryCmd returns a root command pointed at m with token tok
func registryCmd(m *testutils.MockRegistry, tok string, args ...string) *cobra.Command {
	cmd := RootCmd()
	cmd.SetArgs(append([]string{"--workspace-url", m.URL, "--token", tok}, args...))
	return cmd
}
