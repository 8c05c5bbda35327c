// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package testutils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// TempDir is a light wrapper of os.MkdirTemp which place the dir under
// RUNNER_TEMP env var if it is specified. This is necessary for Github action
// to work correctly.
func TempDir(dir, pattern string) (string, error) {
	if v := os.Getenv("RUNNER_TEMP"); v != "" && !strings.HasPrefix(dir, "/") {
		dir = filepath.Join(v, dir)
	}
	return os.MkdirTemp(dir, pattern)
}

// MockEnv sets env var key for the duration of the test
func MockEnv(t *testing.T, key, val string) func() {
	t.Helper()
	orig, existed := os.LookupEnv(key)
	require.NoError(t, os.Setenv(key, val))
	return func() {
		if existed {
			require.NoError(t, os.Setenv(key, orig))
		} else {
			require.NoError(t, os.Unsetenv(key))
		}
	}
}

// MockConfigHome points XDG_CONFIG_HOME to a fresh temporary directory
func MockConfigHome(t *testing.T) (string, func()) {
	t.Helper()
	dir, err := TempDir("", "test_mlreg_config")
	require.NoError(t, err)
	cleanup := MockEnv(t, "XDG_CONFIG_HOME", dir)
	return dir, func() {
		cleanup()
		require.NoError(t, os.RemoveAll(dir))
	}
}

// ChTempDir creates a temporary directory and cd into it during test
func ChTempDir(t *testing.T) (name string, cleanup func()) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	d, err := TempDir("", "")
	require.NoError(t, err)
	require.NoError(t, os.Chdir(d))
	return d, func() {
		require.NoError(t, os.Chdir(wd))
		require.NoError(t, os.RemoveAll(d))
	}
}
