// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package confhelpers

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/churnops/mlreg/pkg/testutils"
	"github.com/stretchr/testify/require"
)

func MockHomeDir(t *testing.T, parentDir string) (string, func()) {
	t.Helper()
	name, err := testutils.TempDir(parentDir, "test_mlreg_home")
	require.NoError(t, err)
	name, err = filepath.EvalSymlinks(name)
	require.NoError(t, err)
	env := "HOME"
	switch runtime.GOOS {
	case "windows":
		env = "USERPROFILE"
	case "plan9":
		env = "home"
	}
	cleanup := testutils.MockEnv(t, env, name)
	return name, func() {
		cleanup()
		require.NoError(t, os.RemoveAll(name))
	}
}

// MockGlobalConf isolates the global config. When setXDGConfigHome is false
// the config is looked up under $HOME/.config instead.
func MockGlobalConf(t *testing.T, setXDGConfigHome bool) (string, func()) {
	t.Helper()
	name, err := testutils.TempDir("", "test_mlreg_config")
	require.NoError(t, err)
	var cleanups []func()
	if setXDGConfigHome {
		cleanups = append(cleanups, testutils.MockEnv(t, "XDG_CONFIG_HOME", name))
	} else {
		cleanups = append(cleanups,
			testutils.MockEnv(t, "XDG_CONFIG_HOME", ""),
			testutils.MockEnv(t, "HOME", name),
		)
	}
	return name, func() {
		require.NoError(t, os.RemoveAll(name))
		for _, f := range cleanups {
			f()
		}
	}
}

func MockSystemConf(t *testing.T) (string, func()) {
	t.Helper()
	dir, err := testutils.TempDir("", "test_mlreg_system_config")
	require.NoError(t, err)
	cleanup := testutils.MockEnv(t, "MLREG_SYSTEM_CONFIG_DIR", dir)
	return dir, func() {
		require.NoError(t, os.RemoveAll(dir))
		cleanup()
	}
}
