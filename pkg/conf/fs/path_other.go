// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

//go:build !windows

package conffs

import (
	"os"
	"path/filepath"
)

func globalConfigPath() (string, error) {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "mlreg", "config.yaml"), nil
}
