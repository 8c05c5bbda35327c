// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package utils

import (
	"fmt"
	"os"

	"github.com/churnops/mlreg/pkg/conf"
	conffs "github.com/churnops/mlreg/pkg/conf/fs"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	KeyWorkspaceURL = "workspace_url"
	KeyToken        = "token"
	KeyConfig       = "config"
	KeyTimeout      = "timeout"
)

// BindGlobalFlags adds the flags every command shares and binds them to
// viper. Environment variables are read with the MLREG_ prefix; the
// Databricks CLI variables are honored as fallbacks.
func BindGlobalFlags(flags *pflag.FlagSet) {
	flags.String("workspace-url", "", "URL of the workspace hosting the model registry (env MLREG_WORKSPACE_URL or DATABRICKS_HOST)")
	flags.String("token", "", "access token (env MLREG_TOKEN or DATABRICKS_TOKEN). Defaults to the saved credentials of the workspace")
	flags.String("config", "", "read config from this file instead of merging system, global and local config")
	flags.Duration("timeout", 0, "timeout of each registry request (default 30s)")
	viper.BindEnv(KeyWorkspaceURL, "MLREG_WORKSPACE_URL", "DATABRICKS_HOST")
	viper.BindEnv(KeyToken, "MLREG_TOKEN", "DATABRICKS_TOKEN")
	viper.BindEnv(KeyConfig, "MLREG_CONFIG")
	viper.BindEnv(KeyTimeout, "MLREG_TIMEOUT")
	viper.BindPFlag(KeyWorkspaceURL, flags.Lookup("workspace-url"))
	viper.BindPFlag(KeyToken, flags.Lookup("token"))
	viper.BindPFlag(KeyConfig, flags.Lookup("config"))
	viper.BindPFlag(KeyTimeout, flags.Lookup("timeout"))
}

// ConfigStore returns the store selected by --config, or the aggregate of
// system, global and local (./.mlreg.yaml) config.
func ConfigStore() (*conffs.Store, error) {
	if fp := viper.GetString(KeyConfig); fp != "" {
		return conffs.NewStore("", conffs.FileSource, fp), nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return conffs.NewStore(wd, conffs.AggregateSource, ""), nil
}

func OpenConfig() (*conf.Config, error) {
	s, err := ConfigStore()
	if err != nil {
		return nil, err
	}
	c, err := s.Open()
	if err != nil {
		return nil, fmt.Errorf("error reading config: %w", err)
	}
	return c, nil
}

// ModelName returns the --model flag of cmd, falling back to model.name
func ModelName(cmd *cobra.Command, c *conf.Config) (string, error) {
	name, err := cmd.Flags().GetString("model")
	if err != nil {
		return "", err
	}
	if name == "" {
		name = c.ModelName()
	}
	if name == "" {
		return "", fmt.Errorf("model name is not set. Pass --model or set model.name in config")
	}
	return name, nil
}
