// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package config

import (
	"fmt"
	"os"

	"github.com/churnops/mlreg/cmd/mlreg/utils"
	conffs "github.com/churnops/mlreg/pkg/conf/fs"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

func addSourceFlags(flags *pflag.FlagSet) {
	flags.Bool("system", false, "use system config (/usr/local/etc/mlreg/config.yaml or $MLREG_SYSTEM_CONFIG_DIR/config.yaml)")
	flags.Bool("global", false, "use global config ($XDG_CONFIG_HOME/mlreg/config.yaml)")
	flags.Bool("local", false, "use local config (./.mlreg.yaml)")
	flags.String("file", "", "use the given config file")
}

// sourceStore picks the config store from the source flags. Without any
// source flag it returns the store every other command reads from.
func sourceStore(cmd *cobra.Command) (*conffs.Store, error) {
	fp, err := cmd.Flags().GetString("file")
	if err != nil {
		return nil, err
	}
	if fp != "" {
		return conffs.NewStore("", conffs.FileSource, fp), nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	var source conffs.Source
	for _, v := range []struct {
		flag   string
		source conffs.Source
	}{
		{"system", conffs.SystemSource},
		{"global", conffs.GlobalSource},
		{"local", conffs.LocalSource},
	} {
		b, err := cmd.Flags().GetBool(v.flag)
		if err != nil {
			return nil, err
		}
		if !b {
			continue
		}
		if source != conffs.UnspecifiedSource {
			return nil, fmt.Errorf("only one of --system, --global, --local and --file can be set")
		}
		source = v.source
	}
	if source == conffs.UnspecifiedSource {
		return utils.ConfigStore()
	}
	return conffs.NewStore(wd, source, ""), nil
}

func showCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print config as YAML.",
		Long:  "Print config as YAML. Without flags the merged config (system, then global, then local) is printed, which is what other commands use.",
		Example: utils.CombineExamples([]utils.Example{
			{
				Comment: "show the merged config",
				Line:    "mlreg config show",
			},
			{
				Comment: "show only the global config",
				Line:    "mlreg config show --global",
			},
		}),
		Args: cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sourceStore(cmd)
			if err != nil {
				return err
			}
			c, err := s.Open()
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err = enc.Encode(c); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	addSourceFlags(cmd.Flags())
	return cmd
}

func pathCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the path of a config file.",
		Example: utils.CombineExamples([]utils.Example{
			{
				Comment: "print the path of the global config",
				Line:    "mlreg config path --global",
			},
		}),
		Args: cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sourceStore(cmd)
			if err != nil {
				return err
			}
			fp, err := s.Path()
			if err != nil {
				return err
			}
			cmd.Println(fp)
			return nil
		},
	}
	addSourceFlags(cmd.Flags())
	return cmd
}
