// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package conffs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/churnops/mlreg/pkg/conf"
	"gopkg.in/yaml.v3"
)

type Source int

const (
	UnspecifiedSource Source = iota
	FileSource
	LocalSource
	GlobalSource
	SystemSource
	AggregateSource
)

// Store reads and writes config from one of the config locations. rootDir is
// the directory holding the local config file.
type Store struct {
	rootDir string
	source  Source
	fp      string
}

func NewStore(rootDir string, source Source, fp string) *Store {
	if fp != "" {
		source = FileSource
	}
	return &Store{
		rootDir: rootDir,
		source:  source,
		fp:      fp,
	}
}

func (s *Store) readConfig(fp string) (*conf.Config, error) {
	c := &conf.Config{}
	b, err := os.ReadFile(fp)
	if err == nil {
		if err = yaml.Unmarshal(b, c); err != nil {
			return nil, fmt.Errorf("error parsing config %q: %w", fp, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}
	return c, nil
}

func (s *Store) Open() (*conf.Config, error) {
	if s.source == AggregateSource {
		return s.aggregateConfig()
	}
	fp, err := s.Path()
	if err != nil {
		return nil, err
	}
	return s.readConfig(fp)
}

func (s *Store) Save(c *conf.Config) error {
	if s.source == AggregateSource {
		return fmt.Errorf("attempt to save aggregated config")
	}
	fp, err := s.Path()
	if err != nil {
		return err
	}
	if fp == "" {
		return fmt.Errorf("empty config path")
	}
	if err = os.MkdirAll(filepath.Dir(fp), 0755); err != nil {
		return err
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	// config may hold slack secrets
	return os.WriteFile(fp, b, 0600)
}
