// SPDX-License-Identifier: Apache-2.0
// Copyright © 2022 Wrangle Ltd

package conffs

import (
	"reflect"

	"github.com/churnops/mlreg/pkg/conf"
	"github.com/imdario/mergo"
)

// ptrTransformer lets a non-nil *bool (or other non-struct pointer) in a
// higher priority config replace the lower priority value, even when false.
type ptrTransformer struct {
}

func (t *ptrTransformer) Transformer(typ reflect.Type) func(dst, src reflect.Value) error {
	if typ.Kind() == reflect.Ptr && typ.Elem().Kind() != reflect.Struct {
		return func(dst, src reflect.Value) error {
			if dst.CanSet() && !src.IsNil() {
				dst.Set(src)
			}
			return nil
		}
	}
	return nil
}

// aggregateConfig merges system, global then local config, later sources
// taking precedence.
func (s *Store) aggregateConfig() (*conf.Config, error) {
	sysConfig, err := s.readConfig(systemConfigPath())
	if err != nil {
		return nil, err
	}
	fp, err := globalConfigPath()
	if err != nil {
		return nil, err
	}
	globalConfig, err := s.readConfig(fp)
	if err != nil {
		return nil, err
	}
	localConfig, err := s.readConfig(localPath(s.rootDir))
	if err != nil {
		return nil, err
	}
	for _, c := range []*conf.Config{globalConfig, localConfig} {
		if err = mergo.Merge(sysConfig, c, mergo.WithOverride, mergo.WithTransformers(&ptrTransformer{})); err != nil {
			return nil, err
		}
	}
	return sysConfig, nil
}
