// Momentline - Photo Timeline Event Clustering
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentline

package config

import (
	"fmt"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// Dump renders the effective configuration as YAML in the same layout the
// config file uses. Durations are written as strings ("3h0m0s") so the
// output can be fed back through LoadFile.
func Dump(c *Config) ([]byte, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(c, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	for key, v := range k.All() {
		if d, ok := v.(time.Duration); ok {
			if err := k.Set(key, d.String()); err != nil {
				return nil, fmt.Errorf("failed to set %s: %w", key, err)
			}
		}
	}
	out, err := k.Marshal(yaml.Parser())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return out, nil
}
