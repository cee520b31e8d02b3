// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package manglemap persists a mangle map (original name to short name)
// as YAML so that separate runs rename shared identifiers identically.
package manglemap

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Load reads the map stored at path. A missing file yields an empty map.
func Load(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("manglemap: %w", err)
	}
	m, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("manglemap: %s: %w", path, err)
	}
	return m, nil
}

// Save writes m to path.
func Save(path string, m map[string]string) error {
	data, err := Encode(m)
	if err != nil {
		return fmt.Errorf("manglemap: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("manglemap: %w", err)
	}
	return nil
}

// Decode parses a YAML mapping of names. Values must be unique: two
// originals sharing a short name would collide in the output.
func Decode(data []byte) (map[string]string, error) {
	m := map[string]string{}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	seen := make(map[string]string, len(m))
	for _, k := range sortedKeys(m) {
		v := m[k]
		if v == "" {
			return nil, fmt.Errorf("empty short name for %q", k)
		}
		if prev, ok := seen[v]; ok {
			return nil, fmt.Errorf("%q and %q both map to %q", prev, k, v)
		}
		seen[v] = k
	}
	return m, nil
}

// Encode renders m as a YAML mapping sorted by original name.
func Encode(m map[string]string) ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range sortedKeys(m) {
		doc.Content = append(doc.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: m[k]},
		)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
