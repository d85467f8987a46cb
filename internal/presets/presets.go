/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package presets loads user-defined layout presets from JSON files and
// merges them over the builtin set. Files are schema-validated before any
// field is interpreted, so a bad file fails loudly instead of rendering
// with half-applied values.
package presets

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	gojsonschema "github.com/xeipuuv/gojsonschema"

	"gocaptioner/internal/caption"
)

// filePreset is the on-disk shape of one preset. Pointer fields distinguish
// "absent" from zero so a file can override a single margin of its base.
type filePreset struct {
	Name             string   `json:"name"`
	Base             string   `json:"base,omitempty"`
	MarginSides      *float64 `json:"marginSides,omitempty"`
	MarginTop        *float64 `json:"marginTop,omitempty"`
	OuterPadding     *float64 `json:"outerPadding,omitempty"`
	LineSpacing      *float64 `json:"lineSpacing,omitempty"`
	MinLineHeight    *float64 `json:"minLineHeight,omitempty"`
	TargetImageWidth *float64 `json:"targetImageWidth,omitempty"`
	SquareAdjust     *bool    `json:"squareAdjust,omitempty"`
}

type presetFile struct {
	Presets []filePreset `json:"presets"`
}

// Library resolves preset names to layout configs. The zero value is not
// usable; construct one with Builtin or Load.
type Library struct {
	configs map[string]caption.LayoutConfig
}

// Builtin returns a library holding only the builtin presets.
func Builtin() *Library {
	lib := &Library{configs: make(map[string]caption.LayoutConfig)}
	for _, name := range caption.PresetNames() {
		cfg, _ := caption.Preset(name)
		lib.configs[name] = cfg
	}
	return lib
}

// Load reads a preset file and merges it over the builtins. Entries may
// override a builtin of the same name or introduce new names; an explicit
// "base" starts the entry from another preset defined earlier or builtin.
func Load(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read presets: %w", err)
	}
	lib := Builtin()
	if err := lib.merge(data); err != nil {
		return nil, fmt.Errorf("presets %s: %w", path, err)
	}
	return lib, nil
}

func (l *Library) merge(data []byte) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(fileSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return fmt.Errorf("validate: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("schema violations: %s", strings.Join(msgs, "; "))
	}

	var pf presetFile
	if err := json.Unmarshal(data, &pf); err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	for _, p := range pf.Presets {
		base := caption.DefaultConfig()
		switch {
		case p.Base != "":
			b, ok := l.configs[p.Base]
			if !ok {
				return fmt.Errorf("preset %q: unknown base %q", p.Name, p.Base)
			}
			base = b
		default:
			if b, ok := l.configs[p.Name]; ok {
				base = b
			}
		}
		l.configs[p.Name] = overlay(base, p)
	}
	return nil
}

func overlay(cfg caption.LayoutConfig, p filePreset) caption.LayoutConfig {
	if p.MarginSides != nil {
		cfg.MarginSides = *p.MarginSides
	}
	if p.MarginTop != nil {
		cfg.MarginTop = *p.MarginTop
	}
	if p.OuterPadding != nil {
		cfg.OuterPadding = *p.OuterPadding
	}
	if p.LineSpacing != nil {
		cfg.LineSpacing = *p.LineSpacing
	}
	if p.MinLineHeight != nil {
		cfg.MinLineHeight = *p.MinLineHeight
	}
	if p.TargetImageWidth != nil {
		cfg.TargetImageWidth = *p.TargetImageWidth
	}
	if p.SquareAdjust != nil {
		cfg.SquareAdjust = *p.SquareAdjust
	}
	return cfg
}

// Get looks up a preset by name.
func (l *Library) Get(name string) (caption.LayoutConfig, bool) {
	cfg, ok := l.configs[name]
	return cfg, ok
}

// Names lists all preset names, sorted.
func (l *Library) Names() []string {
	names := make([]string, 0, len(l.configs))
	for n := range l.configs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
