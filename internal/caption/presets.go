/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package caption

import "sort"

// The builtin presets carry the margin/line-height/square policies of the
// rendering variants the captioner replaced. They differ only in data.

const (
	PresetClassic = "classic"
	PresetCard    = "card"
	PresetSquare  = "square"
)

var builtinPresets = map[string]LayoutConfig{
	// The original raster pipeline: no line-height floor, rectangular.
	PresetClassic: {
		MarginSides:      10,
		MarginTop:        25,
		OuterPadding:     20,
		LineSpacing:      5,
		TargetImageWidth: 600,
	},
	// Wider padding and a line-height floor for small fonts.
	PresetCard: {
		MarginSides:      16,
		MarginTop:        30,
		OuterPadding:     24,
		LineSpacing:      6,
		MinLineHeight:    28,
		TargetImageWidth: 640,
	},
	// Square-padded variant for feed thumbnails.
	PresetSquare: {
		MarginSides:      12,
		MarginTop:        25,
		OuterPadding:     20,
		LineSpacing:      4,
		MinLineHeight:    24,
		TargetImageWidth: 600,
		SquareAdjust:     true,
	},
}

// DefaultConfig returns the classic preset.
func DefaultConfig() LayoutConfig { return builtinPresets[PresetClassic] }

// Preset looks up a builtin preset by name.
func Preset(name string) (LayoutConfig, bool) {
	cfg, ok := builtinPresets[name]
	return cfg, ok
}

// PresetNames lists the builtin preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(builtinPresets))
	for n := range builtinPresets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
