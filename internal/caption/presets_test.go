/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package caption

import (
	"sort"
	"testing"
)

func TestPresetNamesSortedAndComplete(t *testing.T) {
	names := PresetNames()
	if !sort.StringsAreSorted(names) {
		t.Fatalf("preset names not sorted: %v", names)
	}
	if len(names) != 3 {
		t.Fatalf("expected 3 builtin presets, got %v", names)
	}
}

func TestPresetLookup(t *testing.T) {
	cfg, ok := Preset(PresetSquare)
	if !ok {
		t.Fatalf("square preset missing")
	}
	if !cfg.SquareAdjust {
		t.Fatalf("square preset must enable square adjustment")
	}
	if _, ok := Preset("nope"); ok {
		t.Fatalf("unknown preset must not resolve")
	}
}

func TestPresetsHaveUsableColumns(t *testing.T) {
	for _, name := range PresetNames() {
		cfg, _ := Preset(name)
		if cfg.MaxTextWidth() <= 0 {
			t.Fatalf("preset %q has non-positive text column", name)
		}
		if cfg.TargetImageWidth <= 0 {
			t.Fatalf("preset %q has non-positive target image width", name)
		}
	}
}

func TestDefaultConfigIsClassic(t *testing.T) {
	classic, _ := Preset(PresetClassic)
	if DefaultConfig() != classic {
		t.Fatalf("default config should be the classic preset")
	}
}
