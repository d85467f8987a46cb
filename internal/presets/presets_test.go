/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package presets

import (
	"os"
	"path/filepath"
	"testing"

	"gocaptioner/internal/caption"
)

func writePresets(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "presets.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write presets: %v", err)
	}
	return path
}

func TestBuiltinMatchesCaptionPresets(t *testing.T) {
	lib := Builtin()
	for _, name := range caption.PresetNames() {
		want, _ := caption.Preset(name)
		got, ok := lib.Get(name)
		if !ok {
			t.Fatalf("builtin %q missing from library", name)
		}
		if got != want {
			t.Errorf("builtin %q = %+v, want %+v", name, got, want)
		}
	}
}

func TestLoadAddsAndOverrides(t *testing.T) {
	path := writePresets(t, `{
  "presets": [
    {"name": "classic", "marginSides": 14},
    {"name": "banner", "targetImageWidth": 1200, "marginTop": 40}
  ]
}`)
	lib, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	classic, _ := lib.Get("classic")
	if classic.MarginSides != 14 {
		t.Errorf("classic.MarginSides = %v, want 14", classic.MarginSides)
	}
	// Untouched fields keep the builtin values.
	if classic.MarginTop != 25 || classic.TargetImageWidth != 600 {
		t.Errorf("classic override clobbered unrelated fields: %+v", classic)
	}

	banner, ok := lib.Get("banner")
	if !ok {
		t.Fatal("new preset banner missing")
	}
	if banner.TargetImageWidth != 1200 || banner.MarginTop != 40 {
		t.Errorf("banner = %+v", banner)
	}
	// New presets inherit the classic defaults for unset fields.
	if banner.OuterPadding != 20 {
		t.Errorf("banner.OuterPadding = %v, want classic default 20", banner.OuterPadding)
	}
}

func TestLoadWithBase(t *testing.T) {
	path := writePresets(t, `{
  "presets": [
    {"name": "feed", "base": "square", "targetImageWidth": 1080}
  ]
}`)
	lib, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	feed, _ := lib.Get("feed")
	if !feed.SquareAdjust {
		t.Error("feed should inherit SquareAdjust from square base")
	}
	if feed.TargetImageWidth != 1080 {
		t.Errorf("feed.TargetImageWidth = %v, want 1080", feed.TargetImageWidth)
	}
}

func TestLoadUnknownBase(t *testing.T) {
	path := writePresets(t, `{"presets": [{"name": "x", "base": "nope"}]}`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown base")
	}
}

func TestLoadRejectsSchemaViolations(t *testing.T) {
	cases := map[string]string{
		"missing name":      `{"presets": [{"marginSides": 10}]}`,
		"unknown field":     `{"presets": [{"name": "x", "margin": 10}]}`,
		"negative margin":   `{"presets": [{"name": "x", "marginSides": -1}]}`,
		"zero target width": `{"presets": [{"name": "x", "targetImageWidth": 0}]}`,
		"wrong root":        `[{"name": "x"}]`,
	}
	for label, content := range cases {
		path := writePresets(t, content)
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected schema error", label)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestNamesSortedAndComplete(t *testing.T) {
	path := writePresets(t, `{"presets": [{"name": "aaa"}]}`)
	lib, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	names := lib.Names()
	if names[0] != "aaa" {
		t.Errorf("names not sorted: %v", names)
	}
	if len(names) != len(caption.PresetNames())+1 {
		t.Errorf("names = %v", names)
	}
}
