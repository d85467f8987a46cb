/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textmeasure

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// FontSpec describes a requested font.
type FontSpec struct {
	Family string // logical family name
	SizePt float64
	DPI    float64 // default 72 if zero
	Weight int     // 100..900
	Italic bool
}

// FontLibrary stores loaded OpenType fonts mapped by family/weight/italic.
// Note: this is a minimal in-memory library; it does not support named
// instances/variations beyond weight and italic flags. Register fonts once
// at startup, then hand out measurers.

type FontLibrary struct {
	fonts map[fontKey]*opentype.Font
}

type fontKey struct {
	family string
	weight int
	italic bool
}

func NewFontLibrary() *FontLibrary { return &FontLibrary{fonts: make(map[fontKey]*opentype.Font)} }

// LoadTTF loads a font file into the library under the given family/weight/italic.
func (fl *FontLibrary) LoadTTF(family string, weight int, italic bool, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read font %s: %w", path, err)
	}
	return fl.LoadBytes(family, weight, italic, data)
}

// LoadBytes parses raw TTF/OTF bytes into the library. Used by font packs,
// which carry font data inside a zip rather than loose files.
func (fl *FontLibrary) LoadBytes(family string, weight int, italic bool, data []byte) error {
	if fl.fonts == nil {
		fl.fonts = make(map[fontKey]*opentype.Font)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return fmt.Errorf("parse font %s: %w", family, err)
	}
	fl.fonts[fontKey{family: family, weight: weight, italic: italic}] = f
	return nil
}

// LoadDir registers every .ttf/.otf file found directly in dir, using the
// file name without extension as the family, regular weight.
func (fl *FontLibrary) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read fonts dir %s: %w", dir, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".ttf" && ext != ".otf" {
			continue
		}
		family := strings.TrimSuffix(e.Name(), filepath.Ext(e.Name()))
		if err := fl.LoadTTF(family, 400, false, filepath.Join(dir, e.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Families lists the registered family names (unordered, possibly repeated
// weights collapsed).
func (fl *FontLibrary) Families() []string {
	seen := map[string]struct{}{}
	var out []string
	for k := range fl.fonts {
		if _, ok := seen[k.family]; ok {
			continue
		}
		seen[k.family] = struct{}{}
		out = append(out, k.family)
	}
	return out
}

func (fl *FontLibrary) find(spec FontSpec) *opentype.Font {
	if fl == nil || fl.fonts == nil {
		return nil
	}
	// Exact match first
	if f, ok := fl.fonts[fontKey{family: spec.Family, weight: spec.Weight, italic: spec.Italic}]; ok {
		return f
	}
	// Fallback: same family, any weight/italic.
	for k, f := range fl.fonts {
		if k.family == spec.Family {
			return f
		}
	}
	return nil
}

// NewMeasurer resolves spec to a FaceMeasurer. When the family is unknown it
// falls back to the deterministic basic face rather than failing, so layout
// keeps working with degraded typography.
func (fl *FontLibrary) NewMeasurer(spec FontSpec) (*FaceMeasurer, error) {
	if spec.SizePt <= 0 {
		spec.SizePt = 12
	}
	dpi := spec.DPI
	if dpi <= 0 {
		dpi = 72
	}
	f := fl.find(spec)
	if f == nil {
		return Basic(), nil
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: spec.SizePt, DPI: dpi, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("face for %s: %w", spec.Family, err)
	}
	return NewFace(face), nil
}
