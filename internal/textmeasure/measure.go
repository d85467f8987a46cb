/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package textmeasure implements the caption.Measurer capability on top of
// x/image font faces. Font registration is an explicit setup step performed
// by the caller (FontLibrary); nothing here touches process-global state.
package textmeasure

import (
	"errors"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"gocaptioner/internal/caption"
)

// FaceMeasurer measures text against a concrete font.Face. The face's first
// use may lazily load glyph data inside the font engine; the measurer itself
// holds no other state and is safe for concurrent reads if the face is.
type FaceMeasurer struct {
	Face font.Face
}

// NewFace wraps an already-resolved face.
func NewFace(face font.Face) *FaceMeasurer { return &FaceMeasurer{Face: face} }

// MeasureString returns the advance width of s and the face's ascent/descent
// in pixels.
func (fm *FaceMeasurer) MeasureString(s string) (caption.Measurement, error) {
	if fm == nil || fm.Face == nil {
		return caption.Measurement{}, errors.New("textmeasure: no face configured")
	}
	d := &font.Drawer{Face: fm.Face}
	adv := d.MeasureString(s)
	met := fm.Face.Metrics()
	return caption.Measurement{
		Width:   fixedToPixels(adv),
		Ascent:  fixedToPixels(met.Ascent),
		Descent: fixedToPixels(met.Descent),
	}, nil
}

// fixedToPixels converts 26.6 fixed point to float pixels, keeping the
// fractional part; balancing accumulates these values and coarser rounding
// would shift break decisions.
func fixedToPixels(v fixed.Int26_6) float64 { return float64(v) / 64 }

// Basic returns a measurer over the fixed 7x13 bitmap face. Deterministic on
// every platform, which is what the tests want.
func Basic() *FaceMeasurer { return &FaceMeasurer{Face: basicfont.Face7x13} }
