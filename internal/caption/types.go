/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package caption computes center-balanced line breaks for a caption string
// and the pixel geometry of the composed card: canvas size, source image
// placement and one anchor point per text line. All text measurement is
// injected through the Measurer interface so the package stays free of any
// particular font engine or rasterizer.
package caption

import (
	"errors"

	"gocaptioner/internal/geom"
)

// Measurement is the rendered extent of a piece of text in device pixels,
// as reported by whatever measurement backend the caller wires in.
type Measurement struct {
	Width   float64
	Ascent  float64
	Descent float64
}

// Measurer is the external text-measurement capability. Implementations must
// be deterministic for a fixed font/size/style. The balancer calls it once
// per word, once per assembled line, and once for a single space character.
type Measurer interface {
	MeasureString(text string) (Measurement, error)
}

// MeasuredWord pairs one whitespace-delimited token of the caption with its
// rendered width. Immutable once created.
type MeasuredWord struct {
	Text  string
	Width float64
}

// Line is one balanced output line. Width and Height come from re-measuring
// the assembled text, not from summing word widths: kerning and ligatures can
// make the joined line measure slightly differently than its parts.
type Line struct {
	Text   string
	Width  float64
	Height float64
}

// LayoutConfig collects the geometry policies of the composed card. The
// rendering backends the captioner grew up with disagreed on margins,
// minimum line height and square padding; all of that drift lives here as
// data, not as separate code paths (see Presets).
type LayoutConfig struct {
	MarginSides      float64 // horizontal inset reserved on each side of the text column
	MarginTop        float64 // gap between the image bottom and the first text line
	OuterPadding     float64 // uniform border around the whole composition
	LineSpacing      float64 // extra gap between consecutive lines beyond their own height
	MinLineHeight    float64 // optional floor for each line's measured height; 0 disables
	TargetImageWidth float64 // width the source image is scaled to before layout
	SquareAdjust     bool    // widen near-square results to an exact square
}

// MaxTextWidth returns the width of the text column the balancer breaks
// against.
func (c LayoutConfig) MaxTextWidth() float64 {
	return c.TargetImageWidth - 2*c.MarginSides
}

// LinePlacement is the top-left anchor of one laid-out line.
type LinePlacement struct {
	X, Y int
	Text string
}

// LayoutPlan is the complete geometry of one composed card. It is produced
// once per caption and consumed by a compositor backend; nothing mutates it
// afterwards.
type LayoutPlan struct {
	CanvasWidth  int
	CanvasHeight int
	ImageRect    geom.Rect
	Lines        []LinePlacement
}

var (
	// ErrEmptyCaption is returned when the caption tokenizes to zero words.
	ErrEmptyCaption = errors.New("caption: empty caption")
	// ErrInvalidConfig is returned for non-positive widths in the
	// configuration or base image dimensions.
	ErrInvalidConfig = errors.New("caption: invalid configuration")
)
