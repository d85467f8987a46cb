/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package caption

import (
	"fmt"
	"math"

	"gocaptioner/internal/geom"
)

// squareRatioLimit bounds the square adjustment: a canvas taller than 1.75x
// its width stays rectangular, padding it out to a square would look absurd.
const squareRatioLimit = 1.75

// Layout computes the full card geometry for balanced lines: canvas size,
// the scaled source image rectangle, and one top-left anchor per line. Each
// line is centered against its own measured width, independently of the
// others; line-break decisions were already made against the fixed column.
func Layout(lines []Line, cfg LayoutConfig, baseImageWidth, baseImageHeight float64) (LayoutPlan, error) {
	if len(lines) == 0 {
		return LayoutPlan{}, ErrEmptyCaption
	}
	if cfg.TargetImageWidth <= 0 {
		return LayoutPlan{}, fmt.Errorf("%w: target image width %v", ErrInvalidConfig, cfg.TargetImageWidth)
	}
	if baseImageWidth <= 0 {
		return LayoutPlan{}, fmt.Errorf("%w: base image width %v", ErrInvalidConfig, baseImageWidth)
	}

	scale := cfg.TargetImageWidth / baseImageWidth
	scaledImageHeight := math.Floor(scale * baseImageHeight)

	canvasWidth := cfg.TargetImageWidth + 2*cfg.OuterPadding
	canvasHeight := scaledImageHeight + 2*cfg.OuterPadding

	// Text block: per-line heights (floored by MinLineHeight), inter-line
	// spacing and the gap below the image, rounded up to whole pixels.
	heights := make([]float64, len(lines))
	block := cfg.MarginTop
	for i, ln := range lines {
		h := ln.Height
		if h < cfg.MinLineHeight {
			h = cfg.MinLineHeight
		}
		heights[i] = h
		block += h
	}
	block += float64(len(lines)-1) * cfg.LineSpacing
	canvasHeight += math.Ceil(block)

	// A tall caption stack on a narrow image reads better on a square
	// canvas; widening never clips anything because lines are re-centered
	// against the final width below.
	if cfg.SquareAdjust && canvasWidth < canvasHeight && canvasHeight/canvasWidth <= squareRatioLimit {
		canvasWidth = canvasHeight
	}

	plan := LayoutPlan{
		CanvasWidth:  int(canvasWidth),
		CanvasHeight: int(canvasHeight),
		ImageRect: geom.R(
			int((canvasWidth-cfg.TargetImageWidth)/2),
			int(cfg.OuterPadding),
			int(cfg.TargetImageWidth),
			int(scaledImageHeight),
		),
		Lines: make([]LinePlacement, 0, len(lines)),
	}

	y := cfg.OuterPadding + scaledImageHeight + cfg.MarginTop
	for i, ln := range lines {
		x := (canvasWidth - ln.Width) / 2
		plan.Lines = append(plan.Lines, LinePlacement{X: int(x), Y: int(y), Text: ln.Text})
		y += heights[i] + cfg.LineSpacing
	}
	return plan, nil
}
