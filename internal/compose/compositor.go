/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package compose renders a caption.LayoutPlan against concrete graphics
// backends. The layout core decides where everything goes; this package only
// executes fill/resample/draw/text calls for one of the supported formats.
package compose

import (
	"fmt"
	"image"
	"io"
	"strings"

	"golang.org/x/image/font"

	"gocaptioner/internal/caption"
)

// Color is an 8-bit RGBA tuple shared by all backends.
type Color struct {
	R, G, B, A uint8
}

var (
	// White is the default card background.
	White = Color{255, 255, 255, 255}
	// Black is the default caption ink.
	Black = Color{0, 0, 0, 255}
)

// Options controls rendering across backends. Zero values get reasonable
// defaults; fields a backend cannot honor are ignored (Face for vector
// output, FontFamily for raster).
//
//nolint:revive // keep fields explicit for clarity
type Options struct {
	Background Color
	TextColor  Color
	Face       font.Face // raster text; defaults to the basic 7x13 face
	FontFamily string    // SVG font-family; defaults to sans-serif
	FontSizePt float64   // SVG/PDF text size; defaults to 12
}

func (o Options) withDefaults() Options {
	if o.Background.A == 0 && o.Background.R == 0 && o.Background.G == 0 && o.Background.B == 0 {
		o.Background = White
	}
	if o.TextColor.A == 0 {
		o.TextColor = Black
	}
	if o.FontFamily == "" {
		o.FontFamily = "sans-serif"
	}
	if o.FontSizePt <= 0 {
		o.FontSizePt = 12
	}
	return o
}

// Formats lists the supported output formats.
func Formats() []string { return []string{"png", "svg", "pdf"} }

// Render dispatches to the backend for the given format.
func Render(w io.Writer, format string, src image.Image, plan caption.LayoutPlan, opt Options) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "png":
		return RenderPNG(w, src, plan, opt)
	case "svg":
		return RenderSVG(w, src, plan, opt)
	case "pdf":
		return RenderPDF(w, src, plan, opt)
	default:
		return fmt.Errorf("unsupported format %q (want one of %v)", format, Formats())
	}
}
