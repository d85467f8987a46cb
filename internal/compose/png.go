/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package compose

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"gocaptioner/internal/caption"
)

// RenderPNG rasterizes the plan: background fill, Catmull-Rom resample of
// the source image into the plan's image rect, then one DrawString per line
// at its anchor. The plan anchors lines by their top edge; the drawer wants
// a baseline, so the face's ascent is added here.
func RenderPNG(w io.Writer, src image.Image, plan caption.LayoutPlan, opt Options) error {
	if src == nil {
		return fmt.Errorf("source image is nil")
	}
	opt = opt.withDefaults()
	face := opt.Face
	if face == nil {
		face = basicfont.Face7x13
	}

	img := image.NewRGBA(image.Rect(0, 0, plan.CanvasWidth, plan.CanvasHeight))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: toRGBA(opt.Background)}, image.Point{}, draw.Src)

	ir := plan.ImageRect
	dst := image.Rect(ir.X, ir.Y, ir.X+ir.W, ir.Y+ir.H)
	xdraw.CatmullRom.Scale(img, dst, src, src.Bounds(), xdraw.Over, nil)

	ascent := face.Metrics().Ascent.Round()
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(toRGBA(opt.TextColor)),
		Face: face,
	}
	for _, ln := range plan.Lines {
		drawer.Dot = fixed.P(ln.X, ln.Y+ascent)
		drawer.DrawString(ln.Text)
	}

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func toRGBA(c Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
