/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package compose

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/jung-kurt/gofpdf"

	"gocaptioner/internal/caption"
)

// RenderPDF writes a single-page PDF sized to the canvas in points.
// The source image is embedded as PNG; caption lines are vector text
// using built-in Helvetica so no font embedding is required.
func RenderPDF(w io.Writer, src image.Image, plan caption.LayoutPlan, opt Options) error {
	if src == nil {
		return fmt.Errorf("source image is nil")
	}
	opt = opt.withDefaults()

	pageW := float64(plan.CanvasWidth)
	pageH := float64(plan.CanvasHeight)

	// Points give a 1:1 mapping from layout pixels to page units.
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: pageW, Ht: pageH},
		OrientationStr: "",
	})
	pdf.SetTitle("Captioned image", false)
	pdf.AddPageFormat("", gofpdf.SizeType{Wd: pageW, Ht: pageH})

	bg := opt.Background
	pdf.SetFillColor(int(bg.R), int(bg.G), int(bg.B))
	pdf.Rect(0, 0, pageW, pageH, "F")

	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		return fmt.Errorf("encode source image: %w", err)
	}
	imgOpt := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("source", imgOpt, &buf)
	r := plan.ImageRect
	pdf.ImageOptions("source", float64(r.X), float64(r.Y), float64(r.W), float64(r.H), false, imgOpt, 0, "")

	tc := opt.TextColor
	pdf.SetTextColor(int(tc.R), int(tc.G), int(tc.B))
	pdf.SetFont("Helvetica", "", opt.FontSizePt)
	for _, ln := range plan.Lines {
		// Placements give the line's top edge; approximate the baseline
		// for Helvetica at 80% of the font size.
		baseline := float64(ln.Y) + 0.8*opt.FontSizePt
		pdf.Text(float64(ln.X), baseline, ln.Text)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
