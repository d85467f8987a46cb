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
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"gocaptioner/internal/caption"
	"gocaptioner/internal/geom"
)

func testPlan() caption.LayoutPlan {
	return caption.LayoutPlan{
		CanvasWidth:  100,
		CanvasHeight: 80,
		ImageRect:    geom.R(10, 10, 80, 40),
		Lines: []caption.LinePlacement{
			{X: 12, Y: 58, Text: "hello"},
		},
	}
}

func redSquare() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	return img
}

func TestRenderPNGGeometry(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderPNG(&buf, redSquare(), testPlan(), Options{}); err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 100 || b.Dy() != 80 {
		t.Fatalf("canvas = %dx%d, want 100x80", b.Dx(), b.Dy())
	}
	// Outside the image rect the background fill must show.
	if r, g, bl, _ := img.At(0, 0).RGBA(); r != 0xffff || g != 0xffff || bl != 0xffff {
		t.Errorf("corner pixel = %v, want white", img.At(0, 0))
	}
	// Center of the image rect carries the resampled source.
	r, g, bl, _ := img.At(50, 30).RGBA()
	if r < 0xf000 || g > 0x0fff || bl > 0x0fff {
		t.Errorf("image rect center = %v, want red", img.At(50, 30))
	}
}

func TestRenderPNGDrawsText(t *testing.T) {
	var buf bytes.Buffer
	plan := testPlan()
	if err := RenderPNG(&buf, redSquare(), plan, Options{}); err != nil {
		t.Fatalf("RenderPNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	// At least one pixel in the line's band must be non-background ink.
	found := false
	for y := plan.Lines[0].Y; y < plan.Lines[0].Y+13 && !found; y++ {
		for x := plan.Lines[0].X; x < plan.Lines[0].X+5*7; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if r == 0 && g == 0 && b == 0 {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("no text pixels found in the caption band")
	}
}

func TestRenderPNGNilSource(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderPNG(&buf, nil, testPlan(), Options{}); err == nil {
		t.Fatal("expected error for nil source image")
	}
}

func TestRenderSVGDocument(t *testing.T) {
	var buf bytes.Buffer
	plan := testPlan()
	plan.Lines[0].Text = `a < b & "c"`
	if err := RenderSVG(&buf, redSquare(), plan, Options{FontFamily: "Georgia"}); err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`width="100" height="80"`,
		`data:image/png;base64,`,
		`font-family="Georgia"`,
		`a &lt; b &amp; &quot;c&quot;`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("svg missing %q", want)
		}
	}
	if strings.Contains(out, `a < b`) {
		t.Error("caption text was not escaped")
	}
}

func TestRenderPDFHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderPDF(&buf, redSquare(), testPlan(), Options{}); err != nil {
		t.Fatalf("RenderPDF: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF, got %q", buf.Bytes()[:8])
	}
}

func TestRenderDispatch(t *testing.T) {
	for _, format := range Formats() {
		var buf bytes.Buffer
		if err := Render(&buf, format, redSquare(), testPlan(), Options{}); err != nil {
			t.Errorf("Render(%s): %v", format, err)
		}
		if buf.Len() == 0 {
			t.Errorf("Render(%s): empty output", format)
		}
	}
	var buf bytes.Buffer
	if err := Render(&buf, "bmp", redSquare(), testPlan(), Options{}); err == nil {
		t.Error("expected error for unsupported format")
	}
}
