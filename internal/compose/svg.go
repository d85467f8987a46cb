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
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"gocaptioner/internal/caption"
)

// RenderSVG writes the plan as a standalone SVG document. The source image
// is embedded as a base64 PNG data URI so the file stays self-contained;
// text uses native SVG text elements anchored by their top edge.
func RenderSVG(w io.Writer, src image.Image, plan caption.LayoutPlan, opt Options) error {
	if src == nil {
		return fmt.Errorf("source image is nil")
	}
	opt = opt.withDefaults()

	var encoded bytes.Buffer
	if err := png.Encode(&encoded, src); err != nil {
		return fmt.Errorf("encode embedded image: %w", err)
	}
	dataURI := "data:image/png;base64," + base64.StdEncoding.EncodeToString(encoded.Bytes())

	var buf bytes.Buffer
	var werr error
	wf := func(format string, args ...any) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(&buf, format, args...)
	}

	wf("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	wf("<svg xmlns=\"http://www.w3.org/2000/svg\" xmlns:xlink=\"http://www.w3.org/1999/xlink\" version=\"1.1\" width=\"%d\" height=\"%d\" viewBox=\"0 0 %d %d\">\n",
		plan.CanvasWidth, plan.CanvasHeight, plan.CanvasWidth, plan.CanvasHeight)
	wf("  <rect x=\"0\" y=\"0\" width=\"%d\" height=\"%d\" fill=\"%s\"/>\n",
		plan.CanvasWidth, plan.CanvasHeight, cssColor(opt.Background))
	ir := plan.ImageRect
	wf("  <image x=\"%d\" y=\"%d\" width=\"%d\" height=\"%d\" xlink:href=\"%s\" preserveAspectRatio=\"none\"/>\n",
		ir.X, ir.Y, ir.W, ir.H, dataURI)
	for _, ln := range plan.Lines {
		wf("  <text x=\"%d\" y=\"%d\" font-family=\"%s\" font-size=\"%g\" fill=\"%s\" dominant-baseline=\"text-before-edge\">%s</text>\n",
			ln.X, ln.Y, escapeXML(opt.FontFamily), opt.FontSizePt, cssColor(opt.TextColor), escapeXML(ln.Text))
	}
	wf("</svg>\n")
	if werr != nil {
		return fmt.Errorf("build svg: %w", werr)
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

func cssColor(c Color) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", "\"", "&quot;")

func escapeXML(s string) string { return xmlEscaper.Replace(s) }
