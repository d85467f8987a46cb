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
	"strings"
)

// Tokenize splits a caption into words. Leading/trailing whitespace is
// trimmed and runs of whitespace collapse to single separators.
func Tokenize(text string) []string {
	return strings.Fields(text)
}

// MeasureWords measures each token through the injected capability.
// Measurement failures propagate unchanged; the core never retries.
func MeasureWords(m Measurer, tokens []string) ([]MeasuredWord, error) {
	words := make([]MeasuredWord, 0, len(tokens))
	for _, tok := range tokens {
		mm, err := m.MeasureString(tok)
		if err != nil {
			return nil, fmt.Errorf("measure word %q: %w", tok, err)
		}
		words = append(words, MeasuredWord{Text: tok, Width: mm.Width})
	}
	return words, nil
}

// Plan runs the whole pipeline for one caption: tokenize, measure words and
// a single space, balance, re-measure the assembled lines, and lay out the
// card. It is pure apart from the measurement calls and is safe to run
// concurrently with independent inputs.
func Plan(text string, m Measurer, cfg LayoutConfig, baseImageWidth, baseImageHeight float64) (LayoutPlan, error) {
	tokens := Tokenize(text)
	if len(tokens) == 0 {
		return LayoutPlan{}, ErrEmptyCaption
	}
	words, err := MeasureWords(m, tokens)
	if err != nil {
		return LayoutPlan{}, err
	}
	space, err := m.MeasureString(" ")
	if err != nil {
		return LayoutPlan{}, fmt.Errorf("measure space: %w", err)
	}

	texts, err := Balance(words, space.Width, cfg.MaxTextWidth())
	if err != nil {
		return LayoutPlan{}, err
	}

	// Assembled lines are re-measured rather than summed from their words:
	// kerning across the joined text is what the compositor will draw.
	lines := make([]Line, len(texts))
	for i, txt := range texts {
		mm, err := m.MeasureString(txt)
		if err != nil {
			return LayoutPlan{}, fmt.Errorf("measure line %q: %w", txt, err)
		}
		lines[i] = Line{Text: txt, Width: mm.Width, Height: mm.Ascent + mm.Descent}
	}
	return Layout(lines, cfg, baseImageWidth, baseImageHeight)
}
