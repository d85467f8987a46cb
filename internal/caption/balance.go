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

// estimateLineCount greedily packs words against maxTextWidth to estimate how
// many lines the caption should take, and returns that count together with
// the average line width (total width of all words plus interior spaces,
// divided by the count). The greedy packing itself is discarded; only the two
// scalars feed the second pass.
func estimateLineCount(words []MeasuredWord, spaceWidth, maxTextWidth float64) (int, float64) {
	linesNeeded := 1
	var cur, total float64
	for _, w := range words {
		add := w.Width
		if cur > 0 {
			add += spaceWidth
		}
		if cur > 0 && cur+add > maxTextWidth {
			// Start a new line with this word alone. A word wider than
			// the column still goes on its own line; overflow is the
			// caller's accepted behavior, not an error.
			linesNeeded++
			cur = w.Width
			total += w.Width
			continue
		}
		cur += add
		total += add
	}
	return linesNeeded, total / float64(linesNeeded)
}

// Balance distributes words across lines so each line's width approximates
// the average computed by the first pass, rather than greedily maximizing
// words per line. Word order is preserved; no word is dropped or duplicated.
//
// The second pass closes a line when appending the next word would exceed
// maxTextWidth (hard limit), or when the running total width would pass the
// cumulative average target (soft limit). The soft limit is suppressed while
// the balancer is on the line it predicted to be last, so trailing short
// words cannot spill onto a spurious extra line.
func Balance(words []MeasuredWord, spaceWidth, maxTextWidth float64) ([]string, error) {
	if len(words) == 0 {
		return nil, ErrEmptyCaption
	}
	if maxTextWidth <= 0 {
		return nil, fmt.Errorf("%w: max text width %v", ErrInvalidConfig, maxTextWidth)
	}

	linesNeeded, average := estimateLineCount(words, spaceWidth, maxTextWidth)

	lines := make([]string, 0, linesNeeded)
	current := make([]string, 0, len(words))
	var lineWidth, totalWidth float64
	target := average // cumulative average target, advanced once per closed line

	for _, w := range words {
		add := w.Width
		if lineWidth > 0 {
			add += spaceWidth
		}
		// Suppression compares against the pass-1 estimate: if rounding
		// drift makes this pass produce an extra line, the soft limit
		// stays live for it.
		onLastLine := len(lines) == linesNeeded-1
		hardBreak := lineWidth+add > maxTextWidth
		softBreak := !onLastLine && totalWidth+add > target
		if lineWidth > 0 && (hardBreak || softBreak) {
			lines = append(lines, strings.Join(current, " "))
			current = current[:0]
			lineWidth = 0
			target += average
			add = w.Width
		}
		current = append(current, w.Text)
		lineWidth += add
		totalWidth += add
	}
	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}
	return lines, nil
}
