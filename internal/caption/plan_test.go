/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package caption

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

// charMeasurer is a deterministic fixed-advance measurer for tests.
type charMeasurer struct {
	charWidth float64
	ascent    float64
	descent   float64
}

func (m charMeasurer) MeasureString(s string) (Measurement, error) {
	return Measurement{
		Width:   float64(len(s)) * m.charWidth,
		Ascent:  m.ascent,
		Descent: m.descent,
	}, nil
}

type failingMeasurer struct{ err error }

func (m failingMeasurer) MeasureString(string) (Measurement, error) {
	return Measurement{}, m.err
}

func TestPlanRoundTrip(t *testing.T) {
	m := charMeasurer{charWidth: 12, ascent: 16, descent: 4}
	cfg := DefaultConfig()
	text := "the quick brown fox jumps over the lazy dog"

	plan, err := Plan(text, m, cfg, 1200, 800)
	if err != nil {
		t.Fatalf("Plan error: %v", err)
	}
	if len(plan.Lines) == 0 {
		t.Fatalf("expected at least one line")
	}
	// All words come back, in order, no matter how they were split.
	var joined []string
	for _, ln := range plan.Lines {
		joined = append(joined, ln.Text)
	}
	got := strings.Fields(strings.Join(joined, " "))
	if !reflect.DeepEqual(got, strings.Fields(text)) {
		t.Fatalf("words not preserved: %q", got)
	}
	if plan.CanvasWidth <= 0 || plan.CanvasHeight <= 0 {
		t.Fatalf("degenerate canvas: %dx%d", plan.CanvasWidth, plan.CanvasHeight)
	}
}

func TestPlanWhitespaceCollapses(t *testing.T) {
	m := charMeasurer{charWidth: 10, ascent: 12, descent: 3}
	cfg := DefaultConfig()
	a, err := Plan("  hello   brave\tnew\n world ", m, cfg, 600, 400)
	if err != nil {
		t.Fatalf("Plan error: %v", err)
	}
	b, err := Plan("hello brave new world", m, cfg, 600, 400)
	if err != nil {
		t.Fatalf("Plan error: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("whitespace handling changed the plan:\n%+v\n%+v", a, b)
	}
}

func TestPlanRebalanceIsStable(t *testing.T) {
	m := charMeasurer{charWidth: 11, ascent: 14, descent: 4}
	cfg := DefaultConfig()
	text := "a reasonably long caption that will wrap across several balanced lines"

	plan, err := Plan(text, m, cfg, 1000, 750)
	if err != nil {
		t.Fatalf("Plan error: %v", err)
	}
	// Re-tokenizing the laid-out lines and balancing again must reproduce
	// the identical split.
	var joined []string
	for _, ln := range plan.Lines {
		joined = append(joined, ln.Text)
	}
	tokens := Tokenize(strings.Join(joined, " "))
	words, err := MeasureWords(m, tokens)
	if err != nil {
		t.Fatalf("MeasureWords error: %v", err)
	}
	space, _ := m.MeasureString(" ")
	again, err := Balance(words, space.Width, cfg.MaxTextWidth())
	if err != nil {
		t.Fatalf("Balance error: %v", err)
	}
	if !reflect.DeepEqual(again, joined) {
		t.Fatalf("rebalance drifted:\n%q\n%q", again, joined)
	}
}

func TestPlanEmptyCaption(t *testing.T) {
	m := charMeasurer{charWidth: 10, ascent: 12, descent: 3}
	if _, err := Plan("   \t\n  ", m, DefaultConfig(), 600, 400); !errors.Is(err, ErrEmptyCaption) {
		t.Fatalf("expected ErrEmptyCaption, got %v", err)
	}
}

func TestPlanMeasurerErrorPropagates(t *testing.T) {
	boom := errors.New("glyph not found")
	_, err := Plan("some text", failingMeasurer{err: boom}, DefaultConfig(), 600, 400)
	if !errors.Is(err, boom) {
		t.Fatalf("measurement failure not propagated: %v", err)
	}
}
