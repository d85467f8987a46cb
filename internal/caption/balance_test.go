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

func uniformWords(texts []string, width float64) []MeasuredWord {
	words := make([]MeasuredWord, len(texts))
	for i, t := range texts {
		words[i] = MeasuredWord{Text: t, Width: width}
	}
	return words
}

func TestBalanceEvensOutLines(t *testing.T) {
	// Greedy packing would put three words on the first line and leave the
	// rest ragged; balancing should split six equal words evenly.
	words := uniformWords([]string{"one", "two", "three", "four", "five", "six"}, 40)
	lines, err := Balance(words, 10, 150)
	if err != nil {
		t.Fatalf("Balance error: %v", err)
	}
	want := []string{"one two three", "four five six"}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("lines = %q, want %q", lines, want)
	}
}

func TestBalanceEstimate(t *testing.T) {
	words := uniformWords([]string{"one", "two", "three", "four", "five", "six"}, 40)
	n, avg := estimateLineCount(words, 10, 150)
	if n != 2 {
		t.Fatalf("estimated lines = %d, want 2", n)
	}
	if avg != 140 {
		t.Fatalf("average width = %v, want 140", avg)
	}
}

func TestBalanceLastLineAbsorbsRemainder(t *testing.T) {
	words := uniformWords([]string{"a", "b", "c", "d", "e"}, 60)
	lines, err := Balance(words, 10, 200)
	if err != nil {
		t.Fatalf("Balance error: %v", err)
	}
	// The soft limit fires once the running total passes the average, and
	// then stays suppressed on the final line.
	want := []string{"a b", "c d e"}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("lines = %q, want %q", lines, want)
	}
}

func TestBalancePreservesWordOrder(t *testing.T) {
	texts := []string{"pack", "my", "box", "with", "five", "dozen", "liquor", "jugs"}
	words := make([]MeasuredWord, len(texts))
	for i, txt := range texts {
		words[i] = MeasuredWord{Text: txt, Width: float64(12 * len(txt))}
	}
	lines, err := Balance(words, 8, 240)
	if err != nil {
		t.Fatalf("Balance error: %v", err)
	}
	if len(lines) == 0 {
		t.Fatalf("expected at least one line")
	}
	got := strings.Fields(strings.Join(lines, " "))
	if !reflect.DeepEqual(got, texts) {
		t.Fatalf("word sequence changed: %q vs %q", got, texts)
	}
}

func TestBalanceLineWidthsThreshold(t *testing.T) {
	texts := []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "eta"}
	byText := map[string]float64{}
	words := make([]MeasuredWord, len(texts))
	for i, txt := range texts {
		w := float64(9 * len(txt))
		byText[txt] = w
		words[i] = MeasuredWord{Text: txt, Width: w}
	}
	const space, maxWidth = 6.0, 130.0
	lines, err := Balance(words, space, maxWidth)
	if err != nil {
		t.Fatalf("Balance error: %v", err)
	}
	for _, line := range lines {
		parts := strings.Fields(line)
		var sum float64
		for _, p := range parts {
			sum += byText[p]
		}
		sum += float64(len(parts)-1) * space
		if len(parts) > 1 && sum > maxWidth {
			t.Fatalf("line %q width %v exceeds column %v", line, sum, maxWidth)
		}
	}
}

func TestBalanceSingleOverlongWord(t *testing.T) {
	// A word wider than the column lands alone on its own line and keeps
	// its overflow; callers rely on this, it must not error or truncate.
	words := []MeasuredWord{
		{Text: "pneumonoultramicroscopic", Width: 500},
		{Text: "dust", Width: 40},
	}
	lines, err := Balance(words, 10, 150)
	if err != nil {
		t.Fatalf("Balance error: %v", err)
	}
	want := []string{"pneumonoultramicroscopic", "dust"}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("lines = %q, want %q", lines, want)
	}
}

func TestBalanceSingleWord(t *testing.T) {
	lines, err := Balance([]MeasuredWord{{Text: "hi", Width: 20}}, 10, 150)
	if err != nil {
		t.Fatalf("Balance error: %v", err)
	}
	if len(lines) != 1 || lines[0] != "hi" {
		t.Fatalf("lines = %q", lines)
	}
}

func TestBalanceEmptyInput(t *testing.T) {
	if _, err := Balance(nil, 10, 150); !errors.Is(err, ErrEmptyCaption) {
		t.Fatalf("expected ErrEmptyCaption, got %v", err)
	}
}

func TestBalanceInvalidWidth(t *testing.T) {
	words := uniformWords([]string{"a"}, 10)
	if _, err := Balance(words, 10, 0); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if _, err := Balance(words, 10, -5); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig for negative width, got %v", err)
	}
}

func TestBalanceDeterministic(t *testing.T) {
	words := uniformWords([]string{"w1", "w2", "w3", "w4", "w5", "w6", "w7"}, 35)
	first, err := Balance(words, 9, 160)
	if err != nil {
		t.Fatalf("Balance error: %v", err)
	}
	second, err := Balance(words, 9, 160)
	if err != nil {
		t.Fatalf("Balance error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("balance not deterministic: %q vs %q", first, second)
	}
}
