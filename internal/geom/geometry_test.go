/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package geom

import "testing"

func TestRectContains(t *testing.T) {
	r := R(10, 10, 20, 20)
	if !r.Contains(Pt{10, 10}) {
		t.Fatalf("min corner should be contained")
	}
	if r.Contains(Pt{30, 30}) {
		t.Fatalf("max corner is exclusive")
	}
	if r.Contains(Pt{9, 15}) {
		t.Fatalf("point left of rect should not be contained")
	}
}

func TestRectInsetAndUnion(t *testing.T) {
	r := R(0, 0, 100, 50).Inset(10, 5)
	if r != (Rect{10, 5, 80, 40}) {
		t.Fatalf("inset mismatch: %+v", r)
	}
	u := R(0, 0, 10, 10).Union(R(20, 20, 10, 10))
	if u != (Rect{0, 0, 30, 30}) {
		t.Fatalf("union mismatch: %+v", u)
	}
}

func TestRectOverlaps(t *testing.T) {
	a := R(0, 0, 10, 10)
	if !a.Overlaps(R(5, 5, 10, 10)) {
		t.Fatalf("expected overlap")
	}
	// Sharing only an edge is not an overlap.
	if a.Overlaps(R(10, 0, 10, 10)) {
		t.Fatalf("edge-adjacent rects must not overlap")
	}
	if a.Overlaps(Rect{}) {
		t.Fatalf("empty rect never overlaps")
	}
}
