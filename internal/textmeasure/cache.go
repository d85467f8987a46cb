/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package textmeasure

import (
	"sync"

	"gocaptioner/internal/caption"
)

// CachedMeasurer memoizes measurements keyed by the exact text. One instance
// is bound to one font/size configuration (its wrapped measurer), so entries
// never need invalidation. Errors are not cached; a failing glyph lookup is
// retried on the next call.
type CachedMeasurer struct {
	next caption.Measurer

	mu      sync.RWMutex
	entries map[string]caption.Measurement
}

// Cached wraps m with memoization. Captions measure each word once and each
// assembled line once; repeated captions through the same measurer hit the
// cache entirely.
func Cached(m caption.Measurer) *CachedMeasurer {
	return &CachedMeasurer{next: m, entries: make(map[string]caption.Measurement)}
}

func (c *CachedMeasurer) MeasureString(s string) (caption.Measurement, error) {
	c.mu.RLock()
	mm, ok := c.entries[s]
	c.mu.RUnlock()
	if ok {
		return mm, nil
	}
	mm, err := c.next.MeasureString(s)
	if err != nil {
		return caption.Measurement{}, err
	}
	c.mu.Lock()
	c.entries[s] = mm
	c.mu.Unlock()
	return mm, nil
}

// Len reports the number of cached entries.
func (c *CachedMeasurer) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
