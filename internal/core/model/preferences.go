// Copyright 2024 Google, LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package model

import (
	"math"
	"strings"
)

// PreferenceSeparator delimits list-valued preference fields in storage.
const PreferenceSeparator = ","

// ParsePreferenceList splits a comma-delimited preference field into trimmed,
// lower-cased, non-empty entries. Input that does not decompose into any entry
// (empty, whitespace, only separators) yields an empty list rather than an error.
//
// Inputs:
//   - raw: The stored field value, e.g. "English, French".
//
// Outputs:
//   - []string: The parsed entries, e.g. ["english", "french"].
func ParsePreferenceList(raw string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(raw, PreferenceSeparator) {
		v := strings.ToLower(strings.TrimSpace(part))
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}

// AggregateRating is the arithmetic mean of the given review ratings rounded
// to one decimal place (halves away from zero). It is 0 when there are no
// reviews.
func AggregateRating(ratings []float64) float64 {
	if len(ratings) == 0 {
		return 0
	}
	var sum float64
	for _, r := range ratings {
		sum += r
	}
	return RoundRating(sum / float64(len(ratings)))
}

// RoundRating rounds a rating to one decimal place, halves to even.
func RoundRating(v float64) float64 {
	return math.RoundToEven(v*10) / 10
}
