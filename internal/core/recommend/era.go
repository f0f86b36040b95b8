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

// Package recommend is the recommendation and filtering engine. It turns a
// user's stored preferences and interaction history, plus the movie catalog,
// into a ranked and bounded list of movies.
//
// The engine holds no state between calls. Every entry point receives its
// collaborators (a UserProfileReader and a CatalogReader) as parameters, reads
// from them sequentially and computes the result in memory:
//
//  1. EraClassifier maps the era preference label to an inclusive date range.
//  2. SignalExtractor derives the favourite genres from reviews (warm start)
//     or from the declared favourite titles (cold start).
//  3. CandidateFilter applies the watched, era, language and genre constraints.
//  4. Scorer computes the score components under one of two named policies.
//  5. Selector shortlists and samples (personalized) or truncates (filter).
package recommend

import (
	"time"

	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/model"
)

// The era preference labels. Matching is exact and case-sensitive.
const (
	EraClassic      = "Classic (Before 1980)"
	EraModern       = "Modern (1980-2000)"
	EraContemporary = "Contemporary (2000-Present)"
)

var (
	// EarliestDate is the lower bound of an unrestricted era.
	EarliestDate = time.Date(1, time.January, 1, 0, 0, 0, 0, time.UTC)
	// LatestDate is the upper bound of an unrestricted era.
	LatestDate = time.Date(9999, time.December, 31, 23, 59, 59, 999999999, time.UTC)
)

// ClassifyEra maps an era preference label to its date range. Unrecognized
// labels, including the empty string, fall back to the unrestricted range;
// this is a permissive default and never an error.
//
// Inputs:
//   - label: The era preference label as stored on the profile.
//
// Outputs:
//   - model.EraRange: The inclusive range of release dates for the label.
func ClassifyEra(label string) model.EraRange {
	switch label {
	case EraClassic:
		return model.EraRange{Start: EarliestDate, End: date(1979, time.December, 31)}
	case EraModern:
		return model.EraRange{Start: date(1980, time.January, 1), End: date(2000, time.December, 31)}
	case EraContemporary:
		return model.EraRange{Start: date(2001, time.January, 1), End: LatestDate}
	default:
		return model.EraRange{Start: EarliestDate, End: LatestDate}
	}
}

// IsKnownEra reports whether the label is one of the three restricting eras.
func IsKnownEra(label string) bool {
	switch label {
	case EraClassic, EraModern, EraContemporary:
		return true
	}
	return false
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
