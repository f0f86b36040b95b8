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

// Package model defines the core data structures for the application.
// This file, `transient.go`, contains the structures that only live for the
// duration of a single recommendation or filter call. They are built from the
// catalog and profile snapshots, passed between the pipeline stages and then
// discarded. Nothing in here is persisted.
package model

import (
	"slices"
	"time"
)

// These objects are used in memory by the recommendation engine, but are not persisted to the dataset

// MovieRecord is an immutable snapshot of a catalog movie for one call.
type MovieRecord struct {
	MovieId     int64     `json:"movie_id"`     // The unique catalog identifier of the movie.
	Title       string    `json:"title"`        // The display title.
	Language    string    `json:"language"`     // The spoken language; empty when unknown.
	ReleaseDate time.Time `json:"release_date"` // The release date (UTC).
	Description string    `json:"description"`  // A short synopsis.
	Image       string    `json:"image"`        // The poster image reference (URL or gs:// URI).
	Genres      []string  `json:"genres"`       // The genre names the movie is tagged with.
	Rating      float64   `json:"rating"`       // The aggregate rating, see AggregateRating.
	ReviewCount int       `json:"review_count"` // The number of reviews behind Rating.
}

// HasAnyGenre reports whether the movie is tagged with at least one genre in the set.
func (m *MovieRecord) HasAnyGenre(genres GenreSet) bool {
	for _, g := range m.Genres {
		if genres.Contains(g) {
			return true
		}
	}
	return false
}

// UserSignal is the read-only view of a user's preferences and interaction
// history. The list fields are already parsed (see ParsePreferenceList), so
// every entry is trimmed, lower-cased and non-empty.
type UserSignal struct {
	UserId             string   // The profile identifier.
	PreferredLanguages []string // Preferred languages in declared order.
	FavoriteTitles     []string // Favourite titles declared at registration.
	EraPreference      string   // One of the era labels, or anything else for "no preference".
	SearchTerms        []string // Search history tokens.
	WatchedMovieIds    []int64  // Movies the user has already watched.
	ReviewedMovieIds   []int64  // Movies the user has reviewed.
}

// HasReviews reports whether the user has any review activity (warm start).
func (u *UserSignal) HasReviews() bool {
	return len(u.ReviewedMovieIds) > 0
}

// HasWatched reports whether the movie id is in the user's watched set.
func (u *UserSignal) HasWatched(movieId int64) bool {
	return slices.Contains(u.WatchedMovieIds, movieId)
}

// EraRange is a closed date interval. Both bounds are compared at calendar-day
// granularity, so a movie released at any time on End still matches.
type EraRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the range, bounds included.
func (r EraRange) Contains(t time.Time) bool {
	d := truncateToDay(t)
	return !d.Before(truncateToDay(r.Start)) && !d.After(truncateToDay(r.End))
}

func truncateToDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// GenreSet is a set of genre names. A nil or empty set means "no genre restriction".
type GenreSet map[string]struct{}

// NewGenreSet builds a set from the given names, ignoring empty names.
func NewGenreSet(names ...string) GenreSet {
	out := make(GenreSet, len(names))
	for _, n := range names {
		out.Add(n)
	}
	return out
}

// Add inserts a genre name into the set.
func (s GenreSet) Add(name string) {
	if name == "" {
		return
	}
	s[name] = struct{}{}
}

// Contains reports whether the genre name is in the set.
func (s GenreSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Names returns the genre names in sorted order.
func (s GenreSet) Names() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// ScoredCandidate is a candidate movie together with its score and the
// components that produced it. It is shared by both scoring policies: the
// personalized policy ranks on (SearchMatches, Rating) and leaves Score equal
// to Rating, while the filter policy ranks on Score = Rating + FavoriteBoost.
type ScoredCandidate struct {
	Movie         *MovieRecord
	Score         float64
	Rating        float64
	SearchMatches int
	FavoriteBoost float64
}

// CatalogCriteria carries the predicates a catalog reader may push down to its
// store. Readers are free to ignore any of them; the engine re-applies every
// filter in memory.
type CatalogCriteria struct {
	ExcludeMovieIds []int64   // Ids that must not be returned.
	Languages       []string  // Lower-cased languages; empty means any language.
	Era             *EraRange // Release date range; nil means unrestricted.
}
