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

package recommend

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/model"
)

// SignalSource names where a favourite-genre set came from.
type SignalSource string

const (
	// SignalWarmStart means the genres came from the user's reviewed movies.
	SignalWarmStart SignalSource = "warm_start"
	// SignalColdStart means the genres came from the declared favourite titles.
	SignalColdStart SignalSource = "cold_start"
	// SignalNone means no signal was available and no genre restriction applies.
	SignalNone SignalSource = "none"
)

// ExtractFavoriteGenres derives the user's favourite genres.
//
// Review activity is the stronger signal and takes precedence unconditionally:
// when the user has reviewed anything, the genres of the reviewed movies are
// used even if favourite titles were also declared. Only a user without
// reviews falls back to the favourite titles, which are matched exactly and
// case-insensitively against the catalog. With neither, the set is empty.
//
// Inputs:
//   - ctx: The request context.
//   - catalog: The catalog used for the id and title lookups.
//   - signal: The user's parsed signal.
//
// Outputs:
//   - model.GenreSet: The favourite genres, possibly empty.
//   - SignalSource: Which tier produced the set.
//   - error: A wrapped catalog error, if a lookup failed.
func ExtractFavoriteGenres(ctx context.Context, catalog CatalogReader, signal *model.UserSignal) (model.GenreSet, SignalSource, error) {
	if signal.HasReviews() {
		movies, err := catalog.FindMoviesByIds(ctx, signal.ReviewedMovieIds)
		if err != nil {
			return nil, SignalWarmStart, fmt.Errorf("failed to read reviewed movies: %w", err)
		}
		reviewed := make([]*model.MovieRecord, 0, len(movies))
		for _, m := range movies {
			if slices.Contains(signal.ReviewedMovieIds, m.MovieId) {
				reviewed = append(reviewed, m)
			}
		}
		return GenresOf(reviewed), SignalWarmStart, nil
	}

	if len(signal.FavoriteTitles) > 0 {
		movies, err := catalog.FindMoviesByTitles(ctx, signal.FavoriteTitles)
		if err != nil {
			return nil, SignalColdStart, fmt.Errorf("failed to read favourite titles: %w", err)
		}
		return GenresOf(MatchTitles(movies, signal.FavoriteTitles)), SignalColdStart, nil
	}

	return model.NewGenreSet(), SignalNone, nil
}

// MatchTitles keeps the movies whose title equals, ignoring case, one of the
// given lower-cased titles.
func MatchTitles(movies []*model.MovieRecord, titles []string) []*model.MovieRecord {
	out := make([]*model.MovieRecord, 0, len(movies))
	for _, m := range movies {
		if slices.Contains(titles, strings.ToLower(m.Title)) {
			out = append(out, m)
		}
	}
	return out
}

// GenresOf returns the union of the genres of the given movies.
func GenresOf(movies []*model.MovieRecord) model.GenreSet {
	out := model.NewGenreSet()
	for _, m := range movies {
		for _, g := range m.Genres {
			out.Add(g)
		}
	}
	return out
}
