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

// Package services contains the business logic for interacting with data sources.
// This file, `catalog.go`, defines the CatalogService, which serves the
// non-personalized browsing endpoints: title search, top rated and the genre list.
package services

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/model"
)

// DefaultTopRatedSize is the number of top rated movies returned when unset.
const DefaultTopRatedSize = 10

// CatalogService browses the catalog without a user.
type CatalogService struct {
	Store        CatalogStore   // The catalog backend.
	Posters      PosterResolver // Optional poster URL resolver.
	TopRatedSize int            // Number of top rated movies returned.
	SearchLimit  int            // Upper bound on search results; 0 means unlimited.
}

// Search returns the movies whose title starts with query, ignoring case.
//
// Inputs:
//   - ctx: The request context.
//   - query: The title prefix; blank queries are rejected.
//
// Outputs:
//   - []*model.MoviePreview: The matches ordered by title.
//   - error: model.ErrInvalidQuery for a blank query, or a wrapped store error.
func (s *CatalogService) Search(ctx context.Context, query string) ([]*model.MoviePreview, error) {
	if strings.TrimSpace(query) == "" {
		return nil, model.ErrInvalidQuery
	}
	movies, err := s.Store.SearchByTitlePrefix(ctx, strings.ToLower(query), s.SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search catalog: %w", err)
	}
	return s.previews(ctx, movies), nil
}

// TopRated returns the best rated movies, ranked by aggregate rating and then
// by review count.
func (s *CatalogService) TopRated(ctx context.Context) ([]*model.MoviePreview, error) {
	movies, err := s.Store.ReadCatalog(ctx, model.CatalogCriteria{})
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	slices.SortStableFunc(movies, func(a, b *model.MovieRecord) int {
		if c := cmp.Compare(b.Rating, a.Rating); c != 0 {
			return c
		}
		return cmp.Compare(b.ReviewCount, a.ReviewCount)
	})
	size := s.TopRatedSize
	if size <= 0 {
		size = DefaultTopRatedSize
	}
	return s.previews(ctx, movies[:min(size, len(movies))]), nil
}

// Genres returns every genre name, sorted.
func (s *CatalogService) Genres(ctx context.Context) ([]string, error) {
	names, err := s.Store.ListGenres(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	slices.Sort(names)
	return names, nil
}

func (s *CatalogService) previews(ctx context.Context, movies []*model.MovieRecord) []*model.MoviePreview {
	out := make([]*model.MoviePreview, 0, len(movies))
	for _, m := range movies {
		p := model.NewMoviePreview(m)
		p.Image = resolvePoster(ctx, s.Posters, p.Image)
		out = append(out, p)
	}
	return out
}

func resolvePoster(ctx context.Context, posters PosterResolver, ref string) string {
	if posters == nil {
		return ref
	}
	return posters.Resolve(ctx, ref)
}
