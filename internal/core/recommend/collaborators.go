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

	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/model"
)

// CatalogReader is the read side of the external movie store. Every returned
// record carries its genre names and aggregate rating.
type CatalogReader interface {
	// ReadCatalog returns the catalog movies. The criteria may be pushed down
	// to the store, but a reader that ignores them is still correct because
	// the engine re-applies every filter in memory.
	ReadCatalog(ctx context.Context, criteria model.CatalogCriteria) ([]*model.MovieRecord, error)

	// FindMoviesByIds returns the movies with the given ids.
	FindMoviesByIds(ctx context.Context, ids []int64) ([]*model.MovieRecord, error)

	// FindMoviesByTitles returns the movies whose lower-cased title equals one
	// of the given lower-cased titles.
	FindMoviesByTitles(ctx context.Context, titles []string) ([]*model.MovieRecord, error)

	// ListGenres returns every genre name in the catalog.
	ListGenres(ctx context.Context) ([]string, error)
}

// UserProfileReader is the read side of the external profile store.
type UserProfileReader interface {
	// ReadUserSignal returns the parsed preferences and history of a user, or
	// an error wrapping model.ErrProfileNotFound when the id is unknown.
	ReadUserSignal(ctx context.Context, userId string) (*model.UserSignal, error)
}
