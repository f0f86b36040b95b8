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
// This file, `store.go`, names the store contracts the services depend on. Two
// implementations exist: SQLStore over gorm (Postgres or sqlite) and
// BigQueryStore over the BigQuery client. Both serve the catalog and the
// profiles from the same backend.
package services

import (
	"context"

	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/model"
	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/recommend"
)

// CatalogStore is a catalog reader that can also search titles.
type CatalogStore interface {
	recommend.CatalogReader

	// SearchByTitlePrefix returns the movies whose lower-cased title starts
	// with the lower-cased prefix, ordered by title. A non-positive limit
	// returns every match.
	SearchByTitlePrefix(ctx context.Context, prefix string, limit int) ([]*model.MovieRecord, error)
}

// Store serves both the catalog and the user profiles.
type Store interface {
	CatalogStore
	recommend.UserProfileReader
}
