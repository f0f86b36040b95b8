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

package services_test

import (
	"context"
	"testing"

	"github.com/jaycherian/gcp-go-movie-recommender/internal/cloud"
	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/model"
	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/services"
	test "github.com/jaycherian/gcp-go-movie-recommender/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuotaAwareStore_PassesThrough(t *testing.T) {
	catalog := test.NewFakeCatalog(test.NewMovie(1, "Heat", "English", "1995-12-15", 4.5, "Drama"))
	store := services.NewQuotaAwareStore(
		test.NewFakeStore(catalog, test.NewFakeProfiles(test.NewSignal("u1"))),
		cloud.NewQuotaLimiter("catalog", 0, 0))
	ctx := context.Background()

	movies, err := store.ReadCatalog(ctx, model.CatalogCriteria{Languages: []string{"english"}})
	require.NoError(t, err)
	assert.Len(t, movies, 1)
	assert.Equal(t, []string{"english"}, catalog.LastCriteria.Languages)

	signal, err := store.ReadUserSignal(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", signal.UserId)

	found, err := store.SearchByTitlePrefix(ctx, "he", 0)
	require.NoError(t, err)
	assert.Len(t, found, 1)
}

func TestQuotaAwareStore_NilQuota(t *testing.T) {
	catalog := test.NewFakeCatalog(test.NewMovie(1, "Heat", "English", "1995-12-15", 4.5, "Drama"))
	store := services.NewQuotaAwareStore(test.NewFakeStore(catalog, test.NewFakeProfiles()), nil)

	genres, err := store.ListGenres(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Drama"}, genres)
}

func TestQuotaAwareStore_CancelledWait(t *testing.T) {
	catalog := test.NewFakeCatalog()
	store := services.NewQuotaAwareStore(
		test.NewFakeStore(catalog, test.NewFakeProfiles()),
		cloud.NewQuotaLimiter("catalog", 1, 1))

	_, err := store.ReadCatalog(context.Background(), model.CatalogCriteria{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = store.ReadCatalog(ctx, model.CatalogCriteria{})
	assert.Error(t, err)
	assert.Equal(t, 1, catalog.Reads)
}
