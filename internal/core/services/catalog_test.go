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
	"errors"
	"testing"

	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/model"
	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/services"
	test "github.com/jaycherian/gcp-go-movie-recommender/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func previewIds(previews []*model.MoviePreview) []int64 {
	out := make([]int64, 0, len(previews))
	for _, p := range previews {
		out = append(out, p.MovieId)
	}
	return out
}

func TestCatalogService_Search(t *testing.T) {
	svc := &services.CatalogService{Store: newSeededStore(t)}
	ctx := context.Background()

	got, err := svc.Search(ctx, "g")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Groundhog Day", got[0].Title)
	assert.Equal(t, 1993, got[0].Year)
	assert.Equal(t, 5.0, got[0].Rating)
	assert.Equal(t, []string{"Comedy"}, got[0].Genres)

	_, err = svc.Search(ctx, "   ")
	assert.ErrorIs(t, err, model.ErrInvalidQuery)
}

func TestCatalogService_SearchLimit(t *testing.T) {
	svc := &services.CatalogService{Store: newSeededStore(t), SearchLimit: 1}
	got, err := svc.Search(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, []int64{test.MovieAlien}, previewIds(got))
}

func TestCatalogService_TopRated(t *testing.T) {
	svc := &services.CatalogService{Store: newSeededStore(t), TopRatedSize: 5}
	got, err := svc.TopRated(context.Background())
	require.NoError(t, err)
	// Heat and The Matrix tie on rating; Heat has more reviews.
	assert.Equal(t, []int64{
		test.MovieGroundhogDay,
		test.MovieHeat,
		test.MovieMatrix,
		test.MovieInception,
		test.MovieAlien,
	}, previewIds(got))
}

func TestCatalogService_TopRatedDefaultSize(t *testing.T) {
	catalog := test.NewFakeCatalog()
	for i := int64(1); i <= 12; i++ {
		catalog.Movies = append(catalog.Movies, test.NewMovie(i, "Movie", "English", "2001-01-01", float64(i)/4))
	}
	svc := &services.CatalogService{Store: test.NewFakeStore(catalog, test.NewFakeProfiles())}

	got, err := svc.TopRated(context.Background())
	require.NoError(t, err)
	assert.Len(t, got, services.DefaultTopRatedSize)
	assert.Equal(t, int64(12), got[0].MovieId)
}

func TestCatalogService_Genres(t *testing.T) {
	catalog := test.NewFakeCatalog(
		test.NewMovie(1, "A", "English", "2001-01-01", 0, "Western", "Drama"),
		test.NewMovie(2, "B", "English", "2001-01-01", 0, "Animation"),
	)
	svc := &services.CatalogService{Store: test.NewFakeStore(catalog, test.NewFakeProfiles())}

	got, err := svc.Genres(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Animation", "Drama", "Western"}, got)

	catalog.Err = errors.New("boom")
	_, err = svc.Genres(context.Background())
	assert.Error(t, err)
}

type prefixPosters struct{}

func (prefixPosters) Resolve(_ context.Context, ref string) string {
	return "signed:" + ref
}

func TestCatalogService_ResolvesPosters(t *testing.T) {
	svc := &services.CatalogService{Store: newSeededStore(t), Posters: prefixPosters{}}
	got, err := svc.Search(context.Background(), "amelie")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "signed:gs://posters/amelie.jpg", got[0].Image)
}
