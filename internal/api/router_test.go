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

package api_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jaycherian/gcp-go-movie-recommender/internal/api"
	"github.com/jaycherian/gcp-go-movie-recommender/internal/cloud"
	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/model"
	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/recommend"
	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/services"
	test "github.com/jaycherian/gcp-go-movie-recommender/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newServices(store services.Store) *api.Services {
	return &api.Services{
		Recommendations: services.NewRecommendationService(recommend.NewEngine(), store, nil),
		Catalog:         &services.CatalogService{Store: store},
		Info:            &api.ServiceInfo{Name: "movie-recommender", CatalogBackend: cloud.CatalogBackendSQL, Started: time.Now().Add(-time.Minute)},
	}
}

func newSeededRouter(t *testing.T) *gin.Engine {
	t.Helper()
	db := test.NewTestDB(t)
	test.SeedCatalog(t, db)
	return api.NewRouter(cloud.NewConfig(), newServices(services.NewSQLStore(db)))
}

func serve(r http.Handler, method string, path string, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestRecommended(t *testing.T) {
	r := newSeededRouter(t)

	w := serve(r, http.MethodGet, "/api/v1/movies/recommended/"+test.UserCold, "")
	require.Equal(t, http.StatusOK, w.Code)
	movies := decode[[]model.MoviePreview](t, w)
	got := make([]int64, 0, len(movies))
	for _, m := range movies {
		got = append(got, m.MovieId)
	}
	assert.ElementsMatch(t, []int64{test.MovieHeat, test.MovieMatrix}, got)
}

func TestRecommended_EmptyList(t *testing.T) {
	r := newSeededRouter(t)

	w := serve(r, http.MethodGet, "/api/v1/movies/recommended/"+test.UserEmpty, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestRecommended_UnknownUser(t *testing.T) {
	r := newSeededRouter(t)

	w := serve(r, http.MethodGet, "/api/v1/movies/recommended/nobody", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"User not found."}`, w.Body.String())
}

func TestRecommended_StoreError(t *testing.T) {
	signal := test.NewSignal("u1")
	signal.ReviewedMovieIds = []int64{1}
	catalog := test.NewFakeCatalog()
	catalog.Err = errors.New("connection refused")
	r := api.NewRouter(cloud.NewConfig(), newServices(test.NewFakeStore(catalog, test.NewFakeProfiles(signal))))

	w := serve(r, http.MethodGet, "/api/v1/movies/recommended/u1", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestRecommended_RateLimited(t *testing.T) {
	db := test.NewTestDB(t)
	test.SeedCatalog(t, db)
	s := newServices(services.NewSQLStore(db))
	s.Quota = cloud.NewQuotaLimiter("http", 1, 1)
	r := api.NewRouter(cloud.NewConfig(), s)

	first := serve(r, http.MethodGet, "/api/v1/movies/recommended/"+test.UserWarm, "")
	assert.Equal(t, http.StatusOK, first.Code)
	second := serve(r, http.MethodGet, "/api/v1/movies/recommended/"+test.UserWarm, "")
	assert.Equal(t, http.StatusTooManyRequests, second.Code)

	// Browsing routes are not limited.
	search := serve(r, http.MethodGet, "/api/v1/movies/toprated", "")
	assert.Equal(t, http.StatusOK, search.Code)
}

func TestFilter(t *testing.T) {
	r := newSeededRouter(t)

	w := serve(r, http.MethodPost, "/api/v1/movies/filter",
		`{"genres":["Sci-Fi"],"language":"english","favoriteMovies":["Inception"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	movies := decode[[]model.FilteredMovie](t, w)
	require.Len(t, movies, 3)
	assert.Equal(t, "Inception", movies[0].Title)
	assert.Equal(t, 5.5, movies[0].Score)
	assert.Equal(t, "The Matrix", movies[1].Title)
	assert.Equal(t, "Alien", movies[2].Title)
}

func TestFilter_EmptyRequest(t *testing.T) {
	r := newSeededRouter(t)

	w := serve(r, http.MethodPost, "/api/v1/movies/filter", `{}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]model.FilteredMovie](t, w), 9)
}

func TestFilter_MalformedBody(t *testing.T) {
	r := newSeededRouter(t)

	for _, body := range []string{`{"genres": "Drama"}`, `{`, ``} {
		w := serve(r, http.MethodPost, "/api/v1/movies/filter", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestSearch(t *testing.T) {
	r := newSeededRouter(t)

	w := serve(r, http.MethodGet, "/api/v1/movies/search?query=the%20m", "")
	require.Equal(t, http.StatusOK, w.Code)
	movies := decode[[]model.MoviePreview](t, w)
	require.Len(t, movies, 1)
	assert.Equal(t, "The Matrix", movies[0].Title)
	assert.Equal(t, 1999, movies[0].Year)

	blank := serve(r, http.MethodGet, "/api/v1/movies/search?query=%20", "")
	assert.Equal(t, http.StatusBadRequest, blank.Code)
	missing := serve(r, http.MethodGet, "/api/v1/movies/search", "")
	assert.Equal(t, http.StatusBadRequest, missing.Code)
}

func TestTopRated(t *testing.T) {
	r := newSeededRouter(t)

	w := serve(r, http.MethodGet, "/api/v1/movies/toprated", "")
	require.Equal(t, http.StatusOK, w.Code)
	movies := decode[[]model.MoviePreview](t, w)
	require.Len(t, movies, 9)
	assert.Equal(t, "Groundhog Day", movies[0].Title)
	assert.Equal(t, "Heat", movies[1].Title)
}

func TestGenres(t *testing.T) {
	r := newSeededRouter(t)

	w := serve(r, http.MethodGet, "/api/v1/genres", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["Action","Comedy","Drama","Horror","Sci-Fi"]`, w.Body.String())
}
