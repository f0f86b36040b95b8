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

package model_test

import (
	"testing"
	"time"

	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/model"
	"github.com/stretchr/testify/assert"
)

func TestAggregateRating(t *testing.T) {
	tests := []struct {
		name    string
		ratings []float64
		want    float64
	}{
		{name: "no reviews", ratings: nil, want: 0},
		{name: "four and five", ratings: []float64{4, 5}, want: 4.5},
		{name: "rounds to one decimal", ratings: []float64{4, 4, 5}, want: 4.3},
		{name: "midpoint rounds down to even", ratings: []float64{1, 1, 1, 2}, want: 1.2},
		{name: "midpoint below three", ratings: []float64{3, 3, 3, 4}, want: 3.2},
		{name: "midpoint below four", ratings: []float64{4, 4, 4, 5}, want: 4.2},
		{name: "midpoint rounds up to even", ratings: []float64{1, 2, 2, 2}, want: 1.8},
		{name: "rounds down", ratings: []float64{4, 5, 5, 5, 5, 5}, want: 4.8},
		{name: "single review", ratings: []float64{2}, want: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.AggregateRating(tt.ratings))
		})
	}
}

func TestParsePreferenceList(t *testing.T) {
	assert.Equal(t, []string{"english", "hindi"}, model.ParsePreferenceList("English, Hindi"))
	assert.Equal(t, []string{}, model.ParsePreferenceList(""))
	assert.Equal(t, []string{}, model.ParsePreferenceList(" , ,"))
	assert.Equal(t, []string{"the lord of the rings"}, model.ParsePreferenceList("  The Lord of the Rings  "))
}

// TestEraRangeContains checks that both bounds are inclusive at day
// granularity, including a release timestamp late on the final day.
func TestEraRangeContains(t *testing.T) {
	r := model.EraRange{
		Start: time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2000, 12, 31, 0, 0, 0, 0, time.UTC),
	}

	assert.True(t, r.Contains(time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, r.Contains(time.Date(2000, 12, 31, 23, 30, 0, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(1979, 12, 31, 0, 0, 0, 0, time.UTC)))
	assert.False(t, r.Contains(time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestGenreSet(t *testing.T) {
	s := model.NewGenreSet("Drama", "Comedy", "", "Drama")

	assert.Len(t, s, 2)
	assert.True(t, s.Contains("Drama"))
	assert.False(t, s.Contains("drama"))
	assert.Equal(t, []string{"Comedy", "Drama"}, s.Names())

	movie := &model.MovieRecord{Genres: []string{"Horror", "Comedy"}}
	assert.True(t, movie.HasAnyGenre(s))
	assert.False(t, movie.HasAnyGenre(model.NewGenreSet("Western")))
}
