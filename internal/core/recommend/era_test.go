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

package recommend_test

import (
	"testing"
	"time"

	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/recommend"
	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestClassifyEraBoundaries(t *testing.T) {
	classic := recommend.ClassifyEra(recommend.EraClassic)
	modern := recommend.ClassifyEra(recommend.EraModern)
	contemporary := recommend.ClassifyEra(recommend.EraContemporary)

	tests := []struct {
		date         string
		classic      bool
		modern       bool
		contemporary bool
	}{
		{"1900-06-01", true, false, false},
		{"1979-12-31", true, false, false},
		{"1980-01-01", false, true, false},
		{"2000-12-31", false, true, false},
		{"2001-01-01", false, false, true},
		{"2024-03-15", false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			d := day(tt.date)
			assert.Equal(t, tt.classic, classic.Contains(d))
			assert.Equal(t, tt.modern, modern.Contains(d))
			assert.Equal(t, tt.contemporary, contemporary.Contains(d))
		})
	}
}

func TestClassifyEraIgnoresTimeOfDay(t *testing.T) {
	lateEvening := time.Date(2000, time.December, 31, 23, 30, 0, 0, time.UTC)
	assert.True(t, recommend.ClassifyEra(recommend.EraModern).Contains(lateEvening))
	assert.False(t, recommend.ClassifyEra(recommend.EraContemporary).Contains(lateEvening))
}

func TestClassifyEraFallback(t *testing.T) {
	for _, label := range []string{"", "classic (before 1980)", "Modern", "Silent Era"} {
		r := recommend.ClassifyEra(label)
		assert.Equal(t, recommend.EarliestDate, r.Start, label)
		assert.Equal(t, recommend.LatestDate, r.End, label)
		assert.True(t, r.Contains(day("1920-01-01")), label)
		assert.True(t, r.Contains(day("2030-01-01")), label)
		assert.False(t, recommend.IsKnownEra(label), label)
	}
	assert.True(t, recommend.IsKnownEra(recommend.EraModern))
}
