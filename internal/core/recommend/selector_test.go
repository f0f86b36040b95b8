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
	"math/rand/v2"
	"testing"

	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/model"
	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/recommend"
	test "github.com/jaycherian/gcp-go-movie-recommender/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func candidate(id int64, rating float64, matches int) *model.ScoredCandidate {
	return &model.ScoredCandidate{
		Movie:         test.NewMovie(id, "Movie", "English", "2010-01-01", rating),
		Rating:        rating,
		SearchMatches: matches,
		Score:         rating,
	}
}

func TestRankPersonalizedOrdering(t *testing.T) {
	scored := []*model.ScoredCandidate{
		candidate(1, 3.0, 0),
		candidate(2, 4.5, 0),
		candidate(3, 1.0, 2),
		candidate(4, 4.5, 0),
		candidate(5, 2.0, 1),
	}
	recommend.RankPersonalized(scored)
	assert.Equal(t, []int64{3, 5, 2, 4, 1}, candidateIds(scored))
}

func TestSelectPersonalizedSmallPool(t *testing.T) {
	scored := []*model.ScoredCandidate{candidate(1, 3.0, 0), candidate(2, 4.0, 0)}
	got := recommend.SelectPersonalized(scored, 15, 10, rand.New(rand.NewPCG(1, 2)))
	assert.ElementsMatch(t, []int64{1, 2}, candidateIds(got))

	none := recommend.SelectPersonalized([]*model.ScoredCandidate{}, 15, 10, rand.New(rand.NewPCG(1, 2)))
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestSelectTopScoredKeepsTiesInOrder(t *testing.T) {
	scored := []*model.ScoredCandidate{
		candidate(1, 4.0, 0),
		candidate(2, 5.0, 0),
		candidate(3, 4.0, 0),
		candidate(4, 3.0, 0),
	}
	got := recommend.SelectTopScored(scored, 3)
	assert.Equal(t, []int64{2, 1, 3}, candidateIds(got))
}
