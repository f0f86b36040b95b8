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
	"cmp"
	"math/rand/v2"
	"slices"

	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/model"
)

const (
	// DefaultShortlistSize bounds the personalized ranking before sampling.
	DefaultShortlistSize = 15
	// DefaultResultSize is the number of personalized results returned.
	DefaultResultSize = 10
	// DefaultFilterResultSize is the number of filter results returned.
	DefaultFilterResultSize = 10
)

// RankPersonalized sorts candidates by SearchMatches descending, then Rating
// descending. The sort is stable, so ties keep their catalog order.
func RankPersonalized(scored []*model.ScoredCandidate) {
	slices.SortStableFunc(scored, func(a, b *model.ScoredCandidate) int {
		if c := cmp.Compare(b.SearchMatches, a.SearchMatches); c != 0 {
			return c
		}
		return cmp.Compare(b.Rating, a.Rating)
	})
}

// RankByScore sorts candidates by Score descending. The sort is stable.
func RankByScore(scored []*model.ScoredCandidate) {
	slices.SortStableFunc(scored, func(a, b *model.ScoredCandidate) int {
		return cmp.Compare(b.Score, a.Score)
	})
}

// SelectPersonalized ranks the candidates, keeps the top shortlist entries,
// shuffles that shortlist uniformly and returns its first size entries. The
// input slice is reordered in place; the returned slice is a new slice.
//
// Inputs:
//   - scored: The candidates produced by ScorePersonalized.
//   - shortlist: The number of top ranked candidates eligible for sampling.
//   - size: The maximum number of results.
//   - rng: The source of randomness for the shuffle.
//
// Outputs:
//   - []*model.ScoredCandidate: At most size candidates, all from the shortlist.
func SelectPersonalized(scored []*model.ScoredCandidate, shortlist int, size int, rng *rand.Rand) []*model.ScoredCandidate {
	RankPersonalized(scored)
	pool := slices.Clone(scored[:min(shortlist, len(scored))])
	rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	return pool[:min(size, len(pool))]
}

// SelectTopScored ranks the candidates by score and returns the first size
// entries. The result is deterministic for a given input order.
func SelectTopScored(scored []*model.ScoredCandidate, size int) []*model.ScoredCandidate {
	RankByScore(scored)
	return slices.Clone(scored[:min(size, len(scored))])
}
