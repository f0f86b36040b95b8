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
	"slices"
	"strings"

	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/model"
)

// DefaultFavoriteBoost is added to the rating of a movie named in the filter
// request's favourite list.
const DefaultFavoriteBoost = 1.5

// ScoringPolicy turns filtered candidates into scored candidates.
type ScoringPolicy interface {
	Score(candidates []*model.MovieRecord) []*model.ScoredCandidate
}

// PersonalizedPolicy ranks by search history matches, then rating.
type PersonalizedPolicy struct {
	SearchTerms []string
}

// Score implements ScoringPolicy.
func (p PersonalizedPolicy) Score(candidates []*model.MovieRecord) []*model.ScoredCandidate {
	return ScorePersonalized(candidates, p.SearchTerms)
}

// FilterPolicy adds Boost to the rating of the favourite titles.
type FilterPolicy struct {
	Favorites []string
	Boost     float64
}

// Score implements ScoringPolicy.
func (p FilterPolicy) Score(candidates []*model.MovieRecord) []*model.ScoredCandidate {
	return ScoreForFilter(candidates, p.Favorites, p.Boost)
}

// ScorePersonalized scores candidates for the personalized path. Each
// candidate gets its aggregate rating and the number of distinct search terms
// that occur, case-insensitively, as a substring of its title. Score equals
// Rating; the ranking key is (SearchMatches, Rating), see RankPersonalized.
func ScorePersonalized(candidates []*model.MovieRecord, searchTerms []string) []*model.ScoredCandidate {
	terms := distinct(searchTerms)
	out := make([]*model.ScoredCandidate, 0, len(candidates))
	for _, m := range candidates {
		out = append(out, &model.ScoredCandidate{
			Movie:         m,
			Score:         m.Rating,
			Rating:        m.Rating,
			SearchMatches: countSearchMatches(m.Title, terms),
		})
	}
	return out
}

// ScoreForFilter scores candidates for the explicit filter path. Score is the
// aggregate rating plus boost when the movie's lower-cased title equals one of
// the favourite titles.
func ScoreForFilter(candidates []*model.MovieRecord, favorites []string, boost float64) []*model.ScoredCandidate {
	titles := normalizeTitles(favorites)
	out := make([]*model.ScoredCandidate, 0, len(candidates))
	for _, m := range candidates {
		c := &model.ScoredCandidate{
			Movie:  m,
			Rating: m.Rating,
		}
		if slices.Contains(titles, strings.ToLower(m.Title)) {
			c.FavoriteBoost = boost
		}
		c.Score = c.Rating + c.FavoriteBoost
		out = append(out, c)
	}
	return out
}

func countSearchMatches(title string, terms []string) int {
	lower := strings.ToLower(title)
	n := 0
	for _, t := range terms {
		if strings.Contains(lower, t) {
			n++
		}
	}
	return n
}

func normalizeTitles(titles []string) []string {
	out := make([]string, 0, len(titles))
	for _, t := range titles {
		out = append(out, strings.ToLower(t))
	}
	return out
}

func distinct(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		v := strings.ToLower(strings.TrimSpace(t))
		if v == "" || slices.Contains(out, v) {
			continue
		}
		out = append(out, v)
	}
	return out
}
