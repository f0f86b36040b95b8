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
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/model"
)

// Engine runs the recommendation and filter pipelines. It holds only its
// tuning parameters, so one Engine may serve concurrent calls.
type Engine struct {
	shortlistSize    int
	resultSize       int
	filterResultSize int
	favoriteBoost    float64
	newRand          func() *rand.Rand
}

// Option configures an Engine.
type Option func(*Engine)

// WithShortlistSize sets the number of ranked candidates eligible for sampling.
func WithShortlistSize(n int) Option {
	return func(e *Engine) { e.shortlistSize = n }
}

// WithResultSize sets the number of personalized results.
func WithResultSize(n int) Option {
	return func(e *Engine) { e.resultSize = n }
}

// WithFilterResultSize sets the number of filter results.
func WithFilterResultSize(n int) Option {
	return func(e *Engine) { e.filterResultSize = n }
}

// WithFavoriteBoost sets the filter path favourite boost.
func WithFavoriteBoost(boost float64) Option {
	return func(e *Engine) { e.favoriteBoost = boost }
}

// WithRandSource replaces the per-call random generator factory. Tests use it
// to make the shortlist shuffle reproducible.
func WithRandSource(newRand func() *rand.Rand) Option {
	return func(e *Engine) { e.newRand = newRand }
}

// NewEngine creates an Engine with the default sizes, overridden by opts.
// Non-positive sizes are replaced by their defaults.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		shortlistSize:    DefaultShortlistSize,
		resultSize:       DefaultResultSize,
		filterResultSize: DefaultFilterResultSize,
		favoriteBoost:    DefaultFavoriteBoost,
		newRand:          defaultRand,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.shortlistSize <= 0 {
		e.shortlistSize = DefaultShortlistSize
	}
	if e.resultSize <= 0 {
		e.resultSize = DefaultResultSize
	}
	if e.filterResultSize <= 0 {
		e.filterResultSize = DefaultFilterResultSize
	}
	return e
}

// Recommend computes the personalized recommendations for a user.
//
// Inputs:
//   - ctx: The request context.
//   - profiles: The profile store.
//   - catalog: The catalog store.
//   - userId: The profile identifier.
//
// Outputs:
//   - []*model.ScoredCandidate: Up to the result size candidates; empty, not
//     nil, when nothing matches.
//   - error: Wraps model.ErrProfileNotFound for an unknown user, or a store error.
func (e *Engine) Recommend(ctx context.Context, profiles UserProfileReader, catalog CatalogReader, userId string) ([]*model.ScoredCandidate, error) {
	signal, err := profiles.ReadUserSignal(ctx, userId)
	if err != nil {
		return nil, err
	}
	return e.RecommendForSignal(ctx, catalog, signal)
}

// RecommendForSignal runs the personalized pipeline for an already loaded signal.
func (e *Engine) RecommendForSignal(ctx context.Context, catalog CatalogReader, signal *model.UserSignal) ([]*model.ScoredCandidate, error) {
	genres, source, err := ExtractFavoriteGenres(ctx, catalog, signal)
	if err != nil {
		return nil, err
	}
	era := ClassifyEra(signal.EraPreference)
	slog.DebugContext(ctx, "candidate constraints", "user_id", signal.UserId, "constraints", Explain(signal, source, genres))

	movies, err := catalog.ReadCatalog(ctx, model.CatalogCriteria{
		ExcludeMovieIds: signal.WatchedMovieIds,
		Languages:       signal.PreferredLanguages,
		Era:             &era,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	candidates := FilterCandidates(movies, signal, era, genres)
	scored := PersonalizedPolicy{SearchTerms: signal.SearchTerms}.Score(candidates)
	return SelectPersonalized(scored, e.shortlistSize, e.resultSize, e.newRand()), nil
}

// Filter runs the explicit filter pipeline. It needs no user identity, does
// not exclude watched movies and is deterministic for a given catalog order.
//
// Inputs:
//   - ctx: The request context.
//   - catalog: The catalog store.
//   - req: The filter request; every field is optional.
//
// Outputs:
//   - []*model.ScoredCandidate: Up to the filter result size candidates, by score.
//   - error: A wrapped catalog error.
func (e *Engine) Filter(ctx context.Context, catalog CatalogReader, req *model.FilterRequest) ([]*model.ScoredCandidate, error) {
	criteria := model.CatalogCriteria{}
	if lang := normalizeLanguage(req.Language); lang != "" {
		criteria.Languages = []string{lang}
	}
	if IsKnownEra(req.Era) {
		era := ClassifyEra(req.Era)
		criteria.Era = &era
	}

	movies, err := catalog.ReadCatalog(ctx, criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	candidates := FilterByRequest(movies, req)
	scored := FilterPolicy{Favorites: req.FavoriteMovies, Boost: e.favoriteBoost}.Score(candidates)
	return SelectTopScored(scored, e.filterResultSize), nil
}

// Explain returns a short description of how a user's candidate pool is
// constrained. It is used in structured log records.
func Explain(signal *model.UserSignal, source SignalSource, genres model.GenreSet) string {
	return fmt.Sprintf("source=%s genres=[%s] languages=[%s] era=%q watched=%d",
		source,
		strings.Join(genres.Names(), ","),
		strings.Join(signal.PreferredLanguages, ","),
		signal.EraPreference,
		len(signal.WatchedMovieIds))
}

func defaultRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
