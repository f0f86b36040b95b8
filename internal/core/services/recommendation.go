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
// This file, `recommendation.go`, defines the RecommendationService, which
// wraps the recommendation engine with tracing, metrics and logging and
// projects its results into the response shapes.
package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jaycherian/gcp-go-movie-recommender/internal/cloud"
	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/model"
	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/recommend"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// RecommendationService serves personalized recommendations and filtered
// catalog views.
type RecommendationService struct {
	Engine   *recommend.Engine           // The stateless engine.
	Catalog  recommend.CatalogReader     // The catalog backend.
	Profiles recommend.UserProfileReader // The profile backend.
	Posters  PosterResolver              // Optional poster URL resolver.

	tracer          trace.Tracer
	requestCounter  metric.Int64Counter
	emptyCounter    metric.Int64Counter
	notFoundCounter metric.Int64Counter
	errorCounter    metric.Int64Counter
}

// NewRecommendationService creates the service and its telemetry instruments.
//
// Inputs:
//   - engine: The recommendation engine.
//   - store: The backend serving both the catalog and the profiles.
//   - posters: Optional poster resolver; nil keeps stored references.
//
// Outputs:
//   - *RecommendationService: The service.
func NewRecommendationService(engine *recommend.Engine, store Store, posters PosterResolver) *RecommendationService {
	meter := otel.Meter(cloud.MeterName)
	counter := func(name string, description string) metric.Int64Counter {
		c, err := meter.Int64Counter(name, metric.WithDescription(description))
		if err != nil {
			slog.Warn("failed to create counter", "counter", name, "error", err)
		}
		return c
	}
	return &RecommendationService{
		Engine:          engine,
		Catalog:         store,
		Profiles:        store,
		Posters:         posters,
		tracer:          otel.Tracer("recommendation-service"),
		requestCounter:  counter("recommendations.requests", "Recommendation and filter requests"),
		emptyCounter:    counter("recommendations.empty", "Requests that produced no movies"),
		notFoundCounter: counter("recommendations.user_not_found", "Recommendation requests for unknown users"),
		errorCounter:    counter("recommendations.errors", "Requests that failed on a store error"),
	}
}

// Recommend computes the personalized recommendations for userId.
//
// Outputs:
//   - []*model.MoviePreview: Up to the result size previews; empty when nothing matches.
//   - error: Wraps model.ErrProfileNotFound for an unknown user, or a store error.
func (s *RecommendationService) Recommend(ctx context.Context, userId string) ([]*model.MoviePreview, error) {
	ctx, span := s.tracer.Start(ctx, "recommend")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", userId))
	s.add(ctx, s.requestCounter, "recommend")

	scored, err := s.Engine.Recommend(ctx, s.Profiles, s.Catalog, userId)
	if err != nil {
		if errors.Is(err, model.ErrProfileNotFound) {
			s.add(ctx, s.notFoundCounter, "recommend")
			span.SetStatus(codes.Error, "user not found")
			slog.InfoContext(ctx, "recommendation for unknown user", "user_id", userId)
			return nil, err
		}
		s.add(ctx, s.errorCounter, "recommend")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.ErrorContext(ctx, "recommendation failed", "user_id", userId, "error", err)
		return nil, err
	}

	out := make([]*model.MoviePreview, 0, len(scored))
	for _, c := range scored {
		p := model.NewMoviePreview(c.Movie)
		p.Image = resolvePoster(ctx, s.Posters, p.Image)
		out = append(out, p)
	}
	if len(out) == 0 {
		s.add(ctx, s.emptyCounter, "recommend")
	}
	span.SetAttributes(attribute.Int("result.count", len(out)))
	slog.InfoContext(ctx, "recommendations computed", "user_id", userId, "count", len(out))
	return out, nil
}

// Filter runs the explicit filter path for req.
func (s *RecommendationService) Filter(ctx context.Context, req *model.FilterRequest) ([]*model.FilteredMovie, error) {
	ctx, span := s.tracer.Start(ctx, "filter")
	defer span.End()
	span.SetAttributes(
		attribute.StringSlice("filter.genres", req.Genres),
		attribute.String("filter.language", req.Language),
		attribute.String("filter.era", req.Era))
	s.add(ctx, s.requestCounter, "filter")

	scored, err := s.Engine.Filter(ctx, s.Catalog, req)
	if err != nil {
		s.add(ctx, s.errorCounter, "filter")
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		slog.ErrorContext(ctx, "filter failed", "error", err)
		return nil, err
	}

	out := make([]*model.FilteredMovie, 0, len(scored))
	for _, c := range scored {
		f := model.NewFilteredMovie(c)
		f.Image = resolvePoster(ctx, s.Posters, f.Image)
		out = append(out, f)
	}
	if len(out) == 0 {
		s.add(ctx, s.emptyCounter, "filter")
	}
	span.SetAttributes(attribute.Int("result.count", len(out)))
	return out, nil
}

func (s *RecommendationService) add(ctx context.Context, c metric.Int64Counter, operation string) {
	if c != nil {
		c.Add(ctx, 1, metric.WithAttributes(attribute.String("operation", operation)))
	}
}
