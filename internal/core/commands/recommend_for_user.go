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

// Package commands provides the concrete implementations of the Chain of
// Responsibility (COR) pattern's Command interface. This file defines the
// command that computes the recommendations of a request.
//
// Logic Flow:
//  1. It reads the `model.RecommendationRequest` produced by the previous command.
//  2. It asks the Recommender for the user's recommendations.
//  3. An unknown user halts the chain. This is not a failure: the message is
//     acknowledged and nothing is published.
//  4. Any other error is recorded so the message is redelivered.
//  5. On success it outputs a `model.RecommendationNotification` with a new request id.
package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/cor"
	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/model"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Recommender computes the personalized recommendations of a user.
type Recommender interface {
	Recommend(ctx context.Context, userId string) ([]*model.MoviePreview, error)
}

// RecommendForUser turns a request into a notification.
type RecommendForUser struct {
	cor.BaseCommand
	recommender Recommender
}

// NewRecommendForUser is the constructor for the RecommendForUser command.
//
// Inputs:
//   - name: A string name for this command instance.
//   - recommender: Usually the services.RecommendationService.
//
// Outputs:
//   - *RecommendForUser: A pointer to the newly instantiated command.
func NewRecommendForUser(name string, recommender Recommender) *RecommendForUser {
	return &RecommendForUser{BaseCommand: *cor.NewBaseCommand(name), recommender: recommender}
}

// Execute computes the recommendations.
func (c *RecommendForUser) Execute(context cor.Context) {
	req, ok := cor.Value[*model.RecommendationRequest](context, c.GetInputParam())
	if !ok {
		c.Fail(context, fmt.Errorf("expected a recommendation request"))
		return
	}
	trace.SpanFromContext(context.GetContext()).SetAttributes(attribute.String("user.id", req.UserId))

	movies, err := c.recommender.Recommend(context.GetContext(), req.UserId)
	if errors.Is(err, model.ErrProfileNotFound) {
		context.Halt(fmt.Sprintf("user %s not found", req.UserId))
		return
	}
	if err != nil {
		c.Fail(context, fmt.Errorf("failed to recommend for %s: %w", req.UserId, err))
		return
	}

	c.Succeed(context, &model.RecommendationNotification{
		RequestId: uuid.NewString(),
		UserId:    req.UserId,
		Movies:    movies,
	})
}
