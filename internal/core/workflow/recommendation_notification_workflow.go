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

// Package workflow defines the high-level business logic orchestrations,
// combining various commands into coherent pipelines. This file implements the
// workflow that answers recommendation request messages.
package workflow

import (
	"github.com/jaycherian/gcp-go-movie-recommender/internal/cloud"
	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/commands"
	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/cor"
)

// RecommendationNotificationWorkflow reads a `{"user_id": "..."}` request,
// computes the user's recommendations and publishes them as a
// model.RecommendationNotification. It is attached to the Pub/Sub listener of
// the RecommendationRequests subscription.
type RecommendationNotificationWorkflow struct {
	cor.BaseCommand
	recommender commands.Recommender
	publisher   cloud.Publisher
	chain       cor.Chain
}

// Execute runs the underlying command chain.
func (w *RecommendationNotificationWorkflow) Execute(context cor.Context) {
	w.chain.Execute(context)
}

func (w *RecommendationNotificationWorkflow) initializeChain() {
	out := cor.NewBaseChain(w.GetName())
	// Step 1: Parse the request message.
	out.AddCommand(commands.NewRecommendationRequestReader("recommendation-request-reader"))
	// Step 2: Compute the recommendations; unknown users halt here.
	out.AddCommand(commands.NewRecommendForUser("recommend-for-user", w.recommender))
	// Step 3: Publish the notification.
	out.AddCommand(commands.NewPublishNotification("publish-recommendations", w.publisher))
	w.chain = out
}

// NewRecommendationNotificationWorkflow is the constructor for the workflow.
//
// Inputs:
//   - recommender: Computes the recommendations, usually the RecommendationService.
//   - publisher: The notification topic.
//
// Returns:
//   - A pointer to a fully initialized RecommendationNotificationWorkflow.
func NewRecommendationNotificationWorkflow(recommender commands.Recommender, publisher cloud.Publisher) *RecommendationNotificationWorkflow {
	out := &RecommendationNotificationWorkflow{
		BaseCommand: *cor.NewBaseCommand("recommendation-notification-workflow"),
		recommender: recommender,
		publisher:   publisher,
	}
	out.initializeChain()
	return out
}
