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
// initial command of the recommendation notification workflow.
//
// Logic Flow:
//  1. The command receives the raw Pub/Sub message data as a JSON string from the context.
//  2. It unmarshals the string into a `model.RecommendationRequest`.
//  3. A request without a user id is rejected with an error.
//  4. The request is placed under the output parameter for the next command.
package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/cor"
	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/model"
)

// RecommendationRequestReader parses a recommendation request message.
type RecommendationRequestReader struct {
	cor.BaseCommand
}

// NewRecommendationRequestReader is the constructor for the RecommendationRequestReader command.
//
// Inputs:
//   - name: A string name for this command instance.
//
// Outputs:
//   - *RecommendationRequestReader: A pointer to the newly instantiated command.
func NewRecommendationRequestReader(name string) *RecommendationRequestReader {
	return &RecommendationRequestReader{BaseCommand: *cor.NewBaseCommand(name)}
}

// Execute parses the message payload.
func (c *RecommendationRequestReader) Execute(context cor.Context) {
	in, ok := cor.Value[string](context, c.GetInputParam())
	if !ok {
		c.Fail(context, fmt.Errorf("expected a string message payload"))
		return
	}

	var req model.RecommendationRequest
	if err := json.Unmarshal([]byte(in), &req); err != nil {
		c.Fail(context, fmt.Errorf("failed to unmarshal recommendation request: %w", err))
		return
	}
	req.UserId = strings.TrimSpace(req.UserId)
	if req.UserId == "" {
		c.Fail(context, fmt.Errorf("recommendation request has no user_id"))
		return
	}
	c.Succeed(context, &req)
}
