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
// command that publishes a recommendation notification.
package commands

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jaycherian/gcp-go-movie-recommender/internal/cloud"
	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/cor"
	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/model"
)

// Message attributes set on every notification.
const (
	AttrUserId    = "user_id"
	AttrRequestId = "request_id"
)

// PublishNotification publishes the notification as JSON and outputs the
// message id.
type PublishNotification struct {
	cor.BaseCommand
	publisher cloud.Publisher
}

// NewPublishNotification is the constructor for the PublishNotification command.
func NewPublishNotification(name string, publisher cloud.Publisher) *PublishNotification {
	return &PublishNotification{BaseCommand: *cor.NewBaseCommand(name), publisher: publisher}
}

// Execute publishes the notification.
func (c *PublishNotification) Execute(context cor.Context) {
	n, ok := cor.Value[*model.RecommendationNotification](context, c.GetInputParam())
	if !ok {
		c.Fail(context, fmt.Errorf("expected a recommendation notification"))
		return
	}

	data, err := json.Marshal(n)
	if err != nil {
		c.Fail(context, fmt.Errorf("failed to marshal notification: %w", err))
		return
	}
	id, err := c.publisher.Publish(context.GetContext(), data, map[string]string{
		AttrUserId:    n.UserId,
		AttrRequestId: n.RequestId,
	})
	if err != nil {
		c.Fail(context, err)
		return
	}
	slog.InfoContext(context.GetContext(), "published recommendations",
		"user_id", n.UserId, "request_id", n.RequestId, "message_id", id, "count", len(n.Movies))
	c.Succeed(context, id)
}
