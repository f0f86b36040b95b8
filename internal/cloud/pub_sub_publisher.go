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

package cloud

import (
	"context"
	"fmt"

	"cloud.google.com/go/pubsub"
)

// Publisher sends a message to a topic and returns the server assigned id.
type Publisher interface {
	Publish(ctx context.Context, data []byte, attributes map[string]string) (string, error)
}

// TopicPublisher publishes to a single Pub/Sub topic.
type TopicPublisher struct {
	topic *pubsub.Topic
}

// NewTopicPublisher creates a publisher for topicID.
func NewTopicPublisher(client *pubsub.Client, topicID string) *TopicPublisher {
	return &TopicPublisher{topic: client.Topic(topicID)}
}

// Publish sends data and blocks until the server acknowledges it.
func (p *TopicPublisher) Publish(ctx context.Context, data []byte, attributes map[string]string) (string, error) {
	result := p.topic.Publish(ctx, &pubsub.Message{Data: data, Attributes: attributes})
	id, err := result.Get(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to publish to %s: %w", p.topic.ID(), err)
	}
	return id, nil
}

// Stop flushes pending messages and releases the topic's goroutines.
func (p *TopicPublisher) Stop() {
	p.topic.Stop()
}
