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

// Package cloud provides components for interacting with Google Cloud services.
// This file defines a reusable Pub/Sub message listener that delegates message
// processing to a cor.Command.
//
// Logic Flow:
//  1. An instance of PubSubListener is created with a client and a subscription ID.
//  2. A command is attached to the listener once the workflows are built.
//  3. `Listen` starts a goroutine that receives messages until its context ends.
//  4. Each message runs the command in a fresh cor.Context with the payload under CtxIn.
//  5. The message is acknowledged when the command records no error, including
//     when it halts early. Otherwise it is left unacknowledged so Pub/Sub
//     redelivers it after the acknowledgement deadline.
package cloud

import (
	"context"
	"log/slog"

	"cloud.google.com/go/pubsub"
	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/cor"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// PubSubListener connects a subscription to a processing command.
type PubSubListener struct {
	client       *pubsub.Client       // The client for interacting with the Pub/Sub service.
	subscription *pubsub.Subscription // The subscription this listener pulls messages from.
	command      cor.Command          // The command executed for each message.
}

// NewPubSubListener creates a listener for subscriptionID.
//
// Inputs:
//   - pubsubClient: An authenticated *pubsub.Client.
//   - subscriptionID: The string ID of the subscription (e.g., "recommendation-requests-sub").
//   - command: The command run for each message; may be nil and set later with SetCommand.
//
// Outputs:
//   - *PubSubListener: The configured listener.
//   - error: Always nil; kept for symmetry with the other constructors.
func NewPubSubListener(
	pubsubClient *pubsub.Client,
	subscriptionID string,
	command cor.Command,
) (cmd *PubSubListener, err error) {
	cmd = &PubSubListener{
		client:       pubsubClient,
		subscription: pubsubClient.Subscription(subscriptionID),
		command:      command,
	}
	return cmd, nil
}

// SetCommand attaches a command, unless one is already attached.
func (m *PubSubListener) SetCommand(command cor.Command) {
	if m.command == nil {
		m.command = command
	}
}

// Listen starts receiving messages in a background goroutine. Receiving stops
// when ctx is canceled.
func (m *PubSubListener) Listen(ctx context.Context) {
	slog.InfoContext(ctx, "listening", "subscription", m.subscription.String())

	go func() {
		err := m.subscription.Receive(ctx, func(msgCtx context.Context, msg *pubsub.Message) {
			if HandleMessage(msgCtx, m.command, msg.ID, msg.Data) {
				msg.Ack()
			}
		})
		if err != nil {
			slog.ErrorContext(ctx, "error receiving data", "subscription", m.subscription.String(), "error", err)
		}
	}()
}

// HandleMessage runs command for one message payload and reports whether the
// message should be acknowledged.
//
// Inputs:
//   - ctx: The context of the received message.
//   - command: The workflow to run.
//   - messageId: The Pub/Sub message id, recorded on the span.
//   - data: The message payload.
//
// Outputs:
//   - bool: True when the command recorded no error.
func HandleMessage(ctx context.Context, command cor.Command, messageId string, data []byte) bool {
	tracer := otel.Tracer("message-listener")
	spanCtx, span := tracer.Start(ctx, "receive-message")
	defer span.End()
	span.SetAttributes(attribute.String("messaging.message.id", messageId))

	if command == nil {
		span.SetStatus(codes.Error, "no command attached")
		slog.ErrorContext(spanCtx, "no command attached to listener", "message_id", messageId)
		return false
	}

	chainCtx := cor.NewContextWithInput(spanCtx, string(data))
	command.Execute(chainCtx)

	if chainCtx.HasErrors() {
		span.SetStatus(codes.Error, "failed")
		for name, e := range chainCtx.GetErrors() {
			slog.ErrorContext(spanCtx, "error executing chain", "command", name, "message_id", messageId, "error", e)
		}
		return false
	}
	if halted, reason := chainCtx.IsHalted(); halted {
		slog.InfoContext(spanCtx, "message handled without result", "message_id", messageId, "reason", reason)
	}
	span.SetStatus(codes.Ok, "success")
	return true
}
