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

package commands_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/commands"
	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/cor"
	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/model"
	test "github.com/jaycherian/gcp-go-movie-recommender/internal/testutil"
	"github.com/zeebo/assert"
)

func TestRecommendationRequestReader(t *testing.T) {
	cmd := commands.NewRecommendationRequestReader("request-reader")

	chCtx := cor.NewContextWithInput(context.Background(), test.GetTestRecommendationRequestText())
	cmd.Execute(chCtx)
	assert.False(t, chCtx.HasErrors())
	req, ok := cor.Value[*model.RecommendationRequest](chCtx, cor.CtxOut)
	assert.True(t, ok)
	assert.Equal(t, test.UserWarm, req.UserId)
}

func TestRecommendationRequestReader_Rejects(t *testing.T) {
	for _, payload := range []string{`not json`, `{}`, `{"user_id": "  "}`} {
		cmd := commands.NewRecommendationRequestReader("request-reader")
		chCtx := cor.NewContextWithInput(context.Background(), payload)
		cmd.Execute(chCtx)
		assert.True(t, chCtx.HasErrors())
		assert.Nil(t, chCtx.Get(cor.CtxOut))
	}
}

type fakeRecommender struct {
	movies []*model.MoviePreview
	err    error
	users  []string
}

func (r *fakeRecommender) Recommend(_ context.Context, userId string) ([]*model.MoviePreview, error) {
	r.users = append(r.users, userId)
	return r.movies, r.err
}

func TestRecommendForUser(t *testing.T) {
	recommender := &fakeRecommender{movies: []*model.MoviePreview{{MovieId: 7, Title: "Seven"}}}
	cmd := commands.NewRecommendForUser("recommend", recommender)

	chCtx := cor.NewContextWithInput(context.Background(), &model.RecommendationRequest{UserId: "u1"})
	cmd.Execute(chCtx)
	assert.False(t, chCtx.HasErrors())
	n, ok := cor.Value[*model.RecommendationNotification](chCtx, cor.CtxOut)
	assert.True(t, ok)
	assert.Equal(t, "u1", n.UserId)
	assert.True(t, n.RequestId != "")
	assert.Equal(t, 1, len(n.Movies))
	assert.DeepEqual(t, []string{"u1"}, recommender.users)
}

func TestRecommendForUser_UnknownUserHalts(t *testing.T) {
	recommender := &fakeRecommender{err: fmt.Errorf("user u2: %w", model.ErrProfileNotFound)}
	cmd := commands.NewRecommendForUser("recommend", recommender)

	chCtx := cor.NewContextWithInput(context.Background(), &model.RecommendationRequest{UserId: "u2"})
	cmd.Execute(chCtx)
	assert.False(t, chCtx.HasErrors())
	halted, reason := chCtx.IsHalted()
	assert.True(t, halted)
	assert.Equal(t, "user u2 not found", reason)
	assert.Nil(t, chCtx.Get(cor.CtxOut))
}

func TestRecommendForUser_StoreError(t *testing.T) {
	cmd := commands.NewRecommendForUser("recommend", &fakeRecommender{err: errors.New("timeout")})

	chCtx := cor.NewContextWithInput(context.Background(), &model.RecommendationRequest{UserId: "u3"})
	cmd.Execute(chCtx)
	assert.True(t, chCtx.HasErrors())
	halted, _ := chCtx.IsHalted()
	assert.False(t, halted)
}

func TestPublishNotification(t *testing.T) {
	publisher := &test.FakePublisher{}
	cmd := commands.NewPublishNotification("publish", publisher)

	n := &model.RecommendationNotification{
		RequestId: "req-1",
		UserId:    "u1",
		Movies:    []*model.MoviePreview{{MovieId: 7, Title: "Seven", Genres: []string{"Comedy"}}},
	}
	chCtx := cor.NewContextWithInput(context.Background(), n)
	cmd.Execute(chCtx)
	assert.False(t, chCtx.HasErrors())
	assert.Equal(t, "message-1", chCtx.Get(cor.CtxOut))

	assert.Equal(t, 1, len(publisher.Messages))
	msg := publisher.Messages[0]
	assert.Equal(t, "u1", msg.Attributes[commands.AttrUserId])
	assert.Equal(t, "req-1", msg.Attributes[commands.AttrRequestId])

	var decoded model.RecommendationNotification
	assert.NoError(t, json.Unmarshal(msg.Data, &decoded))
	assert.DeepEqual(t, *n, decoded)
}

func TestPublishNotification_Error(t *testing.T) {
	publisher := &test.FakePublisher{Err: errors.New("topic not found")}
	cmd := commands.NewPublishNotification("publish", publisher)

	chCtx := cor.NewContextWithInput(context.Background(), &model.RecommendationNotification{UserId: "u1"})
	cmd.Execute(chCtx)
	assert.True(t, chCtx.HasErrors())
}
