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

package services

import (
	"context"

	"github.com/jaycherian/gcp-go-movie-recommender/internal/cloud"
	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/model"
)

// QuotaAwareStore is a decorator that makes every read wait for the quota
// before reaching the wrapped store.
type QuotaAwareStore struct {
	wrapped Store
	quota   *cloud.QuotaLimiter
}

// NewQuotaAwareStore wraps store with quota.
func NewQuotaAwareStore(store Store, quota *cloud.QuotaLimiter) *QuotaAwareStore {
	return &QuotaAwareStore{wrapped: store, quota: quota}
}

func (q *QuotaAwareStore) ReadCatalog(ctx context.Context, criteria model.CatalogCriteria) ([]*model.MovieRecord, error) {
	if err := q.quota.Wait(ctx); err != nil {
		return nil, err
	}
	return q.wrapped.ReadCatalog(ctx, criteria)
}

func (q *QuotaAwareStore) FindMoviesByIds(ctx context.Context, ids []int64) ([]*model.MovieRecord, error) {
	if err := q.quota.Wait(ctx); err != nil {
		return nil, err
	}
	return q.wrapped.FindMoviesByIds(ctx, ids)
}

func (q *QuotaAwareStore) FindMoviesByTitles(ctx context.Context, titles []string) ([]*model.MovieRecord, error) {
	if err := q.quota.Wait(ctx); err != nil {
		return nil, err
	}
	return q.wrapped.FindMoviesByTitles(ctx, titles)
}

func (q *QuotaAwareStore) ListGenres(ctx context.Context) ([]string, error) {
	if err := q.quota.Wait(ctx); err != nil {
		return nil, err
	}
	return q.wrapped.ListGenres(ctx)
}

func (q *QuotaAwareStore) SearchByTitlePrefix(ctx context.Context, prefix string, limit int) ([]*model.MovieRecord, error) {
	if err := q.quota.Wait(ctx); err != nil {
		return nil, err
	}
	return q.wrapped.SearchByTitlePrefix(ctx, prefix, limit)
}

func (q *QuotaAwareStore) ReadUserSignal(ctx context.Context, userId string) (*model.UserSignal, error) {
	if err := q.quota.Wait(ctx); err != nil {
		return nil, err
	}
	return q.wrapped.ReadUserSignal(ctx, userId)
}
