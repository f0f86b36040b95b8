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
	"errors"
	"fmt"
	"strings"

	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/model"
	"gorm.io/gorm"
)

// SQLStore reads the catalog and the profiles from the relational schema
// described by the gorm rows in the model package.
//
// The watched exclusion and the language filter are pushed down to SQL. The
// era filter is left to the engine, which compares dates at day granularity
// independent of how the driver stores timestamps.
type SQLStore struct {
	DB *gorm.DB
}

// NewSQLStore creates a store over db.
func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{DB: db}
}

func (s *SQLStore) movies(ctx context.Context) *gorm.DB {
	return s.DB.WithContext(ctx).
		Model(&model.Movie{}).
		Preload("Genres", func(db *gorm.DB) *gorm.DB { return db.Order("name") }).
		Preload("Reviews")
}

func (s *SQLStore) find(q *gorm.DB) ([]*model.MovieRecord, error) {
	var rows []*model.Movie
	if err := q.Order("movie_id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*model.MovieRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ToRecord())
	}
	return out, nil
}

// ReadCatalog returns the movies matching the pushed down criteria.
func (s *SQLStore) ReadCatalog(ctx context.Context, criteria model.CatalogCriteria) ([]*model.MovieRecord, error) {
	q := s.movies(ctx)
	if len(criteria.ExcludeMovieIds) > 0 {
		q = q.Where("movie_id NOT IN ?", criteria.ExcludeMovieIds)
	}
	if len(criteria.Languages) > 0 {
		q = q.Where("LOWER(language) IN ?", criteria.Languages)
	}
	out, err := s.find(q)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return out, nil
}

func (s *SQLStore) FindMoviesByIds(ctx context.Context, ids []int64) ([]*model.MovieRecord, error) {
	if len(ids) == 0 {
		return []*model.MovieRecord{}, nil
	}
	out, err := s.find(s.movies(ctx).Where("movie_id IN ?", ids))
	if err != nil {
		return nil, fmt.Errorf("failed to read movies by id: %w", err)
	}
	return out, nil
}

func (s *SQLStore) FindMoviesByTitles(ctx context.Context, titles []string) ([]*model.MovieRecord, error) {
	if len(titles) == 0 {
		return []*model.MovieRecord{}, nil
	}
	out, err := s.find(s.movies(ctx).Where("LOWER(title) IN ?", titles))
	if err != nil {
		return nil, fmt.Errorf("failed to read movies by title: %w", err)
	}
	return out, nil
}

func (s *SQLStore) ListGenres(ctx context.Context) ([]string, error) {
	names := make([]string, 0)
	if err := s.DB.WithContext(ctx).Model(&model.Genre{}).Order("name").Pluck("name", &names).Error; err != nil {
		return nil, fmt.Errorf("failed to list genres: %w", err)
	}
	return names, nil
}

func (s *SQLStore) SearchByTitlePrefix(ctx context.Context, prefix string, limit int) ([]*model.MovieRecord, error) {
	pattern := escapeLike(strings.ToLower(prefix)) + "%"
	q := s.movies(ctx).Where("LOWER(title) LIKE ? ESCAPE '\\'", pattern).Order("title")
	if limit > 0 {
		q = q.Limit(limit)
	}
	out, err := s.find(q)
	if err != nil {
		return nil, fmt.Errorf("failed to search titles: %w", err)
	}
	return out, nil
}

// ReadUserSignal loads the profile row and the watched and reviewed movie ids.
func (s *SQLStore) ReadUserSignal(ctx context.Context, userId string) (*model.UserSignal, error) {
	db := s.DB.WithContext(ctx)

	var user model.User
	if err := db.Where("id = ?", userId).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", userId, model.ErrProfileNotFound)
		}
		return nil, fmt.Errorf("failed to read user %s: %w", userId, err)
	}

	watched := make([]int64, 0)
	if err := db.Model(&model.WatchedMovie{}).Where("user_id = ?", userId).Distinct().Order("movie_id").Pluck("movie_id", &watched).Error; err != nil {
		return nil, fmt.Errorf("failed to read watched movies of %s: %w", userId, err)
	}
	reviewed := make([]int64, 0)
	if err := db.Model(&model.Review{}).Where("user_id = ?", userId).Distinct().Order("movie_id").Pluck("movie_id", &reviewed).Error; err != nil {
		return nil, fmt.Errorf("failed to read reviewed movies of %s: %w", userId, err)
	}
	return user.ToSignal(watched, reviewed), nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
