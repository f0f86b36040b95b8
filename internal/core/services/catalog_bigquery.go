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
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/jaycherian/gcp-go-movie-recommender/internal/cloud"
	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/model"
	"google.golang.org/api/iterator"
)

// BigQueryTables holds the fully qualified names of the catalog tables.
type BigQueryTables struct {
	Movies      string
	Genres      string
	MovieGenres string
	Reviews     string
	Watched     string
	Users       string
}

// NewBigQueryTables resolves the configured table names against the client's
// project, e.g. `my-project.movies_ds.movies`.
func NewBigQueryTables(client *bigquery.Client, source cloud.BigQueryDataSource) BigQueryTables {
	fqn := func(table string) string {
		name := client.Dataset(source.DatasetName).Table(table).FullyQualifiedName()
		return strings.Replace(name, ":", ".", -1)
	}
	return BigQueryTables{
		Movies:      fqn(orDefault(source.MoviesTable, "movies")),
		Genres:      fqn(orDefault(source.GenresTable, "genres")),
		MovieGenres: fqn(orDefault(source.MovieGenresTable, "movie_genres")),
		Reviews:     fqn(orDefault(source.ReviewsTable, "reviews")),
		Watched:     fqn(orDefault(source.WatchedTable, "watched_movies")),
		Users:       fqn(orDefault(source.UsersTable, "users")),
	}
}

// Statement is a query text with its named parameters.
type Statement struct {
	SQL    string
	Params []bigquery.QueryParameter
}

func (t BigQueryTables) movieSelect(predicates []string, params []bigquery.QueryParameter, suffix string) Statement {
	sql := fmt.Sprintf(QryMovieSelect, t.Movies, t.MovieGenres, t.Genres, t.Reviews)
	if len(predicates) > 0 {
		sql += " WHERE " + strings.Join(predicates, " AND ")
	}
	return Statement{SQL: sql + suffix, Params: params}
}

// CatalogStatement builds the catalog read with every criterion pushed down.
// Empty criteria add no predicate.
func (t BigQueryTables) CatalogStatement(criteria model.CatalogCriteria) Statement {
	var predicates []string
	var params []bigquery.QueryParameter
	if len(criteria.ExcludeMovieIds) > 0 {
		predicates = append(predicates, PredExcludeIds)
		params = append(params, bigquery.QueryParameter{Name: "exclude_ids", Value: criteria.ExcludeMovieIds})
	}
	if len(criteria.Languages) > 0 {
		predicates = append(predicates, PredLanguages)
		params = append(params, bigquery.QueryParameter{Name: "languages", Value: criteria.Languages})
	}
	if criteria.Era != nil {
		start, end := eraBounds(*criteria.Era)
		predicates = append(predicates, PredEra)
		params = append(params,
			bigquery.QueryParameter{Name: "era_start", Value: start},
			bigquery.QueryParameter{Name: "era_end", Value: end})
	}
	return t.movieSelect(predicates, params, OrderByMovieId)
}

// IdsStatement reads the movies with the given ids.
func (t BigQueryTables) IdsStatement(ids []int64) Statement {
	return t.movieSelect([]string{PredIds}, []bigquery.QueryParameter{{Name: "ids", Value: ids}}, OrderByMovieId)
}

// TitlesStatement reads the movies whose lower-cased title is in titles.
func (t BigQueryTables) TitlesStatement(titles []string) Statement {
	return t.movieSelect([]string{PredTitles}, []bigquery.QueryParameter{{Name: "titles", Value: titles}}, OrderByMovieId)
}

// PrefixStatement reads the movies whose lower-cased title starts with prefix.
func (t BigQueryTables) PrefixStatement(prefix string, limit int) Statement {
	params := []bigquery.QueryParameter{{Name: "prefix", Value: strings.ToLower(prefix)}}
	suffix := OrderByTitle
	if limit > 0 {
		suffix += LimitParamClause
		params = append(params, bigquery.QueryParameter{Name: "limit", Value: int64(limit)})
	}
	return t.movieSelect([]string{PredTitlePrefix}, params, suffix)
}

// UserStatement reads one profile.
func (t BigQueryTables) UserStatement(userId string) Statement {
	return Statement{
		SQL:    fmt.Sprintf(QryUserSignal, t.Users, t.Watched, t.Reviews),
		Params: []bigquery.QueryParameter{{Name: "user_id", Value: userId}},
	}
}

// eraBounds widens the range to whole days at microsecond precision, the
// resolution of a BigQuery TIMESTAMP.
func eraBounds(r model.EraRange) (time.Time, time.Time) {
	s := r.Start.UTC()
	e := r.End.UTC()
	start := time.Date(s.Year(), s.Month(), s.Day(), 0, 0, 0, 0, time.UTC)
	end := time.Date(e.Year(), e.Month(), e.Day(), 23, 59, 59, 999999000, time.UTC)
	return start, end
}

// BigQueryStore reads the catalog and the profiles from BigQuery. Every
// catalog criterion is pushed down.
type BigQueryStore struct {
	BigqueryClient *bigquery.Client
	Tables         BigQueryTables
}

// NewBigQueryStore creates a store over the configured dataset.
func NewBigQueryStore(client *bigquery.Client, source cloud.BigQueryDataSource) *BigQueryStore {
	return &BigQueryStore{BigqueryClient: client, Tables: NewBigQueryTables(client, source)}
}

func (s *BigQueryStore) query(ctx context.Context, st Statement) (*bigquery.RowIterator, error) {
	q := s.BigqueryClient.Query(st.SQL)
	q.Parameters = st.Params
	itr, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read from BigQuery: %w", err)
	}
	return itr, nil
}

func (s *BigQueryStore) readMovies(ctx context.Context, st Statement) ([]*model.MovieRecord, error) {
	itr, err := s.query(ctx, st)
	if err != nil {
		return nil, err
	}
	out := make([]*model.MovieRecord, 0)
	for {
		var r model.MovieRow
		err := itr.Next(&r)
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate results: %w", err)
		}
		out = append(out, r.ToRecord())
	}
	return out, nil
}

func (s *BigQueryStore) ReadCatalog(ctx context.Context, criteria model.CatalogCriteria) ([]*model.MovieRecord, error) {
	return s.readMovies(ctx, s.Tables.CatalogStatement(criteria))
}

func (s *BigQueryStore) FindMoviesByIds(ctx context.Context, ids []int64) ([]*model.MovieRecord, error) {
	if len(ids) == 0 {
		return []*model.MovieRecord{}, nil
	}
	return s.readMovies(ctx, s.Tables.IdsStatement(ids))
}

func (s *BigQueryStore) FindMoviesByTitles(ctx context.Context, titles []string) ([]*model.MovieRecord, error) {
	if len(titles) == 0 {
		return []*model.MovieRecord{}, nil
	}
	return s.readMovies(ctx, s.Tables.TitlesStatement(titles))
}

func (s *BigQueryStore) SearchByTitlePrefix(ctx context.Context, prefix string, limit int) ([]*model.MovieRecord, error) {
	return s.readMovies(ctx, s.Tables.PrefixStatement(prefix, limit))
}

func (s *BigQueryStore) ListGenres(ctx context.Context) ([]string, error) {
	itr, err := s.query(ctx, Statement{SQL: fmt.Sprintf(QryListGenres, s.Tables.Genres)})
	if err != nil {
		return nil, err
	}
	out := make([]string, 0)
	for {
		var row struct {
			Name string `bigquery:"name"`
		}
		err := itr.Next(&row)
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate results: %w", err)
		}
		out = append(out, row.Name)
	}
	return out, nil
}

func (s *BigQueryStore) ReadUserSignal(ctx context.Context, userId string) (*model.UserSignal, error) {
	itr, err := s.query(ctx, s.Tables.UserStatement(userId))
	if err != nil {
		return nil, err
	}
	var row model.UserRow
	err = itr.Next(&row)
	if errors.Is(err, iterator.Done) {
		return nil, fmt.Errorf("user %s: %w", userId, model.ErrProfileNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read user %s: %w", userId, err)
	}
	return row.ToSignal(), nil
}

func orDefault(v string, def string) string {
	if v == "" {
		return def
	}
	return v
}
