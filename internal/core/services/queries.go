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

// Package services contains the business logic for interacting with data sources.
// This file, `queries.go`, centralizes the BigQuery SQL used by BigQueryStore.
// Table names are injected with `fmt.Sprintf` verbs; every value that comes
// from a request is passed as a named query parameter instead.
package services

const (
	// QryMovieSelect reads denormalized movie rows. The genre names are
	// aggregated into an array and the rating is the unrounded review
	// average, 0 when there are no reviews. MovieRow.ToRecord rounds it.
	//
	// Placeholders:
	// - `%[1]s`: movies table.
	// - `%[2]s`: movie_genres table.
	// - `%[3]s`: genres table.
	// - `%[4]s`: reviews table.
	QryMovieSelect = "SELECT m.movie_id, m.title, IFNULL(m.language, '') AS language, " +
		"CAST(m.release_date AS TIMESTAMP) AS release_date, " +
		"IFNULL(m.description, '') AS description, IFNULL(m.image, '') AS image, " +
		"ARRAY(SELECT g.name FROM `%[2]s` mg JOIN `%[3]s` g ON g.genre_id = mg.genre_id WHERE mg.movie_id = m.movie_id ORDER BY g.name) AS genres, " +
		"IFNULL((SELECT AVG(r.rating) FROM `%[4]s` r WHERE r.movie_id = m.movie_id), 0) AS rating, " +
		"(SELECT COUNT(*) FROM `%[4]s` r WHERE r.movie_id = m.movie_id) AS review_count " +
		"FROM `%[1]s` m"

	// Predicates appended to QryMovieSelect.
	PredExcludeIds   = "m.movie_id NOT IN UNNEST(@exclude_ids)"
	PredLanguages    = "LOWER(m.language) IN UNNEST(@languages)"
	PredEra          = "CAST(m.release_date AS TIMESTAMP) BETWEEN @era_start AND @era_end"
	PredIds          = "m.movie_id IN UNNEST(@ids)"
	PredTitles       = "LOWER(m.title) IN UNNEST(@titles)"
	PredTitlePrefix  = "STARTS_WITH(LOWER(m.title), @prefix)"
	OrderByMovieId   = " ORDER BY m.movie_id"
	OrderByTitle     = " ORDER BY m.title"
	LimitParamClause = " LIMIT @limit"

	// QryListGenres lists genre names.
	//
	// Placeholders:
	// - `%s`: genres table.
	QryListGenres = "SELECT name FROM `%s` ORDER BY name"

	// QryUserSignal reads one profile with its watched and reviewed movie ids.
	//
	// Placeholders:
	// - `%[1]s`: users table.
	// - `%[2]s`: watched_movies table.
	// - `%[3]s`: reviews table.
	QryUserSignal = "SELECT u.id, IFNULL(u.preferred_languages, '') AS preferred_languages, " +
		"IFNULL(u.favorite_movies, '') AS favorite_movies, " +
		"IFNULL(u.movie_era_preference, '') AS movie_era_preference, " +
		"IFNULL(u.search_history, '') AS search_history, " +
		"ARRAY(SELECT DISTINCT w.movie_id FROM `%[2]s` w WHERE w.user_id = u.id ORDER BY w.movie_id) AS watched_movie_ids, " +
		"ARRAY(SELECT DISTINCT r.movie_id FROM `%[3]s` r WHERE r.user_id = u.id ORDER BY r.movie_id) AS reviewed_movie_ids " +
		"FROM `%[1]s` u WHERE u.id = @user_id LIMIT 1"
)
