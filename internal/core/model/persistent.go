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

// Package model defines the core data structures for the application.
// This file, `persistent.go`, contains the row shapes of the external catalog
// and profile stores. The `gorm` tagged structs map the relational schema
// (movies, genres, movie_genres, reviews, watched_movies, users). The
// `bigquery` tagged structs map the denormalized rows produced by the BigQuery
// queries. Both are converted into the transient pipeline types before the
// engine sees them.
package model

import (
	"time"
)

// Movie is a catalog movie row.
type Movie struct {
	MovieID     int64     `gorm:"column:movie_id;primaryKey"`
	Title       string    `gorm:"column:title;index"`
	Duration    string    `gorm:"column:duration"`
	Image       string    `gorm:"column:image"`
	Language    string    `gorm:"column:language"`
	ReleaseDate time.Time `gorm:"column:release_date"`
	Description string    `gorm:"column:description"`
	Country     string    `gorm:"column:country"`
	Director    string    `gorm:"column:director"`
	CastMembers string    `gorm:"column:cast_members"`

	Genres  []Genre  `gorm:"many2many:movie_genres;joinForeignKey:MovieID;joinReferences:GenreID"`
	Reviews []Review `gorm:"foreignKey:MovieID;references:MovieID"`
}

// Genre is a genre row.
type Genre struct {
	GenreID int64  `gorm:"column:genre_id;primaryKey"`
	Name    string `gorm:"column:name;uniqueIndex"`
}

// Review is a user's rating of a movie.
type Review struct {
	ReviewID  int64     `gorm:"column:review_id;primaryKey"`
	Comment   string    `gorm:"column:comment"`
	Rating    float64   `gorm:"column:rating"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UserID    string    `gorm:"column:user_id;index"`
	MovieID   int64     `gorm:"column:movie_id;index"`
}

// WatchedMovie records that a user has watched a movie.
type WatchedMovie struct {
	WatchedMovieID int64     `gorm:"column:watched_movie_id;primaryKey"`
	WatchedDate    time.Time `gorm:"column:watched_date"`
	UserID         string    `gorm:"column:user_id;index"`
	MovieID        int64     `gorm:"column:movie_id;index"`
}

// User holds the preference fields of a profile. The list-valued fields are
// stored comma-delimited.
type User struct {
	ID                 string `gorm:"column:id;primaryKey"`
	FullName           string `gorm:"column:full_name"`
	PreferredLanguages string `gorm:"column:preferred_languages"`
	FavoriteMovies     string `gorm:"column:favorite_movies"`
	MovieEraPreference string `gorm:"column:movie_era_preference"`
	SearchHistory      string `gorm:"column:search_history"`
}

// PersistentModels lists every relational row type, in migration order.
func PersistentModels() []interface{} {
	return []interface{}{&Genre{}, &Movie{}, &Review{}, &WatchedMovie{}, &User{}}
}

// ToRecord converts a movie row, with its Genres and Reviews preloaded, into
// the transient record used by the engine.
func (m *Movie) ToRecord() *MovieRecord {
	genres := make([]string, 0, len(m.Genres))
	for _, g := range m.Genres {
		genres = append(genres, g.Name)
	}
	ratings := make([]float64, 0, len(m.Reviews))
	for _, r := range m.Reviews {
		ratings = append(ratings, r.Rating)
	}
	return &MovieRecord{
		MovieId:     m.MovieID,
		Title:       m.Title,
		Language:    m.Language,
		ReleaseDate: m.ReleaseDate.UTC(),
		Description: m.Description,
		Image:       m.Image,
		Genres:      genres,
		Rating:      AggregateRating(ratings),
		ReviewCount: len(ratings),
	}
}

// ToSignal parses the stored preference fields of the user into a UserSignal.
//
// Inputs:
//   - watched: The ids of the movies the user has watched.
//   - reviewed: The ids of the movies the user has reviewed.
//
// Outputs:
//   - *UserSignal: The parsed, read-only signal.
func (u *User) ToSignal(watched []int64, reviewed []int64) *UserSignal {
	return &UserSignal{
		UserId:             u.ID,
		PreferredLanguages: ParsePreferenceList(u.PreferredLanguages),
		FavoriteTitles:     ParsePreferenceList(u.FavoriteMovies),
		EraPreference:      u.MovieEraPreference,
		SearchTerms:        ParsePreferenceList(u.SearchHistory),
		WatchedMovieIds:    nonNilIds(watched),
		ReviewedMovieIds:   nonNilIds(reviewed),
	}
}

// MovieRow is a denormalized movie row read from BigQuery. The aggregate
// rating and review count are computed by the query.
type MovieRow struct {
	MovieId     int64     `bigquery:"movie_id"`
	Title       string    `bigquery:"title"`
	Language    string    `bigquery:"language"`
	ReleaseDate time.Time `bigquery:"release_date"`
	Description string    `bigquery:"description"`
	Image       string    `bigquery:"image"`
	Genres      []string  `bigquery:"genres"`
	Rating      float64   `bigquery:"rating"`
	ReviewCount int64     `bigquery:"review_count"`
}

// ToRecord converts the BigQuery row into the transient record.
func (r *MovieRow) ToRecord() *MovieRecord {
	return &MovieRecord{
		MovieId:     r.MovieId,
		Title:       r.Title,
		Language:    r.Language,
		ReleaseDate: r.ReleaseDate.UTC(),
		Description: r.Description,
		Image:       r.Image,
		Genres:      r.Genres,
		Rating:      RoundRating(r.Rating),
		ReviewCount: int(r.ReviewCount),
	}
}

// UserRow is a user profile row read from BigQuery, with the watched and
// reviewed ids aggregated into arrays by the query.
type UserRow struct {
	Id                 string  `bigquery:"id"`
	PreferredLanguages string  `bigquery:"preferred_languages"`
	FavoriteMovies     string  `bigquery:"favorite_movies"`
	MovieEraPreference string  `bigquery:"movie_era_preference"`
	SearchHistory      string  `bigquery:"search_history"`
	WatchedMovieIds    []int64 `bigquery:"watched_movie_ids"`
	ReviewedMovieIds   []int64 `bigquery:"reviewed_movie_ids"`
}

// ToSignal converts the BigQuery row into a UserSignal.
func (r *UserRow) ToSignal() *UserSignal {
	u := &User{
		ID:                 r.Id,
		PreferredLanguages: r.PreferredLanguages,
		FavoriteMovies:     r.FavoriteMovies,
		MovieEraPreference: r.MovieEraPreference,
		SearchHistory:      r.SearchHistory,
	}
	return u.ToSignal(r.WatchedMovieIds, r.ReviewedMovieIds)
}

func nonNilIds(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
