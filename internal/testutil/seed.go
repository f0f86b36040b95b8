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

package test

import (
	"testing"
	"time"

	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/model"
	"gorm.io/gorm"
)

// Fixture user ids.
const (
	// UserWarm reviewed Heat and Groundhog Day, watched Five and prefers
	// contemporary movies. Expected candidates: Seven, Amelie, Inception.
	UserWarm = "user-warm"
	// UserCold has no reviews, prefers English modern movies and declared
	// The Matrix as a favourite. Expected candidates: Heat, The Matrix.
	UserCold = "user-cold"
	// UserEmpty has no preferences and no history.
	UserEmpty = "user-empty"
	// UserCritic only writes reviews.
	UserCritic = "critic"
)

// Fixture movie ids.
const (
	MovieHeat         int64 = 1
	MovieGroundhogDay int64 = 2
	MovieMatrix       int64 = 3
	MovieAlien        int64 = 4
	MovieFive         int64 = 5
	MovieSeven        int64 = 7
	MovieNine         int64 = 9
	MovieAmelie       int64 = 10
	MovieInception    int64 = 11
)

// SeedCatalog inserts the fixture catalog into db.
//
// Aggregate ratings: Groundhog Day 5.0 (1 review), Heat 4.5 (2), The Matrix
// 4.5 (1), Inception 4.0 (1), Alien 3.0 (1); every other movie is unrated.
func SeedCatalog(t testing.TB, db *gorm.DB) {
	t.Helper()

	genres := map[string]*model.Genre{}
	for i, name := range []string{"Drama", "Comedy", "Horror", "Sci-Fi", "Action"} {
		g := &model.Genre{GenreID: int64(i + 1), Name: name}
		genres[name] = g
		must(t, db.Create(g).Error)
	}

	movie := func(id int64, title string, language string, released string, image string, names ...string) {
		d, err := time.Parse(time.DateOnly, released)
		must(t, err)
		m := &model.Movie{
			MovieID:     id,
			Title:       title,
			Language:    language,
			ReleaseDate: d,
			Description: title + " description",
			Image:       image,
		}
		for _, n := range names {
			m.Genres = append(m.Genres, *genres[n])
		}
		must(t, db.Create(m).Error)
	}
	movie(MovieHeat, "Heat", "English", "1995-12-15", "/images/heat.jpg", "Drama", "Action")
	movie(MovieGroundhogDay, "Groundhog Day", "English", "1993-02-12", "/images/groundhog.jpg", "Comedy")
	movie(MovieMatrix, "The Matrix", "English", "1999-03-31", "/images/matrix.jpg", "Sci-Fi", "Action")
	movie(MovieAlien, "Alien", "English", "1979-05-25", "/images/alien.jpg", "Horror", "Sci-Fi")
	movie(MovieFive, "Five", "English", "2010-05-01", "/images/five.jpg", "Drama")
	movie(MovieSeven, "Seven", "English", "2015-05-01", "/images/seven.jpg", "Comedy")
	movie(MovieNine, "Nine", "English", "2012-05-01", "/images/nine.jpg", "Horror")
	movie(MovieAmelie, "Amelie", "French", "2001-04-25", "gs://posters/amelie.jpg", "Comedy")
	movie(MovieInception, "Inception", "English", "2010-07-16", "https://cdn.example.com/inception.jpg", "Sci-Fi", "Action")

	users := []*model.User{
		{ID: UserWarm, FullName: "Warm Start", FavoriteMovies: "Alien", MovieEraPreference: "Contemporary (2000-Present)"},
		{ID: UserCold, FullName: "Cold Start", PreferredLanguages: "English", FavoriteMovies: " the matrix , Unknown Film", MovieEraPreference: "Modern (1980-2000)", SearchHistory: "matrix"},
		{ID: UserEmpty, FullName: "Empty Profile"},
		{ID: UserCritic, FullName: "Critic"},
	}
	must(t, db.Create(users).Error)

	reviews := []*model.Review{
		{UserID: UserWarm, MovieID: MovieHeat, Rating: 4, Comment: "tense"},
		{UserID: UserWarm, MovieID: MovieGroundhogDay, Rating: 5, Comment: "again"},
		{UserID: UserCritic, MovieID: MovieHeat, Rating: 5},
		{UserID: UserCritic, MovieID: MovieMatrix, Rating: 4.5},
		{UserID: UserCritic, MovieID: MovieAlien, Rating: 3},
		{UserID: UserCritic, MovieID: MovieInception, Rating: 4},
	}
	must(t, db.Create(reviews).Error)

	must(t, db.Create(&model.WatchedMovie{UserID: UserWarm, MovieID: MovieFive, WatchedDate: time.Now().UTC()}).Error)
}

func must(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("failed to seed catalog: %v", err)
	}
}
