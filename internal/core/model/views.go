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

package model

// MoviePreview is the list-view projection returned by the personalized
// recommendation, search and top rated endpoints.
type MoviePreview struct {
	MovieId     int64    `json:"movieId"`
	Title       string   `json:"title"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Year        int      `json:"year"`
	Rating      float64  `json:"rating"`
	Genres      []string `json:"genres"`
}

// FilteredMovie is the projection returned by the filter endpoint.
type FilteredMovie struct {
	MovieId     int64    `json:"movieId"`
	Title       string   `json:"title"`
	Image       string   `json:"image"`
	Description string   `json:"description"`
	Genres      []string `json:"genres"`
	Language    string   `json:"language"`
	Year        int      `json:"year"`
	Rating      float64  `json:"rating"`
	Score       float64  `json:"score"`
}

// FilterRequest is the body of a filter call. Every field is optional.
type FilterRequest struct {
	Genres         []string `json:"genres"`
	Language       string   `json:"language"`
	Era            string   `json:"era"`
	FavoriteMovies []string `json:"favoriteMovies"`
}

// RecommendationRequest is the payload of a recommendation request message.
type RecommendationRequest struct {
	UserId string `json:"user_id"`
}

// RecommendationNotification is published once recommendations have been
// computed for a request message.
type RecommendationNotification struct {
	RequestId string          `json:"request_id"`
	UserId    string          `json:"user_id"`
	Movies    []*MoviePreview `json:"movies"`
}

// NewMoviePreview projects a movie record into the list-view shape.
func NewMoviePreview(m *MovieRecord) *MoviePreview {
	return &MoviePreview{
		MovieId:     m.MovieId,
		Title:       m.Title,
		Image:       m.Image,
		Description: m.Description,
		Year:        m.ReleaseDate.Year(),
		Rating:      m.Rating,
		Genres:      nonNilGenres(m.Genres),
	}
}

// NewFilteredMovie projects a scored candidate into the filter result shape.
func NewFilteredMovie(c *ScoredCandidate) *FilteredMovie {
	m := c.Movie
	return &FilteredMovie{
		MovieId:     m.MovieId,
		Title:       m.Title,
		Image:       m.Image,
		Description: m.Description,
		Genres:      nonNilGenres(m.Genres),
		Language:    m.Language,
		Year:        m.ReleaseDate.Year(),
		Rating:      c.Rating,
		Score:       c.Score,
	}
}

func nonNilGenres(g []string) []string {
	if g == nil {
		return []string{}
	}
	return g
}
