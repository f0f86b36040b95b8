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

package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/model"
)

// Error bodies returned by the handlers.
const (
	MsgUserNotFound   = "User not found."
	MsgInvalidBody    = "Invalid request body."
	MsgInvalidQuery   = "Query parameter is required."
	MsgInternalError  = "Internal server error."
	MsgTooManyRequest = "Too many requests."
)

// MovieRouter registers the `/movies` routes.
//
// Routes:
//   - GET  /movies/recommended/:userId
//   - POST /movies/filter
//   - GET  /movies/search?query=
//   - GET  /movies/toprated
func MovieRouter(r *gin.RouterGroup, s *Services) {
	movies := r.Group("/movies")
	{
		movies.GET("/recommended/:userId", RateLimit(s.Quota), func(c *gin.Context) {
			userId := c.Param("userId")
			out, err := s.Recommendations.Recommend(c.Request.Context(), userId)
			if errors.Is(err, model.ErrProfileNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": MsgUserNotFound})
				return
			}
			if err != nil {
				internalError(c, "recommendation failed", err)
				return
			}
			c.JSON(http.StatusOK, out)
		})

		movies.POST("/filter", RateLimit(s.Quota), func(c *gin.Context) {
			var req model.FilterRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": MsgInvalidBody})
				return
			}
			out, err := s.Recommendations.Filter(c.Request.Context(), &req)
			if err != nil {
				internalError(c, "filter failed", err)
				return
			}
			c.JSON(http.StatusOK, out)
		})

		movies.GET("/search", func(c *gin.Context) {
			out, err := s.Catalog.Search(c.Request.Context(), c.Query("query"))
			if errors.Is(err, model.ErrInvalidQuery) {
				c.JSON(http.StatusBadRequest, gin.H{"error": MsgInvalidQuery})
				return
			}
			if err != nil {
				internalError(c, "search failed", err)
				return
			}
			c.JSON(http.StatusOK, out)
		})

		movies.GET("/toprated", func(c *gin.Context) {
			out, err := s.Catalog.TopRated(c.Request.Context())
			if err != nil {
				internalError(c, "top rated failed", err)
				return
			}
			c.JSON(http.StatusOK, out)
		})
	}
}

// GenreRouter registers `GET /genres`.
func GenreRouter(r *gin.RouterGroup, s *Services) {
	r.GET("/genres", func(c *gin.Context) {
		out, err := s.Catalog.Genres(c.Request.Context())
		if err != nil {
			internalError(c, "listing genres failed", err)
			return
		}
		c.JSON(http.StatusOK, out)
	})
}

func internalError(c *gin.Context, msg string, err error) {
	slog.ErrorContext(c.Request.Context(), msg, "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": MsgInternalError})
}
