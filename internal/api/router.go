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

// Package api contains the HTTP route definitions of the server. Routes are
// registered on gin router groups under `/api/v1`.
//
// Files:
//   - router.go: Builds the gin engine with its middleware.
//   - movies.go: Recommendation, filter, search, top rated and genre routes.
//   - dashboard.go: Service statistics and health routes.
//   - middleware.go: The quota based rate limit middleware.
package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jaycherian/gcp-go-movie-recommender/internal/cloud"
	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/services"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Services bundles what the handlers need.
type Services struct {
	Recommendations *services.RecommendationService
	Catalog         *services.CatalogService
	Info            *ServiceInfo
	Quota           *cloud.QuotaLimiter // Applied to the recommendation and filter routes; nil disables it.
}

// NewRouter builds the gin engine with tracing, CORS and every route.
//
// Inputs:
//   - config: The loaded configuration.
//   - s: The services backing the handlers.
//
// Outputs:
//   - *gin.Engine: The configured engine, used as the http.Server handler.
func NewRouter(config *cloud.Config, s *Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(serviceName(config)))
	r.Use(corsMiddleware(config.Application.AllowedOrigins))

	apiV1 := r.Group("/api/v1")
	{
		MovieRouter(apiV1, s)
		GenreRouter(apiV1, s)
		Dashboard(apiV1, s.Info)
	}
	return r
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		return cors.Default()
	}
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

func serviceName(config *cloud.Config) string {
	if config.Application.Name == "" {
		return "movie-recommender"
	}
	return config.Application.Name
}
