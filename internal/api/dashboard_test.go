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

package api_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jaycherian/gcp-go-movie-recommender/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboard(t *testing.T) {
	r := gin.New()
	api.Dashboard(r.Group("/api/v1"), &api.ServiceInfo{
		Name:           "movie-recommender",
		CatalogBackend: "bigquery",
		Started:        time.Now().Add(-90 * time.Second),
	})

	w := serve(r, http.MethodGet, "/api/v1/stats", "")
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode[api.Stats](t, w)
	assert.Equal(t, "movie-recommender", stats.Name)
	assert.Equal(t, "bigquery", stats.CatalogBackend)
	assert.GreaterOrEqual(t, stats.UptimeSeconds, int64(90))

	health := serve(r, http.MethodGet, "/api/v1/health", "")
	assert.Equal(t, http.StatusOK, health.Code)
	assert.JSONEq(t, `{"status":"ok"}`, health.Body.String())
}
