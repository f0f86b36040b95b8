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
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ServiceInfo describes the running service for the stats endpoint.
type ServiceInfo struct {
	Name           string    `json:"name"`
	CatalogBackend string    `json:"catalogBackend"`
	Started        time.Time `json:"started"`
}

// Stats is the body of `GET /stats`.
type Stats struct {
	ServiceInfo
	UptimeSeconds int64 `json:"uptimeSeconds"`
}

// Dashboard registers the statistics and health routes.
//
// Routes:
//   - GET /stats: The service name, catalog backend and uptime.
//   - GET /health: Always `{"status":"ok"}` while the server runs.
func Dashboard(r *gin.RouterGroup, info *ServiceInfo) {
	stats := r.Group("/stats")
	{
		stats.GET("", func(c *gin.Context) {
			if info == nil {
				c.JSON(http.StatusOK, Stats{})
				return
			}
			c.JSON(http.StatusOK, Stats{
				ServiceInfo:   *info,
				UptimeSeconds: int64(time.Since(info.Started).Seconds()),
			})
		})
	}
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
