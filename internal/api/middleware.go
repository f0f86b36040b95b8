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

	"github.com/gin-gonic/gin"
	"github.com/jaycherian/gcp-go-movie-recommender/internal/cloud"
)

// RateLimit rejects requests with 429 once quota is exhausted. A nil quota
// admits everything.
func RateLimit(quota *cloud.QuotaLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !quota.Allow(c.Request.Context()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": MsgTooManyRequest})
			return
		}
		c.Next()
	}
}
