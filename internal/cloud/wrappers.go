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

// Package cloud provides components for interacting with Google Cloud services.
// This file implements the quota primitive shared by the store decorators and
// the HTTP rate limit middleware. Catalog stores such as BigQuery have request
// quotas; the limiter keeps the service under them by queueing reads instead of
// letting the store reject them.
package cloud

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/time/rate"
)

// QuotaLimiter is a named token bucket. A nil *QuotaLimiter never throttles.
type QuotaLimiter struct {
	name      string
	limiter   *rate.Limiter
	throttled metric.Int64Counter // Counts calls that had to wait or were rejected.
}

// NewQuotaLimiter creates a limiter allowing requestsPerSecond with the given
// burst. A non-positive rate disables throttling; a non-positive burst
// defaults to the rate.
//
// Inputs:
//   - name: The quota name, used as a metric attribute.
//   - requestsPerSecond: The sustained rate.
//   - burst: The bucket size.
//
// Outputs:
//   - *QuotaLimiter: The limiter.
func NewQuotaLimiter(name string, requestsPerSecond int, burst int) *QuotaLimiter {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if requestsPerSecond > 0 {
		if burst <= 0 {
			burst = requestsPerSecond
		}
		limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
	}

	counter, err := otel.Meter(MeterName).Int64Counter("quota.throttled",
		metric.WithDescription("Calls delayed or rejected by a quota limiter"))
	if err != nil {
		slog.Warn("failed to create quota counter", "quota", name, "error", err)
	}
	return &QuotaLimiter{name: name, limiter: limiter, throttled: counter}
}

// Wait blocks until the quota admits one call or ctx ends.
func (q *QuotaLimiter) Wait(ctx context.Context) error {
	if q == nil {
		return nil
	}
	if q.limiter.Limit() != rate.Inf && q.limiter.Tokens() < 1 {
		q.count(ctx)
	}
	if err := q.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("quota %s: %w", q.name, err)
	}
	return nil
}

// Allow reports whether one call is admitted now, without blocking.
func (q *QuotaLimiter) Allow(ctx context.Context) bool {
	if q == nil {
		return true
	}
	if q.limiter.Allow() {
		return true
	}
	q.count(ctx)
	return false
}

func (q *QuotaLimiter) count(ctx context.Context) {
	if q.throttled != nil {
		q.throttled.Add(ctx, 1, metric.WithAttributes(attribute.String("quota", q.name)))
	}
}
