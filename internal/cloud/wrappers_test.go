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

package cloud_test

import (
	"context"
	"testing"
	"time"

	"github.com/jaycherian/gcp-go-movie-recommender/internal/cloud"
	"github.com/stretchr/testify/assert"
)

func TestQuotaLimiterAllow(t *testing.T) {
	ctx := context.Background()
	q := cloud.NewQuotaLimiter("test", 1, 2)
	assert.True(t, q.Allow(ctx))
	assert.True(t, q.Allow(ctx))
	assert.False(t, q.Allow(ctx))
}

func TestQuotaLimiterDisabled(t *testing.T) {
	ctx := context.Background()
	q := cloud.NewQuotaLimiter("unlimited", 0, 0)
	for i := 0; i < 100; i++ {
		assert.True(t, q.Allow(ctx))
		assert.NoError(t, q.Wait(ctx))
	}

	var nilLimiter *cloud.QuotaLimiter
	assert.True(t, nilLimiter.Allow(ctx))
	assert.NoError(t, nilLimiter.Wait(ctx))
}

func TestQuotaLimiterWaitHonoursContext(t *testing.T) {
	q := cloud.NewQuotaLimiter("slow", 1, 1)
	assert.NoError(t, q.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, q.Wait(ctx))
}
