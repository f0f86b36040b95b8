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

package services_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"cloud.google.com/go/storage"
	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signedObject struct {
	bucket string
	object string
	opts   *storage.SignedURLOptions
}

func newTestSigner(calls *[]signedObject, err error) *services.PosterSigner {
	return &services.PosterSigner{
		SignerEmail:   "signer@project.iam.gserviceaccount.com",
		DefaultBucket: "posters",
		Expiry:        15 * time.Minute,
		SignObject: func(bucket string, object string, opts *storage.SignedURLOptions) (string, error) {
			*calls = append(*calls, signedObject{bucket: bucket, object: object, opts: opts})
			if err != nil {
				return "", err
			}
			return "https://signed.example.com/" + bucket + "/" + object, nil
		},
	}
}

func TestPosterSigner_Sign(t *testing.T) {
	var calls []signedObject
	signer := newTestSigner(&calls, nil)
	ctx := context.Background()

	tests := []struct {
		ref  string
		want string
	}{
		{ref: "gs://media/a.jpg", want: "https://signed.example.com/media/a.jpg"},
		{ref: "https://storage.googleapis.com/media/b/c.jpg", want: "https://signed.example.com/media/b/c.jpg"},
		{ref: "/images/heat.jpg", want: "https://signed.example.com/posters/images/heat.jpg"},
		{ref: "https://cdn.example.com/x.jpg", want: "https://cdn.example.com/x.jpg"},
		{ref: "", want: ""},
	}
	for _, tt := range tests {
		got, err := signer.Sign(ctx, tt.ref)
		require.NoError(t, err, tt.ref)
		assert.Equal(t, tt.want, got, tt.ref)
	}

	require.Len(t, calls, 3)
	opts := calls[0].opts
	assert.Equal(t, storage.SigningSchemeV4, opts.Scheme)
	assert.Equal(t, http.MethodGet, opts.Method)
	assert.Equal(t, "signer@project.iam.gserviceaccount.com", opts.GoogleAccessID)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), opts.Expires, time.Minute)
}

func TestPosterSigner_Resolve(t *testing.T) {
	var calls []signedObject
	failing := newTestSigner(&calls, errors.New("permission denied"))
	ctx := context.Background()

	assert.Equal(t, "gs://media/a.jpg", failing.Resolve(ctx, "gs://media/a.jpg"))
	assert.Equal(t, "gs://media", failing.Resolve(ctx, "gs://media"))

	var none *services.PosterSigner
	assert.Equal(t, "gs://media/a.jpg", none.Resolve(ctx, "gs://media/a.jpg"))
}
