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
	"testing"

	"github.com/jaycherian/gcp-go-movie-recommender/internal/cloud"
	"github.com/stretchr/testify/assert"
)

func TestParseGCSReference(t *testing.T) {
	tests := []struct {
		name    string
		ref     string
		bucket  string
		want    cloud.GCSObject
		isGCS   bool
		wantErr bool
	}{
		{"gs uri", "gs://posters/2010/inception.jpg", "", cloud.GCSObject{Bucket: "posters", Name: "2010/inception.jpg"}, true, false},
		{"public url", "https://storage.googleapis.com/posters/a.jpg", "", cloud.GCSObject{Bucket: "posters", Name: "a.jpg"}, true, false},
		{"authenticated url", "https://storage.mtls.cloud.google.com/posters/a.jpg", "", cloud.GCSObject{Bucket: "posters", Name: "a.jpg"}, true, false},
		{"relative with bucket", "/images/a.jpg", "posters", cloud.GCSObject{Bucket: "posters", Name: "images/a.jpg"}, true, false},
		{"relative without bucket", "images/a.jpg", "", cloud.GCSObject{}, false, false},
		{"external url", "https://cdn.example.com/a.jpg", "posters", cloud.GCSObject{}, false, false},
		{"empty", "  ", "posters", cloud.GCSObject{}, false, false},
		{"bucket only", "gs://posters", "", cloud.GCSObject{}, false, true},
		{"empty object", "gs://posters/", "", cloud.GCSObject{}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, isGCS, err := cloud.ParseGCSReference(tt.ref, tt.bucket)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.isGCS, isGCS)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGCSObjectString(t *testing.T) {
	assert.Equal(t, "gs://posters/a.jpg", cloud.GCSObject{Bucket: "posters", Name: "a.jpg"}.String())
}
