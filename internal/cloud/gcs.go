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

// Package cloud contains data structures and utilities for interacting with Google Cloud services.
// This file parses the Google Cloud Storage references stored as poster images
// in the catalog.
//
// Accepted forms:
//   - gs://bucket/path/to/object.jpg
//   - https://storage.googleapis.com/bucket/path/to/object.jpg
//   - https://storage.mtls.cloud.google.com/bucket/path/to/object.jpg
//   - path/to/object.jpg, resolved against a default bucket
//
// Any other absolute URL is not a GCS reference and is served as is.
package cloud

import (
	"fmt"
	"strings"
)

// GCS URI prefixes.
const (
	GCSScheme            = "gs://"
	GCSPublicHost        = "https://storage.googleapis.com/"
	GCSAuthenticatedHost = "https://storage.mtls.cloud.google.com/"
)

// GCSObject is a simplified, internal representation of a Google Cloud Storage (GCS)
// object.
type GCSObject struct {
	Bucket string // The name of the GCS bucket.
	Name   string // The name of the object.
}

// String returns the gs:// form of the object.
func (o GCSObject) String() string {
	return GCSScheme + o.Bucket + "/" + o.Name
}

// ParseGCSReference resolves an image reference to a GCS object.
//
// Inputs:
//   - ref: The stored image reference.
//   - defaultBucket: The bucket for relative references; empty disables them.
//
// Outputs:
//   - GCSObject: The resolved object.
//   - bool: False when ref is not a GCS reference (e.g. an external URL or empty).
//   - error: An error when ref looks like a GCS reference but has no object name.
func ParseGCSReference(ref string, defaultBucket string) (GCSObject, bool, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return GCSObject{}, false, nil
	}

	var path string
	switch {
	case strings.HasPrefix(ref, GCSScheme):
		path = strings.TrimPrefix(ref, GCSScheme)
	case strings.HasPrefix(ref, GCSPublicHost):
		path = strings.TrimPrefix(ref, GCSPublicHost)
	case strings.HasPrefix(ref, GCSAuthenticatedHost):
		path = strings.TrimPrefix(ref, GCSAuthenticatedHost)
	case strings.Contains(ref, "://"):
		return GCSObject{}, false, nil
	default:
		if defaultBucket == "" {
			return GCSObject{}, false, nil
		}
		return GCSObject{Bucket: defaultBucket, Name: strings.TrimPrefix(ref, "/")}, true, nil
	}

	parts := strings.SplitN(path, "/", 2)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return GCSObject{}, false, fmt.Errorf("invalid GCS URI: unable to determine bucket and object from %s", ref)
	}
	return GCSObject{Bucket: parts[0], Name: parts[1]}, true, nil
}
