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

// Package services contains the business logic for interacting with data sources.
// This file, `posters.go`, turns poster references stored in the catalog into
// URLs a browser can load. References to private Google Cloud Storage objects
// are replaced by time-limited V4 signed URLs; anything else is returned as is.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	credentials "cloud.google.com/go/iam/credentials/apiv1"
	"cloud.google.com/go/iam/credentials/apiv1/credentialspb"
	"cloud.google.com/go/storage"
	"github.com/jaycherian/gcp-go-movie-recommender/internal/cloud"
)

// PosterResolver maps a stored image reference to a displayable URL.
type PosterResolver interface {
	Resolve(ctx context.Context, ref string) string
}

// ObjectSigner signs a GET URL for an object.
type ObjectSigner func(bucket string, object string, opts *storage.SignedURLOptions) (string, error)

// PosterSigner signs GCS poster references with the IAM credentials of
// SignerEmail, so no service account key is needed on the host.
type PosterSigner struct {
	SignerEmail   string        // The service account email used to sign URLs.
	DefaultBucket string        // The bucket relative references resolve against.
	Expiry        time.Duration // The lifetime of a signed URL.
	SignObject    ObjectSigner  // Produces the signed URL.
	signBytes     func(ctx context.Context, b []byte) ([]byte, error)
}

// NewPosterSigner creates a signer backed by the storage and IAM clients.
//
// Inputs:
//   - storageClient: Client for Google Cloud Storage.
//   - iamClient: Client for the IAM Credentials API, used for SignBlob.
//   - config: The loaded configuration.
//
// Outputs:
//   - *PosterSigner: The signer.
func NewPosterSigner(storageClient *storage.Client, iamClient *credentials.IamCredentialsClient, config *cloud.Config) *PosterSigner {
	s := &PosterSigner{
		SignerEmail:   config.Application.SignerServiceAccountEmail,
		DefaultBucket: config.Storage.PosterBucket,
		Expiry:        time.Duration(config.Storage.SignedUrlExpirySeconds) * time.Second,
	}
	s.signBytes = func(ctx context.Context, b []byte) ([]byte, error) {
		resp, err := iamClient.SignBlob(ctx, &credentialspb.SignBlobRequest{
			Name:    fmt.Sprintf("projects/-/serviceAccounts/%s", s.SignerEmail),
			Payload: b,
		})
		if err != nil {
			return nil, fmt.Errorf("IAMClient.SignBlob: %w", err)
		}
		return resp.SignedBlob, nil
	}
	s.SignObject = func(bucket string, object string, opts *storage.SignedURLOptions) (string, error) {
		return storageClient.Bucket(bucket).SignedURL(object, opts)
	}
	return s
}

// Sign returns the signed URL for ref, or ref itself when it is not a GCS reference.
func (s *PosterSigner) Sign(ctx context.Context, ref string) (string, error) {
	obj, ok, err := cloud.ParseGCSReference(ref, s.DefaultBucket)
	if err != nil {
		return "", err
	}
	if !ok {
		return ref, nil
	}

	opts := &storage.SignedURLOptions{
		Scheme:         storage.SigningSchemeV4,
		Method:         http.MethodGet,
		Expires:        time.Now().Add(s.Expiry),
		GoogleAccessID: s.SignerEmail,
	}
	if s.signBytes != nil {
		opts.SignBytes = func(b []byte) ([]byte, error) { return s.signBytes(ctx, b) }
	}
	u, err := s.SignObject(obj.Bucket, obj.Name, opts)
	if err != nil {
		return "", fmt.Errorf("Bucket(%q).Object(%q).SignedURL: %w", obj.Bucket, obj.Name, err)
	}
	return u, nil
}

// Resolve signs ref, falling back to the stored reference when signing fails.
// A nil signer returns ref unchanged.
func (s *PosterSigner) Resolve(ctx context.Context, ref string) string {
	if s == nil {
		return ref
	}
	u, err := s.Sign(ctx, ref)
	if err != nil {
		slog.WarnContext(ctx, "failed to sign poster url", "image", ref, "error", err)
		return ref
	}
	return u
}
