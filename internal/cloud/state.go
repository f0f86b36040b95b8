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
// This file is responsible for initializing and holding all the client objects
// needed to communicate with the external stores and Google Cloud services. It
// acts as a dependency injection container, creating a single, shared
// `ServiceClients` struct that can be passed throughout the application.
//
// Logic Flow:
//  1. The `NewCloudServiceClients` function is called at application startup.
//  2. It opens the catalog store selected by `catalog.backend`: a gorm database
//     for "sql", a BigQuery client for "bigquery".
//  3. Storage and IAM clients are created only when poster signing is enabled.
//  4. A Pub/Sub client is created only when subscriptions or a notification
//     topic are configured, followed by one listener per subscription and the
//     notification publisher.
//  5. All initialized clients are bundled into a single `ServiceClients` struct.
package cloud

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/bigquery"
	credentials "cloud.google.com/go/iam/credentials/apiv1"
	"cloud.google.com/go/pubsub"
	"cloud.google.com/go/storage"
	"gorm.io/gorm"
)

// ServiceClients is a struct that acts as a central container for all the clients
// that interact with external services. Clients that the configuration does not
// need are left nil.
type ServiceClients struct {
	Database        *gorm.DB                          // Relational catalog store (sql backend).
	BigQueryClient  *bigquery.Client                  // Client for Google Cloud BigQuery (bigquery backend).
	StorageClient   *storage.Client                   // Client for Google Cloud Storage (poster signing).
	IAMClient       *credentials.IamCredentialsClient // Client for IAM to sign GCS URLs.
	PubsubClient    *pubsub.Client                    // Client for Google Cloud Pub/Sub.
	PubSubListeners map[string]*PubSubListener        // Active Pub/Sub listeners, keyed by a logical name from the config.
	Notifications   *TopicPublisher                   // Publisher for recommendation notifications.
}

// Close is a utility method to gracefully shut down all the active client connections.
func (c *ServiceClients) Close() error {
	var errs []error
	if c.Notifications != nil {
		c.Notifications.Stop()
	}
	if c.PubsubClient != nil {
		errs = append(errs, c.PubsubClient.Close())
	}
	if c.StorageClient != nil {
		errs = append(errs, c.StorageClient.Close())
	}
	if c.IAMClient != nil {
		errs = append(errs, c.IAMClient.Close())
	}
	if c.BigQueryClient != nil {
		errs = append(errs, c.BigQueryClient.Close())
	}
	if c.Database != nil {
		if sqlDB, err := c.Database.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	return errors.Join(errs...)
}

// NewCloudServiceClients is a factory function that initializes the clients the
// configuration asks for. On failure, the clients created so far are closed.
//
// Inputs:
//   - ctx: The root context.Context for the application, used to manage the lifecycle of the clients.
//   - config: A pointer to the loaded application configuration (`Config`).
//
// Outputs:
//   - *ServiceClients: A pointer to the initialized ServiceClients struct.
//   - error: An error if any of the clients fail to initialize.
func NewCloudServiceClients(ctx context.Context, config *Config) (cloud *ServiceClients, err error) {
	cloud = &ServiceClients{PubSubListeners: make(map[string]*PubSubListener)}
	defer func() {
		if err != nil {
			_ = cloud.Close()
			cloud = nil
		}
	}()

	switch config.Catalog.Backend {
	case CatalogBackendSQL:
		if cloud.Database, err = NewDatabase(config.Database); err != nil {
			return cloud, err
		}
	case CatalogBackendBigQuery:
		if cloud.BigQueryClient, err = bigquery.NewClient(ctx, config.Application.GoogleProjectId); err != nil {
			return cloud, fmt.Errorf("failed to create bigquery client: %w", err)
		}
	default:
		return cloud, fmt.Errorf("unsupported catalog backend %q", config.Catalog.Backend)
	}

	if config.Storage.SignPosterUrls {
		if cloud.StorageClient, err = storage.NewClient(ctx); err != nil {
			return cloud, fmt.Errorf("failed to create storage client: %w", err)
		}
		if cloud.IAMClient, err = credentials.NewIamCredentialsClient(ctx); err != nil {
			return cloud, fmt.Errorf("failed to create iam credentials client: %w", err)
		}
	}

	if len(config.TopicSubscriptions) == 0 && config.Application.NotificationTopic == "" {
		return cloud, nil
	}
	if cloud.PubsubClient, err = pubsub.NewClient(ctx, config.Application.GoogleProjectId); err != nil {
		return cloud, fmt.Errorf("failed to create pubsub client: %w", err)
	}

	// The command is initially nil; it is attached when the workflows are built.
	for subKey, values := range config.TopicSubscriptions {
		listener, err := NewPubSubListener(cloud.PubsubClient, values.Name, nil)
		if err != nil {
			return cloud, err
		}
		cloud.PubSubListeners[subKey] = listener
	}
	if config.Application.NotificationTopic != "" {
		cloud.Notifications = NewTopicPublisher(cloud.PubsubClient, config.Application.NotificationTopic)
	}
	return cloud, nil
}
