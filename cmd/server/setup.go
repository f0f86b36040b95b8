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

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jaycherian/gcp-go-movie-recommender/internal/api"
	"github.com/jaycherian/gcp-go-movie-recommender/internal/cloud"
	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/recommend"
	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/services"
	"github.com/jaycherian/gcp-go-movie-recommender/internal/core/workflow"
)

// RecommendationRequestsKey is the topic_subscriptions entry whose messages
// trigger recommendation notifications.
const RecommendationRequestsKey = "RecommendationRequests"

// StateManager holds the shared components for the application.
type StateManager struct {
	config          *cloud.Config
	cloud           *cloud.ServiceClients
	store           services.Store
	recommendations *services.RecommendationService
	catalog         *services.CatalogService
	info            *api.ServiceInfo
	httpQuota       *cloud.QuotaLimiter
}

var state = &StateManager{}

// SetupOS defaults the configuration directory to `configs` and the runtime
// to `local` unless the environment already sets them.
func SetupOS() (err error) {
	if os.Getenv(cloud.EnvConfigFilePrefix) == "" {
		if err = os.Setenv(cloud.EnvConfigFilePrefix, "configs"); err != nil {
			return err
		}
	}
	if os.Getenv(cloud.EnvConfigRuntime) == "" {
		err = os.Setenv(cloud.EnvConfigRuntime, "local")
	}
	return err
}

// GetConfig loads and validates the configuration once.
func GetConfig() (*cloud.Config, error) {
	if state.config == nil {
		if err := SetupOS(); err != nil {
			return nil, fmt.Errorf("failed to setup env: %w", err)
		}
		config := cloud.NewConfig()
		if err := cloud.LoadConfig(config); err != nil {
			return nil, err
		}
		if err := config.Validate(); err != nil {
			return nil, fmt.Errorf("invalid configuration: %w", err)
		}
		state.config = config
	}
	return state.config, nil
}

// NewStore selects the catalog and profile store for the configured backend
// and wraps it with the catalog read quota.
func NewStore(config *cloud.Config, clients *cloud.ServiceClients) services.Store {
	var store services.Store
	switch config.Catalog.Backend {
	case cloud.CatalogBackendBigQuery:
		store = services.NewBigQueryStore(clients.BigQueryClient, config.BigQueryDataSource)
	default:
		store = services.NewSQLStore(clients.Database)
	}
	quota := cloud.NewQuotaLimiter("catalog", config.Catalog.RequestsPerSecond, config.Catalog.Burst)
	return services.NewQuotaAwareStore(store, quota)
}

// NewPosterResolver returns the URL signer when poster signing is enabled,
// nil otherwise.
func NewPosterResolver(config *cloud.Config, clients *cloud.ServiceClients) services.PosterResolver {
	if !config.Storage.SignPosterUrls {
		return nil
	}
	return services.NewPosterSigner(clients.StorageClient, clients.IAMClient, config)
}

// NewEngine builds the engine with the configured sizes.
func NewEngine(config *cloud.Config) *recommend.Engine {
	r := config.Recommendation
	return recommend.NewEngine(
		recommend.WithShortlistSize(r.ShortlistSize),
		recommend.WithResultSize(r.ResultSize),
		recommend.WithFilterResultSize(r.FilterResultSize),
		recommend.WithFavoriteBoost(r.FavoriteBoost),
	)
}

// InitState creates the clients, the store and the services.
func InitState(ctx context.Context, config *cloud.Config) error {
	cloudClients, err := cloud.NewCloudServiceClients(ctx, config)
	if err != nil {
		return err
	}
	state.cloud = cloudClients

	posters := NewPosterResolver(config, cloudClients)
	state.store = NewStore(config, cloudClients)
	state.recommendations = services.NewRecommendationService(NewEngine(config), state.store, posters)
	state.catalog = &services.CatalogService{
		Store:        state.store,
		Posters:      posters,
		TopRatedSize: config.Recommendation.TopRatedSize,
		SearchLimit:  config.Recommendation.SearchResultLimit,
	}
	state.info = &api.ServiceInfo{
		Name:           config.Application.Name,
		CatalogBackend: config.Catalog.Backend,
		Started:        time.Now().UTC(),
	}
	state.httpQuota = cloud.NewQuotaLimiter("http", config.Application.RequestsPerSecond, 0)
	return nil
}

// SetupListeners attaches the recommendation notification workflow to its
// subscription and starts listening. Receiving stops when ctx is canceled.
func SetupListeners(ctx context.Context) {
	listener, ok := state.cloud.PubSubListeners[RecommendationRequestsKey]
	if !ok {
		return
	}
	if state.cloud.Notifications == nil {
		slog.WarnContext(ctx, "recommendation requests subscription configured without a notification topic; not listening")
		return
	}
	listener.SetCommand(workflow.NewRecommendationNotificationWorkflow(state.recommendations, state.cloud.Notifications))
	listener.Listen(ctx)
}
