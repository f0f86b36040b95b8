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

// Package cloud defines the data structures for application configuration,
// loaded from TOML files. It provides a structured way to manage settings
// for the catalog backends, Google Cloud services, Pub/Sub topics and the
// recommendation engine tuning.
//
// Structs:
//   - BigQueryDataSource: Configuration for the BigQuery dataset and tables.
//   - Database: Configuration for the relational (gorm) catalog store.
//   - Catalog: Selects the catalog backend and its read quota.
//   - Recommendation: Engine and browsing result sizes.
//   - TopicSubscription: Configuration for a single Pub/Sub topic subscription.
//   - Storage: Configuration for poster image signing.
//   - Telemetry: Logging and OpenTelemetry switches.
//   - Config: The top-level struct that aggregates all other configuration structs.
//
// Functions:
//   - NewConfig: A constructor that initializes a new Config object with defaults.
package cloud

import (
	"errors"
	"fmt"
)

// Catalog backends.
const (
	CatalogBackendSQL      = "sql"
	CatalogBackendBigQuery = "bigquery"
)

// Database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// BigQueryDataSource represents the configuration for a BigQuery data source.
type BigQueryDataSource struct {
	DatasetName      string `toml:"dataset"`            // The name of the BigQuery dataset.
	MoviesTable      string `toml:"movies_table"`       // The table holding the catalog movies.
	GenresTable      string `toml:"genres_table"`       // The table holding the genre names.
	MovieGenresTable string `toml:"movie_genres_table"` // The movie to genre join table.
	ReviewsTable     string `toml:"reviews_table"`      // The table holding user reviews.
	WatchedTable     string `toml:"watched_table"`      // The table holding watched movie records.
	UsersTable       string `toml:"users_table"`        // The table holding user profiles.
}

// Database represents the configuration of the relational catalog store.
type Database struct {
	Driver                 string `toml:"driver"`                    // "postgres" or "sqlite".
	DSN                    string `toml:"dsn"`                       // The driver specific connection string.
	MaxOpenConns           int    `toml:"max_open_conns"`            // Upper bound on open connections; 0 means unlimited.
	MaxIdleConns           int    `toml:"max_idle_conns"`            // Idle connections kept in the pool.
	ConnMaxLifetimeSeconds int    `toml:"conn_max_lifetime_seconds"` // Maximum connection age; 0 means unlimited.
	AutoMigrate            bool   `toml:"auto_migrate"`              // Create or update the schema at startup.
	LogLevel               string `toml:"log_level"`                 // gorm log level: silent, error, warn or info.
}

// Catalog selects the store the catalog and profile readers use.
type Catalog struct {
	Backend           string `toml:"backend"`             // "sql" or "bigquery".
	RequestsPerSecond int    `toml:"requests_per_second"` // Read quota towards the store; 0 disables throttling.
	Burst             int    `toml:"burst"`               // Burst size of the read quota.
}

// Recommendation holds the engine and browsing result sizes.
type Recommendation struct {
	ShortlistSize     int     `toml:"shortlist_size"`      // Ranked candidates eligible for sampling.
	ResultSize        int     `toml:"result_size"`         // Personalized results returned.
	FilterResultSize  int     `toml:"filter_result_size"`  // Filter results returned.
	FavoriteBoost     float64 `toml:"favorite_boost"`      // Filter path boost for favourite titles.
	TopRatedSize      int     `toml:"top_rated_size"`      // Top rated results returned.
	SearchResultLimit int     `toml:"search_result_limit"` // Upper bound on search results; 0 means unlimited.
}

// TopicSubscription represents the configuration for a Pub/Sub topic subscription.
type TopicSubscription struct {
	Name             string `toml:"name"`               // The name of the Pub/Sub subscription.
	DeadLetterTopic  string `toml:"dead_letter_topic"`  // The name of the dead-letter topic for the subscription.
	TimeoutInSeconds int    `toml:"timeout_in_seconds"` // The timeout for the subscription in seconds.
}

// Storage represents the configuration for poster image signing.
type Storage struct {
	SignPosterUrls         bool   `toml:"sign_poster_urls"`          // Replace gs:// poster references with signed URLs.
	PosterBucket           string `toml:"poster_bucket"`             // The bucket relative poster names resolve against.
	SignedUrlExpirySeconds int    `toml:"signed_url_expiry_seconds"` // Lifetime of a signed poster URL.
}

// Telemetry represents logging and OpenTelemetry settings.
type Telemetry struct {
	Enabled  bool   `toml:"enabled"`   // Install the Cloud Trace and Cloud Monitoring exporters.
	LogFile  string `toml:"log_file"`  // Optional file that receives a copy of the JSON log.
	LogLevel string `toml:"log_level"` // debug, info, warn or error.
}

// Config represents the overall configuration for the application, loaded from TOML files.
// It acts as the root container for all other configuration structs.
type Config struct {
	// Application holds general application settings.
	Application struct {
		Name                      string   `toml:"name"`                         // The name of the application.
		GoogleProjectId           string   `toml:"google_project_id"`            // The Google Cloud project ID.
		GoogleLocation            string   `toml:"location"`                     // The Google Cloud location.
		SignerServiceAccountEmail string   `toml:"signer_service_account_email"` // The service account email used for signing GCS URLs.
		HttpPort                  string   `toml:"http_port"`                    // The port the HTTP API binds to.
		AllowedOrigins            []string `toml:"allowed_origins"`              // CORS origins; empty allows none beyond same-origin.
		RequestsPerSecond         int      `toml:"requests_per_second"`          // HTTP quota on the recommendation routes; 0 disables it.
		NotificationTopic         string   `toml:"notification_topic"`           // Topic receiving recommendation notifications.
	} `toml:"application"`
	Telemetry          Telemetry                    `toml:"telemetry"`             // Logging and tracing configuration.
	Catalog            Catalog                      `toml:"catalog"`               // Catalog backend selection.
	Database           Database                     `toml:"database"`              // Relational store configuration.
	BigQueryDataSource BigQueryDataSource           `toml:"big_query_data_source"` // BigQuery data source configuration.
	Storage            Storage                      `toml:"storage"`               // Storage configuration.
	Recommendation     Recommendation               `toml:"recommendation"`        // Engine tuning.
	TopicSubscriptions map[string]TopicSubscription `toml:"topic_subscriptions"`   // Pub/Sub subscriptions keyed by a logical name (e.g., "RecommendationRequests").
}

// NewConfig is a constructor function that creates a new, initialized Config instance.
// It's important to initialize the maps within the struct to avoid nil pointer panics
// when the configuration loader tries to populate them.
//
// Outputs:
//   - *Config: A pointer to a new Config struct with its map fields initialized.
func NewConfig() *Config {
	c := &Config{
		TopicSubscriptions: make(map[string]TopicSubscription),
	}
	c.Application.HttpPort = "8080"
	c.Catalog.Backend = CatalogBackendSQL
	c.Database.Driver = DriverSQLite
	c.Database.LogLevel = "warn"
	c.Storage.SignedUrlExpirySeconds = 900
	c.Telemetry.LogLevel = "info"
	c.Recommendation = Recommendation{
		ShortlistSize:    15,
		ResultSize:       10,
		FilterResultSize: 10,
		FavoriteBoost:    1.5,
		TopRatedSize:     10,
	}
	return c
}

// Validate checks the settings that cannot be defaulted.
func (c *Config) Validate() error {
	var errs []error
	switch c.Catalog.Backend {
	case CatalogBackendSQL:
		switch c.Database.Driver {
		case DriverPostgres, DriverSQLite:
		default:
			errs = append(errs, fmt.Errorf("unsupported database driver %q", c.Database.Driver))
		}
		if c.Database.DSN == "" {
			errs = append(errs, errors.New("database.dsn is required for the sql catalog backend"))
		}
	case CatalogBackendBigQuery:
		if c.Application.GoogleProjectId == "" {
			errs = append(errs, errors.New("application.google_project_id is required for the bigquery catalog backend"))
		}
		if c.BigQueryDataSource.DatasetName == "" {
			errs = append(errs, errors.New("big_query_data_source.dataset is required for the bigquery catalog backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported catalog backend %q", c.Catalog.Backend))
	}
	if c.Storage.SignPosterUrls && c.Application.SignerServiceAccountEmail == "" {
		errs = append(errs, errors.New("application.signer_service_account_email is required to sign poster urls"))
	}
	return errors.Join(errs...)
}
