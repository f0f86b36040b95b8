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

// Package test provides utility functions and fixture data to support the
// application's test suite: the test configuration, a migrated sqlite
// database per test, a seeded catalog and in-memory store fakes.
package test

import (
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/jaycherian/gcp-go-movie-recommender/internal/cloud"
	"gorm.io/gorm"
)

var (
	configOnce sync.Once
	config     *cloud.Config
)

// HandleErr fails the test when err is not nil.
func HandleErr(err error, t *testing.T) {
	t.Helper()
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

// ConfigDir returns the absolute path of the repository's configs directory,
// so tests load the same files whatever package they run from.
func ConfigDir() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "configs")
}

// SetupOS points the configuration loader at the test configuration files
// (`configs/.env.toml` overridden by `configs/.env.test.toml`).
func SetupOS() (err error) {
	if err = os.Setenv(cloud.EnvConfigFilePrefix, ConfigDir()); err != nil {
		return err
	}
	return os.Setenv(cloud.EnvConfigRuntime, "test")
}

// GetConfig loads the test configuration once and returns the cached copy.
func GetConfig() *cloud.Config {
	configOnce.Do(func() {
		if err := SetupOS(); err != nil {
			log.Fatalf("failed to setup environment for test: %v\n", err)
		}
		c := cloud.NewConfig()
		if err := cloud.LoadConfig(c); err != nil {
			log.Fatalf("failed to load test configuration: %v\n", err)
		}
		config = c
	})
	return config
}

// NewTestDB opens a migrated sqlite database in the test's temporary
// directory. It is closed when the test ends.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := cloud.NewDatabase(cloud.Database{
		Driver:      cloud.DriverSQLite,
		DSN:         filepath.Join(t.TempDir(), "catalog.db"),
		AutoMigrate: true,
		LogLevel:    "silent",
	})
	if err != nil {
		t.Fatalf("failed to init test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// GetTestRecommendationRequestText returns a recommendation request message
// payload for the warm start fixture user.
func GetTestRecommendationRequestText() string {
	return `{"user_id": "` + UserWarm + `"}`
}
