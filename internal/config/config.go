// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container. It aggregates
// all sub-configurations and is populated by merging values from environment
// variables, command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix - prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       - direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds the identity of the session and process-level settings.
	App App `envPrefix:"APP_"`

	// Adapter holds the server endpoints and request limits.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds the local cache database settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Sync holds the update engine tunables.
	Sync Sync `envPrefix:"SYNC_"`

	// Workers holds configuration for background jobs.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// SelfID is the id of the logged-in user.
	// Env: APP_SELF_ID
	SelfID int64 `env:"SELF_ID"`

	// Token is the bearer token of the session.
	// Env: APP_TOKEN
	Token string `env:"TOKEN"`

	// MetricsAddress is the host:port the prometheus handler listens on.
	// Empty disables the endpoint.
	// Env: APP_METRICS_ADDRESS
	MetricsAddress string `env:"METRICS_ADDRESS"`
}

// Adapter holds the server endpoints.
type Adapter struct {
	// HTTPAddress is the base URL of the updates API
	// (e.g. "https://chat.example.com").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// PushAddress is the websocket URL of the push stream. Empty disables
	// push; the engine then relies on its idle check.
	// Env: ADAPTER_PUSH_ADDRESS
	PushAddress string `env:"PUSH_ADDRESS"`

	// RequestTimeout bounds a single outbound request (e.g. "15s").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// RequestsPerSecond limits difference requests. Zero means unlimited.
	// Env: ADAPTER_REQUESTS_PER_SECOND
	RequestsPerSecond float64 `env:"REQUESTS_PER_SECOND"`
}

// Storage groups the local cache settings.
type Storage struct {
	// DB holds the sqlite database settings.
	DB DB `envPrefix:"DB_"`

	// KnownEntitiesCacheSize is the number of user and chat ids kept in
	// memory to answer presence checks without a query.
	// Env: STORAGE_KNOWN_ENTITIES_CACHE_SIZE
	KnownEntitiesCacheSize int `env:"KNOWN_ENTITIES_CACHE_SIZE"`
}

// DB holds connection settings for the local database.
type DB struct {
	// DSN is the sqlite file path or URI (e.g. "file:chat.db?_journal=WAL").
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Sync holds the update engine tunables. Zero values take the engine
// defaults.
type Sync struct {
	PtsWaitDelay        time.Duration `env:"PTS_WAIT_DELAY"`
	ReorderTimeout      time.Duration `env:"REORDER_TIMEOUT"`
	BackoffBase         time.Duration `env:"BACKOFF_BASE"`
	BackoffMaxFactor    int           `env:"BACKOFF_MAX_FACTOR"`
	IdleTimeout         time.Duration `env:"IDLE_TIMEOUT"`
	ChannelPollInterval time.Duration `env:"CHANNEL_POLL_INTERVAL"`

	ChannelDifferenceLimit int `env:"CHANNEL_DIFFERENCE_LIMIT"`

	// UnresolvedPolicy is "resync" or "apply".
	// Env: SYNC_UNRESOLVED_POLICY
	UnresolvedPolicy string `env:"UNRESOLVED_POLICY"`

	// EventBuffer is the capacity of the engine event queue.
	// Env: SYNC_EVENT_BUFFER
	EventBuffer int `env:"EVENT_BUFFER"`
}

// Workers holds configuration for background jobs.
type Workers struct {
	// StateFlushInterval is how often the sync positions are persisted.
	// Env: WORKERS_STATE_FLUSH_INTERVAL
	StateFlushInterval time.Duration `env:"STATE_FLUSH_INTERVAL"`
}

// GetStructuredConfig loads and merges the configuration from the
// environment, the command line and the JSON file named by either of them.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
