package config

import (
	"fmt"
	"time"
)

// Defaults applied by [GetClientConfig] to unset fields.
const (
	DefaultRequestTimeout         = 15 * time.Second
	DefaultDSN                    = "chatsync.db"
	DefaultKnownEntitiesCacheSize = 4096
	DefaultStateFlushInterval     = 5 * time.Second
)

// ClientApp holds the session identity.
type ClientApp struct {
	SelfID         int64
	Token          string
	MetricsAddress string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the updates API base URL.
	HTTPAddress string
	// PushAddress is the websocket push URL, empty when push is disabled.
	PushAddress string
	// RequestTimeout is the timeout for outbound requests.
	RequestTimeout time.Duration
	// RequestsPerSecond limits difference requests.
	RequestsPerSecond float64
}

// ClientDB contains local database connection settings for the client.
type ClientDB struct {
	// DSN is the SQLite connection string used by the client.
	DSN string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	DB                     ClientDB
	KnownEntitiesCacheSize int
}

// ClientSync mirrors [Sync] for the engine.
type ClientSync struct {
	PtsWaitDelay           time.Duration
	ReorderTimeout         time.Duration
	BackoffBase            time.Duration
	BackoffMaxFactor       int
	IdleTimeout            time.Duration
	ChannelPollInterval    time.Duration
	ChannelDifferenceLimit int
	UnresolvedPolicy       string
	EventBuffer            int
}

// ClientWorkers contains client background worker settings.
type ClientWorkers struct {
	// StateFlushInterval defines how often sync positions are persisted.
	StateFlushInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
	Storage ClientStorage
	Sync    ClientSync
	Workers ClientWorkers
}

// GetClientConfig builds and validates the client config from the merged
// structured configuration.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := NewClientConfig(cfg)
	return clientCfg, clientCfg.validate()
}

// NewClientConfig maps cfg to the client view and fills in defaults.
func NewClientConfig(cfg *StructuredConfig) *ClientConfig {
	clientCfg := &ClientConfig{
		App: ClientApp{
			SelfID:         cfg.App.SelfID,
			Token:          cfg.App.Token,
			MetricsAddress: cfg.App.MetricsAddress,
		},
		Adapter: ClientAdapter{
			HTTPAddress:       cfg.Adapter.HTTPAddress,
			PushAddress:       cfg.Adapter.PushAddress,
			RequestTimeout:    cfg.Adapter.RequestTimeout,
			RequestsPerSecond: cfg.Adapter.RequestsPerSecond,
		},
		Storage: ClientStorage{
			DB:                     ClientDB{DSN: cfg.Storage.DB.DSN},
			KnownEntitiesCacheSize: cfg.Storage.KnownEntitiesCacheSize,
		},
		Sync: ClientSync{
			PtsWaitDelay:           cfg.Sync.PtsWaitDelay,
			ReorderTimeout:         cfg.Sync.ReorderTimeout,
			BackoffBase:            cfg.Sync.BackoffBase,
			BackoffMaxFactor:       cfg.Sync.BackoffMaxFactor,
			IdleTimeout:            cfg.Sync.IdleTimeout,
			ChannelPollInterval:    cfg.Sync.ChannelPollInterval,
			ChannelDifferenceLimit: cfg.Sync.ChannelDifferenceLimit,
			UnresolvedPolicy:       cfg.Sync.UnresolvedPolicy,
			EventBuffer:            cfg.Sync.EventBuffer,
		},
		Workers: ClientWorkers{StateFlushInterval: cfg.Workers.StateFlushInterval},
	}

	if clientCfg.Adapter.RequestTimeout == 0 {
		clientCfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}
	if clientCfg.Storage.DB.DSN == "" {
		clientCfg.Storage.DB.DSN = DefaultDSN
	}
	if clientCfg.Storage.KnownEntitiesCacheSize == 0 {
		clientCfg.Storage.KnownEntitiesCacheSize = DefaultKnownEntitiesCacheSize
	}
	if clientCfg.Workers.StateFlushInterval == 0 {
		clientCfg.Workers.StateFlushInterval = DefaultStateFlushInterval
	}

	return clientCfg
}
