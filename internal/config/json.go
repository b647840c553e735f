package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the layout of the JSON config file.
type StructuredJSONConfig struct {
	App struct {
		SelfID         int64  `json:"self_id"`
		Token          string `json:"token"`
		MetricsAddress string `json:"metrics_address"`
	} `json:"app,omitempty"`

	Adapter struct {
		HTTPAddress       string   `json:"http_address"`
		PushAddress       string   `json:"push_address"`
		RequestTimeout    Duration `json:"request_timeout"`
		RequestsPerSecond float64  `json:"requests_per_second"`
	} `json:"adapter,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`
		KnownEntitiesCacheSize int `json:"known_entities_cache_size"`
	} `json:"storage,omitempty"`

	Sync struct {
		PtsWaitDelay           Duration `json:"pts_wait_delay"`
		ReorderTimeout         Duration `json:"reorder_timeout"`
		BackoffBase            Duration `json:"backoff_base"`
		BackoffMaxFactor       int      `json:"backoff_max_factor"`
		IdleTimeout            Duration `json:"idle_timeout"`
		ChannelPollInterval    Duration `json:"channel_poll_interval"`
		ChannelDifferenceLimit int      `json:"channel_difference_limit"`
		UnresolvedPolicy       string   `json:"unresolved_policy"`
		EventBuffer            int      `json:"event_buffer"`
	} `json:"sync,omitempty"`

	Workers struct {
		StateFlushInterval Duration `json:"state_flush_interval"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			SelfID:         jsonCfg.App.SelfID,
			Token:          jsonCfg.App.Token,
			MetricsAddress: jsonCfg.App.MetricsAddress,
		},
		Adapter: Adapter{
			HTTPAddress:       jsonCfg.Adapter.HTTPAddress,
			PushAddress:       jsonCfg.Adapter.PushAddress,
			RequestTimeout:    time.Duration(jsonCfg.Adapter.RequestTimeout),
			RequestsPerSecond: jsonCfg.Adapter.RequestsPerSecond,
		},
		Storage: Storage{
			DB:                     DB{DSN: jsonCfg.Storage.DB.DSN},
			KnownEntitiesCacheSize: jsonCfg.Storage.KnownEntitiesCacheSize,
		},
		Sync: Sync{
			PtsWaitDelay:           time.Duration(jsonCfg.Sync.PtsWaitDelay),
			ReorderTimeout:         time.Duration(jsonCfg.Sync.ReorderTimeout),
			BackoffBase:            time.Duration(jsonCfg.Sync.BackoffBase),
			BackoffMaxFactor:       jsonCfg.Sync.BackoffMaxFactor,
			IdleTimeout:            time.Duration(jsonCfg.Sync.IdleTimeout),
			ChannelPollInterval:    time.Duration(jsonCfg.Sync.ChannelPollInterval),
			ChannelDifferenceLimit: jsonCfg.Sync.ChannelDifferenceLimit,
			UnresolvedPolicy:       jsonCfg.Sync.UnresolvedPolicy,
			EventBuffer:            jsonCfg.Sync.EventBuffer,
		},
		Workers: Workers{
			StateFlushInterval: time.Duration(jsonCfg.Workers.StateFlushInterval),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" and from integer nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case nil:
		return nil
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
