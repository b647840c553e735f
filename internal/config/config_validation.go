// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"
)

// validate checks settings whose values are wrong in any combination.
// Missing required values are reported by [ClientConfig.validate] after
// defaults are applied.
func (cfg *StructuredConfig) validate() error {
	if cfg.Adapter.RequestTimeout < 0 {
		return fmt.Errorf("%w: negative request timeout", ErrInvalidAdapterConfigs)
	}
	if cfg.Adapter.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: negative requests per second", ErrInvalidAdapterConfigs)
	}
	if cfg.Workers.StateFlushInterval < 0 {
		return fmt.Errorf("%w: negative state flush interval", ErrInvalidWorkerConfigs)
	}
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.App.SelfID <= 0 || strings.TrimSpace(cfg.App.Token) == "" {
		return ErrInvalidAppConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 || cfg.Adapter.RequestsPerSecond < 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Storage.DB.DSN == "" || strings.Contains(cfg.Storage.DB.DSN, "memory") || cfg.Storage.KnownEntitiesCacheSize < 0 {
		return ErrInvalidStorageConfigs
	}

	switch cfg.Sync.UnresolvedPolicy {
	case "", "resync", "apply":
	default:
		return fmt.Errorf("%w: unknown unresolved policy %q", ErrInvalidSyncConfigs, cfg.Sync.UnresolvedPolicy)
	}
	if cfg.Sync.BackoffMaxFactor < 0 || cfg.Sync.ChannelDifferenceLimit < 0 || cfg.Sync.EventBuffer < 0 {
		return ErrInvalidSyncConfigs
	}

	if cfg.Workers.StateFlushInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
