package service

import (
	"github.com/MKhiriev/go-chat-sync/internal/config"
	"github.com/MKhiriev/go-chat-sync/internal/updates"
)

// NewSyncConfig maps the client configuration onto the engine settings.
// Zero values are left for the engine to default.
func NewSyncConfig(cfg *config.ClientConfig) updates.Config {
	return updates.Config{
		SelfID:                 cfg.App.SelfID,
		PtsWaitDelay:           cfg.Sync.PtsWaitDelay,
		ReorderTimeout:         cfg.Sync.ReorderTimeout,
		BackoffBase:            cfg.Sync.BackoffBase,
		BackoffMaxFactor:       cfg.Sync.BackoffMaxFactor,
		IdleTimeout:            cfg.Sync.IdleTimeout,
		ChannelPollInterval:    cfg.Sync.ChannelPollInterval,
		ChannelDifferenceLimit: cfg.Sync.ChannelDifferenceLimit,
		RequestsPerSecond:      cfg.Adapter.RequestsPerSecond,
		UnresolvedPolicy:       updates.UnresolvedPolicy(cfg.Sync.UnresolvedPolicy),
	}
}
