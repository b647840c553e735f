package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-chat-sync/internal/config"
	"github.com/MKhiriev/go-chat-sync/internal/updates"
)

func TestNewSyncConfig(t *testing.T) {
	cfg := &config.ClientConfig{
		App:     config.ClientApp{SelfID: 42},
		Adapter: config.ClientAdapter{RequestsPerSecond: 2.5},
		Sync: config.ClientSync{
			PtsWaitDelay:           300 * time.Millisecond,
			ReorderTimeout:         2 * time.Second,
			BackoffBase:            time.Second,
			BackoffMaxFactor:       16,
			IdleTimeout:            -1,
			ChannelPollInterval:    3 * time.Second,
			ChannelDifferenceLimit: 50,
			UnresolvedPolicy:       "apply",
		},
	}

	got := NewSyncConfig(cfg)

	assert.Equal(t, updates.Config{
		SelfID:                 42,
		PtsWaitDelay:           300 * time.Millisecond,
		ReorderTimeout:         2 * time.Second,
		BackoffBase:            time.Second,
		BackoffMaxFactor:       16,
		IdleTimeout:            -1,
		ChannelPollInterval:    3 * time.Second,
		ChannelDifferenceLimit: 50,
		RequestsPerSecond:      2.5,
		UnresolvedPolicy:       updates.PolicyApply,
	}, got)
	assert.NoError(t, got.Validate())
}
