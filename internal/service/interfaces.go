// Package service holds the client use cases around the sync engine:
// restoring and saving sync positions, and reacting to a revoked session.
package service

import (
	"context"

	"github.com/MKhiriev/go-chat-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// SyncEngine is the part of the engine the services drive.
// *updates.Engine satisfies it.
type SyncEngine interface {
	Restore(state models.GlobalSyncState, channels []models.ChannelSyncState) error
	State() models.GlobalSyncState
	Channels() []models.ChannelSyncState
}

// SessionService moves sync positions between the engine and the local
// store.
type SessionService interface {
	// Restore loads the saved positions into the engine. It must be called
	// before the engine runs.
	Restore(ctx context.Context) error

	// Save persists the engine's current positions. Nothing is written when
	// they did not change since the last call.
	Save(ctx context.Context) error

	// Revoke drops every saved position after the server rejected the
	// session.
	Revoke(ctx context.Context) error
}
