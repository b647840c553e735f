package updates

import (
	"context"

	"github.com/MKhiriev/go-chat-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/updates_mock.go -package=mock

// Transport issues the server requests the engine needs to recover from gaps.
// Implementations map transport failures to errors; an error that unwraps to
// [ErrSessionRevoked] is fatal, and an error implementing
// RetryAfter() time.Duration carries a server retry hint.
type Transport interface {
	// GetState returns the current position of the session's logs. It is used
	// when no baseline is known yet.
	GetState(ctx context.Context) (models.GlobalSyncState, error)

	// GetDifference returns everything in the common and secondary logs after
	// the given position.
	GetDifference(ctx context.Context, req models.DifferenceRequest) (models.Difference, error)

	// GetChannelDifference returns everything in a channel log after the given
	// position.
	GetChannelDifference(ctx context.Context, req models.ChannelDifferenceRequest) (models.ChannelDifference, error)
}

// ObjectCache is the local store of users, chats and messages. Every method
// must be idempotent: applying the same data twice leaves the cache as if it
// was applied once.
type ObjectCache interface {
	ApplyUsers(ctx context.Context, users []models.User) error
	ApplyChats(ctx context.Context, chats []models.Chat) error
	ApplyMessages(ctx context.Context, messages []models.Message, mode models.ApplyMode) error

	// ApplyUpdate materializes an update that is not a plain message insert
	// or edit: deletions, read marks, views, statuses and similar.
	ApplyUpdate(ctx context.Context, update models.Update) error

	// ResetChannel drops the cached history of a channel.
	ResetChannel(ctx context.Context, channelID int64) error

	HasUser(ctx context.Context, id int64) (bool, error)
	HasChat(ctx context.Context, id int64) (bool, error)
}

// StateStore persists sync positions between runs.
type StateStore interface {
	LoadState(ctx context.Context) (models.GlobalSyncState, error)
	SaveState(ctx context.Context, state models.GlobalSyncState) error
	LoadChannels(ctx context.Context) ([]models.ChannelSyncState, error)
	SaveChannels(ctx context.Context, channels []models.ChannelSyncState) error
	ClearState(ctx context.Context) error
}
