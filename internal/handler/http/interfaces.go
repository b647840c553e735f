package http

import "github.com/MKhiriev/go-chat-sync/models"

//go:generate mockgen -source=interfaces.go -destination=../../mock/handler_mock.go -package=mock

// Engine is the part of the sync engine exposed over HTTP.
type Engine interface {
	SessionID() string
	State() models.GlobalSyncState
	Requesting() bool
	Buffered() int
	Channels() []models.ChannelSyncState
	Channel(id int64) (models.ChannelSyncState, bool)

	Resync() error
	OpenChannel(id int64, pts int) error
	CloseChannel(id int64) error
	SetActiveChannel(id int64) error
}
