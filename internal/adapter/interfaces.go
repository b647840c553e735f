// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter connects the sync engine to the chat server.
//
// [UpdatesAdapter] implements updates.Transport over HTTP/REST, and
// [PushStream] delivers pushed envelopes over a websocket. Both speak the
// JSON wire format defined in wire.go.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrUnauthorized] for 401, which also matches
// updates.ErrSessionRevoked).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-chat-sync/internal/updates"
	"github.com/MKhiriev/go-chat-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/adapter_mock.go -package=mock

// UpdatesAdapter is the server side of the sync engine.
type UpdatesAdapter interface {
	updates.Transport

	// SetToken stores the bearer token that will be attached to all subsequent
	// requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string
}

// Feeder consumes pushed envelopes. *updates.Engine satisfies it.
type Feeder interface {
	Feed(env models.Envelope) error
	Resync() error
}

// Stream delivers pushed envelopes until ctx is done.
type Stream interface {
	Run(ctx context.Context) error
}
