// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// GlobalSyncState is the session-wide position in the server's update log.
//
// Pts points into the common message box, Qts into the secondary (encrypted)
// box, Seq numbers update envelopes and Date is the server time of the last
// applied change. A zero Pts means no baseline has been fetched yet.
type GlobalSyncState struct {
	// Pts is the last applied position of the common update log.
	Pts int `json:"pts"`

	// Qts is the last applied position of the secondary update log.
	Qts int `json:"qts"`

	// Date is the server unix time of the last applied state.
	Date int `json:"date"`

	// Seq is the sequence number of the last applied envelope.
	Seq int `json:"seq"`
}

// IsZero reports whether the state carries no baseline at all.
func (s GlobalSyncState) IsZero() bool {
	return s.Pts == 0 && s.Qts == 0 && s.Date == 0 && s.Seq == 0
}

// ChannelSyncState is the position of a single channel's independent update log.
type ChannelSyncState struct {
	// ChannelID identifies the channel.
	ChannelID int64 `json:"channel_id"`

	// Pts is the last applied position of the channel log.
	Pts int `json:"pts"`

	// Requesting is true while a channel difference is in flight.
	Requesting bool `json:"requesting"`

	// Initialized is false until a baseline pts is known. Updates for an
	// uninitialized channel are dropped.
	Initialized bool `json:"initialized"`
}

// PendingEnvelope is an envelope parked because its seq is ahead of the
// expected next value.
type PendingEnvelope struct {
	// SeqStart is the first seq covered by the envelope.
	SeqStart int

	// Seq is the last seq covered by the envelope.
	Seq int

	// Envelope is the parked payload.
	Envelope Envelope

	// InsertedAt is when the envelope was parked.
	InsertedAt time.Time
}

// BackoffState tracks the retry delay for one fetch scope.
type BackoffState struct {
	// CurrentDelay is the delay that will be used for the next failure.
	CurrentDelay time.Duration

	// LastFailureAt is the time of the most recent failure.
	LastFailureAt time.Time

	// Failures is the number of consecutive failures.
	Failures int
}
