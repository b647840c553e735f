// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// DifferenceKind classifies a difference response.
type DifferenceKind int

const (
	// DifferenceEmpty means nothing changed since the requested position;
	// only dates and counters move.
	DifferenceEmpty DifferenceKind = iota + 1
	// DifferenceTooLong means the requested position is too old to be
	// bridged with a diff. The client rebaselines instead of applying one.
	DifferenceTooLong
	// DifferenceIncremental carries changes to apply.
	DifferenceIncremental
)

func (k DifferenceKind) String() string {
	switch k {
	case DifferenceEmpty:
		return "empty"
	case DifferenceTooLong:
		return "too_long"
	case DifferenceIncremental:
		return "incremental"
	default:
		return "unknown"
	}
}

// DifferenceRequest asks for everything in the common log after the given
// position.
type DifferenceRequest struct {
	Pts  int `json:"pts"`
	Date int `json:"date"`
	Qts  int `json:"qts"`
}

// Difference is the server answer to a DifferenceRequest.
type Difference struct {
	Kind DifferenceKind `json:"kind"`

	// Final is false when the server has more pages; the client must fetch
	// again from State.
	Final bool `json:"final"`

	// State is the position after applying this response. For a non-final
	// response it is the intermediate state. For an empty response only
	// Date and Seq are meaningful. For a too-long response only Pts is.
	State GlobalSyncState `json:"state"`

	NewMessages  []Message `json:"new_messages,omitempty"`
	OtherUpdates []Update  `json:"other_updates,omitempty"`
	Users        []User    `json:"users,omitempty"`
	Chats        []Chat    `json:"chats,omitempty"`
}

// ChannelDifferenceRequest asks for a channel's log after Pts. A zero Pts
// asks for a fresh baseline.
type ChannelDifferenceRequest struct {
	ChannelID int64 `json:"channel_id"`
	Pts       int   `json:"pts"`
	Limit     int   `json:"limit"`
}

// ChannelDifference is the server answer to a ChannelDifferenceRequest.
type ChannelDifference struct {
	Kind  DifferenceKind `json:"kind"`
	Final bool           `json:"final"`

	// Pts is the channel position after applying this response.
	Pts int `json:"pts"`

	// Timeout is the server's suggested poll interval in seconds, zero if
	// none was given.
	Timeout int `json:"timeout,omitempty"`

	// TopMessage is the newest message id of a too-long snapshot.
	TopMessage int `json:"top_message,omitempty"`

	// Messages is the snapshot of recent messages for a too-long response,
	// and the new messages for an incremental one.
	Messages     []Message `json:"messages,omitempty"`
	OtherUpdates []Update  `json:"other_updates,omitempty"`
	Users        []User    `json:"users,omitempty"`
	Chats        []Chat    `json:"chats,omitempty"`
}
