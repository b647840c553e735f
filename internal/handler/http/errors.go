// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

var (
	// ErrInvalidChannelID is returned when the {id} path segment is not a
	// positive integer.
	ErrInvalidChannelID = errors.New("invalid channel id in path")

	// ErrInvalidPts is returned when the pts query parameter is not a
	// non-negative integer.
	ErrInvalidPts = errors.New("invalid pts query parameter")

	// ErrChannelNotTracked is returned when a channel is not tracked by the engine.
	ErrChannelNotTracked = errors.New("channel is not tracked")
)
