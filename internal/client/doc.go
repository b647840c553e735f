// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the sync client runtime.
//
// It wires the update engine to the server adapter, the push stream, the
// local store and the background jobs, runs them as one unit, and drops the
// saved sync state when the server revokes the session.
package client
