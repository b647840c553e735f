// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package updates keeps the client's local view of chats and messages
// consistent with a server that pushes incremental updates over an unreliable
// connection.
//
// Every update the server sends is positioned in a log. The common log is
// numbered by pts, a secondary log by qts, envelopes by seq, and each channel
// keeps its own independent pts log. The [Engine] validates each update
// against the position of its log before applying it:
//
//   - an update that continues the log is applied and the position advanced;
//   - an update that is already covered is ignored;
//   - an update past a gap is parked for a short while, and if the gap is not
//     closed by later pushes, a difference is fetched from the server.
//
// Envelopes that arrive ahead of their seq are held in a reorder buffer until
// the missing ones show up or a timeout forces a fetch. Fetches that fail are
// retried with exponential backoff. All timers share one soonest-wins
// scheduler.
//
// The Engine owns its state on a single goroutine started by [Engine.Run].
// Transport, the local object cache and observers are reached through the
// [Transport], [ObjectCache] and [Notifier] interfaces.
package updates
