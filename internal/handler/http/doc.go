// Package http implements the local control surface of the sync client.
//
// It serves prometheus metrics, a JSON view of the engine's positions and a
// few commands (resync, channel open/close/activate) meant for operators and
// integration tests. Every request gets a trace id and an access log line.
package http
