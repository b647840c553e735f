// Package server runs the client's local HTTP endpoint.
//
// The server is a worker: it serves until its context is cancelled and then
// shuts down gracefully.
package server
