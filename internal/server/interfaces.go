package server

import "context"

// Server defines the lifecycle contract for servers managed by this package.
//
// Run blocks until ctx is cancelled or the listener fails. A cancelled
// context is a clean stop and yields nil.
type Server interface {
	Run(ctx context.Context) error
}
