package updates

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/go-chat-sync/internal/metrics"
)

// UnresolvedPolicy decides what happens to an envelope that references users
// or chats missing from the local cache.
type UnresolvedPolicy string

const (
	// PolicyResync drops the envelope and fetches a difference, which carries
	// the missing entities.
	PolicyResync UnresolvedPolicy = "resync"
	// PolicyApply applies the envelope anyway.
	PolicyApply UnresolvedPolicy = "apply"
)

const (
	DefaultPtsWaitDelay           = 500 * time.Millisecond
	DefaultReorderTimeout         = time.Second
	DefaultBackoffBase            = time.Second
	DefaultBackoffMaxFactor       = 64
	DefaultIdleTimeout            = 60 * time.Second
	DefaultChannelPollInterval    = time.Second
	DefaultChannelDifferenceLimit = 100
	DefaultMaxParkedEnvelopes     = 1024
	DefaultEventQueue             = 256
)

// Config tunes the engine. Zero values are replaced with defaults.
type Config struct {
	// SelfID is the id of the logged-in user, used to expand compact
	// outgoing messages.
	SelfID int64

	PtsWaitDelay     time.Duration
	ReorderTimeout   time.Duration
	BackoffBase      time.Duration
	BackoffMaxFactor int

	// IdleTimeout is how long the engine waits without any push before it
	// checks the server with a difference. Negative disables the check.
	IdleTimeout         time.Duration
	ChannelPollInterval time.Duration

	ChannelDifferenceLimit int

	// RequestsPerSecond limits difference fetches. Zero means unlimited.
	RequestsPerSecond float64

	UnresolvedPolicy   UnresolvedPolicy
	MaxParkedEnvelopes int
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{}.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.PtsWaitDelay <= 0 {
		c.PtsWaitDelay = DefaultPtsWaitDelay
	}
	if c.ReorderTimeout <= 0 {
		c.ReorderTimeout = DefaultReorderTimeout
	}
	if c.BackoffBase <= 0 {
		c.BackoffBase = DefaultBackoffBase
	}
	if c.BackoffMaxFactor <= 0 {
		c.BackoffMaxFactor = DefaultBackoffMaxFactor
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = DefaultIdleTimeout
	}
	if c.ChannelPollInterval <= 0 {
		c.ChannelPollInterval = DefaultChannelPollInterval
	}
	if c.ChannelDifferenceLimit <= 0 {
		c.ChannelDifferenceLimit = DefaultChannelDifferenceLimit
	}
	if c.UnresolvedPolicy == "" {
		c.UnresolvedPolicy = PolicyResync
	}
	if c.MaxParkedEnvelopes <= 0 {
		c.MaxParkedEnvelopes = DefaultMaxParkedEnvelopes
	}
	return c
}

// Validate reports settings that cannot be defaulted.
func (c Config) Validate() error {
	switch c.UnresolvedPolicy {
	case "", PolicyResync, PolicyApply:
	default:
		return fmt.Errorf("%w: unknown unresolved policy %q", ErrInvalidSyncConfig, c.UnresolvedPolicy)
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("%w: negative requests per second", ErrInvalidSyncConfig)
	}
	return nil
}

// Option customizes an Engine.
type Option func(e *Engine)

// WithClock replaces the wall clock, mostly for tests.
func WithClock(clock clockwork.Clock) Option {
	return func(e *Engine) { e.clock = clock }
}

// WithMetrics makes the engine record into m.
func WithMetrics(m *metrics.SyncMetrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithNotifier sets the observer of engine events.
func WithNotifier(n Notifier) Option {
	return func(e *Engine) {
		if n != nil {
			e.notifier = n
		}
	}
}

// WithSessionID tags the engine's logs with the given session id.
func WithSessionID(id string) Option {
	return func(e *Engine) { e.sessionID = id }
}
