package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"nhooyr.io/websocket"

	"github.com/MKhiriev/go-chat-sync/internal/config"
	"github.com/MKhiriev/go-chat-sync/internal/logger"
	"github.com/MKhiriev/go-chat-sync/internal/updates"
	"github.com/MKhiriev/go-chat-sync/internal/validators"
)

const (
	DefaultReconnectDelay    = 500 * time.Millisecond
	DefaultMaxReconnectDelay = 30 * time.Second
	DefaultPushReadLimit     = 4 << 20
)

var errFeederStopped = errors.New("feeder stopped")

// TokenSource supplies the bearer token for the push handshake.
type TokenSource interface {
	Token() string
}

// PushStream reads envelopes from the server's websocket and feeds them to
// the engine. It reconnects with a doubling delay and asks the engine to
// resync after every reconnect, since pushes sent while disconnected are
// lost.
type PushStream struct {
	url       string
	tokens    TokenSource
	feeder    Feeder
	validator validators.Validator

	clock     clockwork.Clock
	minDelay  time.Duration
	maxDelay  time.Duration
	readLimit int64

	logger *logger.Logger
}

// PushOption configures a PushStream.
type PushOption func(*PushStream)

// WithPushClock replaces the clock used for reconnect delays.
func WithPushClock(clock clockwork.Clock) PushOption {
	return func(p *PushStream) { p.clock = clock }
}

// WithReconnectDelay sets the first and the largest reconnect delay.
func WithReconnectDelay(minDelay, maxDelay time.Duration) PushOption {
	return func(p *PushStream) {
		p.minDelay = minDelay
		p.maxDelay = maxDelay
	}
}

// NewPushStream builds a stream for adapterCfg.PushAddress. A bare host:port
// address is dialed over ws://.
func NewPushStream(adapterCfg config.ClientAdapter, tokens TokenSource, feeder Feeder, logger *logger.Logger, opts ...PushOption) (*PushStream, error) {
	pushURL, err := normalizeBaseURL(adapterCfg.PushAddress, "ws")
	if err != nil {
		return nil, fmt.Errorf("invalid adapter push address: %w", err)
	}

	p := &PushStream{
		url:       pushURL,
		tokens:    tokens,
		feeder:    feeder,
		validator: validators.NewSyncResponseValidator(),
		clock:     clockwork.NewRealClock(),
		minDelay:  DefaultReconnectDelay,
		maxDelay:  DefaultMaxReconnectDelay,
		readLimit: DefaultPushReadLimit,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.maxDelay < p.minDelay {
		p.maxDelay = p.minDelay
	}
	return p, nil
}

// Run keeps the stream connected until ctx is done or the feeder stops.
// It returns an error wrapping [ErrUnauthorized] when the server rejects the
// token, and nil otherwise.
func (p *PushStream) Run(ctx context.Context) error {
	delay := p.minDelay
	connected := false

	for {
		conn, err := p.dial(ctx)
		if err == nil {
			if connected {
				if rerr := p.feeder.Resync(); errors.Is(rerr, updates.ErrEngineStopped) {
					_ = conn.Close(websocket.StatusNormalClosure, "")
					return nil
				}
			}
			connected = true
			delay = p.minDelay

			err = p.read(ctx, conn)
			if errors.Is(err, errFeederStopped) {
				return nil
			}
		}

		if ctx.Err() != nil {
			return nil
		}
		if errors.Is(err, ErrUnauthorized) {
			return err
		}

		p.logger.Warn().
			Str("func", "PushStream.Run").
			Err(err).
			Dur("retry_in", delay).
			Msg("push stream disconnected")

		select {
		case <-ctx.Done():
			return nil
		case <-p.clock.After(delay):
		}
		delay = min(delay*2, p.maxDelay)
	}
}

func (p *PushStream) dial(ctx context.Context) (*websocket.Conn, error) {
	header := http.Header{}
	if token := p.tokens.Token(); token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	conn, resp, err := websocket.Dial(ctx, p.url, &websocket.DialOptions{HTTPHeader: header})
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return nil, fmt.Errorf("push dial: %w", ErrUnauthorized)
		}
		return nil, fmt.Errorf("push dial: %w", err)
	}
	conn.SetReadLimit(p.readLimit)

	p.logger.Info().Str("func", "PushStream.dial").Str("url", p.url).Msg("push stream connected")
	return conn, nil
}

func (p *PushStream) read(ctx context.Context, conn *websocket.Conn) error {
	defer conn.Close(websocket.StatusNormalClosure, "")

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return fmt.Errorf("push read: %w", err)
		}

		env, err := DecodeEnvelope(data)
		if err == nil {
			err = p.validator.Validate(ctx, env)
		}
		if err != nil {
			// the gap this leaves is detected by the engine
			p.logger.Warn().Str("func", "PushStream.read").Err(err).Msg("dropping invalid push")
			continue
		}

		if err = p.feeder.Feed(env); err != nil {
			if errors.Is(err, updates.ErrEngineStopped) {
				return errFeederStopped
			}
			p.logger.Error().Str("func", "PushStream.read").Err(err).Msg("engine rejected push")
		}
	}
}
