package updates

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/time/rate"

	"github.com/MKhiriev/go-chat-sync/internal/logger"
	"github.com/MKhiriev/go-chat-sync/internal/metrics"
	"github.com/MKhiriev/go-chat-sync/internal/utils"
	"github.com/MKhiriev/go-chat-sync/models"
)

// Engine reconciles pushed updates with the server's logs. All state is owned
// by the goroutine running [Engine.Run]; the exported methods are safe for
// concurrent use.
type Engine struct {
	cfg       Config
	transport Transport
	cache     ObjectCache
	notifier  Notifier
	logger    *logger.Logger
	clock     clockwork.Clock
	metrics   *metrics.SyncMetrics
	limiter   *rate.Limiter
	sessionID string

	inbox   chan any
	done    chan struct{}
	started atomic.Bool

	// spawn runs a fetch off the loop.
	spawn func(fn func())

	global        ptsTracker
	qts           int
	date          int
	seq           int
	parked        []models.Envelope
	channels      *channelSet
	reorder       *reorderBuffer
	backoff       *backoffController
	sched         *scheduler
	activeChannel int64

	generation    uint64
	fetchCtx      context.Context
	cancelFetches context.CancelFunc
	fatal         error

	mu   sync.RWMutex
	snap snapshot
}

type snapshot struct {
	state      models.GlobalSyncState
	requesting bool
	channels   []models.ChannelSyncState
	buffered   int
}

type envelopeMsg struct {
	env models.Envelope
}

type commandMsg func(ctx context.Context)

type stateResult struct {
	generation uint64
	state      models.GlobalSyncState
	err        error
}

type differenceResult struct {
	generation uint64
	diff       models.Difference
	err        error
}

type channelResult struct {
	generation        uint64
	channelGeneration uint64
	channelID         int64
	diff              models.ChannelDifference
	err               error
}

// NewEngine builds an engine that fetches through transport and materializes
// into cache. The engine does nothing until Run is called.
func NewEngine(transport Transport, cache ObjectCache, cfg Config, log *logger.Logger, opts ...Option) *Engine {
	cfg = cfg.withDefaults()

	e := &Engine{
		cfg:       cfg,
		transport: transport,
		cache:     cache,
		notifier:  nopNotifier{},
		clock:     clockwork.NewRealClock(),
		inbox:     make(chan any, DefaultEventQueue),
		done:      make(chan struct{}),
		spawn:     func(fn func()) { go fn() },
		channels:  newChannelSet(),
		reorder:   newReorderBuffer(),
		backoff:   newBackoffController(cfg.BackoffBase, cfg.BackoffMaxFactor),
		sched:     newScheduler(),
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.sessionID == "" {
		e.sessionID = utils.NewSessionID()
	}
	if log == nil {
		log = logger.Nop()
	}
	e.logger = &logger.Logger{Logger: log.With().Str("session_id", e.sessionID).Logger()}

	limit, burst := rate.Inf, 0
	if cfg.RequestsPerSecond > 0 {
		limit, burst = rate.Limit(cfg.RequestsPerSecond), 1
	}
	e.limiter = rate.NewLimiter(limit, burst)

	e.fetchCtx, e.cancelFetches = e.newFetchContext()
	e.publish()
	return e
}

// SessionID returns the id the engine tags its logs with.
func (e *Engine) SessionID() string { return e.sessionID }

// Restore seeds the engine with persisted positions. It must be called
// before Run.
func (e *Engine) Restore(state models.GlobalSyncState, channels []models.ChannelSyncState) error {
	if e.started.Load() {
		return ErrAlreadyRunning
	}

	e.global.Commit(state.Pts)
	e.qts = state.Qts
	e.date = state.Date
	e.seq = state.Seq
	for _, ch := range channels {
		if ch.ChannelID <= 0 {
			continue
		}
		e.channels.open(ch.ChannelID, ch.Pts)
	}
	e.publish()

	e.logger.Info().
		Str("func", "Engine.Restore").
		Int("pts", state.Pts).
		Int("qts", state.Qts).
		Int("seq", state.Seq).
		Int("channels", len(channels)).
		Msg("sync state restored")
	return nil
}

// Run processes envelopes, fetch results and timers until ctx is cancelled
// or the session is revoked. It returns nil on cancellation and an error
// wrapping [ErrSessionRevoked] when the server rejected the session.
func (e *Engine) Run(ctx context.Context) error {
	if !e.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer func() {
		e.cancelFetches()
		close(e.done)
	}()

	e.start()
	e.publish()

	var timer clockwork.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		var alarm <-chan time.Time
		if timer != nil {
			timer.Stop()
			timer = nil
		}
		if next, ok := e.sched.Next(); ok {
			timer = e.clock.NewTimer(max(next.Sub(e.clock.Now()), 0))
			alarm = timer.Chan()
		}

		select {
		case <-ctx.Done():
			e.logger.Info().Str("func", "Engine.Run").Msg("engine stopped")
			return nil
		case msg := <-e.inbox:
			e.handle(ctx, msg)
		case <-alarm:
			e.fireDue()
		}

		e.publish()
		if e.fatal != nil {
			return e.fatal
		}
	}
}

// start kicks off the initial fetches: a difference from the restored
// position, or the current state when there is none, plus baselines for
// channels restored without one.
func (e *Engine) start() {
	e.touch()
	reason := reasonResume
	if e.global.Pts() == 0 {
		reason = reasonColdStart
	}
	e.requestGlobalDifference(reason)

	e.channels.each(func(ch *channelState) {
		if !ch.initialized {
			e.requestChannelDifference(ch, reasonBaseline)
		}
	})
}

// Feed hands a pushed envelope to the engine.
func (e *Engine) Feed(env models.Envelope) error {
	if env == nil {
		return ErrNilEnvelope
	}
	return e.post(envelopeMsg{env: env})
}

// Resync asks for a global difference as if a gap had been detected.
func (e *Engine) Resync() error {
	return e.post(commandMsg(func(context.Context) {
		e.requestGlobalDifference(reasonExplicit)
	}))
}

// OpenChannel starts tracking a channel. A zero pts fetches a baseline
// first; updates for the channel are dropped until it arrives.
func (e *Engine) OpenChannel(id int64, pts int) error {
	if id <= 0 {
		return ErrInvalidChannel
	}
	return e.post(commandMsg(func(context.Context) {
		ch, created := e.channels.open(id, pts)
		e.logger.Debug().
			Str("func", "Engine.OpenChannel").
			Int64("channel_id", id).
			Int("pts", ch.tracker.Pts()).
			Bool("created", created).
			Msg("channel opened")
		if !ch.initialized {
			e.requestChannelDifference(ch, reasonBaseline)
		}
	}))
}

// CloseChannel stops tracking a channel. Fetches in flight for it are ignored
// when they complete.
func (e *Engine) CloseChannel(id int64) error {
	if id <= 0 {
		return ErrInvalidChannel
	}
	return e.post(commandMsg(func(context.Context) {
		if !e.channels.close(id) {
			return
		}
		scope := ChannelScope(id)
		e.sched.CancelScope(scope)
		e.backoff.OnSuccess(scope)
		if e.activeChannel == id {
			e.activeChannel = 0
		}
		e.logger.Debug().Str("func", "Engine.CloseChannel").Int64("channel_id", id).Msg("channel closed")
	}))
}

// SetActiveChannel marks the channel the user is looking at. The active
// channel is polled while it is open. Zero clears the mark.
func (e *Engine) SetActiveChannel(id int64) error {
	if id < 0 {
		return ErrInvalidChannel
	}
	return e.post(commandMsg(func(context.Context) {
		if prev, ok := e.channels.get(e.activeChannel); ok && prev.id != id {
			prev.active = false
			e.sched.Cancel(TimerShortPoll, ChannelScope(prev.id))
		}
		e.activeChannel = id
		if id == 0 {
			return
		}

		ch, _ := e.channels.open(id, 0)
		ch.active = true
		e.requestChannelDifference(ch, reasonActivated)
	}))
}

// Reset drops the session's positions, cancels every fetch in flight and
// starts over from the server's current state.
func (e *Engine) Reset() error {
	return e.post(commandMsg(func(context.Context) {
		e.resetSession()
		e.requestGlobalDifference(reasonColdStart)
	}))
}

// State returns the last published global position.
func (e *Engine) State() models.GlobalSyncState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snap.state
}

// Requesting reports whether a global difference is in flight.
func (e *Engine) Requesting() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snap.requesting
}

// Channel returns the last published state of a channel.
func (e *Engine) Channel(id int64) (models.ChannelSyncState, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, ch := range e.snap.channels {
		if ch.ChannelID == id {
			return ch, true
		}
	}
	return models.ChannelSyncState{}, false
}

// Channels returns the last published state of every tracked channel.
func (e *Engine) Channels() []models.ChannelSyncState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]models.ChannelSyncState, len(e.snap.channels))
	copy(out, e.snap.channels)
	return out
}

// Buffered returns how many envelopes wait in the reorder buffer.
func (e *Engine) Buffered() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.snap.buffered
}

func (e *Engine) post(msg any) error {
	select {
	case <-e.done:
		return ErrEngineStopped
	default:
	}
	select {
	case e.inbox <- msg:
		return nil
	case <-e.done:
		return ErrEngineStopped
	}
}

func (e *Engine) handle(ctx context.Context, msg any) {
	switch m := msg.(type) {
	case envelopeMsg:
		e.dispatch(ctx, m.env)
	case commandMsg:
		m(ctx)
	case stateResult:
		e.onState(ctx, m)
	case differenceResult:
		e.onDifference(ctx, m)
	case channelResult:
		e.onChannelDifference(ctx, m)
	default:
		e.logger.Error().Str("func", "Engine.handle").Str("type", fmt.Sprintf("%T", msg)).Msg("unexpected loop message")
	}
}

// fireDue runs every timer whose deadline has passed.
func (e *Engine) fireDue() {
	for _, key := range e.sched.PopDue(e.clock.Now()) {
		e.logger.Debug().
			Str("func", "Engine.fireDue").
			Stringer("timer", key.class).
			Stringer("scope", key.scope).
			Msg("timer fired")

		switch key.class {
		case TimerReorder:
			dropped := e.reorder.Clear()
			e.logger.Info().
				Str("func", "Engine.fireDue").
				Int("dropped", dropped).
				Int("seq", e.seq).
				Msg("reorder buffer expired")
			e.requestGlobalDifference(reasonReorderTimeout)
		case TimerIdle:
			e.requestGlobalDifference(reasonIdle)
		default:
			e.requestScope(key.scope, timerReason(key.class))
		}
	}
}

func (e *Engine) requestScope(scope Scope, reason string) {
	if scope.IsGlobal() {
		e.requestGlobalDifference(reason)
		return
	}
	if ch, ok := e.channels.get(scope.ChannelID); ok {
		e.requestChannelDifference(ch, reason)
	}
}

func timerReason(class TimerClass) string {
	switch class {
	case TimerPtsWait:
		return reasonPtsGap
	case TimerAfterFailure:
		return reasonAfterFailure
	case TimerShortPoll:
		return reasonShortPoll
	default:
		return class.String()
	}
}

// touch pushes the idle check forward.
func (e *Engine) touch() {
	if e.cfg.IdleTimeout <= 0 {
		return
	}
	e.sched.Reset(TimerIdle, GlobalScope, e.clock.Now().Add(e.cfg.IdleTimeout))
}

func (e *Engine) globalState() models.GlobalSyncState {
	return models.GlobalSyncState{Pts: e.global.Pts(), Qts: e.qts, Date: e.date, Seq: e.seq}
}

// resetSession forgets every position and invalidates fetches in flight.
func (e *Engine) resetSession() {
	e.cancelFetches()
	e.fetchCtx, e.cancelFetches = e.newFetchContext()
	e.generation++

	e.global = ptsTracker{}
	e.qts, e.date, e.seq = 0, 0, 0
	e.parked = nil
	e.channels = newChannelSet()
	e.activeChannel = 0
	e.reorder.Clear()
	e.backoff.reset()
	e.sched.reset()

	e.logger.Info().Str("func", "Engine.resetSession").Uint64("generation", e.generation).Msg("session state reset")
}

// newFetchContext returns the context fetches run under. It outlives any
// single Run call and carries the session id to the transport.
func (e *Engine) newFetchContext() (context.Context, context.CancelFunc) {
	return context.WithCancel(utils.WithSessionID(context.Background(), e.sessionID))
}

func (e *Engine) notify(ev Event) {
	e.notifier.Notify(ev)
}

func (e *Engine) publish() {
	snap := snapshot{
		state:      e.globalState(),
		requesting: e.global.requesting,
		channels:   e.channels.snapshots(),
		buffered:   e.reorder.Len(),
	}
	e.mu.Lock()
	e.snap = snap
	e.mu.Unlock()

	e.metrics.Observe(snap.buffered, len(snap.channels))
}
