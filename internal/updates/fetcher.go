package updates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-chat-sync/models"
)

// Reasons a difference is fetched. They label logs and metrics.
const (
	reasonColdStart      = "cold_start"
	reasonResume         = "resume"
	reasonPtsGap         = "pts_gap"
	reasonAfterFailure   = "after_failure"
	reasonReorderTimeout = "reorder_timeout"
	reasonTooLong        = "too_long"
	reasonUnresolved     = "unresolved"
	reasonApplyFailed    = "apply_failed"
	reasonIdle           = "idle"
	reasonNotFinal       = "not_final"
	reasonExplicit       = "explicit"
	reasonBaseline       = "baseline"
	reasonShortPoll      = "short_poll"
	reasonChannelTooLong = "channel_too_long"
	reasonActivated      = "activated"
)

// retryHinter is implemented by transport errors that carry a server
// retry-after hint.
type retryHinter interface {
	RetryAfter() time.Duration
}

func retryHint(err error) time.Duration {
	var h retryHinter
	if errors.As(err, &h) {
		return h.RetryAfter()
	}
	return 0
}

// requestGlobalDifference starts a fetch of the common log unless one is
// already in flight. A pending retry after a failure is replaced by this
// fetch; the backoff keeps growing if it fails too.
func (e *Engine) requestGlobalDifference(reason string) {
	log := e.logger.With().Str("func", "Engine.requestGlobalDifference").Str("reason", reason).Logger()

	if e.global.requesting {
		log.Debug().Msg("difference already in flight")
		return
	}
	if at, ok := e.sched.Due(TimerAfterFailure, GlobalScope); ok && reason != reasonAfterFailure {
		log.Debug().Time("retry_at", at).Msg("new trigger overrides pending retry")
	}

	e.sched.Cancel(TimerPtsWait, GlobalScope)
	e.sched.Cancel(TimerAfterFailure, GlobalScope)
	e.sched.Cancel(TimerReorder, GlobalScope)
	if dropped := e.reorder.Clear(); dropped > 0 {
		log.Debug().Int("dropped", dropped).Msg("reorder buffer superseded by difference")
	}
	e.global.clearSkipped()
	e.global.requesting = true

	state := e.globalState()
	e.metrics.DifferenceRequested(GlobalScope.label(), reason)
	e.notify(Event{Kind: EventStale, Scope: GlobalScope, State: state})

	gen, ctx := e.generation, e.fetchCtx

	if state.Pts == 0 {
		log.Info().Msg("no baseline, fetching state")
		e.spawn(func() {
			st, err := e.fetchState(ctx)
			_ = e.post(stateResult{generation: gen, state: st, err: err})
		})
		return
	}

	req := models.DifferenceRequest{Pts: state.Pts, Date: state.Date, Qts: state.Qts}
	log.Info().Int("pts", req.Pts).Int("qts", req.Qts).Int("date", req.Date).Msg("fetching difference")
	e.spawn(func() {
		diff, err := e.fetchDifference(ctx, req)
		_ = e.post(differenceResult{generation: gen, diff: diff, err: err})
	})
}

func (e *Engine) fetchState(ctx context.Context) (models.GlobalSyncState, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return models.GlobalSyncState{}, fmt.Errorf("wait for fetch slot: %w", err)
	}
	st, err := e.transport.GetState(ctx)
	if err != nil {
		return models.GlobalSyncState{}, fmt.Errorf("get state: %w", err)
	}
	return st, nil
}

func (e *Engine) fetchDifference(ctx context.Context, req models.DifferenceRequest) (models.Difference, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return models.Difference{}, fmt.Errorf("wait for fetch slot: %w", err)
	}
	diff, err := e.transport.GetDifference(ctx, req)
	if err != nil {
		return models.Difference{}, fmt.Errorf("get difference: %w", err)
	}
	return diff, nil
}

func (e *Engine) fetchChannelDifference(ctx context.Context, req models.ChannelDifferenceRequest) (models.ChannelDifference, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return models.ChannelDifference{}, fmt.Errorf("wait for fetch slot: %w", err)
	}
	diff, err := e.transport.GetChannelDifference(ctx, req)
	if err != nil {
		return models.ChannelDifference{}, fmt.Errorf("get channel difference: %w", err)
	}
	return diff, nil
}

func (e *Engine) onState(ctx context.Context, r stateResult) {
	if r.generation != e.generation {
		e.logger.Debug().Str("func", "Engine.onState").Msg("dropping state of a previous session")
		return
	}
	if r.err != nil {
		e.failGlobal(ctx, r.err)
		return
	}

	e.backoff.OnSuccess(GlobalScope)
	e.commitGlobal(r.state)
	e.global.requesting = false
	e.onGlobalSynced(ctx)
}

func (e *Engine) onDifference(ctx context.Context, r differenceResult) {
	if r.generation != e.generation {
		e.logger.Debug().Str("func", "Engine.onDifference").Msg("dropping difference of a previous session")
		return
	}
	if r.err != nil {
		e.failGlobal(ctx, r.err)
		return
	}
	if err := e.applyDifference(ctx, r.diff); err != nil {
		e.failGlobal(ctx, fmt.Errorf("apply difference: %w", err))
		return
	}

	e.backoff.OnSuccess(GlobalScope)
	e.global.requesting = false

	e.logger.Debug().
		Str("func", "Engine.onDifference").
		Stringer("kind", r.diff.Kind).
		Bool("final", r.diff.Final).
		Int("pts", e.global.Pts()).
		Int("seq", e.seq).
		Msg("difference applied")

	if !r.diff.Final {
		e.requestGlobalDifference(reasonNotFinal)
		return
	}
	e.onGlobalSynced(ctx)
}

// applyDifference materializes a global difference and then advances the
// position. Nothing is committed when the cache rejects the data.
func (e *Engine) applyDifference(ctx context.Context, d models.Difference) error {
	switch d.Kind {
	case models.DifferenceEmpty:
	case models.DifferenceTooLong:
		e.logger.Info().
			Str("func", "Engine.applyDifference").
			Int("pts", e.global.Pts()).
			Int("server_pts", d.State.Pts).
			Msg("difference too long, rebaselining")
	case models.DifferenceIncremental:
		if err := e.applyEntities(ctx, d.Users, d.Chats); err != nil {
			return err
		}

		var rest []models.Update
		for _, u := range d.OtherUpdates {
			if _, ok := u.(models.UpdateMessageID); ok {
				if err := e.cache.ApplyUpdate(ctx, u); err != nil {
					return fmt.Errorf("apply message id: %w", err)
				}
				continue
			}
			rest = append(rest, u)
		}

		if len(d.NewMessages) > 0 {
			if err := e.cache.ApplyMessages(ctx, d.NewMessages, models.ApplyNewUnread); err != nil {
				return fmt.Errorf("apply new messages: %w", err)
			}
			e.notifyMessages(GlobalScope, d.NewMessages)
		}

		for _, u := range rest {
			if err := e.applyUpdate(ctx, u, fromGlobalDifference); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown difference kind %d", d.Kind)
	}

	e.commitGlobal(d.State)
	return nil
}

// commitGlobal moves the global position forward. Zero fields are left alone.
func (e *Engine) commitGlobal(st models.GlobalSyncState) {
	e.global.Commit(st.Pts)
	if st.Qts > e.qts {
		e.qts = st.Qts
	}
	if st.Date > e.date {
		e.date = st.Date
	}
	if st.Seq != 0 {
		e.seq = st.Seq
	}
}

func (e *Engine) failGlobal(ctx context.Context, err error) {
	e.global.requesting = false
	if e.checkFatal(err) {
		return
	}

	now := e.clock.Now()
	delay := e.backoff.OnFailure(GlobalScope, now, retryHint(err))
	e.sched.Schedule(TimerAfterFailure, GlobalScope, now.Add(delay))
	e.metrics.DifferenceFailed(GlobalScope.label(), delay)

	e.logger.Warn().
		Err(err).
		Str("func", "Engine.failGlobal").
		Dur("retry_in", delay).
		Int("failures", e.backoff.State(GlobalScope).Failures).
		Msg("global difference failed")

	e.replayParked(ctx)
}

// checkFatal stops the engine when the session was revoked.
func (e *Engine) checkFatal(err error) bool {
	if !errors.Is(err, ErrSessionRevoked) {
		return false
	}
	e.logger.Error().Err(err).Str("func", "Engine.checkFatal").Msg("session revoked, stopping")
	e.fatal = err
	return true
}

func (e *Engine) onGlobalSynced(ctx context.Context) {
	e.touch()
	state := e.globalState()

	e.logger.Info().
		Str("func", "Engine.onGlobalSynced").
		Int("pts", state.Pts).
		Int("qts", state.Qts).
		Int("seq", state.Seq).
		Int("parked", len(e.parked)).
		Msg("global log synced")

	e.notify(Event{Kind: EventStateChanged, Scope: GlobalScope, State: state})
	e.notify(Event{Kind: EventSynced, Scope: GlobalScope, State: state})
	e.replayParked(ctx)
}

// park keeps an envelope received while a global fetch is in flight.
func (e *Engine) park(env models.Envelope) {
	if len(e.parked) >= e.cfg.MaxParkedEnvelopes {
		e.logger.Warn().
			Str("func", "Engine.park").
			Int("limit", e.cfg.MaxParkedEnvelopes).
			Msg("too many parked envelopes, dropping the oldest")
		e.parked = e.parked[1:]
	}
	e.parked = append(e.parked, env)
}

func (e *Engine) replayParked(ctx context.Context) {
	parked := e.parked
	e.parked = nil
	for _, env := range parked {
		e.dispatch(ctx, env)
	}
}

// requestChannelDifference starts a fetch of a channel log unless one is
// already in flight. A pending retry after a failure is replaced by this
// fetch.
func (e *Engine) requestChannelDifference(ch *channelState, reason string) {
	scope := ChannelScope(ch.id)
	log := e.logger.With().
		Str("func", "Engine.requestChannelDifference").
		Int64("channel_id", ch.id).
		Str("reason", reason).
		Logger()

	if ch.tracker.requesting {
		log.Debug().Msg("channel difference already in flight")
		return
	}
	if at, ok := e.sched.Due(TimerAfterFailure, scope); ok && reason != reasonAfterFailure {
		log.Debug().Time("retry_at", at).Msg("new trigger overrides pending retry")
	}

	e.sched.Cancel(TimerPtsWait, scope)
	e.sched.Cancel(TimerAfterFailure, scope)
	e.sched.Cancel(TimerShortPoll, scope)
	ch.tracker.clearSkipped()
	ch.tracker.requesting = true

	e.metrics.DifferenceRequested(scope.label(), reason)
	e.notify(Event{Kind: EventStale, Scope: scope})

	req := models.ChannelDifferenceRequest{
		ChannelID: ch.id,
		Pts:       ch.tracker.Pts(),
		Limit:     e.cfg.ChannelDifferenceLimit,
	}
	gen, chGen, ctx := e.generation, ch.generation, e.fetchCtx

	log.Debug().Int("pts", req.Pts).Msg("fetching channel difference")
	e.spawn(func() {
		diff, err := e.fetchChannelDifference(ctx, req)
		_ = e.post(channelResult{
			generation:        gen,
			channelGeneration: chGen,
			channelID:         req.ChannelID,
			diff:              diff,
			err:               err,
		})
	})
}

func (e *Engine) onChannelDifference(ctx context.Context, r channelResult) {
	if r.generation != e.generation {
		return
	}
	ch, ok := e.channels.get(r.channelID)
	if !ok || ch.generation != r.channelGeneration {
		e.logger.Debug().
			Str("func", "Engine.onChannelDifference").
			Int64("channel_id", r.channelID).
			Msg("dropping difference of a closed channel")
		return
	}
	if r.err != nil {
		e.failChannel(ctx, ch, r.err)
		return
	}
	if err := e.applyChannelDifference(ctx, ch, r.diff); err != nil {
		e.failChannel(ctx, ch, fmt.Errorf("apply channel difference: %w", err))
		return
	}

	scope := ChannelScope(ch.id)
	e.backoff.OnSuccess(scope)
	ch.tracker.requesting = false

	if !r.diff.Final {
		e.requestChannelDifference(ch, reasonNotFinal)
		return
	}

	e.notify(Event{Kind: EventStateChanged, Scope: scope})
	e.notify(Event{Kind: EventSynced, Scope: scope})
	e.replayChannel(ctx, ch)

	if ch.active && !ch.tracker.requesting {
		interval := e.cfg.ChannelPollInterval
		if r.diff.Timeout > 0 {
			interval = time.Duration(r.diff.Timeout) * time.Second
		}
		e.sched.Schedule(TimerShortPoll, scope, e.clock.Now().Add(interval))
	}
}

// applyChannelDifference materializes a channel difference and then advances
// the channel position.
func (e *Engine) applyChannelDifference(ctx context.Context, ch *channelState, d models.ChannelDifference) error {
	scope := ChannelScope(ch.id)

	switch d.Kind {
	case models.DifferenceEmpty:
	case models.DifferenceTooLong:
		if err := e.applyEntities(ctx, d.Users, d.Chats); err != nil {
			return err
		}
		if err := e.cache.ResetChannel(ctx, ch.id); err != nil {
			return fmt.Errorf("reset channel: %w", err)
		}
		msgs := e.channelMessages(ch.id, d.Messages)
		if len(msgs) > 0 {
			if err := e.cache.ApplyMessages(ctx, msgs, models.ApplyNewLast); err != nil {
				return fmt.Errorf("apply channel snapshot: %w", err)
			}
		}
		e.logger.Info().
			Str("func", "Engine.applyChannelDifference").
			Int64("channel_id", ch.id).
			Int("pts", d.Pts).
			Int("top_message", d.TopMessage).
			Msg("channel history reset")
		e.notify(Event{Kind: EventChannelReset, Scope: scope, Peer: models.ChannelPeer(ch.id)})
	case models.DifferenceIncremental:
		if err := e.applyEntities(ctx, d.Users, d.Chats); err != nil {
			return err
		}
		msgs := e.channelMessages(ch.id, d.Messages)
		if len(msgs) > 0 {
			if err := e.cache.ApplyMessages(ctx, msgs, models.ApplyNewUnread); err != nil {
				return fmt.Errorf("apply channel messages: %w", err)
			}
			e.notifyMessages(scope, msgs)
		}
		for _, u := range d.OtherUpdates {
			if err := e.applyUpdate(ctx, u, fromChannelDifference(ch.id)); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown channel difference kind %d", d.Kind)
	}

	if d.Kind == models.DifferenceTooLong {
		if d.Pts < ch.tracker.Pts() {
			e.logger.Warn().
				Str("func", "Engine.applyChannelDifference").
				Int64("channel_id", ch.id).
				Int("pts", ch.tracker.Pts()).
				Int("server_pts", d.Pts).
				Msg("channel baseline is behind the local position, starting over")
		}
		// the cached history is gone, the old position means nothing
		ch.tracker.Rebase(d.Pts)
	} else {
		ch.tracker.Commit(d.Pts)
	}
	ch.initialized = true
	return nil
}

// channelMessages drops messages a channel difference returned for another peer.
func (e *Engine) channelMessages(channelID int64, msgs []models.Message) []models.Message {
	peer := models.ChannelPeer(channelID)
	out := msgs[:0:0]
	for _, m := range msgs {
		if m.Peer != peer {
			e.logger.Error().
				Str("func", "Engine.channelMessages").
				Int64("channel_id", channelID).
				Int("message_id", m.ID).
				Int64("peer_id", m.Peer.ID).
				Msg("channel difference returned a message of another peer")
			continue
		}
		out = append(out, m)
	}
	return out
}

func (e *Engine) failChannel(ctx context.Context, ch *channelState, err error) {
	ch.tracker.requesting = false
	if e.checkFatal(err) {
		return
	}

	scope := ChannelScope(ch.id)
	now := e.clock.Now()
	delay := e.backoff.OnFailure(scope, now, retryHint(err))
	e.sched.Schedule(TimerAfterFailure, scope, now.Add(delay))
	e.metrics.DifferenceFailed(scope.label(), delay)

	e.logger.Warn().
		Err(err).
		Str("func", "Engine.failChannel").
		Int64("channel_id", ch.id).
		Dur("retry_in", delay).
		Msg("channel difference failed")

	e.replayChannel(ctx, ch)
}

// replayChannel re-evaluates updates parked while the channel was fetching.
func (e *Engine) replayChannel(ctx context.Context, ch *channelState) {
	parked := ch.parked
	ch.parked = nil
	for _, u := range parked {
		if err := e.applyUpdate(ctx, u, fromPush); err != nil {
			e.logger.Err(err).
				Str("func", "Engine.replayChannel").
				Int64("channel_id", ch.id).
				Msg("failed to apply parked channel update")
			e.requestChannelDifference(ch, reasonApplyFailed)
			return
		}
	}
}

func (e *Engine) applyEntities(ctx context.Context, users []models.User, chats []models.Chat) error {
	if len(users) > 0 {
		if err := e.cache.ApplyUsers(ctx, users); err != nil {
			return fmt.Errorf("apply users: %w", err)
		}
	}
	if len(chats) > 0 {
		if err := e.cache.ApplyChats(ctx, chats); err != nil {
			return fmt.Errorf("apply chats: %w", err)
		}
	}
	return nil
}

func (e *Engine) notifyMessages(scope Scope, msgs []models.Message) {
	seen := make(map[models.Peer]struct{}, len(msgs))
	for _, m := range msgs {
		if _, ok := seen[m.Peer]; ok {
			continue
		}
		seen[m.Peer] = struct{}{}
		e.notify(Event{Kind: EventMessagesChanged, Scope: scope, Peer: m.Peer})
	}
}
