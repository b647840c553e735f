package updates

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-chat-sync/models"
)

// source tells where an update came from. Updates delivered by a difference
// of their own log are applied without a position check, the difference
// commits the position afterwards.
type source struct {
	difference bool
	channelID  int64
}

var (
	fromPush             = source{}
	fromGlobalDifference = source{difference: true}
)

func fromChannelDifference(id int64) source {
	return source{difference: true, channelID: id}
}

// dispatch routes a pushed envelope. While a global difference is in flight
// envelopes are parked and replayed once it completes.
func (e *Engine) dispatch(ctx context.Context, env models.Envelope) {
	e.touch()

	if e.global.requesting {
		e.park(env)
		return
	}

	switch v := env.(type) {
	case models.UpdatesTooLong:
		e.requestGlobalDifference(reasonTooLong)
	case models.UpdatesCombined:
		e.dispatchCombined(ctx, v)
	case models.UpdateShort:
		e.dispatchShort(ctx, v)
	case models.UpdateShortMessage:
		msg := v.AsMessage(e.cfg.SelfID)
		e.dispatchShortMessage(ctx, models.UpdateNewMessage{Message: msg, Pts: v.Pts, PtsCount: v.PtsCount}, v.Date)
	case models.UpdateShortChatMessage:
		msg := v.AsMessage()
		e.dispatchShortMessage(ctx, models.UpdateNewMessage{Message: msg, Pts: v.Pts, PtsCount: v.PtsCount}, v.Date)
	case models.UpdateShortSentMessage:
		e.dispatchShortSent(ctx, v)
	default:
		e.logger.Error().
			Err(ErrUnknownEnvelope).
			Str("func", "Engine.dispatch").
			Str("type", fmt.Sprintf("%T", env)).
			Msg("dropping envelope")
	}
}

func (e *Engine) dispatchCombined(ctx context.Context, v models.UpdatesCombined) {
	if v.Seq != 0 && e.seq != 0 {
		first := v.FirstSeq()
		switch {
		case v.Seq <= e.seq:
			e.metrics.Duplicate(GlobalScope.label())
			e.logger.Debug().
				Str("func", "Engine.dispatchCombined").
				Int("seq", v.Seq).
				Int("current_seq", e.seq).
				Msg("envelope already applied")
			return
		case first > e.seq+1:
			e.reorder.Push(models.PendingEnvelope{
				SeqStart:   first,
				Seq:        v.Seq,
				Envelope:   v,
				InsertedAt: e.clock.Now(),
			})
			e.scheduleReorderExpiry()
			e.logger.Debug().
				Str("func", "Engine.dispatchCombined").
				Int("seq_start", first).
				Int("seq", v.Seq).
				Int("current_seq", e.seq).
				Int("buffered", e.reorder.Len()).
				Msg("envelope ahead of seq, buffering")
			return
		}
	}

	if !e.applyCombined(ctx, v) {
		return
	}
	if v.Seq != 0 {
		e.advanceSeq(ctx, v.Seq)
	}
}

// applyCombined applies a batch as a unit. Every update is checked against
// scratch positions first, then all of them are written, and only then do
// the positions move together. A gap or a failed write leaves every position
// where it was and requests a difference.
func (e *Engine) applyCombined(ctx context.Context, v models.UpdatesCombined) bool {
	known := newEntitySet(v.Users, v.Chats)
	for _, u := range v.Updates {
		ok, err := e.updateResolvable(ctx, u, known)
		if err != nil {
			e.logger.Warn().Err(err).Str("func", "Engine.applyCombined").Msg("failed to check references")
		}
		if !ok {
			if e.skipUnresolved(v.Seq) {
				return false
			}
			break
		}
	}

	plan := e.planBatch(v.Updates)
	if plan.gap {
		e.metrics.Gap(GlobalScope.label())
		e.logger.Debug().
			Str("func", "Engine.applyCombined").
			Str("log", plan.gapScope).
			Int("seq", v.Seq).
			Int("current_pts", e.global.Pts()).
			Int("current_qts", e.qts).
			Msg("gap inside envelope, resyncing")
		e.requestGlobalDifference(reasonPtsGap)
		return false
	}

	if err := e.applyEntities(ctx, v.Users, v.Chats); err != nil {
		e.applyFailed(err)
		return false
	}
	if err := e.writeBatch(ctx, &plan); err != nil {
		e.applyFailed(err)
		return false
	}

	e.commitBatch(plan)
	if v.Date > e.date {
		e.date = v.Date
	}
	e.settleBatch(ctx, plan)
	return true
}

// advanceSeq records an applied seq and applies buffered envelopes that now
// follow it.
func (e *Engine) advanceSeq(ctx context.Context, seq int) {
	e.seq = seq

	ready, _ := e.reorder.TryDrain(seq)
	for _, p := range ready {
		if e.global.requesting {
			break
		}
		env, ok := p.Envelope.(models.UpdatesCombined)
		if !ok {
			continue
		}
		if !e.applyCombined(ctx, env) {
			break
		}
		e.seq = p.Seq
		e.logger.Debug().Str("func", "Engine.advanceSeq").Int("seq", p.Seq).Msg("buffered envelope applied")
	}

	e.scheduleReorderExpiry()
}

// scheduleReorderExpiry keeps the reorder deadline bound to the oldest
// buffered envelope.
func (e *Engine) scheduleReorderExpiry() {
	oldest, ok := e.reorder.Oldest()
	if !ok {
		e.sched.Cancel(TimerReorder, GlobalScope)
		return
	}
	e.sched.Reset(TimerReorder, GlobalScope, oldest.Add(e.cfg.ReorderTimeout))
}

func (e *Engine) dispatchShort(ctx context.Context, v models.UpdateShort) {
	ok, err := e.updateResolvable(ctx, v.Update, entitySet{})
	if err != nil {
		e.logger.Warn().Err(err).Str("func", "Engine.dispatchShort").Msg("failed to check references")
	}
	if !ok && e.skipUnresolved(0) {
		return
	}
	if err := e.applyUpdate(ctx, v.Update, fromPush); err != nil {
		e.applyFailed(err)
		return
	}
	if v.Date > e.date {
		e.date = v.Date
	}
}

func (e *Engine) dispatchShortMessage(ctx context.Context, u models.UpdateNewMessage, date int) {
	ok, err := e.messageResolvable(ctx, u.Message, entitySet{})
	if err != nil {
		e.logger.Warn().Err(err).Str("func", "Engine.dispatchShortMessage").Msg("failed to check references")
	}
	if !ok && e.skipUnresolved(0) {
		return
	}
	if err := e.applyUpdate(ctx, u, fromPush); err != nil {
		e.applyFailed(err)
		return
	}
	if date > e.date {
		e.date = date
	}
}

// dispatchShortSent advances the common log for a message this client sent
// and binds its random id to the server id.
func (e *Engine) dispatchShortSent(ctx context.Context, v models.UpdateShortSentMessage) {
	var u models.Update
	if v.RandomID != 0 {
		u = models.UpdateMessageID{ID: v.ID, RandomID: v.RandomID}
	}
	if err := e.checkAndApply(ctx, GlobalScope, &e.global, u, v.Pts, v.PtsCount); err != nil {
		e.applyFailed(err)
		return
	}
	if v.Date > e.date {
		e.date = v.Date
	}
}

func (e *Engine) applyFailed(err error) {
	e.logger.Err(err).Str("func", "Engine.applyFailed").Msg("failed to apply update, resyncing")
	e.requestGlobalDifference(reasonApplyFailed)
}

// applyUpdate routes an update to the gate of its log.
func (e *Engine) applyUpdate(ctx context.Context, u models.Update, src source) error {
	switch v := u.(type) {
	case nil:
		return nil
	case models.UpdateNewMessage, models.UpdateEditMessage, models.UpdateDeleteMessages, models.UpdateReadHistory:
		pts, count, _ := models.PtsOf(u)
		if src.difference && src.channelID == 0 {
			return e.materialize(ctx, GlobalScope, u)
		}
		return e.checkAndApply(ctx, GlobalScope, &e.global, u, pts, count)
	case models.UpdateNewChannelMessage, models.UpdateEditChannelMessage, models.UpdateDeleteChannelMessages:
		return e.applyChannelUpdate(ctx, u, src)
	case models.UpdateChannelTooLong:
		e.onChannelTooLong(v)
		return nil
	case models.UpdateNewEncryptedMessage:
		return e.applyQts(ctx, v, src)
	default:
		if err := e.cache.ApplyUpdate(ctx, u); err != nil {
			return fmt.Errorf("apply %T: %w", u, err)
		}
		return nil
	}
}

func (e *Engine) applyChannelUpdate(ctx context.Context, u models.Update, src source) error {
	id := models.ChannelOf(u)
	if id == 0 {
		e.logger.Warn().Str("func", "Engine.applyChannelUpdate").Str("type", fmt.Sprintf("%T", u)).Msg("channel update without channel")
		return nil
	}
	scope := ChannelScope(id)
	if src.channelID == id {
		return e.materialize(ctx, scope, u)
	}

	log := e.logger.With().Str("func", "Engine.applyChannelUpdate").Int64("channel_id", id).Logger()

	ch, ok := e.channels.get(id)
	if !ok {
		ch, _ = e.channels.open(id, 0)
		log.Debug().Msg("update for unknown channel, fetching baseline")
		e.requestChannelDifference(ch, reasonBaseline)
		return nil
	}
	if !ch.initialized {
		log.Debug().Msg("channel has no baseline, dropping update")
		e.requestChannelDifference(ch, reasonBaseline)
		return nil
	}
	if ch.tracker.requesting {
		if len(ch.parked) >= e.cfg.MaxParkedEnvelopes {
			ch.parked = ch.parked[1:]
		}
		ch.parked = append(ch.parked, u)
		return nil
	}

	pts, count, _ := models.PtsOf(u)
	return e.checkAndApply(ctx, scope, &ch.tracker, u, pts, count)
}

// checkAndApply runs an update through its log's gate: continue, ignore or
// park past a gap.
func (e *Engine) checkAndApply(ctx context.Context, scope Scope, t *ptsTracker, u models.Update, pts, count int) error {
	switch t.Check(pts, count) {
	case VerdictDuplicate:
		e.metrics.Duplicate(scope.label())
		e.logger.Debug().
			Str("func", "Engine.checkAndApply").
			Stringer("scope", scope).
			Int("pts", pts).
			Int("pts_count", count).
			Int("current_pts", t.Pts()).
			Msg("update already applied")
		return nil
	case VerdictGap:
		t.park(u, pts, count)
		e.metrics.Gap(scope.label())
		e.sched.Schedule(TimerPtsWait, scope, e.clock.Now().Add(e.cfg.PtsWaitDelay))
		e.logger.Debug().
			Str("func", "Engine.checkAndApply").
			Stringer("scope", scope).
			Int("pts", pts).
			Int("pts_count", count).
			Int("current_pts", t.Pts()).
			Int("waiting", t.waiting()).
			Msg("gap detected, waiting for missing updates")
		return nil
	}

	if err := e.materialize(ctx, scope, u); err != nil {
		return err
	}
	t.Commit(pts)
	return e.drainSkipped(ctx, scope, t)
}

// drainSkipped applies parked updates that the log now reaches.
func (e *Engine) drainSkipped(ctx context.Context, scope Scope, t *ptsTracker) error {
	for {
		next, ok := t.popReady()
		if !ok {
			break
		}
		if err := e.materialize(ctx, scope, next.update); err != nil {
			return err
		}
		t.Commit(next.pts)
	}
	if t.waiting() == 0 {
		e.sched.Cancel(TimerPtsWait, scope)
	}
	return nil
}

// materialize writes an update that passed its gate into the cache.
func (e *Engine) materialize(ctx context.Context, scope Scope, u models.Update) error {
	if u == nil {
		return nil
	}
	peer, err := e.write(ctx, u)
	if err != nil {
		return err
	}
	e.applied(scope, peer)
	return nil
}

// write stores an update in the cache and reports the dialog it touched.
func (e *Engine) write(ctx context.Context, u models.Update) (models.Peer, error) {
	var (
		peer models.Peer
		err  error
	)
	switch v := u.(type) {
	case nil:
		return peer, nil
	case models.UpdateNewMessage:
		peer = v.Message.Peer
		err = e.cache.ApplyMessages(ctx, []models.Message{v.Message}, models.ApplyNewUnread)
	case models.UpdateEditMessage:
		peer = v.Message.Peer
		err = e.cache.ApplyMessages(ctx, []models.Message{v.Message}, models.ApplyEdited)
	case models.UpdateNewChannelMessage:
		peer = v.Message.Peer
		err = e.cache.ApplyMessages(ctx, []models.Message{v.Message}, models.ApplyNewUnread)
	case models.UpdateEditChannelMessage:
		peer = v.Message.Peer
		err = e.cache.ApplyMessages(ctx, []models.Message{v.Message}, models.ApplyEdited)
	case models.UpdateDeleteChannelMessages:
		peer = models.ChannelPeer(v.ChannelID)
		err = e.cache.ApplyUpdate(ctx, u)
	case models.UpdateReadHistory:
		peer = v.Peer
		err = e.cache.ApplyUpdate(ctx, u)
	default:
		err = e.cache.ApplyUpdate(ctx, u)
	}
	if err != nil {
		return peer, fmt.Errorf("materialize %T: %w", u, err)
	}
	return peer, nil
}

func (e *Engine) applied(scope Scope, peer models.Peer) {
	e.metrics.Applied(scope.label())
	e.notify(Event{Kind: EventMessagesChanged, Scope: scope, Peer: peer})
}

func (e *Engine) onChannelTooLong(v models.UpdateChannelTooLong) {
	ch, ok := e.channels.get(v.ChannelID)
	if !ok {
		e.logger.Debug().Str("func", "Engine.onChannelTooLong").Int64("channel_id", v.ChannelID).Msg("ignoring too long for untracked channel")
		return
	}
	if ch.initialized && v.Pts != 0 && v.Pts <= ch.tracker.Pts() {
		return
	}
	e.requestChannelDifference(ch, reasonChannelTooLong)
}

// applyQts gates an update of the secondary log.
func (e *Engine) applyQts(ctx context.Context, v models.UpdateNewEncryptedMessage, src source) error {
	if !src.difference {
		switch {
		case v.Qts <= e.qts:
			e.metrics.Duplicate(GlobalScope.label())
			return nil
		case v.Qts > e.qts+1:
			e.metrics.Gap(GlobalScope.label())
			e.sched.Schedule(TimerPtsWait, GlobalScope, e.clock.Now().Add(e.cfg.PtsWaitDelay))
			e.logger.Debug().
				Str("func", "Engine.applyQts").
				Int("qts", v.Qts).
				Int("current_qts", e.qts).
				Msg("qts gap detected")
			return nil
		}
	}

	if err := e.cache.ApplyUpdate(ctx, v); err != nil {
		return fmt.Errorf("apply encrypted message: %w", err)
	}
	e.metrics.Applied(GlobalScope.label())
	if v.Qts > e.qts {
		e.qts = v.Qts
	}
	return nil
}
