package updates

import (
	"context"

	"github.com/MKhiriev/go-chat-sync/models"
)

type stepKind int

const (
	// stepLog is an update that continues the common log or a channel log.
	stepLog stepKind = iota + 1
	// stepQts is an update of the secondary log.
	stepQts
	// stepPlain carries no position.
	stepPlain
)

// batchStep is one update of a combined batch that passed its gate.
type batchStep struct {
	kind   stepKind
	scope  Scope
	update models.Update
	peer   models.Peer
}

// batchPlan is a combined batch checked against scratch copies of the
// positions. Nothing in the engine changes until commitBatch.
type batchPlan struct {
	steps []batchStep

	pts        int
	qts        int
	channelPts map[int64]int

	// deferred holds channel updates the channel gate handles after the
	// batch commits: channels without a baseline, channels fetching, and
	// channel gaps. They never block the common log.
	deferred []models.Update

	duplicates int
	gap        bool
	gapScope   string
}

// planBatch gives every update of a batch its verdict without touching the
// trackers. A gap in the common or the secondary log marks the whole plan.
func (e *Engine) planBatch(updates []models.Update) batchPlan {
	plan := batchPlan{
		pts:        e.global.Pts(),
		qts:        e.qts,
		channelPts: make(map[int64]int),
	}
	deferredChannels := make(map[int64]bool)

	for _, u := range updates {
		switch v := u.(type) {
		case nil:
		case models.UpdateNewMessage, models.UpdateEditMessage, models.UpdateDeleteMessages, models.UpdateReadHistory:
			pts, count, _ := models.PtsOf(u)
			scratch := ptsTracker{pts: plan.pts}
			switch scratch.Check(pts, count) {
			case VerdictDuplicate:
				plan.duplicates++
			case VerdictGap:
				plan.gap, plan.gapScope = true, "pts"
				return plan
			default:
				plan.pts = pts
				plan.steps = append(plan.steps, batchStep{kind: stepLog, scope: GlobalScope, update: u})
			}
		case models.UpdateNewChannelMessage, models.UpdateEditChannelMessage, models.UpdateDeleteChannelMessages:
			id := models.ChannelOf(u)
			ch, ok := e.channels.get(id)
			if id == 0 || !ok || !ch.initialized || ch.tracker.requesting || deferredChannels[id] {
				plan.deferred = append(plan.deferred, u)
				deferredChannels[id] = true
				continue
			}
			current, seen := plan.channelPts[id]
			if !seen {
				current = ch.tracker.Pts()
			}
			pts, count, _ := models.PtsOf(u)
			scratch := ptsTracker{pts: current}
			switch scratch.Check(pts, count) {
			case VerdictDuplicate:
				plan.duplicates++
			case VerdictGap:
				plan.deferred = append(plan.deferred, u)
				deferredChannels[id] = true
			default:
				plan.channelPts[id] = pts
				plan.steps = append(plan.steps, batchStep{kind: stepLog, scope: ChannelScope(id), update: u})
			}
		case models.UpdateChannelTooLong:
			plan.deferred = append(plan.deferred, u)
			deferredChannels[v.ChannelID] = true
		case models.UpdateNewEncryptedMessage:
			switch {
			case v.Qts <= plan.qts:
				plan.duplicates++
			case v.Qts > plan.qts+1:
				plan.gap, plan.gapScope = true, "qts"
				return plan
			default:
				plan.qts = v.Qts
				plan.steps = append(plan.steps, batchStep{kind: stepQts, scope: GlobalScope, update: u})
			}
		default:
			plan.steps = append(plan.steps, batchStep{kind: stepPlain, scope: GlobalScope, update: u})
		}
	}
	return plan
}

// writeBatch stores every planned update in the cache. The cache is
// idempotent, so a write that fails halfway is repaired by the difference
// that follows.
func (e *Engine) writeBatch(ctx context.Context, plan *batchPlan) error {
	for i := range plan.steps {
		peer, err := e.write(ctx, plan.steps[i].update)
		if err != nil {
			return err
		}
		plan.steps[i].peer = peer
	}
	return nil
}

// commitBatch moves every position the batch covers at once and announces
// the applied updates.
func (e *Engine) commitBatch(plan batchPlan) {
	e.global.Commit(plan.pts)
	if plan.qts > e.qts {
		e.qts = plan.qts
	}
	for id, pts := range plan.channelPts {
		if ch, ok := e.channels.get(id); ok {
			ch.tracker.Commit(pts)
		}
	}

	for range plan.duplicates {
		e.metrics.Duplicate(GlobalScope.label())
	}
	for _, step := range plan.steps {
		switch step.kind {
		case stepLog:
			e.applied(step.scope, step.peer)
		case stepQts:
			e.metrics.Applied(GlobalScope.label())
		}
	}
}

// settleBatch runs what a committed batch unblocked: parked updates the
// logs now reach, and the deferred channel updates.
func (e *Engine) settleBatch(ctx context.Context, plan batchPlan) {
	if err := e.drainSkipped(ctx, GlobalScope, &e.global); err != nil {
		e.applyFailed(err)
		return
	}
	for id := range plan.channelPts {
		ch, ok := e.channels.get(id)
		if !ok {
			continue
		}
		if err := e.drainSkipped(ctx, ChannelScope(id), &ch.tracker); err != nil {
			e.channelApplyFailed(ch, err)
		}
	}

	for _, u := range plan.deferred {
		if err := e.applyUpdate(ctx, u, fromPush); err != nil {
			if ch, ok := e.channels.get(models.ChannelOf(u)); ok {
				e.channelApplyFailed(ch, err)
				continue
			}
			e.logger.Err(err).Str("func", "Engine.settleBatch").Msg("failed to apply deferred update")
		}
	}
}

func (e *Engine) channelApplyFailed(ch *channelState, err error) {
	e.logger.Err(err).
		Str("func", "Engine.channelApplyFailed").
		Int64("channel_id", ch.id).
		Msg("failed to apply channel update, resyncing channel")
	e.requestChannelDifference(ch, reasonApplyFailed)
}
