package updates

import (
	"sort"

	"github.com/MKhiriev/go-chat-sync/models"
)

// Verdict is the outcome of checking an update against its log position.
type Verdict int

const (
	// VerdictAccept means the update continues the log.
	VerdictAccept Verdict = iota + 1
	// VerdictDuplicate means the update is already covered by the log.
	VerdictDuplicate
	// VerdictGap means some updates before this one are missing.
	VerdictGap
)

func (v Verdict) String() string {
	switch v {
	case VerdictAccept:
		return "accept"
	case VerdictDuplicate:
		return "duplicate"
	case VerdictGap:
		return "gap"
	default:
		return "unknown"
	}
}

// skippedUpdate is an update parked past a gap. A nil update only advances
// the position when it is replayed.
type skippedUpdate struct {
	update models.Update
	pts    int
	count  int
}

func (s skippedUpdate) start() int { return s.pts - s.count }

// ptsTracker validates pts deltas for one scope. It is owned by the engine
// loop and is not safe for concurrent use.
type ptsTracker struct {
	pts        int
	requesting bool
	skipped    []skippedUpdate
}

// Check classifies an update covering count positions and ending at pts. It
// does not change the tracker.
func (t *ptsTracker) Check(pts, count int) Verdict {
	switch expected := t.pts + count; {
	case pts == expected:
		return VerdictAccept
	case pts < expected:
		return VerdictDuplicate
	default:
		return VerdictGap
	}
}

// Commit advances the position to pts. The position never goes backwards.
func (t *ptsTracker) Commit(pts int) bool {
	if pts <= t.pts {
		return false
	}
	t.pts = pts
	return true
}

// Rebase starts the log over at pts, which may be behind the current
// position. Parked updates belong to the old log and are dropped.
func (t *ptsTracker) Rebase(pts int) {
	t.pts = pts
	t.skipped = nil
}

// Pts returns the last applied position.
func (t *ptsTracker) Pts() int { return t.pts }

// park keeps an update past a gap until the gap is closed or a fetch
// supersedes it.
func (t *ptsTracker) park(u models.Update, pts, count int) {
	t.skipped = append(t.skipped, skippedUpdate{update: u, pts: pts, count: count})
	sort.SliceStable(t.skipped, func(i, j int) bool {
		return t.skipped[i].pts < t.skipped[j].pts
	})
}

// popReady returns the next parked update that continues the log. Parked
// updates already covered by the log are discarded on the way.
func (t *ptsTracker) popReady() (skippedUpdate, bool) {
	for len(t.skipped) > 0 {
		next := t.skipped[0]
		switch t.Check(next.pts, next.count) {
		case VerdictDuplicate:
			t.skipped = t.skipped[1:]
		case VerdictAccept:
			t.skipped = t.skipped[1:]
			return next, true
		default:
			return skippedUpdate{}, false
		}
	}
	return skippedUpdate{}, false
}

func (t *ptsTracker) waiting() int { return len(t.skipped) }

func (t *ptsTracker) clearSkipped() int {
	n := len(t.skipped)
	t.skipped = nil
	return n
}
