package updates

import (
	"sort"
	"time"
)

// TimerClass tells what a scheduled deadline is for.
type TimerClass int

const (
	// TimerPtsWait gives pushes a short window to close a gap before fetching.
	TimerPtsWait TimerClass = iota + 1
	// TimerAfterFailure retries a failed fetch.
	TimerAfterFailure
	// TimerReorder expires envelopes parked in the reorder buffer.
	TimerReorder
	// TimerIdle checks the server after a quiet period.
	TimerIdle
	// TimerShortPoll polls the active channel.
	TimerShortPoll
)

func (c TimerClass) String() string {
	switch c {
	case TimerPtsWait:
		return "pts_wait"
	case TimerAfterFailure:
		return "after_failure"
	case TimerReorder:
		return "reorder"
	case TimerIdle:
		return "idle"
	case TimerShortPoll:
		return "short_poll"
	default:
		return "unknown"
	}
}

type timerKey struct {
	class TimerClass
	scope Scope
}

// scheduler keeps one deadline per (class, scope). Scheduling never postpones
// a deadline that is already pending: the soonest one wins.
type scheduler struct {
	due map[timerKey]time.Time
}

func newScheduler() *scheduler {
	return &scheduler{due: make(map[timerKey]time.Time)}
}

// Schedule sets the deadline unless an earlier one is already pending. It
// reports whether the deadline changed.
func (s *scheduler) Schedule(class TimerClass, scope Scope, at time.Time) bool {
	key := timerKey{class: class, scope: scope}
	if cur, ok := s.due[key]; ok && !at.Before(cur) {
		return false
	}
	s.due[key] = at
	return true
}

// Reset sets the deadline unconditionally.
func (s *scheduler) Reset(class TimerClass, scope Scope, at time.Time) {
	s.due[timerKey{class: class, scope: scope}] = at
}

func (s *scheduler) Cancel(class TimerClass, scope Scope) bool {
	key := timerKey{class: class, scope: scope}
	if _, ok := s.due[key]; !ok {
		return false
	}
	delete(s.due, key)
	return true
}

// CancelScope drops every deadline of a scope.
func (s *scheduler) CancelScope(scope Scope) {
	for key := range s.due {
		if key.scope == scope {
			delete(s.due, key)
		}
	}
}

func (s *scheduler) Due(class TimerClass, scope Scope) (time.Time, bool) {
	at, ok := s.due[timerKey{class: class, scope: scope}]
	return at, ok
}

// Next returns the earliest pending deadline.
func (s *scheduler) Next() (time.Time, bool) {
	var (
		next  time.Time
		found bool
	)
	for _, at := range s.due {
		if !found || at.Before(next) {
			next, found = at, true
		}
	}
	return next, found
}

// PopDue removes and returns every deadline not after now, earliest first.
func (s *scheduler) PopDue(now time.Time) []timerKey {
	type entry struct {
		key timerKey
		at  time.Time
	}
	var fired []entry
	for key, at := range s.due {
		if !at.After(now) {
			fired = append(fired, entry{key: key, at: at})
			delete(s.due, key)
		}
	}
	sort.Slice(fired, func(i, j int) bool {
		if !fired[i].at.Equal(fired[j].at) {
			return fired[i].at.Before(fired[j].at)
		}
		if fired[i].key.class != fired[j].key.class {
			return fired[i].key.class < fired[j].key.class
		}
		return fired[i].key.scope.ChannelID < fired[j].key.scope.ChannelID
	})

	keys := make([]timerKey, len(fired))
	for i, e := range fired {
		keys[i] = e.key
	}
	return keys
}

func (s *scheduler) Len() int { return len(s.due) }

func (s *scheduler) reset() { clear(s.due) }
