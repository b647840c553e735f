package updates

import (
	"time"

	"github.com/MKhiriev/go-chat-sync/models"
)

// backoffController computes retry delays for failed fetches, independently
// per scope.
type backoffController struct {
	base     time.Duration
	maxDelay time.Duration
	scopes   map[Scope]*models.BackoffState
}

func newBackoffController(base time.Duration, maxFactor int) *backoffController {
	if maxFactor < 1 {
		maxFactor = 1
	}
	return &backoffController{
		base:     base,
		maxDelay: base * time.Duration(maxFactor),
		scopes:   make(map[Scope]*models.BackoffState),
	}
}

// OnFailure records a failure and returns how long to wait before retrying.
// A server hint longer than the computed delay wins.
func (c *backoffController) OnFailure(scope Scope, now time.Time, hint time.Duration) time.Duration {
	st, ok := c.scopes[scope]
	if !ok {
		st = &models.BackoffState{CurrentDelay: c.base}
		c.scopes[scope] = st
	}

	delay := st.CurrentDelay
	if hint > delay {
		delay = hint
	}

	st.LastFailureAt = now
	st.Failures++
	if st.CurrentDelay < c.maxDelay {
		st.CurrentDelay = min(st.CurrentDelay*2, c.maxDelay)
	}
	return delay
}

// OnSuccess resets the delay of a scope to the base.
func (c *backoffController) OnSuccess(scope Scope) {
	delete(c.scopes, scope)
}

// State returns the backoff state of a scope.
func (c *backoffController) State(scope Scope) models.BackoffState {
	if st, ok := c.scopes[scope]; ok {
		return *st
	}
	return models.BackoffState{CurrentDelay: c.base}
}

func (c *backoffController) reset() {
	clear(c.scopes)
}
