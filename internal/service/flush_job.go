package service

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/MKhiriev/go-chat-sync/internal/logger"
)

// DefaultFlushInterval is used when the configured interval is not positive.
const DefaultFlushInterval = 5 * time.Second

// StateFlushJob saves sync positions on a ticker and once more on stop.
type StateFlushJob struct {
	session  SessionService
	interval time.Duration
	clock    clockwork.Clock
	logger   *logger.Logger
}

// NewStateFlushJob creates a job that calls session.Save every interval. The
// job is idle until Run is called.
func NewStateFlushJob(session SessionService, interval time.Duration, clock clockwork.Clock, logger *logger.Logger) *StateFlushJob {
	if interval <= 0 {
		interval = DefaultFlushInterval
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &StateFlushJob{session: session, interval: interval, clock: clock, logger: logger}
}

// Run saves every interval until ctx is cancelled, then saves a final time
// so positions reached just before shutdown survive a restart.
func (j *StateFlushJob) Run(ctx context.Context) error {
	t := j.clock.NewTicker(j.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			// ctx is already done, the last save needs its own
			flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), j.interval)
			j.flush(flushCtx)
			cancel()
			return nil
		case <-t.Chan():
			j.flush(ctx)
		}
	}
}

func (j *StateFlushJob) flush(ctx context.Context) {
	if err := j.session.Save(ctx); err != nil {
		j.logger.Err(err).Str("func", "StateFlushJob.flush").Msg("failed to save sync state")
	}
}
