package client

import (
	"context"

	"github.com/MKhiriev/go-chat-sync/internal/updates"
)

// consumeEvents drains the engine events. The client has no UI, so events
// only end up in the log.
func (a *App) consumeEvents(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-a.events.Events():
			a.logEvent(ev)
		}
	}
}

func (a *App) logEvent(ev updates.Event) {
	l := a.logger.Debug().
		Str("func", "App.consumeEvents").
		Stringer("kind", ev.Kind).
		Stringer("scope", ev.Scope)

	switch ev.Kind {
	case updates.EventMessagesChanged:
		l = l.Int64("peer_id", ev.Peer.ID)
	case updates.EventStateChanged, updates.EventSynced:
		l = l.Int("pts", ev.State.Pts).Int("qts", ev.State.Qts).Int("seq", ev.State.Seq)
	}
	l.Msg("engine event")
}
