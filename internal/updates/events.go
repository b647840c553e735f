package updates

import (
	"sync/atomic"

	"github.com/MKhiriev/go-chat-sync/internal/logger"
	"github.com/MKhiriev/go-chat-sync/models"
)

// EventKind tells observers what changed.
type EventKind int

const (
	// EventMessagesChanged is emitted after messages of Peer were added,
	// edited or removed.
	EventMessagesChanged EventKind = iota + 1
	// EventChannelReset is emitted after a channel's cached history was
	// replaced by a fresh snapshot.
	EventChannelReset
	// EventStateChanged is emitted after a fetch moved a scope's position.
	EventStateChanged
	// EventStale is emitted when a scope starts fetching a difference and its
	// local view may lag behind the server.
	EventStale
	// EventSynced is emitted when a scope caught up with the server.
	EventSynced
)

func (k EventKind) String() string {
	switch k {
	case EventMessagesChanged:
		return "messages_changed"
	case EventChannelReset:
		return "channel_reset"
	case EventStateChanged:
		return "state_changed"
	case EventStale:
		return "stale"
	case EventSynced:
		return "synced"
	default:
		return "unknown"
	}
}

// Event is a change notification for observers such as a UI.
type Event struct {
	Kind  EventKind
	Scope Scope
	Peer  models.Peer
	State models.GlobalSyncState
}

// Notifier receives engine events. Notify is called from the engine loop and
// must not block.
type Notifier interface {
	Notify(ev Event)
}

// NotifierFunc adapts a function to [Notifier].
type NotifierFunc func(ev Event)

func (f NotifierFunc) Notify(ev Event) { f(ev) }

// ChanNotifier delivers events through a bounded channel. Events that do not
// fit are dropped and counted.
type ChanNotifier struct {
	events  chan Event
	dropped atomic.Int64
	logger  *logger.Logger
}

func NewChanNotifier(size int, logger *logger.Logger) *ChanNotifier {
	if size <= 0 {
		size = 1
	}
	return &ChanNotifier{events: make(chan Event, size), logger: logger}
}

func (n *ChanNotifier) Notify(ev Event) {
	select {
	case n.events <- ev:
	default:
		dropped := n.dropped.Add(1)
		n.logger.Warn().
			Str("func", "ChanNotifier.Notify").
			Stringer("kind", ev.Kind).
			Stringer("scope", ev.Scope).
			Int64("dropped", dropped).
			Msg("event buffer is full, dropping event")
	}
}

// Events returns the channel events are delivered on.
func (n *ChanNotifier) Events() <-chan Event { return n.events }

// Dropped returns how many events did not fit into the buffer.
func (n *ChanNotifier) Dropped() int64 { return n.dropped.Load() }

type nopNotifier struct{}

func (nopNotifier) Notify(Event) {}
