package updates

import (
	"sort"

	"github.com/MKhiriev/go-chat-sync/models"
)

// channelState is the engine's view of one channel log.
type channelState struct {
	id          int64
	tracker     ptsTracker
	initialized bool
	active      bool

	// generation changes every time the channel is (re)opened, so responses
	// to fetches started before a close are recognized and dropped.
	generation uint64

	// parked holds updates received while a fetch is in flight.
	parked []models.Update
}

func (c *channelState) snapshot() models.ChannelSyncState {
	return models.ChannelSyncState{
		ChannelID:   c.id,
		Pts:         c.tracker.Pts(),
		Requesting:  c.tracker.requesting,
		Initialized: c.initialized,
	}
}

// channelSet maps channel ids to their independent trackers.
type channelSet struct {
	byID       map[int64]*channelState
	generation uint64
}

func newChannelSet() *channelSet {
	return &channelSet{byID: make(map[int64]*channelState)}
}

func (s *channelSet) get(id int64) (*channelState, bool) {
	ch, ok := s.byID[id]
	return ch, ok
}

// open returns the channel, creating it when missing. A positive pts
// initializes a channel that has no baseline yet.
func (s *channelSet) open(id int64, pts int) (*channelState, bool) {
	ch, ok := s.byID[id]
	if !ok {
		s.generation++
		ch = &channelState{id: id, generation: s.generation}
		s.byID[id] = ch
	}
	if pts > 0 && !ch.initialized {
		ch.tracker.Commit(pts)
		ch.initialized = true
	}
	return ch, !ok
}

func (s *channelSet) close(id int64) bool {
	if _, ok := s.byID[id]; !ok {
		return false
	}
	delete(s.byID, id)
	return true
}

func (s *channelSet) len() int { return len(s.byID) }

func (s *channelSet) each(fn func(ch *channelState)) {
	for _, ch := range s.byID {
		fn(ch)
	}
}

// snapshots returns the state of every channel ordered by id.
func (s *channelSet) snapshots() []models.ChannelSyncState {
	out := make([]models.ChannelSyncState, 0, len(s.byID))
	for _, ch := range s.byID {
		out = append(out, ch.snapshot())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChannelID < out[j].ChannelID })
	return out
}
