package updates

import (
	"sort"
	"time"

	"github.com/MKhiriev/go-chat-sync/models"
)

// reorderBuffer holds envelopes that arrived ahead of their seq, keyed by the
// first seq they cover.
type reorderBuffer struct {
	entries map[int]models.PendingEnvelope
}

func newReorderBuffer() *reorderBuffer {
	return &reorderBuffer{entries: make(map[int]models.PendingEnvelope)}
}

// Push parks an envelope. Of two envelopes starting at the same seq the one
// reaching further is kept.
func (b *reorderBuffer) Push(p models.PendingEnvelope) {
	if old, ok := b.entries[p.SeqStart]; ok && old.Seq >= p.Seq {
		return
	}
	b.entries[p.SeqStart] = p
}

// TryDrain releases, in ascending order, every envelope that continues
// currentSeq, cascading through contiguous entries. Entries whose last seq is
// already covered by currentSeq are dropped. It returns the released
// envelopes and the seq reached after applying them.
func (b *reorderBuffer) TryDrain(currentSeq int) ([]models.PendingEnvelope, int) {
	if len(b.entries) == 0 {
		return nil, currentSeq
	}

	keys := make([]int, 0, len(b.entries))
	for k := range b.entries {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	var ready []models.PendingEnvelope
	for _, k := range keys {
		p := b.entries[k]
		switch {
		case p.Seq <= currentSeq:
			delete(b.entries, k)
		case p.SeqStart <= currentSeq+1:
			delete(b.entries, k)
			ready = append(ready, p)
			currentSeq = p.Seq
		default:
			return ready, currentSeq
		}
	}
	return ready, currentSeq
}

// Oldest returns the insertion time of the entry parked the longest.
func (b *reorderBuffer) Oldest() (time.Time, bool) {
	var (
		oldest time.Time
		found  bool
	)
	for _, p := range b.entries {
		if !found || p.InsertedAt.Before(oldest) {
			oldest, found = p.InsertedAt, true
		}
	}
	return oldest, found
}

func (b *reorderBuffer) Len() int { return len(b.entries) }

// Clear drops every entry and returns how many were dropped.
func (b *reorderBuffer) Clear() int {
	n := len(b.entries)
	clear(b.entries)
	return n
}
