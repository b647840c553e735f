package updates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-chat-sync/models"
)

func TestPtsTracker_Check(t *testing.T) {
	tests := []struct {
		name    string
		current int
		pts     int
		count   int
		want    Verdict
	}{
		{name: "next position", current: 10, pts: 11, count: 1, want: VerdictAccept},
		{name: "multi-position update", current: 10, pts: 13, count: 3, want: VerdictAccept},
		{name: "zero count at current", current: 10, pts: 10, count: 0, want: VerdictAccept},
		{name: "already applied", current: 10, pts: 10, count: 1, want: VerdictDuplicate},
		{name: "far behind", current: 10, pts: 3, count: 1, want: VerdictDuplicate},
		{name: "overlapping range", current: 10, pts: 12, count: 3, want: VerdictDuplicate},
		{name: "one missing", current: 10, pts: 12, count: 1, want: VerdictGap},
		{name: "fresh tracker", current: 0, pts: 5, count: 1, want: VerdictGap},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := ptsTracker{pts: tt.current}
			assert.Equal(t, tt.want, tr.Check(tt.pts, tt.count))
			assert.Equal(t, tt.current, tr.Pts(), "Check не должен менять позицию")
		})
	}
}

func TestPtsTracker_CommitIsMonotonic(t *testing.T) {
	tr := ptsTracker{}

	assert.True(t, tr.Commit(10))
	assert.False(t, tr.Commit(7))
	assert.False(t, tr.Commit(10))
	assert.Equal(t, 10, tr.Pts())

	assert.True(t, tr.Commit(12))
	assert.Equal(t, 12, tr.Pts())
}

func TestPtsTracker_PopReady(t *testing.T) {
	tr := ptsTracker{pts: 10}
	tr.park(newMessage(14, 14), 14, 1)
	tr.park(newMessage(12, 12), 12, 1)
	tr.park(newMessage(9, 9), 9, 1)
	require.Equal(t, 3, tr.waiting())

	// 11 ещё нет: ничего не готово, но устаревшая 9 выброшена
	_, ok := tr.popReady()
	assert.False(t, ok)
	assert.Equal(t, 2, tr.waiting())

	tr.Commit(11)
	next, ok := tr.popReady()
	require.True(t, ok)
	assert.Equal(t, 12, next.pts)
	assert.Equal(t, 11, next.start())

	tr.Commit(next.pts)
	_, ok = tr.popReady()
	assert.False(t, ok, "13 is still missing")
	assert.Equal(t, 1, tr.waiting())

	assert.Equal(t, 1, tr.clearSkipped())
	assert.Equal(t, 0, tr.waiting())
}

func TestVerdict_String(t *testing.T) {
	assert.Equal(t, "accept", VerdictAccept.String())
	assert.Equal(t, "duplicate", VerdictDuplicate.String())
	assert.Equal(t, "gap", VerdictGap.String())
	assert.Equal(t, "unknown", Verdict(0).String())
}

func TestChannelSet_OpenCloseGeneration(t *testing.T) {
	s := newChannelSet()

	ch, created := s.open(100, 0)
	require.True(t, created)
	assert.False(t, ch.initialized)
	firstGen := ch.generation

	again, created := s.open(100, 40)
	assert.False(t, created)
	assert.Same(t, ch, again)
	assert.True(t, again.initialized)
	assert.Equal(t, 40, again.tracker.Pts())

	// повторное открытие с меньшим pts не откатывает позицию
	s.open(100, 10)
	assert.Equal(t, 40, ch.tracker.Pts())

	require.True(t, s.close(100))
	assert.False(t, s.close(100))

	reopened, created := s.open(100, 0)
	assert.True(t, created)
	assert.NotEqual(t, firstGen, reopened.generation)
}

func TestChannelSet_Snapshots(t *testing.T) {
	s := newChannelSet()
	s.open(300, 5)
	s.open(100, 0)
	s.open(200, 7)

	snaps := s.snapshots()
	require.Len(t, snaps, 3)
	assert.Equal(t, []int64{100, 200, 300}, []int64{snaps[0].ChannelID, snaps[1].ChannelID, snaps[2].ChannelID})
	assert.Equal(t, models.ChannelSyncState{ChannelID: 200, Pts: 7, Initialized: true}, snaps[1])
	assert.False(t, snaps[0].Initialized)
}
