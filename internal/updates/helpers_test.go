package updates

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-chat-sync/internal/logger"
	"github.com/MKhiriev/go-chat-sync/models"
)

// ── fakeTransport ────────────────────────────────────────────────────────────

type diffReply struct {
	diff models.Difference
	err  error
}

type channelReply struct {
	diff models.ChannelDifference
	err  error
}

// fakeTransport answers fetches from scripted queues and records requests.
// Unscripted global fetches return an empty final difference at the
// requested position.
type fakeTransport struct {
	mu sync.Mutex

	state      models.GlobalSyncState
	stateErr   error
	stateCalls int

	diffs        []diffReply
	diffRequests []models.DifferenceRequest

	channelDiffs    map[int64][]channelReply
	channelRequests []models.ChannelDifferenceRequest
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{channelDiffs: make(map[int64][]channelReply)}
}

func (f *fakeTransport) GetState(context.Context) (models.GlobalSyncState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stateCalls++
	return f.state, f.stateErr
}

func (f *fakeTransport) GetDifference(_ context.Context, req models.DifferenceRequest) (models.Difference, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.diffRequests = append(f.diffRequests, req)
	if len(f.diffs) == 0 {
		return models.Difference{
			Kind:  models.DifferenceEmpty,
			Final: true,
			State: models.GlobalSyncState{Date: req.Date},
		}, nil
	}
	next := f.diffs[0]
	f.diffs = f.diffs[1:]
	return next.diff, next.err
}

func (f *fakeTransport) GetChannelDifference(_ context.Context, req models.ChannelDifferenceRequest) (models.ChannelDifference, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.channelRequests = append(f.channelRequests, req)
	queue := f.channelDiffs[req.ChannelID]
	if len(queue) == 0 {
		return models.ChannelDifference{Kind: models.DifferenceEmpty, Final: true, Pts: req.Pts}, nil
	}
	next := queue[0]
	f.channelDiffs[req.ChannelID] = queue[1:]
	return next.diff, next.err
}

func (f *fakeTransport) replyDifference(d models.Difference, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.diffs = append(f.diffs, diffReply{diff: d, err: err})
}

func (f *fakeTransport) replyChannel(id int64, d models.ChannelDifference, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.channelDiffs[id] = append(f.channelDiffs[id], channelReply{diff: d, err: err})
}

func (f *fakeTransport) differenceRequests() []models.DifferenceRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.DifferenceRequest(nil), f.diffRequests...)
}

func (f *fakeTransport) channelRequestsFor(id int64) []models.ChannelDifferenceRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ChannelDifferenceRequest
	for _, r := range f.channelRequests {
		if r.ChannelID == id {
			out = append(out, r)
		}
	}
	return out
}

// ── fakeCache ────────────────────────────────────────────────────────────────

type messageKey struct {
	peer models.Peer
	id   int
}

// fakeCache is an idempotent in-memory ObjectCache.
type fakeCache struct {
	mu sync.Mutex

	users    map[int64]models.User
	chats    map[int64]models.Chat
	messages map[messageKey]models.Message
	modes    map[messageKey]models.ApplyMode
	updates  []models.Update
	resets   []int64

	applyCalls int
	failNext   error
}

func newFakeCache(users []int64, chats []int64) *fakeCache {
	c := &fakeCache{
		users:    make(map[int64]models.User),
		chats:    make(map[int64]models.Chat),
		messages: make(map[messageKey]models.Message),
		modes:    make(map[messageKey]models.ApplyMode),
	}
	for _, id := range users {
		c.users[id] = models.User{ID: id}
	}
	for _, id := range chats {
		c.chats[id] = models.Chat{ID: id}
	}
	return c
}

func (c *fakeCache) fail() error {
	err := c.failNext
	c.failNext = nil
	return err
}

func (c *fakeCache) ApplyUsers(_ context.Context, users []models.User) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.fail(); err != nil {
		return err
	}
	for _, u := range users {
		c.users[u.ID] = u
	}
	return nil
}

func (c *fakeCache) ApplyChats(_ context.Context, chats []models.Chat) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.fail(); err != nil {
		return err
	}
	for _, ch := range chats {
		c.chats[ch.ID] = ch
	}
	return nil
}

func (c *fakeCache) ApplyMessages(_ context.Context, msgs []models.Message, mode models.ApplyMode) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.fail(); err != nil {
		return err
	}
	c.applyCalls++
	for _, m := range msgs {
		key := messageKey{peer: m.Peer, id: m.ID}
		c.messages[key] = m
		c.modes[key] = mode
	}
	return nil
}

func (c *fakeCache) ApplyUpdate(_ context.Context, u models.Update) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.fail(); err != nil {
		return err
	}
	c.updates = append(c.updates, u)
	return nil
}

func (c *fakeCache) ResetChannel(_ context.Context, channelID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resets = append(c.resets, channelID)
	for key := range c.messages {
		if key.peer == models.ChannelPeer(channelID) {
			delete(c.messages, key)
		}
	}
	return nil
}

func (c *fakeCache) HasUser(_ context.Context, id int64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.users[id]
	return ok, nil
}

func (c *fakeCache) HasChat(_ context.Context, id int64) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.chats[id]
	return ok, nil
}

func (c *fakeCache) messageIDs(peer models.Peer) []int {
	c.mu.Lock()
	defer c.mu.Unlock()
	var ids []int
	for key := range c.messages {
		if key.peer == peer {
			ids = append(ids, key.id)
		}
	}
	return ids
}

func (c *fakeCache) messageCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

// ── recordingNotifier ────────────────────────────────────────────────────────

type recordingNotifier struct {
	mu     sync.Mutex
	events []Event
}

func (n *recordingNotifier) Notify(ev Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, ev)
}

func (n *recordingNotifier) kinds(scope Scope) []EventKind {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []EventKind
	for _, ev := range n.events {
		if ev.Scope == scope {
			out = append(out, ev.Kind)
		}
	}
	return out
}

// ── engine driving ───────────────────────────────────────────────────────────

const (
	selfID  int64 = 1
	peerID  int64 = 2
	otherID int64 = 3
)

var testEpoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// newTestEngine builds an engine whose fetches run inline on the calling
// goroutine. Tests drive the loop with settle and advance.
func newTestEngine(t *testing.T, tr Transport, cache ObjectCache, cfg Config, opts ...Option) (*Engine, *clockwork.FakeClock) {
	t.Helper()

	clock := clockwork.NewFakeClockAt(testEpoch)
	cfg.SelfID = selfID
	opts = append([]Option{WithClock(clock), WithSessionID("test-session")}, opts...)
	e := NewEngine(tr, cache, cfg, logger.Nop(), opts...)
	e.spawn = func(fn func()) { fn() }
	return e, clock
}

// deferSpawns makes fetches wait until the returned function runs them.
func deferSpawns(e *Engine) func() {
	var pending []func()
	e.spawn = func(fn func()) { pending = append(pending, fn) }
	return func() {
		for len(pending) > 0 {
			fn := pending[0]
			pending = pending[1:]
			fn()
		}
	}
}

// settle handles queued loop messages until none are left.
func settle(e *Engine) {
	ctx := context.Background()
	for {
		select {
		case msg := <-e.inbox:
			e.handle(ctx, msg)
		default:
			e.publish()
			return
		}
	}
}

func feed(t *testing.T, e *Engine, envs ...models.Envelope) {
	t.Helper()
	for _, env := range envs {
		require.NoError(t, e.Feed(env))
		settle(e)
	}
}

// advance moves the fake clock and fires whatever became due.
func advance(e *Engine, clock *clockwork.FakeClock, d time.Duration) {
	clock.Advance(d)
	e.fireDue()
	settle(e)
}

func restore(t *testing.T, e *Engine, st models.GlobalSyncState, channels ...models.ChannelSyncState) {
	t.Helper()
	require.NoError(t, e.Restore(st, channels))
}

func privateMsg(id int) models.Message {
	return models.Message{ID: id, Peer: models.UserPeer(peerID), FromID: peerID, Date: 1000 + id, Text: "hi"}
}

func newMessage(id, pts int) models.UpdateNewMessage {
	return models.UpdateNewMessage{Message: privateMsg(id), Pts: pts, PtsCount: 1}
}

func shortUpdate(u models.Update) models.UpdateShort {
	return models.UpdateShort{Update: u, Date: 2000}
}

func channelMsg(channelID int64, id, pts int) models.UpdateNewChannelMessage {
	return models.UpdateNewChannelMessage{
		Message:  models.Message{ID: id, Peer: models.ChannelPeer(channelID), Post: true, Date: 1000 + id},
		Pts:      pts,
		PtsCount: 1,
	}
}

func combined(seq int, updates ...models.Update) models.UpdatesCombined {
	return models.UpdatesCombined{Updates: updates, Date: 2000 + seq, Seq: seq}
}
