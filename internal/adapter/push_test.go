package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"nhooyr.io/websocket"

	"github.com/MKhiriev/go-chat-sync/internal/config"
	"github.com/MKhiriev/go-chat-sync/internal/logger"
	"github.com/MKhiriev/go-chat-sync/internal/mock"
	"github.com/MKhiriev/go-chat-sync/internal/updates"
	"github.com/MKhiriev/go-chat-sync/models"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

// recordingFeeder собирает всё, что пришло из push-потока
type recordingFeeder struct {
	mu       sync.Mutex
	envs     []models.Envelope
	resyncs  int
	feedErr  error
	received chan struct{}
}

func newRecordingFeeder() *recordingFeeder {
	return &recordingFeeder{received: make(chan struct{}, 16)}
}

func (f *recordingFeeder) Feed(env models.Envelope) error {
	f.mu.Lock()
	f.envs = append(f.envs, env)
	err := f.feedErr
	f.mu.Unlock()
	f.received <- struct{}{}
	return err
}

func (f *recordingFeeder) Resync() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resyncs++
	return nil
}

func (f *recordingFeeder) snapshot() ([]models.Envelope, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Envelope(nil), f.envs...), f.resyncs
}

func wsURL(httpURL string) string {
	return "ws" + httpURL[len("http"):]
}

func newTestPushStream(t *testing.T, url string, feeder Feeder) *PushStream {
	t.Helper()
	p, err := NewPushStream(
		config.ClientAdapter{PushAddress: url},
		staticToken("secret-token"),
		feeder,
		logger.Nop(),
		WithReconnectDelay(5*time.Millisecond, 20*time.Millisecond),
	)
	require.NoError(t, err)
	return p
}

func writeEnvelope(t *testing.T, ctx context.Context, conn *websocket.Conn, env models.Envelope) {
	t.Helper()
	b, err := EncodeEnvelope(env)
	require.NoError(t, err)
	require.NoError(t, conn.Write(ctx, websocket.MessageText, b))
}

func waitReceived(t *testing.T, f *recordingFeeder, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-f.received:
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for envelope %d", i+1)
		}
	}
}

// ── Run ─────────────────────────────────────────────────────────────────────

func TestPushStream_FeedsEnvelopes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		conn, err := websocket.Accept(w, r, nil)
		require.NoError(t, err)
		defer conn.Close(websocket.StatusNormalClosure, "")

		writeEnvelope(t, r.Context(), conn, models.UpdateShortSentMessage{ID: 1, Pts: 2, PtsCount: 1})
		// мусор пропускается, поток не рвётся
		require.NoError(t, conn.Write(r.Context(), websocket.MessageText, []byte(`{"type":"bogus"}`)))
		writeEnvelope(t, r.Context(), conn, models.UpdateShortSentMessage{ID: 0, Pts: 3, PtsCount: 1})
		writeEnvelope(t, r.Context(), conn, models.UpdatesTooLong{})

		<-conn.CloseRead(r.Context()).Done()
	}))
	defer srv.Close()

	feeder := newRecordingFeeder()
	p := newTestPushStream(t, wsURL(srv.URL), feeder)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	waitReceived(t, feeder, 2)
	cancel()
	require.NoError(t, <-done)

	envs, resyncs := feeder.snapshot()
	assert.Equal(t, []models.Envelope{
		models.UpdateShortSentMessage{ID: 1, Pts: 2, PtsCount: 1},
		models.UpdatesTooLong{},
	}, envs)
	assert.Zero(t, resyncs)
}

func TestPushStream_ResyncsAfterReconnect(t *testing.T) {
	var connections atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := connections.Add(1)
		conn, err := websocket.Accept(w, r, nil)
		require.NoError(t, err)

		writeEnvelope(t, r.Context(), conn, models.UpdateShortSentMessage{ID: int(n), Pts: int(n), PtsCount: 1})
		if n == 1 {
			// первое соединение обрывается сразу
			_ = conn.Close(websocket.StatusGoingAway, "restart")
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "")
		<-conn.CloseRead(r.Context()).Done()
	}))
	defer srv.Close()

	feeder := newRecordingFeeder()
	p := newTestPushStream(t, wsURL(srv.URL), feeder)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	waitReceived(t, feeder, 2)
	cancel()
	require.NoError(t, <-done)

	envs, resyncs := feeder.snapshot()
	assert.Len(t, envs, 2)
	assert.Equal(t, 1, resyncs)
	assert.GreaterOrEqual(t, connections.Load(), int32(2))
}

func TestPushStream_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	ctrl := gomock.NewController(t)
	feeder := mock.NewMockFeeder(ctrl)

	p := newTestPushStream(t, wsURL(srv.URL), feeder)
	err := p.Run(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.ErrorIs(t, err, updates.ErrSessionRevoked)
}

func TestPushStream_StopsWithEngine(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, nil)
		require.NoError(t, err)
		defer conn.Close(websocket.StatusNormalClosure, "")

		writeEnvelope(t, r.Context(), conn, models.UpdatesTooLong{})
		<-conn.CloseRead(r.Context()).Done()
	}))
	defer srv.Close()

	ctrl := gomock.NewController(t)
	feeder := mock.NewMockFeeder(ctrl)
	feeder.EXPECT().Feed(models.UpdatesTooLong{}).Return(updates.ErrEngineStopped)

	p := newTestPushStream(t, wsURL(srv.URL), feeder)

	done := make(chan error, 1)
	go func() { done <- p.Run(context.Background()) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("push stream did not stop")
	}
}

func TestNewPushStream_EmptyAddress(t *testing.T) {
	_, err := NewPushStream(config.ClientAdapter{}, staticToken(""), newRecordingFeeder(), logger.Nop())
	assert.ErrorIs(t, err, ErrEmptyAddress)
}
