package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-chat-sync/internal/logger"
	"github.com/MKhiriev/go-chat-sync/internal/mock"
	"github.com/MKhiriev/go-chat-sync/internal/updates"
	"github.com/MKhiriev/go-chat-sync/models"
)

type sessionDeps struct {
	engine *mock.MockSyncEngine
	store  *mock.MockStateStore
}

func newTestSession(t *testing.T) (SessionService, sessionDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)
	deps := sessionDeps{
		engine: mock.NewMockSyncEngine(ctrl),
		store:  mock.NewMockStateStore(ctrl),
	}
	return NewSessionService(deps.engine, deps.store, logger.Nop()), deps
}

var (
	savedState    = models.GlobalSyncState{Pts: 100, Qts: 2, Date: 1700000000, Seq: 9}
	savedChannels = []models.ChannelSyncState{{ChannelID: 100, Pts: 50, Initialized: true}}
)

// ── Restore ─────────────────────────────────────────────────────────────────

func TestSessionService_Restore(t *testing.T) {
	s, deps := newTestSession(t)
	ctx := context.Background()

	deps.store.EXPECT().LoadState(ctx).Return(savedState, nil)
	deps.store.EXPECT().LoadChannels(ctx).Return(savedChannels, nil)
	deps.engine.EXPECT().Restore(savedState, savedChannels).Return(nil)

	require.NoError(t, s.Restore(ctx))

	// сразу после восстановления сохранять нечего
	deps.engine.EXPECT().State().Return(savedState)
	deps.engine.EXPECT().Channels().Return(savedChannels)
	require.NoError(t, s.Save(ctx))
}

func TestSessionService_Restore_Errors(t *testing.T) {
	storeErr := errors.New("db is locked")

	tests := []struct {
		name  string
		setup func(d sessionDeps)
	}{
		{
			name: "load state",
			setup: func(d sessionDeps) {
				d.store.EXPECT().LoadState(gomock.Any()).Return(models.GlobalSyncState{}, storeErr)
			},
		},
		{
			name: "load channels",
			setup: func(d sessionDeps) {
				d.store.EXPECT().LoadState(gomock.Any()).Return(savedState, nil)
				d.store.EXPECT().LoadChannels(gomock.Any()).Return(nil, storeErr)
			},
		},
		{
			name: "engine already running",
			setup: func(d sessionDeps) {
				d.store.EXPECT().LoadState(gomock.Any()).Return(savedState, nil)
				d.store.EXPECT().LoadChannels(gomock.Any()).Return(nil, nil)
				d.engine.EXPECT().Restore(savedState, gomock.Any()).Return(updates.ErrAlreadyRunning)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, deps := newTestSession(t)
			tt.setup(deps)

			err := s.Restore(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrRestoreFailed)
		})
	}
}

// ── Save ────────────────────────────────────────────────────────────────────

func TestSessionService_Save_WritesOnlyChanges(t *testing.T) {
	s, deps := newTestSession(t)
	ctx := context.Background()

	inflight := []models.ChannelSyncState{
		{ChannelID: 200, Pts: 7, Initialized: true, Requesting: true},
		{ChannelID: 100, Pts: 50, Initialized: true},
	}
	stored := []models.ChannelSyncState{
		{ChannelID: 100, Pts: 50, Initialized: true},
		{ChannelID: 200, Pts: 7, Initialized: true},
	}

	deps.engine.EXPECT().State().Return(savedState).Times(2)
	deps.engine.EXPECT().Channels().Return(inflight).Times(2)
	deps.store.EXPECT().SaveState(ctx, savedState).Return(nil)
	deps.store.EXPECT().SaveChannels(ctx, stored).Return(nil)

	require.NoError(t, s.Save(ctx))
	// второй вызов без изменений в БД не пишет
	require.NoError(t, s.Save(ctx))

	moved := savedState
	moved.Pts = 101
	deps.engine.EXPECT().State().Return(moved)
	deps.engine.EXPECT().Channels().Return(stored)
	deps.store.EXPECT().SaveState(ctx, moved).Return(nil)
	deps.store.EXPECT().SaveChannels(ctx, stored).Return(nil)

	require.NoError(t, s.Save(ctx))
}

func TestSessionService_Save_RetriesAfterFailure(t *testing.T) {
	s, deps := newTestSession(t)
	ctx := context.Background()

	deps.engine.EXPECT().State().Return(savedState).Times(2)
	deps.engine.EXPECT().Channels().Return(nil).Times(2)
	gomock.InOrder(
		deps.store.EXPECT().SaveState(ctx, savedState).Return(errors.New("disk full")),
		deps.store.EXPECT().SaveState(ctx, savedState).Return(nil),
	)
	deps.store.EXPECT().SaveChannels(ctx, []models.ChannelSyncState{}).Return(nil)

	err := s.Save(ctx)
	assert.ErrorIs(t, err, ErrSaveFailed)
	require.NoError(t, s.Save(ctx))
}

func TestSessionService_Save_ChannelsFail(t *testing.T) {
	s, deps := newTestSession(t)

	deps.engine.EXPECT().State().Return(savedState)
	deps.engine.EXPECT().Channels().Return(savedChannels)
	deps.store.EXPECT().SaveState(gomock.Any(), savedState).Return(nil)
	deps.store.EXPECT().SaveChannels(gomock.Any(), savedChannels).Return(errors.New("constraint"))

	assert.ErrorIs(t, s.Save(context.Background()), ErrSaveFailed)
}

// ── Revoke ──────────────────────────────────────────────────────────────────

func TestSessionService_Revoke(t *testing.T) {
	s, deps := newTestSession(t)
	ctx := context.Background()

	deps.store.EXPECT().LoadState(ctx).Return(savedState, nil)
	deps.store.EXPECT().LoadChannels(ctx).Return(savedChannels, nil)
	deps.engine.EXPECT().Restore(savedState, savedChannels).Return(nil)
	require.NoError(t, s.Restore(ctx))

	deps.store.EXPECT().ClearState(ctx).Return(nil)
	require.NoError(t, s.Revoke(ctx))

	// после сброса то же состояние снова записывается
	deps.engine.EXPECT().State().Return(savedState)
	deps.engine.EXPECT().Channels().Return(savedChannels)
	deps.store.EXPECT().SaveState(ctx, savedState).Return(nil)
	deps.store.EXPECT().SaveChannels(ctx, savedChannels).Return(nil)
	require.NoError(t, s.Save(ctx))
}

func TestSessionService_Revoke_Fails(t *testing.T) {
	s, deps := newTestSession(t)
	deps.store.EXPECT().ClearState(gomock.Any()).Return(errors.New("readonly"))

	assert.ErrorIs(t, s.Revoke(context.Background()), ErrRevokeFailed)
}
