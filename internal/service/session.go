package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/MKhiriev/go-chat-sync/internal/logger"
	"github.com/MKhiriev/go-chat-sync/internal/updates"
	"github.com/MKhiriev/go-chat-sync/models"
)

type sessionService struct {
	engine SyncEngine
	store  updates.StateStore

	mu           sync.Mutex
	savedState   models.GlobalSyncState
	savedChannel []models.ChannelSyncState
	saved        bool

	logger *logger.Logger
}

func NewSessionService(engine SyncEngine, store updates.StateStore, logger *logger.Logger) SessionService {
	return &sessionService{engine: engine, store: store, logger: logger}
}

func (s *sessionService) Restore(ctx context.Context) error {
	state, err := s.store.LoadState(ctx)
	if err != nil {
		return fmt.Errorf("%w: load state: %w", ErrRestoreFailed, err)
	}
	channels, err := s.store.LoadChannels(ctx)
	if err != nil {
		return fmt.Errorf("%w: load channels: %w", ErrRestoreFailed, err)
	}

	if err = s.engine.Restore(state, channels); err != nil {
		return fmt.Errorf("%w: %w", ErrRestoreFailed, err)
	}

	s.mu.Lock()
	s.remember(state, channels)
	s.mu.Unlock()

	s.logger.Info().
		Str("func", "sessionService.Restore").
		Bool("cold_start", state.IsZero()).
		Int("channels", len(channels)).
		Msg("sync state loaded")
	return nil
}

func (s *sessionService) Save(ctx context.Context) error {
	state := s.engine.State()
	channels := normalizeChannels(s.engine.Channels())

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.saved && state == s.savedState && slices.Equal(channels, s.savedChannel) {
		return nil
	}

	if err := s.store.SaveState(ctx, state); err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	if err := s.store.SaveChannels(ctx, channels); err != nil {
		return fmt.Errorf("%w: %w", ErrSaveFailed, err)
	}
	s.remember(state, channels)

	s.logger.Debug().
		Str("func", "sessionService.Save").
		Int("pts", state.Pts).
		Int("seq", state.Seq).
		Int("channels", len(channels)).
		Msg("sync state saved")
	return nil
}

func (s *sessionService) Revoke(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.ClearState(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrRevokeFailed, err)
	}
	s.saved = false
	s.savedState = models.GlobalSyncState{}
	s.savedChannel = nil

	s.logger.Warn().Str("func", "sessionService.Revoke").Msg("session revoked, sync state dropped")
	return nil
}

func (s *sessionService) remember(state models.GlobalSyncState, channels []models.ChannelSyncState) {
	s.savedState = state
	s.savedChannel = normalizeChannels(channels)
	s.saved = true
}

// normalizeChannels clears the transient in-flight flag and orders channels
// by id so snapshots compare equal regardless of order.
func normalizeChannels(channels []models.ChannelSyncState) []models.ChannelSyncState {
	out := make([]models.ChannelSyncState, len(channels))
	for i, ch := range channels {
		ch.Requesting = false
		out[i] = ch
	}
	slices.SortFunc(out, func(a, b models.ChannelSyncState) int {
		return cmp.Compare(a.ChannelID, b.ChannelID)
	})
	return out
}
