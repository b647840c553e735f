package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-chat-sync/internal/logger"
	"github.com/MKhiriev/go-chat-sync/models"
)

// StateRepository persists sync positions in sqlite. The in-flight flag of
// a channel is not stored: a restored channel is never requesting.
type StateRepository struct {
	*DB
	logger *logger.Logger
}

func NewStateRepository(db *DB, logger *logger.Logger) *StateRepository {
	return &StateRepository{DB: db, logger: logger}
}

// LoadState returns the saved position, or a zero state when none was saved.
func (r *StateRepository) LoadState(ctx context.Context) (models.GlobalSyncState, error) {
	var s models.GlobalSyncState
	err := r.DB.QueryRowContext(ctx, selectSyncState).Scan(&s.Pts, &s.Qts, &s.Date, &s.Seq)
	if errors.Is(err, sql.ErrNoRows) {
		return models.GlobalSyncState{}, nil
	}
	if err != nil {
		r.logger.Err(err).Str("func", "StateRepository.LoadState").Msg("failed to load sync state")
		return models.GlobalSyncState{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return s, nil
}

func (r *StateRepository) SaveState(ctx context.Context, state models.GlobalSyncState) error {
	if _, err := r.DB.ExecContext(ctx, upsertSyncState, state.Pts, state.Qts, state.Date, state.Seq); err != nil {
		r.logger.Err(err).Str("func", "StateRepository.SaveState").Int("pts", state.Pts).Msg("failed to save sync state")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (r *StateRepository) LoadChannels(ctx context.Context) ([]models.ChannelSyncState, error) {
	rows, err := r.DB.QueryContext(ctx, selectChannelStates)
	if err != nil {
		r.logger.Err(err).Str("func", "StateRepository.LoadChannels").Msg("failed to query channel states")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var channels []models.ChannelSyncState
	for rows.Next() {
		var ch models.ChannelSyncState
		if err = rows.Scan(&ch.ChannelID, &ch.Pts, &ch.Initialized); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		channels = append(channels, ch)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return channels, nil
}

// SaveChannels replaces the stored channel set with channels.
func (r *StateRepository) SaveChannels(ctx context.Context, channels []models.ChannelSyncState) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, deleteChannelStates); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	for _, ch := range channels {
		if _, err = tx.ExecContext(ctx, insertChannelState, ch.ChannelID, ch.Pts, ch.Initialized); err != nil {
			r.logger.Err(err).
				Str("func", "StateRepository.SaveChannels").
				Int64("channel_id", ch.ChannelID).
				Msg("failed to save channel state")
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}

// ClearState drops every saved position.
func (r *StateRepository) ClearState(ctx context.Context) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	for _, q := range []string{deleteSyncState, deleteChannelStates} {
		if _, err = tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	r.logger.Info().Str("func", "StateRepository.ClearState").Msg("sync state cleared")
	return nil
}
