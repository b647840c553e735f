package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-chat-sync/internal/config"
	"github.com/MKhiriev/go-chat-sync/internal/logger"
)

// ClientStorages groups the local storage of the sync client: the object
// cache the engine materializes into and the repository of sync positions.
type ClientStorages struct {
	Cache *Cache
	State *StateRepository

	db *DB
}

// NewClientStorages initialises the client storage layer using the supplied
// configuration and logger. It performs the following steps:
//  1. Opens an SQLite connection to the file path specified in cfg.DB.DSN,
//     creating the database file if it does not yet exist.
//  2. Runs pending schema migrations via [DB.Migrate].
//  3. Constructs the [Cache] and the [StateRepository] over the connection.
//
// Returns an error if the database connection cannot be established or if
// migration fails.
func NewClientStorages(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new storages...")

	db, err := NewConnectSQLite(ctx, cfg.DB, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return newClientStorages(db, cfg.KnownEntitiesCacheSize, logger)
}

func newClientStorages(db *DB, knownSize int, logger *logger.Logger) (*ClientStorages, error) {
	cache, err := NewCache(db, knownSize, logger)
	if err != nil {
		return nil, err
	}
	return &ClientStorages{
		Cache: cache,
		State: NewStateRepository(db, logger),
		db:    db,
	}, nil
}

// Close closes the underlying database.
func (s *ClientStorages) Close() error {
	return s.db.Close()
}
