package store

import (
	"database/sql"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-chat-sync/internal/logger"
	"github.com/MKhiriev/go-chat-sync/internal/updates"
)

var (
	_ updates.ObjectCache = (*Cache)(nil)
	_ updates.StateStore  = (*StateRepository)(nil)
)

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// newDBFromSQL создаёт DB из существующего *sql.DB (для тестов).
func newDBFromSQL(db *sql.DB) *DB {
	return &DB{
		DB:     db,
		logger: logger.Nop(),
	}
}

func newTestCache(t *testing.T, knownSize int) (*Cache, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newTestDB(t)
	c, err := NewCache(newDBFromSQL(db), knownSize, logger.Nop())
	require.NoError(t, err)
	return c, mock
}
