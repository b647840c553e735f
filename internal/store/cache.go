package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/MKhiriev/go-chat-sync/internal/logger"
	"github.com/MKhiriev/go-chat-sync/models"
)

// DefaultKnownEntities is the size of the known-entity cache when none is
// configured.
const DefaultKnownEntities = 4096

type entityKind uint8

const (
	entityUser entityKind = iota + 1
	entityChat
)

type entityKey struct {
	kind entityKind
	id   int64
}

// Cache is the sqlite-backed object cache of users, chats and messages.
// Every write is idempotent. Lookups of known users and chats go through an
// in-memory LRU before touching the database.
type Cache struct {
	*DB
	known  *lru.Cache[entityKey, struct{}]
	logger *logger.Logger
}

// NewCache creates a cache over db remembering up to knownSize entity ids in
// memory.
func NewCache(db *DB, knownSize int, logger *logger.Logger) (*Cache, error) {
	if knownSize <= 0 {
		knownSize = DefaultKnownEntities
	}
	known, err := lru.New[entityKey, struct{}](knownSize)
	if err != nil {
		return nil, fmt.Errorf("create known entities cache: %w", err)
	}
	return &Cache{DB: db, known: known, logger: logger}, nil
}

// boxOf returns the message box a message belongs to.
func boxOf(peer models.Peer) int64 {
	if peer.Kind == models.PeerChannel {
		return peer.ID
	}
	return 0
}

func (c *Cache) ApplyUsers(ctx context.Context, users []models.User) error {
	if len(users) == 0 {
		return nil
	}
	err := c.inTx(ctx, func(tx *sql.Tx) error {
		for _, u := range users {
			if _, err := tx.ExecContext(ctx, upsertUser, u.ID, u.FirstName, u.LastName, u.Username, u.Min); err != nil {
				return fmt.Errorf("%w: upsert user %d: %w", ErrExecutingStatement, u.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		c.logger.Err(err).Str("func", "Cache.ApplyUsers").Int("count", len(users)).Msg("failed to apply users")
		return err
	}
	for _, u := range users {
		c.known.Add(entityKey{entityUser, u.ID}, struct{}{})
	}
	return nil
}

func (c *Cache) ApplyChats(ctx context.Context, chats []models.Chat) error {
	if len(chats) == 0 {
		return nil
	}
	err := c.inTx(ctx, func(tx *sql.Tx) error {
		for _, ch := range chats {
			if _, err := tx.ExecContext(ctx, upsertChat, ch.ID, ch.Title, ch.Channel, ch.Megagroup, ch.Pts); err != nil {
				return fmt.Errorf("%w: upsert chat %d: %w", ErrExecutingStatement, ch.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		c.logger.Err(err).Str("func", "Cache.ApplyChats").Int("count", len(chats)).Msg("failed to apply chats")
		return err
	}
	for _, ch := range chats {
		c.known.Add(entityKey{entityChat, ch.ID}, struct{}{})
	}
	return nil
}

// ApplyMessages stores messages according to mode. New messages never
// replace stored ones. Edits and latest slices overwrite the content but keep
// the unread mark.
func (c *Cache) ApplyMessages(ctx context.Context, messages []models.Message, mode models.ApplyMode) error {
	if len(messages) == 0 {
		return nil
	}

	query := upsertMessage
	if mode == models.ApplyNewUnread {
		query = insertNewMessage
	}

	err := c.inTx(ctx, func(tx *sql.Tx) error {
		for _, m := range messages {
			payload, err := json.Marshal(m)
			if err != nil {
				return fmt.Errorf("encode message %d: %w", m.ID, err)
			}
			unread := mode == models.ApplyNewUnread && !m.Out
			_, err = tx.ExecContext(ctx, query,
				boxOf(m.Peer), m.ID, int(m.Peer.Kind), m.Peer.ID, m.FromID, m.Out, m.Date, m.Text, unread, string(payload))
			if err != nil {
				return fmt.Errorf("%w: store message %d: %w", ErrExecutingStatement, m.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		c.logger.Err(err).
			Str("func", "Cache.ApplyMessages").
			Stringer("mode", mode).
			Int("count", len(messages)).
			Msg("failed to apply messages")
	}
	return err
}

// ApplyUpdate materializes updates other than message inserts and edits.
func (c *Cache) ApplyUpdate(ctx context.Context, update models.Update) error {
	log := logger.FromContext(ctx)

	var (
		query string
		args  []any
		err   error
	)
	switch u := update.(type) {
	case models.UpdateDeleteMessages:
		if len(u.MessageIDs) == 0 {
			return nil
		}
		query, args, err = deleteMessagesQuery(0, u.MessageIDs)
	case models.UpdateDeleteChannelMessages:
		if len(u.MessageIDs) == 0 {
			return nil
		}
		query, args, err = deleteMessagesQuery(u.ChannelID, u.MessageIDs)
	case models.UpdateReadHistory:
		query, args, err = readHistoryQuery(int(u.Peer.Kind), u.Peer.ID, u.MaxID, u.Outbox)
	case models.UpdateReadChannelInbox:
		query, args = updateChannelReadInbox, []any{u.MaxID, u.ChannelID}
	case models.UpdateChannelMessageViews:
		query, args = updateMessageViews, []any{u.Views, u.ChannelID, u.ID}
	case models.UpdateUserStatus:
		query, args = updateUserStatus, []any{u.Online, u.Expires, u.UserID}
	case models.UpdateMessageID:
		query, args = insertRandomID, []any{u.RandomID, u.ID}
	case models.UpdateNewEncryptedMessage:
		query, args = insertEncryptedMessage, []any{u.Qts, u.ChatID}
	case models.UpdateChannelTooLong:
		// handled by the engine through ResetChannel
		return nil
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedUpdate, update)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = c.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "Cache.ApplyUpdate").
			Str("update", fmt.Sprintf("%T", update)).
			Msg("failed to apply update")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (c *Cache) ResetChannel(ctx context.Context, channelID int64) error {
	if _, err := c.DB.ExecContext(ctx, deleteChannelHistory, channelID); err != nil {
		c.logger.Err(err).Str("func", "Cache.ResetChannel").Int64("channel_id", channelID).Msg("failed to drop channel history")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func (c *Cache) HasUser(ctx context.Context, id int64) (bool, error) {
	return c.has(ctx, entityKey{entityUser, id}, userExists)
}

func (c *Cache) HasChat(ctx context.Context, id int64) (bool, error) {
	return c.has(ctx, entityKey{entityChat, id}, chatExists)
}

func (c *Cache) has(ctx context.Context, key entityKey, query string) (bool, error) {
	if c.known.Contains(key) {
		return true, nil
	}

	var exists bool
	if err := c.DB.QueryRowContext(ctx, query, key.id).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	if exists {
		c.known.Add(key, struct{}{})
	}
	return exists, nil
}

// Forget drops the in-memory entity index.
func (c *Cache) Forget() {
	c.known.Purge()
}

func (c *Cache) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := c.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}
	return nil
}
