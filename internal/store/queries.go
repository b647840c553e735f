// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import sq "github.com/Masterminds/squirrel"

// builder renders squirrel queries with sqlite placeholders.
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

const (
	// a reduced record never replaces a full one
	upsertUser = `
		INSERT INTO users (id, first_name, last_name, username, min)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			first_name = excluded.first_name,
			last_name  = excluded.last_name,
			username   = excluded.username,
			min        = excluded.min
		WHERE excluded.min = 0 OR users.min = 1;`

	upsertChat = `
		INSERT INTO chats (id, title, channel, megagroup, pts)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title     = excluded.title,
			channel   = excluded.channel,
			megagroup = excluded.megagroup,
			pts       = MAX(chats.pts, excluded.pts);`

	insertNewMessage = `
		INSERT INTO messages (box_id, id, peer_kind, peer_id, from_id, out, date, text, unread, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(box_id, id) DO NOTHING;`

	upsertMessage = `
		INSERT INTO messages (box_id, id, peer_kind, peer_id, from_id, out, date, text, unread, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(box_id, id) DO UPDATE SET
			peer_kind = excluded.peer_kind,
			peer_id   = excluded.peer_id,
			from_id   = excluded.from_id,
			out       = excluded.out,
			date      = excluded.date,
			text      = excluded.text,
			payload   = excluded.payload;`

	updateMessageViews = `
		UPDATE messages SET views = MAX(views, ?)
		WHERE box_id = ? AND id = ?;`

	updateUserStatus = `
		UPDATE users SET online = ?, status_expires = ?
		WHERE id = ?;`

	updateChannelReadInbox = `
		UPDATE chats SET read_inbox_max_id = MAX(read_inbox_max_id, ?)
		WHERE id = ?;`

	insertRandomID = `
		INSERT INTO random_ids (random_id, message_id) VALUES (?, ?)
		ON CONFLICT(random_id) DO UPDATE SET message_id = excluded.message_id;`

	insertEncryptedMessage = `
		INSERT INTO encrypted_messages (qts, chat_id) VALUES (?, ?)
		ON CONFLICT(qts) DO NOTHING;`

	deleteChannelHistory = `DELETE FROM messages WHERE box_id = ?;`

	userExists = `SELECT EXISTS(SELECT 1 FROM users WHERE id = ?);`
	chatExists = `SELECT EXISTS(SELECT 1 FROM chats WHERE id = ?);`

	selectSyncState = `SELECT pts, qts, date, seq FROM sync_state WHERE id = 1;`
	upsertSyncState = `
		INSERT INTO sync_state (id, pts, qts, date, seq) VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			pts  = excluded.pts,
			qts  = excluded.qts,
			date = excluded.date,
			seq  = excluded.seq;`
	deleteSyncState = `DELETE FROM sync_state;`

	selectChannelStates = `SELECT channel_id, pts, initialized FROM channel_state ORDER BY channel_id;`
	insertChannelState  = `INSERT INTO channel_state (channel_id, pts, initialized) VALUES (?, ?, ?);`
	deleteChannelStates = `DELETE FROM channel_state;`
)

// deleteMessagesQuery removes ids from one message box.
func deleteMessagesQuery(boxID int64, ids []int) (string, []any, error) {
	return builder.Delete("messages").
		Where(sq.Eq{"box_id": boxID, "id": ids}).
		ToSql()
}

// readHistoryQuery marks messages with peer read up to maxID. outbox selects
// messages sent by this client, otherwise incoming ones are marked.
func readHistoryQuery(kind int, peerID int64, maxID int, outbox bool) (string, []any, error) {
	return builder.Update("messages").
		Set("unread", 0).
		Where(sq.Eq{"peer_kind": kind, "peer_id": peerID, "out": outbox}).
		Where(sq.LtOrEq{"id": maxID}).
		ToSql()
}
