package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-chat-sync/models"
)

func TestDeleteMessagesQuery(t *testing.T) {
	query, args, err := deleteMessagesQuery(100, []int{3, 4, 5})
	require.NoError(t, err)

	// squirrel generates IN (?,?,?) for a slice.
	assert.Contains(t, query, "DELETE FROM messages")
	assert.Contains(t, query, "box_id = ?")
	assert.Contains(t, query, "id IN (?,?,?)")
	assert.NotContains(t, query, "$1")
	assert.Equal(t, []any{int64(100), 3, 4, 5}, args)
}

func TestReadHistoryQuery(t *testing.T) {
	query, args, err := readHistoryQuery(int(models.PeerUser), 42, 17, true)
	require.NoError(t, err)

	assert.Contains(t, query, "UPDATE messages SET unread = ?")
	assert.Contains(t, query, "peer_kind = ?")
	assert.Contains(t, query, "peer_id = ?")
	assert.Contains(t, query, "out = ?")
	assert.Contains(t, query, "id <= ?")
	assert.Len(t, args, 5)
	assert.Equal(t, 0, args[0])
	assert.Equal(t, 17, args[len(args)-1])
}
