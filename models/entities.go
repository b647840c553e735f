package models

// PeerKind tells which kind of entity a Peer points to.
type PeerKind int

const (
	PeerUser PeerKind = iota + 1
	PeerChat
	PeerChannel
)

// Peer references a conversation partner: a user, a basic group chat or a
// channel.
type Peer struct {
	Kind PeerKind `json:"kind"`
	ID   int64    `json:"id"`
}

// UserPeer returns a Peer for a user id.
func UserPeer(id int64) Peer { return Peer{Kind: PeerUser, ID: id} }

// ChatPeer returns a Peer for a basic group id.
func ChatPeer(id int64) Peer { return Peer{Kind: PeerChat, ID: id} }

// ChannelPeer returns a Peer for a channel id.
func ChannelPeer(id int64) Peer { return Peer{Kind: PeerChannel, ID: id} }

// User is the minimal user record materialized by the local cache.
type User struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
	// Min is set when the server sent a reduced record that must not
	// overwrite a full one.
	Min bool `json:"min,omitempty"`
}

// Chat is a basic group or a channel.
type Chat struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Channel   bool   `json:"channel,omitempty"`
	Megagroup bool   `json:"megagroup,omitempty"`
	// Pts is the channel's log position as reported along with the chat, if any.
	Pts int `json:"pts,omitempty"`
}

// FwdHeader describes where a forwarded message came from.
type FwdHeader struct {
	FromID    int64 `json:"from_id,omitempty"`
	ChannelID int64 `json:"channel_id,omitempty"`
	Date      int   `json:"date"`
}

// ServiceAction is the action of a service message that references users.
type ServiceAction struct {
	Type    string  `json:"type"`
	UserIDs []int64 `json:"user_ids,omitempty"`
}

// Message is the subset of a chat message the sync engine needs to decide
// whether it can be materialized.
type Message struct {
	ID       int            `json:"id"`
	Peer     Peer           `json:"peer"`
	FromID   int64          `json:"from_id,omitempty"`
	Out      bool           `json:"out,omitempty"`
	Post     bool           `json:"post,omitempty"`
	Date     int            `json:"date"`
	Text     string         `json:"text,omitempty"`
	ViaBotID int64          `json:"via_bot_id,omitempty"`
	ReplyTo  int            `json:"reply_to,omitempty"`
	FwdFrom  *FwdHeader     `json:"fwd_from,omitempty"`
	Mentions []int64        `json:"mentions,omitempty"`
	Action   *ServiceAction `json:"action,omitempty"`
}

// ApplyMode tells the cache how a batch of messages should be merged.
type ApplyMode int

const (
	// ApplyNewUnread adds messages as new and possibly unread.
	ApplyNewUnread ApplyMode = iota + 1
	// ApplyNewLast adds messages as the latest known slice of a history
	// that is not loaded around them.
	ApplyNewLast
	// ApplyEdited replaces existing messages.
	ApplyEdited
)

func (m ApplyMode) String() string {
	switch m {
	case ApplyNewUnread:
		return "new_unread"
	case ApplyNewLast:
		return "new_last"
	case ApplyEdited:
		return "edited"
	default:
		return "unknown"
	}
}
