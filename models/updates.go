package models

// Update is a single change notification. The set of implementations is
// closed: every variant lives in this file.
type Update interface {
	isUpdate()
}

// UpdateNewMessage is a new message in a private chat or basic group.
type UpdateNewMessage struct {
	Message  Message `json:"message"`
	Pts      int     `json:"pts"`
	PtsCount int     `json:"pts_count"`
}

// UpdateEditMessage replaces a message in a private chat or basic group.
type UpdateEditMessage struct {
	Message  Message `json:"message"`
	Pts      int     `json:"pts"`
	PtsCount int     `json:"pts_count"`
}

// UpdateDeleteMessages removes messages from private chats and basic groups.
type UpdateDeleteMessages struct {
	MessageIDs []int `json:"message_ids"`
	Pts        int   `json:"pts"`
	PtsCount   int   `json:"pts_count"`
}

// UpdateReadHistory marks the history with Peer read up to MaxID.
type UpdateReadHistory struct {
	Peer     Peer `json:"peer"`
	MaxID    int  `json:"max_id"`
	Outbox   bool `json:"outbox,omitempty"`
	Pts      int  `json:"pts"`
	PtsCount int  `json:"pts_count"`
}

// UpdateNewChannelMessage is a new message in a channel.
type UpdateNewChannelMessage struct {
	Message  Message `json:"message"`
	Pts      int     `json:"pts"`
	PtsCount int     `json:"pts_count"`
}

// UpdateEditChannelMessage replaces a message in a channel.
type UpdateEditChannelMessage struct {
	Message  Message `json:"message"`
	Pts      int     `json:"pts"`
	PtsCount int     `json:"pts_count"`
}

// UpdateDeleteChannelMessages removes messages from a channel.
type UpdateDeleteChannelMessages struct {
	ChannelID  int64 `json:"channel_id"`
	MessageIDs []int `json:"message_ids"`
	Pts        int   `json:"pts"`
	PtsCount   int   `json:"pts_count"`
}

// UpdateChannelTooLong tells that the channel log moved too far for push
// delivery. Pts is zero when the server did not say where it is.
type UpdateChannelTooLong struct {
	ChannelID int64 `json:"channel_id"`
	Pts       int   `json:"pts,omitempty"`
}

// UpdateNewEncryptedMessage is a secondary-box update ordered by qts.
type UpdateNewEncryptedMessage struct {
	ChatID int64 `json:"chat_id"`
	Qts    int   `json:"qts"`
}

// UpdateMessageID binds the client random id of a sent message to the id
// assigned by the server.
type UpdateMessageID struct {
	ID       int   `json:"id"`
	RandomID int64 `json:"random_id"`
}

// UpdateUserStatus changes a user's online status.
type UpdateUserStatus struct {
	UserID  int64 `json:"user_id"`
	Online  bool  `json:"online"`
	Expires int   `json:"expires,omitempty"`
}

// UpdateChannelMessageViews changes the view counter of a channel post.
type UpdateChannelMessageViews struct {
	ChannelID int64 `json:"channel_id"`
	ID        int   `json:"id"`
	Views     int   `json:"views"`
}

// UpdateReadChannelInbox marks incoming channel messages read up to MaxID.
type UpdateReadChannelInbox struct {
	ChannelID int64 `json:"channel_id"`
	MaxID     int   `json:"max_id"`
}

func (UpdateNewMessage) isUpdate()            {}
func (UpdateEditMessage) isUpdate()           {}
func (UpdateDeleteMessages) isUpdate()        {}
func (UpdateReadHistory) isUpdate()           {}
func (UpdateNewChannelMessage) isUpdate()     {}
func (UpdateEditChannelMessage) isUpdate()    {}
func (UpdateDeleteChannelMessages) isUpdate() {}
func (UpdateChannelTooLong) isUpdate()        {}
func (UpdateNewEncryptedMessage) isUpdate()   {}
func (UpdateMessageID) isUpdate()             {}
func (UpdateUserStatus) isUpdate()            {}
func (UpdateChannelMessageViews) isUpdate()   {}
func (UpdateReadChannelInbox) isUpdate()      {}

// PtsOf returns the pts and pts count an update carries, and whether it
// carries them at all. Channel updates report the channel's pts.
func PtsOf(u Update) (pts, count int, ok bool) {
	switch v := u.(type) {
	case UpdateNewMessage:
		return v.Pts, v.PtsCount, true
	case UpdateEditMessage:
		return v.Pts, v.PtsCount, true
	case UpdateDeleteMessages:
		return v.Pts, v.PtsCount, true
	case UpdateReadHistory:
		return v.Pts, v.PtsCount, true
	case UpdateNewChannelMessage:
		return v.Pts, v.PtsCount, true
	case UpdateEditChannelMessage:
		return v.Pts, v.PtsCount, true
	case UpdateDeleteChannelMessages:
		return v.Pts, v.PtsCount, true
	}
	return 0, 0, false
}

// ChannelOf returns the channel an update belongs to, or zero for updates of
// the common log.
func ChannelOf(u Update) int64 {
	switch v := u.(type) {
	case UpdateNewChannelMessage:
		return channelOfMessage(v.Message)
	case UpdateEditChannelMessage:
		return channelOfMessage(v.Message)
	case UpdateDeleteChannelMessages:
		return v.ChannelID
	case UpdateChannelTooLong:
		return v.ChannelID
	case UpdateChannelMessageViews:
		return v.ChannelID
	case UpdateReadChannelInbox:
		return v.ChannelID
	}
	return 0
}

func channelOfMessage(m Message) int64 {
	if m.Peer.Kind == PeerChannel {
		return m.Peer.ID
	}
	return 0
}
