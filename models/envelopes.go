package models

// Envelope is one push delivered by the transport. It may carry a single
// update, a seq-numbered batch or a sentinel asking for a full resync.
type Envelope interface {
	isEnvelope()
}

// UpdatesCombined is a batch of updates covering seqs SeqStart..Seq. Plain
// single-seq batches leave SeqStart zero. A zero Seq means the batch is not
// seq-ordered.
type UpdatesCombined struct {
	Updates  []Update `json:"updates"`
	Users    []User   `json:"users,omitempty"`
	Chats    []Chat   `json:"chats,omitempty"`
	Date     int      `json:"date"`
	SeqStart int      `json:"seq_start,omitempty"`
	Seq      int      `json:"seq"`
}

// FirstSeq returns the first seq the batch covers.
func (u UpdatesCombined) FirstSeq() int {
	if u.SeqStart != 0 {
		return u.SeqStart
	}
	return u.Seq
}

// UpdateShort carries one update without seq.
type UpdateShort struct {
	Update Update `json:"update"`
	Date   int    `json:"date"`
}

// UpdateShortMessage is a compact new private message.
type UpdateShortMessage struct {
	ID       int        `json:"id"`
	UserID   int64      `json:"user_id"`
	Out      bool       `json:"out,omitempty"`
	Text     string     `json:"text"`
	Date     int        `json:"date"`
	FwdFrom  *FwdHeader `json:"fwd_from,omitempty"`
	ViaBotID int64      `json:"via_bot_id,omitempty"`
	ReplyTo  int        `json:"reply_to,omitempty"`
	Mentions []int64    `json:"mentions,omitempty"`
	Pts      int        `json:"pts"`
	PtsCount int        `json:"pts_count"`
}

// UpdateShortChatMessage is a compact new basic group message.
type UpdateShortChatMessage struct {
	ID       int        `json:"id"`
	FromID   int64      `json:"from_id"`
	ChatID   int64      `json:"chat_id"`
	Out      bool       `json:"out,omitempty"`
	Text     string     `json:"text"`
	Date     int        `json:"date"`
	FwdFrom  *FwdHeader `json:"fwd_from,omitempty"`
	ViaBotID int64      `json:"via_bot_id,omitempty"`
	ReplyTo  int        `json:"reply_to,omitempty"`
	Mentions []int64    `json:"mentions,omitempty"`
	Pts      int        `json:"pts"`
	PtsCount int        `json:"pts_count"`
}

// UpdateShortSentMessage confirms a message sent by this client.
type UpdateShortSentMessage struct {
	ID       int   `json:"id"`
	RandomID int64 `json:"random_id,omitempty"`
	Date     int   `json:"date"`
	Pts      int   `json:"pts"`
	PtsCount int   `json:"pts_count"`
}

// UpdatesTooLong tells the client that push delivery fell too far behind
// and a difference must be fetched.
type UpdatesTooLong struct{}

func (UpdatesCombined) isEnvelope()        {}
func (UpdateShort) isEnvelope()            {}
func (UpdateShortMessage) isEnvelope()     {}
func (UpdateShortChatMessage) isEnvelope() {}
func (UpdateShortSentMessage) isEnvelope() {}
func (UpdatesTooLong) isEnvelope()         {}

// AsMessage expands the compact form into a full message addressed from the
// point of view of selfID.
func (m UpdateShortMessage) AsMessage(selfID int64) Message {
	from := m.UserID
	if m.Out {
		from = selfID
	}
	return Message{
		ID:       m.ID,
		Peer:     UserPeer(m.UserID),
		FromID:   from,
		Out:      m.Out,
		Date:     m.Date,
		Text:     m.Text,
		ViaBotID: m.ViaBotID,
		ReplyTo:  m.ReplyTo,
		FwdFrom:  m.FwdFrom,
		Mentions: m.Mentions,
	}
}

// AsMessage expands the compact form into a full message.
func (m UpdateShortChatMessage) AsMessage() Message {
	return Message{
		ID:       m.ID,
		Peer:     ChatPeer(m.ChatID),
		FromID:   m.FromID,
		Out:      m.Out,
		Date:     m.Date,
		Text:     m.Text,
		ViaBotID: m.ViaBotID,
		ReplyTo:  m.ReplyTo,
		FwdFrom:  m.FwdFrom,
		Mentions: m.Mentions,
	}
}
