package adapter

import (
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-chat-sync/models"
)

// frame is the tagged form every update and envelope travels in:
//
//	{"type": "new_message", "data": {...}}
type frame struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

type updateDecoder func(data json.RawMessage) (models.Update, error)

func decodeAs[T models.Update](data json.RawMessage) (models.Update, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

var updateDecoders = map[string]updateDecoder{
	"new_message":             decodeAs[models.UpdateNewMessage],
	"edit_message":            decodeAs[models.UpdateEditMessage],
	"delete_messages":         decodeAs[models.UpdateDeleteMessages],
	"read_history":            decodeAs[models.UpdateReadHistory],
	"new_channel_message":     decodeAs[models.UpdateNewChannelMessage],
	"edit_channel_message":    decodeAs[models.UpdateEditChannelMessage],
	"delete_channel_messages": decodeAs[models.UpdateDeleteChannelMessages],
	"channel_too_long":        decodeAs[models.UpdateChannelTooLong],
	"new_encrypted_message":   decodeAs[models.UpdateNewEncryptedMessage],
	"message_id":              decodeAs[models.UpdateMessageID],
	"user_status":             decodeAs[models.UpdateUserStatus],
	"channel_message_views":   decodeAs[models.UpdateChannelMessageViews],
	"read_channel_inbox":      decodeAs[models.UpdateReadChannelInbox],
}

func updateType(u models.Update) (string, bool) {
	switch u.(type) {
	case models.UpdateNewMessage:
		return "new_message", true
	case models.UpdateEditMessage:
		return "edit_message", true
	case models.UpdateDeleteMessages:
		return "delete_messages", true
	case models.UpdateReadHistory:
		return "read_history", true
	case models.UpdateNewChannelMessage:
		return "new_channel_message", true
	case models.UpdateEditChannelMessage:
		return "edit_channel_message", true
	case models.UpdateDeleteChannelMessages:
		return "delete_channel_messages", true
	case models.UpdateChannelTooLong:
		return "channel_too_long", true
	case models.UpdateNewEncryptedMessage:
		return "new_encrypted_message", true
	case models.UpdateMessageID:
		return "message_id", true
	case models.UpdateUserStatus:
		return "user_status", true
	case models.UpdateChannelMessageViews:
		return "channel_message_views", true
	case models.UpdateReadChannelInbox:
		return "read_channel_inbox", true
	}
	return "", false
}

// wireUpdate marshals a models.Update as a frame.
type wireUpdate struct {
	models.Update
}

func (w wireUpdate) MarshalJSON() ([]byte, error) {
	name, ok := updateType(w.Update)
	if !ok {
		return nil, fmt.Errorf("%w: update %T", ErrUnknownWireType, w.Update)
	}
	data, err := json.Marshal(w.Update)
	if err != nil {
		return nil, err
	}
	return json.Marshal(frame{Type: name, Data: data})
}

func (w *wireUpdate) UnmarshalJSON(b []byte) error {
	var f frame
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	decode, ok := updateDecoders[f.Type]
	if !ok {
		return fmt.Errorf("%w: update %q", ErrUnknownWireType, f.Type)
	}
	u, err := decode(f.Data)
	if err != nil {
		return fmt.Errorf("decode update %q: %w", f.Type, err)
	}
	w.Update = u
	return nil
}

func wrapUpdates(list []models.Update) []wireUpdate {
	if len(list) == 0 {
		return nil
	}
	out := make([]wireUpdate, len(list))
	for i, u := range list {
		out[i] = wireUpdate{u}
	}
	return out
}

func unwrapUpdates(list []wireUpdate) []models.Update {
	if len(list) == 0 {
		return nil
	}
	out := make([]models.Update, len(list))
	for i, w := range list {
		out[i] = w.Update
	}
	return out
}

type wireCombined struct {
	Updates  []wireUpdate  `json:"updates"`
	Users    []models.User `json:"users,omitempty"`
	Chats    []models.Chat `json:"chats,omitempty"`
	Date     int           `json:"date"`
	SeqStart int           `json:"seq_start,omitempty"`
	Seq      int           `json:"seq"`
}

type wireShort struct {
	Update wireUpdate `json:"update"`
	Date   int        `json:"date"`
}

// EncodeEnvelope serializes a pushed envelope.
func EncodeEnvelope(env models.Envelope) ([]byte, error) {
	var (
		name    string
		payload any
	)
	switch v := env.(type) {
	case models.UpdatesCombined:
		name = "updates"
		payload = wireCombined{
			Updates: wrapUpdates(v.Updates), Users: v.Users, Chats: v.Chats,
			Date: v.Date, SeqStart: v.SeqStart, Seq: v.Seq,
		}
	case models.UpdateShort:
		name, payload = "update_short", wireShort{Update: wireUpdate{v.Update}, Date: v.Date}
	case models.UpdateShortMessage:
		name, payload = "short_message", v
	case models.UpdateShortChatMessage:
		name, payload = "short_chat_message", v
	case models.UpdateShortSentMessage:
		name, payload = "short_sent_message", v
	case models.UpdatesTooLong:
		return json.Marshal(frame{Type: "updates_too_long"})
	default:
		return nil, fmt.Errorf("%w: envelope %T", ErrUnknownWireType, env)
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode envelope %q: %w", name, err)
	}
	return json.Marshal(frame{Type: name, Data: data})
}

// DecodeEnvelope parses a pushed envelope.
func DecodeEnvelope(b []byte) (models.Envelope, error) {
	var f frame
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("decode envelope frame: %w", err)
	}

	var (
		env models.Envelope
		err error
	)
	switch f.Type {
	case "updates":
		var w wireCombined
		if err = json.Unmarshal(f.Data, &w); err == nil {
			env = models.UpdatesCombined{
				Updates: unwrapUpdates(w.Updates), Users: w.Users, Chats: w.Chats,
				Date: w.Date, SeqStart: w.SeqStart, Seq: w.Seq,
			}
		}
	case "update_short":
		var w wireShort
		if err = json.Unmarshal(f.Data, &w); err == nil {
			env = models.UpdateShort{Update: w.Update.Update, Date: w.Date}
		}
	case "short_message":
		var v models.UpdateShortMessage
		err = json.Unmarshal(f.Data, &v)
		env = v
	case "short_chat_message":
		var v models.UpdateShortChatMessage
		err = json.Unmarshal(f.Data, &v)
		env = v
	case "short_sent_message":
		var v models.UpdateShortSentMessage
		err = json.Unmarshal(f.Data, &v)
		env = v
	case "updates_too_long":
		return models.UpdatesTooLong{}, nil
	default:
		return nil, fmt.Errorf("%w: envelope %q", ErrUnknownWireType, f.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("decode envelope %q: %w", f.Type, err)
	}
	return env, nil
}

func parseDifferenceKind(s string) (models.DifferenceKind, error) {
	switch s {
	case "empty":
		return models.DifferenceEmpty, nil
	case "too_long":
		return models.DifferenceTooLong, nil
	case "incremental":
		return models.DifferenceIncremental, nil
	}
	return 0, fmt.Errorf("%w: difference kind %q", ErrUnknownWireType, s)
}

type wireDifference struct {
	Kind         string                 `json:"kind"`
	Final        bool                   `json:"final"`
	State        models.GlobalSyncState `json:"state"`
	NewMessages  []models.Message       `json:"new_messages,omitempty"`
	OtherUpdates []wireUpdate           `json:"other_updates,omitempty"`
	Users        []models.User          `json:"users,omitempty"`
	Chats        []models.Chat          `json:"chats,omitempty"`
}

// EncodeDifference serializes a difference response.
func EncodeDifference(d models.Difference) ([]byte, error) {
	return json.Marshal(wireDifference{
		Kind:         d.Kind.String(),
		Final:        d.Final,
		State:        d.State,
		NewMessages:  d.NewMessages,
		OtherUpdates: wrapUpdates(d.OtherUpdates),
		Users:        d.Users,
		Chats:        d.Chats,
	})
}

// DecodeDifference parses a difference response.
func DecodeDifference(b []byte) (models.Difference, error) {
	var w wireDifference
	if err := json.Unmarshal(b, &w); err != nil {
		return models.Difference{}, fmt.Errorf("decode difference: %w", err)
	}
	kind, err := parseDifferenceKind(w.Kind)
	if err != nil {
		return models.Difference{}, err
	}
	return models.Difference{
		Kind:         kind,
		Final:        w.Final,
		State:        w.State,
		NewMessages:  w.NewMessages,
		OtherUpdates: unwrapUpdates(w.OtherUpdates),
		Users:        w.Users,
		Chats:        w.Chats,
	}, nil
}

type wireChannelDifference struct {
	Kind         string           `json:"kind"`
	Final        bool             `json:"final"`
	Pts          int              `json:"pts"`
	Timeout      int              `json:"timeout,omitempty"`
	TopMessage   int              `json:"top_message,omitempty"`
	Messages     []models.Message `json:"messages,omitempty"`
	OtherUpdates []wireUpdate     `json:"other_updates,omitempty"`
	Users        []models.User    `json:"users,omitempty"`
	Chats        []models.Chat    `json:"chats,omitempty"`
}

// EncodeChannelDifference serializes a channel difference response.
func EncodeChannelDifference(d models.ChannelDifference) ([]byte, error) {
	return json.Marshal(wireChannelDifference{
		Kind:         d.Kind.String(),
		Final:        d.Final,
		Pts:          d.Pts,
		Timeout:      d.Timeout,
		TopMessage:   d.TopMessage,
		Messages:     d.Messages,
		OtherUpdates: wrapUpdates(d.OtherUpdates),
		Users:        d.Users,
		Chats:        d.Chats,
	})
}

// DecodeChannelDifference parses a channel difference response.
func DecodeChannelDifference(b []byte) (models.ChannelDifference, error) {
	var w wireChannelDifference
	if err := json.Unmarshal(b, &w); err != nil {
		return models.ChannelDifference{}, fmt.Errorf("decode channel difference: %w", err)
	}
	kind, err := parseDifferenceKind(w.Kind)
	if err != nil {
		return models.ChannelDifference{}, err
	}
	return models.ChannelDifference{
		Kind:         kind,
		Final:        w.Final,
		Pts:          w.Pts,
		Timeout:      w.Timeout,
		TopMessage:   w.TopMessage,
		Messages:     w.Messages,
		OtherUpdates: unwrapUpdates(w.OtherUpdates),
		Users:        w.Users,
		Chats:        w.Chats,
	}, nil
}
