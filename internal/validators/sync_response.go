package validators

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-chat-sync/models"
)

// Field names accepted by [SyncResponseValidator.Validate] to restrict the
// check to a part of the value.
const (
	FieldState    = "state"
	FieldKind     = "kind"
	FieldPts      = "pts"
	FieldSeq      = "seq"
	FieldTimeout  = "timeout"
	FieldUpdates  = "updates"
	FieldMessages = "messages"
	FieldEntities = "entities"
)

// SyncResponseValidator validates positions, differences and push envelopes
// received from the server.
type SyncResponseValidator struct{}

func NewSyncResponseValidator() Validator {
	return &SyncResponseValidator{}
}

func (v *SyncResponseValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.GlobalSyncState:
		return v.validateState(value, fields...)
	case *models.GlobalSyncState:
		return v.validateState(*value, fields...)

	case models.Difference:
		return v.validateDifference(value, fields...)
	case *models.Difference:
		return v.validateDifference(*value, fields...)

	case models.ChannelDifference:
		return v.validateChannelDifference(value, fields...)
	case *models.ChannelDifference:
		return v.validateChannelDifference(*value, fields...)

	case models.UpdatesCombined:
		return v.validateCombined(value, fields...)
	case models.UpdateShort:
		return v.validateShort(value, fields...)
	case models.UpdateShortMessage:
		return v.validateShortMessage(value.AsMessage(0), value.Pts, value.PtsCount, fields...)
	case models.UpdateShortChatMessage:
		return v.validateShortMessage(value.AsMessage(), value.Pts, value.PtsCount, fields...)
	case models.UpdateShortSentMessage:
		return v.validateShortSent(value, fields...)
	case models.UpdatesTooLong:
		return nil

	default:
		return ErrUnsupportedType
	}
}

func (v *SyncResponseValidator) validateState(state models.GlobalSyncState, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldState}
	}

	for _, f := range fields {
		switch f {
		case FieldState:
			if state.Pts < 0 || state.Qts < 0 || state.Seq < 0 || state.Date < 0 {
				return ErrNegativePosition
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func (v *SyncResponseValidator) validateDifference(diff models.Difference, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldKind, FieldState, FieldMessages, FieldUpdates, FieldEntities}
	}

	for _, f := range fields {
		switch f {
		case FieldKind:
			if !isValidKind(diff.Kind) {
				return ErrInvalidDifferenceKind
			}
			if diff.Kind == models.DifferenceTooLong && diff.State.Pts <= 0 {
				return ErrMissingBaseline
			}
		case FieldState:
			if err := v.validateState(diff.State); err != nil {
				return err
			}
		case FieldMessages:
			if err := validateMessages(diff.NewMessages); err != nil {
				return err
			}
		case FieldUpdates:
			if err := validateUpdates(diff.OtherUpdates); err != nil {
				return err
			}
		case FieldEntities:
			if err := validateEntities(diff.Users, diff.Chats); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func (v *SyncResponseValidator) validateChannelDifference(diff models.ChannelDifference, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldKind, FieldPts, FieldTimeout, FieldMessages, FieldUpdates, FieldEntities}
	}

	for _, f := range fields {
		switch f {
		case FieldKind:
			if !isValidKind(diff.Kind) {
				return ErrInvalidDifferenceKind
			}
		case FieldPts:
			if diff.Pts < 0 || diff.TopMessage < 0 {
				return ErrNegativePosition
			}
			if diff.Kind == models.DifferenceTooLong && diff.Pts == 0 {
				return ErrMissingBaseline
			}
		case FieldTimeout:
			if diff.Timeout < 0 {
				return ErrNegativePosition
			}
		case FieldMessages:
			if err := validateMessages(diff.Messages); err != nil {
				return err
			}
		case FieldUpdates:
			if err := validateUpdates(diff.OtherUpdates); err != nil {
				return err
			}
		case FieldEntities:
			if err := validateEntities(diff.Users, diff.Chats); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func (v *SyncResponseValidator) validateCombined(env models.UpdatesCombined, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldSeq, FieldUpdates, FieldEntities}
	}

	for _, f := range fields {
		switch f {
		case FieldSeq:
			if env.Seq < 0 || env.SeqStart < 0 || env.Date < 0 {
				return ErrNegativePosition
			}
			if env.SeqStart != 0 && env.SeqStart > env.Seq {
				return ErrInvalidSeqRange
			}
		case FieldUpdates:
			if err := validateUpdates(env.Updates); err != nil {
				return err
			}
		case FieldEntities:
			if err := validateEntities(env.Users, env.Chats); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func (v *SyncResponseValidator) validateShort(env models.UpdateShort, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUpdates}
	}

	for _, f := range fields {
		switch f {
		case FieldUpdates:
			if err := validateUpdate(env.Update); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func (v *SyncResponseValidator) validateShortMessage(msg models.Message, pts, count int, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldMessages, FieldPts}
	}

	for _, f := range fields {
		switch f {
		case FieldMessages:
			if err := validateMessage(msg); err != nil {
				return err
			}
		case FieldPts:
			if err := validatePts(pts, count); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func (v *SyncResponseValidator) validateShortSent(env models.UpdateShortSentMessage, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldMessages, FieldPts}
	}

	for _, f := range fields {
		switch f {
		case FieldMessages:
			if env.ID <= 0 {
				return ErrInvalidMessageID
			}
		case FieldPts:
			if err := validatePts(env.Pts, env.PtsCount); err != nil {
				return err
			}
		default:
			return ErrUnknownField
		}
	}
	return nil
}

func isValidKind(k models.DifferenceKind) bool {
	switch k {
	case models.DifferenceEmpty, models.DifferenceTooLong, models.DifferenceIncremental:
		return true
	}
	return false
}

func validatePts(pts, count int) error {
	if pts < 0 || count < 0 || count > pts {
		return ErrInvalidPtsCount
	}
	return nil
}

func validatePeer(p models.Peer) error {
	switch p.Kind {
	case models.PeerUser, models.PeerChat, models.PeerChannel:
	default:
		return ErrInvalidPeer
	}
	if p.ID <= 0 {
		return ErrInvalidPeer
	}
	return nil
}

func validateMessage(m models.Message) error {
	if m.ID <= 0 {
		return ErrInvalidMessageID
	}
	return validatePeer(m.Peer)
}

func validateMessages(msgs []models.Message) error {
	for i, m := range msgs {
		if err := validateMessage(m); err != nil {
			return fmt.Errorf("validation error at message %d: %w", i, err)
		}
	}
	return nil
}

func validateEntities(users []models.User, chats []models.Chat) error {
	for i, u := range users {
		if u.ID <= 0 {
			return fmt.Errorf("validation error at user %d: %w", i, ErrInvalidEntityID)
		}
	}
	for i, c := range chats {
		if c.ID <= 0 {
			return fmt.Errorf("validation error at chat %d: %w", i, ErrInvalidEntityID)
		}
	}
	return nil
}

func validateUpdates(updates []models.Update) error {
	for i, u := range updates {
		if err := validateUpdate(u); err != nil {
			return fmt.Errorf("validation error at update %d: %w", i, err)
		}
	}
	return nil
}

func validateUpdate(u models.Update) error {
	if u == nil {
		return ErrNilUpdate
	}
	if pts, count, ok := models.PtsOf(u); ok {
		if err := validatePts(pts, count); err != nil {
			return err
		}
	}

	switch v := u.(type) {
	case models.UpdateNewMessage:
		return validateMessage(v.Message)
	case models.UpdateEditMessage:
		return validateMessage(v.Message)
	case models.UpdateNewChannelMessage:
		return validateChannelMessage(v.Message)
	case models.UpdateEditChannelMessage:
		return validateChannelMessage(v.Message)
	case models.UpdateReadHistory:
		return validatePeer(v.Peer)
	case models.UpdateNewEncryptedMessage:
		if v.Qts <= 0 {
			return ErrInvalidQts
		}
	case models.UpdateMessageID:
		if v.ID <= 0 {
			return ErrInvalidMessageID
		}
	case models.UpdateUserStatus:
		if v.UserID <= 0 {
			return ErrInvalidEntityID
		}
	case models.UpdateDeleteChannelMessages, models.UpdateChannelTooLong,
		models.UpdateChannelMessageViews, models.UpdateReadChannelInbox:
		if models.ChannelOf(u) <= 0 {
			return ErrMissingChannel
		}
	}
	return nil
}

func validateChannelMessage(m models.Message) error {
	if m.Peer.Kind != models.PeerChannel {
		return ErrMissingChannel
	}
	return validateMessage(m)
}
