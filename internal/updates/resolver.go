package updates

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-chat-sync/models"
)

// entitySet holds the users and chats an envelope carries along with its
// updates.
type entitySet struct {
	users map[int64]struct{}
	chats map[int64]struct{}
}

func newEntitySet(users []models.User, chats []models.Chat) entitySet {
	s := entitySet{
		users: make(map[int64]struct{}, len(users)),
		chats: make(map[int64]struct{}, len(chats)),
	}
	for _, u := range users {
		s.users[u.ID] = struct{}{}
	}
	for _, c := range chats {
		s.chats[c.ID] = struct{}{}
	}
	return s
}

func (s entitySet) hasUser(id int64) bool {
	_, ok := s.users[id]
	return ok
}

func (s entitySet) hasChat(id int64) bool {
	_, ok := s.chats[id]
	return ok
}

// updateResolvable reports whether every user and chat a new message
// references is known, either to the cache or to the envelope itself.
func (e *Engine) updateResolvable(ctx context.Context, u models.Update, known entitySet) (bool, error) {
	switch v := u.(type) {
	case models.UpdateNewMessage:
		return e.messageResolvable(ctx, v.Message, known)
	case models.UpdateNewChannelMessage:
		return e.messageResolvable(ctx, v.Message, known)
	}
	return true, nil
}

func (e *Engine) messageResolvable(ctx context.Context, m models.Message, known entitySet) (bool, error) {
	users, chats := messageRefs(m)

	for _, id := range users {
		if known.hasUser(id) {
			continue
		}
		ok, err := e.cache.HasUser(ctx, id)
		if err != nil {
			return false, fmt.Errorf("lookup user %d: %w", id, err)
		}
		if !ok {
			e.logger.Debug().Str("func", "Engine.messageResolvable").Int("message_id", m.ID).Int64("user_id", id).Msg("unknown user")
			return false, nil
		}
	}
	for _, id := range chats {
		if known.hasChat(id) {
			continue
		}
		ok, err := e.cache.HasChat(ctx, id)
		if err != nil {
			return false, fmt.Errorf("lookup chat %d: %w", id, err)
		}
		if !ok {
			e.logger.Debug().Str("func", "Engine.messageResolvable").Int("message_id", m.ID).Int64("chat_id", id).Msg("unknown chat")
			return false, nil
		}
	}
	return true, nil
}

// messageRefs lists the users and chats a message cannot be shown without.
func messageRefs(m models.Message) (users, chats []int64) {
	addUser := func(id int64) {
		if id != 0 {
			users = append(users, id)
		}
	}
	addChat := func(id int64) {
		if id != 0 {
			chats = append(chats, id)
		}
	}

	switch m.Peer.Kind {
	case models.PeerUser:
		addUser(m.Peer.ID)
	case models.PeerChat, models.PeerChannel:
		addChat(m.Peer.ID)
	}
	if !m.Post {
		addUser(m.FromID)
	}
	addUser(m.ViaBotID)
	if m.FwdFrom != nil {
		addUser(m.FwdFrom.FromID)
		addChat(m.FwdFrom.ChannelID)
	}
	for _, id := range m.Mentions {
		addUser(id)
	}
	if m.Action != nil {
		for _, id := range m.Action.UserIDs {
			addUser(id)
		}
	}
	return users, chats
}

// skipUnresolved handles an envelope with unknown references according to
// the configured policy. It reports whether the envelope must be dropped.
func (e *Engine) skipUnresolved(seq int) bool {
	e.metrics.UnresolvedEnvelope()
	if e.cfg.UnresolvedPolicy == PolicyApply {
		e.logger.Warn().
			Err(ErrUnresolvedEntity).
			Str("func", "Engine.skipUnresolved").
			Int("seq", seq).
			Msg("applying envelope with unknown references")
		return false
	}
	e.logger.Info().
		Err(ErrUnresolvedEntity).
		Str("func", "Engine.skipUnresolved").
		Int("seq", seq).
		Msg("dropping envelope, fetching difference")
	e.requestGlobalDifference(reasonUnresolved)
	return true
}
