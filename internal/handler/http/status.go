package http

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-chat-sync/internal/utils"
	"github.com/MKhiriev/go-chat-sync/models"
)

// statusResponse is the body of GET /api/sync/status.
type statusResponse struct {
	SessionID  string                    `json:"session_id"`
	State      models.GlobalSyncState    `json:"state"`
	Requesting bool                      `json:"requesting"`
	Buffered   int                       `json:"buffered"`
	Channels   []models.ChannelSyncState `json:"channels"`
}

func (h *Handler) getStatus(w http.ResponseWriter, r *http.Request) {
	channels := h.engine.Channels()
	if channels == nil {
		channels = []models.ChannelSyncState{}
	}

	utils.WriteJSON(w, statusResponse{
		SessionID:  h.engine.SessionID(),
		State:      h.engine.State(),
		Requesting: h.engine.Requesting(),
		Buffered:   h.engine.Buffered(),
		Channels:   channels,
	}, http.StatusOK)
}

func (h *Handler) getChannels(w http.ResponseWriter, r *http.Request) {
	channels := h.engine.Channels()
	if channels == nil {
		channels = []models.ChannelSyncState{}
	}
	utils.WriteJSON(w, channels, http.StatusOK)
}

func (h *Handler) getChannel(w http.ResponseWriter, r *http.Request) {
	id, err := channelIDParam(r)
	if err != nil {
		writeError(w, r, "Handler.getChannel", err)
		return
	}

	ch, ok := h.engine.Channel(id)
	if !ok {
		writeError(w, r, "Handler.getChannel", ErrChannelNotTracked)
		return
	}
	utils.WriteJSON(w, ch, http.StatusOK)
}

func channelIDParam(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidChannelID
	}
	return id, nil
}
