package http

import (
	"net/http"
	"strconv"
)

func (h *Handler) resync(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.Resync(); err != nil {
		writeError(w, r, "Handler.resync", err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// openChannel starts tracking a channel. An optional ?pts= seeds its
// position; without it the engine fetches a baseline.
func (h *Handler) openChannel(w http.ResponseWriter, r *http.Request) {
	id, err := channelIDParam(r)
	if err != nil {
		writeError(w, r, "Handler.openChannel", err)
		return
	}

	pts := 0
	if raw := r.URL.Query().Get("pts"); raw != "" {
		pts, err = strconv.Atoi(raw)
		if err != nil || pts < 0 {
			writeError(w, r, "Handler.openChannel", ErrInvalidPts)
			return
		}
	}

	if err = h.engine.OpenChannel(id, pts); err != nil {
		writeError(w, r, "Handler.openChannel", err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) closeChannel(w http.ResponseWriter, r *http.Request) {
	id, err := channelIDParam(r)
	if err != nil {
		writeError(w, r, "Handler.closeChannel", err)
		return
	}
	if err = h.engine.CloseChannel(id); err != nil {
		writeError(w, r, "Handler.closeChannel", err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) setActiveChannel(w http.ResponseWriter, r *http.Request) {
	id, err := channelIDParam(r)
	if err != nil {
		writeError(w, r, "Handler.setActiveChannel", err)
		return
	}
	if err = h.engine.SetActiveChannel(id); err != nil {
		writeError(w, r, "Handler.setActiveChannel", err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

func (h *Handler) clearActiveChannel(w http.ResponseWriter, r *http.Request) {
	if err := h.engine.SetActiveChannel(0); err != nil {
		writeError(w, r, "Handler.clearActiveChannel", err)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}
