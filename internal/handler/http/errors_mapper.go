package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-chat-sync/internal/logger"
	"github.com/MKhiriev/go-chat-sync/internal/updates"
	"github.com/MKhiriev/go-chat-sync/internal/utils"
)

var errorStatusMap = map[error]int{
	ErrInvalidChannelID:  http.StatusBadRequest,
	ErrInvalidPts:        http.StatusBadRequest,
	ErrChannelNotTracked: http.StatusNotFound,

	updates.ErrInvalidChannel: http.StatusBadRequest,
	updates.ErrEngineStopped:  http.StatusServiceUnavailable,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, r *http.Request, fn string, err error) {
	status := statusFromError(err)
	log := logger.FromContext(r.Context())
	ev := log.Warn()
	if status >= http.StatusInternalServerError {
		ev = log.Error()
	}
	ev.Str("func", fn).Err(err).Int("status", status).Msg("request failed")

	_, _ = utils.WriteJSON(w, errorResponse{Error: err.Error()}, status)
}
