package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-chat-sync/internal/config"
	"github.com/MKhiriev/go-chat-sync/internal/logger"
	"github.com/MKhiriev/go-chat-sync/internal/utils"
	"github.com/MKhiriev/go-chat-sync/internal/validators"
	"github.com/MKhiriev/go-chat-sync/models"
)

// SessionIDHeader carries the engine session id on every request.
const SessionIDHeader = "X-Session-ID"

const (
	stateEndpoint             = "/api/updates/state"
	differenceEndpoint        = "/api/updates/difference"
	channelDifferenceEndpoint = "/api/updates/channel-difference"
)

type httpUpdatesAdapter struct {
	client    *utils.HTTPClient
	validator validators.Validator

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPUpdatesAdapter constructs an HTTP/REST implementation of
// [UpdatesAdapter]. It normalises and validates the base URL from
// adapterCfg.HTTPAddress and configures the underlying HTTP client with the
// resolved base URL and request timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPUpdatesAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (UpdatesAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress, "http")
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpUpdatesAdapter{
		client:    utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		validator: validators.NewSyncResponseValidator(),
		logger:    logger,
	}, nil
}

func normalizeBaseURL(raw, scheme string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyAddress
	}

	if !strings.Contains(raw, "://") {
		raw = scheme + "://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [UpdatesAdapter].
func (h *httpUpdatesAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [UpdatesAdapter].
func (h *httpUpdatesAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// GetState POSTs to /api/updates/state and decodes the current position.
func (h *httpUpdatesAdapter) GetState(ctx context.Context) (models.GlobalSyncState, error) {
	resp, err := h.authedRequest(ctx).Post(stateEndpoint)
	if err != nil {
		return models.GlobalSyncState{}, fmt.Errorf("get state request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.GlobalSyncState{}, err
	}

	var state models.GlobalSyncState
	if err = json.Unmarshal(resp.Body(), &state); err != nil {
		return models.GlobalSyncState{}, fmt.Errorf("decode state response: %w", err)
	}
	if err = h.validator.Validate(ctx, state); err != nil {
		return models.GlobalSyncState{}, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}
	return state, nil
}

// GetDifference POSTs the position to /api/updates/difference.
func (h *httpUpdatesAdapter) GetDifference(ctx context.Context, req models.DifferenceRequest) (models.Difference, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(differenceEndpoint)
	if err != nil {
		return models.Difference{}, fmt.Errorf("get difference request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Difference{}, err
	}

	diff, err := DecodeDifference(resp.Body())
	if err != nil {
		return models.Difference{}, err
	}
	if err = h.validator.Validate(ctx, diff); err != nil {
		return models.Difference{}, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}

	h.logger.Debug().
		Str("func", "httpUpdatesAdapter.GetDifference").
		Int("pts", req.Pts).
		Stringer("kind", diff.Kind).
		Bool("final", diff.Final).
		Msg("difference received")
	return diff, nil
}

// GetChannelDifference POSTs the channel position to
// /api/updates/channel-difference.
func (h *httpUpdatesAdapter) GetChannelDifference(ctx context.Context, req models.ChannelDifferenceRequest) (models.ChannelDifference, error) {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post(channelDifferenceEndpoint)
	if err != nil {
		return models.ChannelDifference{}, fmt.Errorf("get channel difference request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ChannelDifference{}, err
	}

	diff, err := DecodeChannelDifference(resp.Body())
	if err != nil {
		return models.ChannelDifference{}, err
	}
	if err = h.validator.Validate(ctx, diff); err != nil {
		return models.ChannelDifference{}, fmt.Errorf("%w: %w", ErrInvalidResponse, err)
	}

	h.logger.Debug().
		Str("func", "httpUpdatesAdapter.GetChannelDifference").
		Int64("channel_id", req.ChannelID).
		Int("pts", req.Pts).
		Stringer("kind", diff.Kind).
		Msg("channel difference received")
	return diff, nil
}

func (h *httpUpdatesAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", utils.BearerHeader(token))
	}
	if sessionID, ok := utils.GetSessionIDFromContext(ctx); ok {
		req.SetHeader(SessionIDHeader, sessionID)
	}
	return req
}
