package adapter

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))

	var err error
	switch resp.StatusCode() {
	case http.StatusBadRequest:
		err = fmt.Errorf("%w: %s", ErrBadRequest, body)
	case http.StatusUnauthorized:
		err = fmt.Errorf("%w: %s", ErrUnauthorized, body)
	case http.StatusForbidden:
		err = fmt.Errorf("%w: %s", ErrForbidden, body)
	case http.StatusNotFound:
		err = fmt.Errorf("%w: %s", ErrNotFound, body)
	case http.StatusConflict:
		err = fmt.Errorf("%w: %s", ErrConflict, body)
	case http.StatusTooManyRequests:
		err = fmt.Errorf("%w: %s", ErrTooManyRequests, body)
	case http.StatusBadGateway:
		err = fmt.Errorf("%w: %s", ErrBadGateway, body)
	case http.StatusInternalServerError:
		err = fmt.Errorf("%w: %s", ErrInternalServerError, body)
	case http.StatusServiceUnavailable:
		err = fmt.Errorf("%w: %s", ErrServiceUnavailable, body)
	default:
		if body == "" {
			body = http.StatusText(resp.StatusCode())
		}
		err = fmt.Errorf("http %d: %s", resp.StatusCode(), body)
	}

	if delay := parseRetryAfter(resp.Header().Get("Retry-After")); delay > 0 {
		return &RetryAfterError{Err: err, Delay: delay}
	}
	return err
}

// parseRetryAfter accepts both delta-seconds and an HTTP date.
func parseRetryAfter(header string) time.Duration {
	header = strings.TrimSpace(header)
	if header == "" {
		return 0
	}
	if seconds, err := strconv.Atoi(header); err == nil && seconds >= 0 {
		return time.Duration(seconds) * time.Second
	}
	if ts, err := time.Parse(time.RFC1123, header); err == nil {
		if delta := time.Until(ts); delta > 0 {
			return delta
		}
	}
	return 0
}
