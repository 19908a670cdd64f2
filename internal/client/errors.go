package client

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrDecode marks a response body that could not be decoded as JSON.
// Decode failures are surfaced immediately and never retried.
var ErrDecode = errors.New("undecodable response payload")

// APIError is a non-2xx answer from the booking API. The detail is
// taken from the backend's {"detail": ...} error body when present.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: HTTP %d: %s", e.StatusCode, e.Detail)
}

// IsClientError reports whether err is a 4xx answer: a request the
// backend rejected, as opposed to a backend that is failing.
func IsClientError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500
}

func errorDetail(statusCode int, body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}

	return fmt.Sprintf("HTTP %d Error", statusCode)
}
