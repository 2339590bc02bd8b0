package aip

import (
	"encoding/json"
	"errors"
	"fmt"
)

// APIError is a failure reported by the platform itself, as opposed to a
// transport failure reaching it.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// newAPIError builds an APIError from a non-2xx response body. The platform
// reports errors as {"error": "..."} or {"detail": "..."}; anything else
// falls back to the status code.
func newAPIError(status int, body []byte) *APIError {
	var payload struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	msg := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			msg = payload.Error
		} else if payload.Detail != "" {
			msg = payload.Detail
		}
	}
	if msg == "" {
		msg = fmt.Sprintf("platform returned status %d", status)
	}
	return &APIError{Status: status, Message: msg}
}

// asAPIError reports whether err carries an APIError, storing it in target.
func asAPIError(err error, target **APIError) bool {
	return errors.As(err, target)
}

// IsStatus reports whether err is a platform error with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}
