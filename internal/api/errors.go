package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Error is a backend-reported failure. Message is the sole signal propagated
// upward; Status is kept for logging but carries no meaning beyond that —
// the backend contract distinguishes failures only by message text.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// decodeError turns a non-2xx response into an *Error. The body is parsed as
// JSON for a "message" field; when that fails (or the field is empty) a
// generic message embedding the numeric status is substituted, so a bare 401
// still trips the auth-rejection detector below.
func decodeError(resp *http.Response) error {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Message == "" {
		body.Message = fmt.Sprintf("an unknown error occurred (status %d)", resp.StatusCode)
	}
	return &Error{Status: resp.StatusCode, Message: body.Message}
}

// authRejectionMarkers are the message fragments that identify an
// authentication rejection. The backend offers no structured error code,
// so detection is by message content.
var authRejectionMarkers = []string{"401", "Unauthorized", "Invalid token"}

// IsAuthRejection reports whether err indicates the backend rejected the
// session's bearer token. Any operation failing this way must have the same
// effect as an explicit logout.
func IsAuthRejection(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	for _, marker := range authRejectionMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
