package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// HTTPError carries status/body for non-2xx responses.
// Message is the server-provided "message" field, when the body had one.
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Header     http.Header
	Body       []byte
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error: %s %s status=%d body=%s", e.Method, e.URL, e.StatusCode, snippet(e.Body, 900))
}

func snippet(b []byte, max int) string {
	s := strings.TrimSpace(string(b))
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}

func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return strings.TrimSpace(payload.Message)
}

// Message returns the server's message from err's chain, or fallback.
func Message(err error, fallback string) string {
	var herr *HTTPError
	if errors.As(err, &herr) && herr.Message != "" {
		return herr.Message
	}
	return fallback
}

// StatusCode returns the HTTP status from err's chain, or 0 when no response arrived.
func StatusCode(err error) int {
	var herr *HTTPError
	if errors.As(err, &herr) {
		return herr.StatusCode
	}
	return 0
}

// IsTransport reports whether err means no response was received at all.
func IsTransport(err error) bool {
	if err == nil {
		return false
	}
	var uerr *url.Error
	return errors.As(err, &uerr)
}

// IsNotFound reports a 404 from the server.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}
