package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrUnauthorized matches every *AuthError through errors.Is.
var ErrUnauthorized = errors.New("unauthorized")

// RequestError is returned for any non-success response that is not an
// authentication failure.
type RequestError struct {
	// Status is the HTTP status code of the response.
	Status int
	// Message is the server-provided detail, or a generic text when the body had none.
	Message string
	// Method and Path identify the failed call.
	Method string
	Path   string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
}

// AuthError is returned for 401 and 403 responses: invalid credentials,
// expired or invalid token, or insufficient role.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("auth: %d %s", e.Status, e.Message)
}

// Is lets callers test errors.Is(err, ErrUnauthorized).
func (e *AuthError) Is(target error) bool {
	return target == ErrUnauthorized
}

// Forbidden reports whether the server rejected the role rather than the token.
func (e *AuthError) Forbidden() bool {
	return e.Status == http.StatusForbidden
}

// Message extracts the user-visible text from err. Server-provided details
// win; anything else yields fallback.
func Message(err error, fallback string) string {
	var authErr *AuthError
	if errors.As(err, &authErr) && authErr.Message != "" {
		return authErr.Message
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) && reqErr.Message != "" {
		return reqErr.Message
	}
	return fallback
}

// errorFromResponse converts a non-2xx response body into a typed error.
func errorFromResponse(method, path string, status int, body []byte) error {
	msg := detailFromBody(body)
	if msg == "" {
		msg = strings.ToLower(http.StatusText(status))
		if msg == "" {
			msg = "request failed"
		}
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return &AuthError{Status: status, Message: msg}
	}
	return &RequestError{Status: status, Message: msg, Method: method, Path: path}
}

// detailFromBody understands the error shapes the API and its proxies emit:
//
//	{"detail": "text"}
//	{"detail": [{"msg": "text"}, ...]}
//	{"error": {"message": "text"}}
//	{"message": "text"}
//	plain text
func detailFromBody(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}

	var envelope struct {
		Detail  json.RawMessage `json:"detail"`
		Message string          `json:"message"`
		Error   *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "<") {
			return ""
		}
		return trimmed
	}

	if len(envelope.Detail) > 0 {
		var s string
		if err := json.Unmarshal(envelope.Detail, &s); err == nil {
			return s
		}
		var items []struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(envelope.Detail, &items); err == nil {
			msgs := make([]string, 0, len(items))
			for _, it := range items {
				if it.Msg != "" {
					msgs = append(msgs, it.Msg)
				}
			}
			return strings.Join(msgs, "; ")
		}
	}
	if envelope.Error != nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	return envelope.Message
}
