// Package respond writes the JSON envelope shared by every API endpoint:
// {success, data?, error?, message?}. Failures are mapped to a status code and a
// client-safe message; internal details only reach the (sanitized) log.
package respond

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"newsproxy/internal/domain/entity"
	"newsproxy/internal/infra/gnews"
	"newsproxy/internal/observability/logging"
)

// Client-facing error messages.
const (
	MsgFetchFailed    = "Failed to fetch news from GNews API"
	MsgInternal       = "Internal server error"
	MsgNotFound       = "Endpoint not found"
	MsgRequestTimeout = "Request timeout"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// headers are already sent
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Success writes a 200 envelope carrying data and an optional message.
func Success(w http.ResponseWriter, data any, message string) {
	JSON(w, http.StatusOK, Envelope{Success: true, Data: data, Message: message})
}

// Error writes a failure envelope with the given status code and message.
func Error(w http.ResponseWriter, code int, msg string) {
	JSON(w, code, Envelope{Success: false, Error: msg})
}

// Fail maps err to a failure envelope:
//   - *entity.ValidationError: 400 with its Message
//   - gnews.ErrFetchFailed: 500 with a fixed upstream message
//   - anything else: 500 "Internal server error"
//
// 500s are logged with API tokens masked.
func Fail(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	var vErr *entity.ValidationError
	if errors.As(err, &vErr) {
		Error(w, http.StatusBadRequest, vErr.Message)
		return
	}

	msg := MsgInternal
	if errors.Is(err, gnews.ErrFetchFailed) {
		msg = MsgFetchFailed
	}

	logging.FromContext(r.Context()).Error("request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("error", logging.SanitizeError(err)))
	Error(w, http.StatusInternalServerError, msg)
}

// NotFound writes the 404 envelope for an unknown endpoint.
func NotFound(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusNotFound, Envelope{
		Success: false,
		Error:   MsgNotFound,
		Message: fmt.Sprintf("The endpoint %s %s does not exist", r.Method, r.URL.RequestURI()),
	})
}
