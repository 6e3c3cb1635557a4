package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Ianrury/articel/internal/remote"
)

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// apiErrorMessages are the fixed user-facing texts per failure kind, used
// when the API did not send its own message.
var apiErrorMessages = map[remote.ErrorKind]string{
	remote.KindInvalidPayload: "Invalid data",
	remote.KindUnauthorized:   "You are not authorized to perform this operation",
	remote.KindForbidden:      "Access denied",
	remote.KindNotFound:       "Not found",
	remote.KindConflict:       "Name already in use",
	remote.KindServer:         "Server error",
	remote.KindUnknown:        "An unknown error occurred",
	remote.KindUnreachable:    "Content service unreachable",
	remote.KindBadResponse:    "Content service sent an unexpected response",
}

var apiErrorStatus = map[remote.ErrorKind]int{
	remote.KindInvalidPayload: http.StatusBadRequest,
	remote.KindUnauthorized:   http.StatusUnauthorized,
	remote.KindForbidden:      http.StatusForbidden,
	remote.KindNotFound:       http.StatusNotFound,
	remote.KindConflict:       http.StatusConflict,
	remote.KindServer:         http.StatusBadGateway,
	remote.KindUnknown:        http.StatusBadGateway,
	remote.KindUnreachable:    http.StatusBadGateway,
	remote.KindBadResponse:    http.StatusBadGateway,
}

// writeAPIError maps a failed remote call onto the console's error contract:
// the API's own message when it sent one, a fixed text per kind otherwise.
func writeAPIError(w http.ResponseWriter, err error) {
	var apiErr *remote.Error
	if !errors.As(err, &apiErr) {
		writeError(w, apiErrorMessages[remote.KindUnreachable], http.StatusBadGateway)
		return
	}

	message := apiErr.Message
	if message == "" {
		message = apiErrorMessages[apiErr.Kind]
	}

	status, ok := apiErrorStatus[apiErr.Kind]
	if !ok {
		status = http.StatusBadGateway
	}

	writeError(w, message, status)
}
