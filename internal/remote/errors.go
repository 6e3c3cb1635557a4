package remote

import (
	"fmt"
	"net/http"
)

// ErrorKind discriminates what went wrong at the API boundary, so callers
// never have to inspect raw status codes or response bodies.
type ErrorKind string

const (
	KindInvalidPayload ErrorKind = "invalid_payload"
	KindUnauthorized   ErrorKind = "unauthorized"
	KindForbidden      ErrorKind = "forbidden"
	KindNotFound       ErrorKind = "not_found"
	KindConflict       ErrorKind = "conflict"
	KindServer         ErrorKind = "server"
	KindUnknown        ErrorKind = "unknown"
	KindUnreachable    ErrorKind = "unreachable"
	KindBadResponse    ErrorKind = "bad_response"
)

// Error is the typed result of a failed call to the content API.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("content api: %s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("content api: %s", e.Kind)
}

func kindForStatus(status int) ErrorKind {
	switch status {
	case http.StatusBadRequest:
		return KindInvalidPayload
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusConflict:
		return KindConflict
	}
	if status >= 500 {
		return KindServer
	}
	return KindUnknown
}

// KindOf extracts the error kind, treating any non-API error as unreachable.
func KindOf(err error) ErrorKind {
	if apiErr, ok := err.(*Error); ok {
		return apiErr.Kind
	}
	return KindUnreachable
}
