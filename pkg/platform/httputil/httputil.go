package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	dErrors "petclinic/pkg/domain-errors"
	"petclinic/pkg/platform/sentinel"
)

// ErrorResponse is the JSON envelope written for every failed request.
type ErrorResponse struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

// WriteJSON encodes v with the given status. Encoding failures after the header
// is written cannot be reported to the client and are dropped.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates err into an HTTP status and JSON envelope.
// Coded domain errors win over sentinel facts; anything unrecognised is a 500
// and its message is never exposed.
func WriteError(w http.ResponseWriter, err error) {
	code := CodeFor(err)
	resp := ErrorResponse{Error: string(code)}
	if code != dErrors.CodeInternal {
		resp.Description = describe(err)
	}
	WriteJSON(w, dErrors.ToHTTPStatus(code), resp)
}

// CodeFor resolves the domain code for err.
func CodeFor(err error) dErrors.Code {
	if de, ok := dErrors.As(err); ok {
		return de.Code
	}
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.CodeNotFound
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.CodeConflict
	case errors.Is(err, sentinel.ErrUnavailable):
		return dErrors.CodeUnavailable
	case errors.Is(err, sentinel.ErrInvalidState):
		return dErrors.CodeConflict
	case errors.Is(err, context.DeadlineExceeded):
		return dErrors.CodeTimeout
	default:
		return dErrors.CodeInternal
	}
}

func describe(err error) string {
	if de, ok := dErrors.As(err); ok {
		return de.Message
	}
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return "record not found"
	case errors.Is(err, sentinel.ErrConflict):
		return "record rejected by storage"
	case errors.Is(err, sentinel.ErrUnavailable):
		return "storage temporarily unavailable"
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	}
	return ""
}
