package apierr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/pocketarcade/pocketarcade/internal/codec"
	"github.com/pocketarcade/pocketarcade/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeUnknownGame    = "UNKNOWN_GAME"
	CodeUnknownAction  = "UNKNOWN_ACTION"
	CodeNoGameData     = "NO_GAME_DATA"
	CodeCorruptState   = "CORRUPT_STATE"
	CodeMissingOption  = "MISSING_OPTION"
	CodeInvalidFilter  = "INVALID_FILTER"
	CodeUserNotFound   = "USER_NOT_FOUND"
	CodeNotAllowed     = "NOT_ALLOWED"
	CodeInternalError  = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError. Gameplay rejections
// normally become ephemeral replies before reaching this layer; the
// mappings here cover the structural errors that do propagate.
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	var decodeErr *codec.DecodeError
	if errors.As(err, &decodeErr) {
		return &httpError{http.StatusBadRequest, APIError{CodeCorruptState, "Embedded game state is corrupt"}}
	}

	var actionErr *model.UnknownActionError
	if errors.As(err, &actionErr) {
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownAction, fmt.Sprintf("Unknown control id %q", actionErr.ID)}}
	}

	switch {
	case errors.Is(err, model.ErrUnknownGame):
		return &httpError{http.StatusNotFound, APIError{CodeUnknownGame, "Unknown game"}}
	case errors.Is(err, model.ErrUnknownAction):
		return &httpError{http.StatusBadRequest, APIError{CodeUnknownAction, "Unknown control id"}}
	case errors.Is(err, model.ErrNoGameData):
		return &httpError{http.StatusBadRequest, APIError{CodeNoGameData, "Message carries no game state"}}
	case errors.Is(err, model.ErrMissingOption):
		return &httpError{http.StatusBadRequest, APIError{CodeMissingOption, "Required command option missing"}}
	case errors.Is(err, model.ErrBadFilter):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidFilter, "Invalid leaderboard filter"}}
	case errors.Is(err, model.ErrUserNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeUserNotFound, "User not found"}}
	case errors.Is(err, model.ErrActionNotAllowed):
		return &httpError{http.StatusForbidden, APIError{CodeNotAllowed, "Action not allowed"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
