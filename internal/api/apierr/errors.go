package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/perkycoffee/perkyjump/internal/model"
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
	CodeInvalidRequest    = "INVALID_REQUEST"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodePlayerNotFound    = "PLAYER_NOT_FOUND"
	CodeSkinNotFound      = "SKIN_NOT_FOUND"
	CodeNotPurchasable    = "NOT_PURCHASABLE"
	CodeAlreadyOwned      = "ALREADY_OWNED"
	CodeInsufficientBeans = "INSUFFICIENT_BEANS"
	CodeNotOwned          = "NOT_OWNED"
	CodeStorageError      = "STORAGE_ERROR"
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

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors. Anything unrecognized is treated as an
	// infrastructure failure (safe for the caller to retry).
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidInput, "Invalid input"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrSkinNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeSkinNotFound, "Skin not found"}}
	case errors.Is(err, model.ErrSkinNotPurchasable):
		return &httpError{http.StatusConflict, APIError{CodeNotPurchasable, "The default skin cannot be purchased"}}
	case errors.Is(err, model.ErrSkinAlreadyOwned):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyOwned, "Skin is already owned"}}
	case errors.Is(err, model.ErrInsufficientBeans):
		return &httpError{http.StatusConflict, APIError{CodeInsufficientBeans, "Not enough beans"}}
	case errors.Is(err, model.ErrSkinNotOwned):
		return &httpError{http.StatusForbidden, APIError{CodeNotOwned, "Skin is not owned"}}
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeStorageError, "Storage failure, try again later"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeStorageError, "Internal server error"}}
}
