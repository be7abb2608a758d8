package sdk

import (
	"errors"
	"fmt"
)

// ErrorType classifies an error returned by the game server.
type ErrorType string

const (
	ErrorTypeValidation  ErrorType = "validation"
	ErrorTypeNotFound    ErrorType = "not_found"
	ErrorTypeInvalidPlay ErrorType = "invalid_play"
	ErrorTypeInternal    ErrorType = "internal"
	ErrorTypeUnknown     ErrorType = "unknown"
)

// APIError is an error response from the gouji API.
type APIError struct {
	Type    ErrorType      `json:"type"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
	Status  int            `json:"-"`
}

func (e *APIError) Error() string {
	if e.Details != nil {
		return fmt.Sprintf("%s: %s (details: %v)", e.Type, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// AsAPIError attempts to extract an APIError from an error chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	ok := errors.As(err, &apiErr)
	return apiErr, ok
}

func IsValidation(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Type == ErrorTypeValidation
}

func IsNotFound(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Type == ErrorTypeNotFound
}

// IsInvalidPlay reports whether the server rejected a play, either
// because the cards cannot beat the trick or because it was not the
// player's turn.
func IsInvalidPlay(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Type == ErrorTypeInvalidPlay
}

func IsInternal(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Type == ErrorTypeInternal
}
