package utils

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidPlay   = errors.New("invalid play")
	ErrNotYourTurn   = errors.New("not this player's turn")
	ErrGameOver      = errors.New("game is over")
	ErrInternal      = errors.New("internal error")
	ErrTimeout       = errors.New("operation timeout")
	ErrValidation    = errors.New("validation failed")
)

const (
	CodeNotFound      = "NOT_FOUND"
	CodeAlreadyExists = "ALREADY_EXISTS"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeInvalidPlay   = "INVALID_PLAY"
	CodeNotYourTurn   = "NOT_YOUR_TURN"
	CodeGameOver      = "GAME_OVER"
	CodeInternal      = "INTERNAL_ERROR"
	CodeTimeout       = "TIMEOUT"
	CodeValidation    = "VALIDATION_ERROR"
)

type AppError struct {
	Code    string
	Message string
	Err     error
	Details map[string]interface{}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(code, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
		Details: make(map[string]interface{}),
	}
}

func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Details = details
	return e
}

func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.Is(err, ErrNotFound) ||
		(err != nil && errors.As(err, &appErr) && appErr.Code == CodeNotFound)
}

func IsInvalidPlay(err error) bool {
	var appErr *AppError
	return errors.Is(err, ErrInvalidPlay) ||
		(err != nil && errors.As(err, &appErr) && appErr.Code == CodeInvalidPlay)
}

func IsNotYourTurn(err error) bool {
	var appErr *AppError
	return errors.Is(err, ErrNotYourTurn) ||
		(err != nil && errors.As(err, &appErr) && appErr.Code == CodeNotYourTurn)
}

func IsGameOver(err error) bool {
	var appErr *AppError
	return errors.Is(err, ErrGameOver) ||
		(err != nil && errors.As(err, &appErr) && appErr.Code == CodeGameOver)
}

func IsValidation(err error) bool {
	var appErr *AppError
	return errors.Is(err, ErrValidation) ||
		(err != nil && errors.As(err, &appErr) && appErr.Code == CodeValidation)
}

func WrapError(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
