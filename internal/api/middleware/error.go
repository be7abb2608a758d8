package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/gouji-dev/gouji/pkg/utils"
)

// ErrorResponse is the standard error envelope for all API errors.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the machine readable error code along with a
// human readable message.
type ErrorDetail struct {
	Code      string         `json:"code"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
	RequestID string         `json:"request_id,omitempty"`
}

func SendError(w http.ResponseWriter, r *http.Request, err error, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	var errorResponse ErrorResponse

	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		errorResponse = ErrorResponse{
			Error: ErrorDetail{
				Code:      appErr.Code,
				Message:   appErr.Message,
				Details:   appErr.Details,
				Timestamp: time.Now().UTC(),
				RequestID: getRequestID(r),
			},
		}
	} else {
		errorResponse = ErrorResponse{
			Error: ErrorDetail{
				Code:      utils.CodeInternal,
				Message:   err.Error(),
				Timestamp: time.Now().UTC(),
				RequestID: getRequestID(r),
			},
		}
	}

	json.NewEncoder(w).Encode(errorResponse)
}

func SendValidationError(w http.ResponseWriter, r *http.Request, message string, details map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)

	errorResponse := ErrorResponse{
		Error: ErrorDetail{
			Code:      utils.CodeValidation,
			Message:   message,
			Details:   details,
			Timestamp: time.Now().UTC(),
			RequestID: getRequestID(r),
		},
	}

	json.NewEncoder(w).Encode(errorResponse)
}

func SendNotFoundError(w http.ResponseWriter, r *http.Request, resource string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)

	errorResponse := ErrorResponse{
		Error: ErrorDetail{
			Code:      utils.CodeNotFound,
			Message:   fmt.Sprintf("%s not found", resource),
			Timestamp: time.Now().UTC(),
			RequestID: getRequestID(r),
		},
	}

	json.NewEncoder(w).Encode(errorResponse)
}

func SendInternalError(w http.ResponseWriter, r *http.Request, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)

	errorResponse := ErrorResponse{
		Error: ErrorDetail{
			Code:      utils.CodeInternal,
			Message:   message,
			Timestamp: time.Now().UTC(),
			RequestID: getRequestID(r),
		},
	}

	json.NewEncoder(w).Encode(errorResponse)
}

func getRequestID(r *http.Request) string {
	if requestID := chiMiddleware.GetReqID(r.Context()); requestID != "" {
		return requestID
	}
	return r.Header.Get("X-Request-ID")
}

// HTTPErrorFromAppError maps application error codes to HTTP status
// codes. Unknown errors default to 500.
func HTTPErrorFromAppError(err error) int {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		switch appErr.Code {
		case utils.CodeNotFound:
			return http.StatusNotFound
		case utils.CodeAlreadyExists:
			return http.StatusConflict
		case utils.CodeInvalidInput, utils.CodeValidation:
			return http.StatusBadRequest
		case utils.CodeInvalidPlay, utils.CodeNotYourTurn, utils.CodeGameOver:
			return http.StatusUnprocessableEntity
		case utils.CodeTimeout:
			return http.StatusRequestTimeout
		default:
			return http.StatusInternalServerError
		}
	}

	if utils.IsNotFound(err) {
		return http.StatusNotFound
	}
	if utils.IsValidation(err) {
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}
