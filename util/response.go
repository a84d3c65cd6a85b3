package util

import (
	"errors"
	"net/http"
)

// ApiError is the error every service returns for an expected failure.
// The global error handler renders it as the response body.
type ApiError struct {
	Status  int      `json:"status"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
	Success bool     `json:"success"`
}

func (e *ApiError) Error() string {
	return e.Message
}

func NewApiError(status int, message string, details ...string) *ApiError {
	if message == "" {
		message = http.StatusText(status)
	}
	return &ApiError{
		Status:  status,
		Message: message,
		Errors:  details,
		Success: false,
	}
}

// AsApiError converts any error into an ApiError. Errors that are not
// ApiErrors become a 500 with a generic message.
func AsApiError(err error) *ApiError {
	var apiErr *ApiError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return NewApiError(http.StatusInternalServerError, INTERNAL_SERVER_ERROR)
}

type ApiResponse struct {
	Status  int         `json:"status"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
	Success bool        `json:"success"`
}

func SuccessResponse(status int, data interface{}, message string) ApiResponse {
	if message == "" {
		message = "Success"
	}
	return ApiResponse{
		Status:  status,
		Data:    data,
		Message: message,
		Success: status < http.StatusBadRequest,
	}
}

func FailedResponse(err error) *ApiError {
	return AsApiError(err)
}
