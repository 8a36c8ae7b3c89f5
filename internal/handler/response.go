package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// APIResponse describes the standard envelope returned by the API.
type APIResponse struct {
	Status  string        `json:"status"`
	Message string        `json:"message,omitempty"`
	Data    any           `json:"data,omitempty"`
	Meta    *ResponseMeta `json:"meta,omitempty"`
}

// ResponseMeta accompanies list responses.
type ResponseMeta struct {
	Count int `json:"count"`
}

// Success sends a successful response using the shared envelope format.
func Success(c echo.Context, status int, message string, data any) error {
	if status == 0 {
		status = http.StatusOK
	}
	return c.JSON(status, APIResponse{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// List sends a 200 envelope whose data is always a JSON array, never null.
func List[T any](c echo.Context, message string, items []T) error {
	if items == nil {
		items = []T{}
	}
	return c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Message: message,
		Data:    items,
		Meta:    &ResponseMeta{Count: len(items)},
	})
}

// Error sends an error response using the shared envelope format.
func Error(c echo.Context, status int, message string) error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	return c.JSON(status, APIResponse{
		Status:  "error",
		Message: message,
	})
}
