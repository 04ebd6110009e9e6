package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the flat error payload the web client consumes
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is a success confirmation payload
type MessageResponse struct {
	Message string `json:"message"`
}

// NewBadRequestError creates a client error response
func NewBadRequestError(c echo.Context, detail string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: detail})
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return c.JSON(http.StatusNotFound, ErrorResponse{Error: detail})
}

// NewInternalError creates an internal error response. Internal detail is
// logged at the handler boundary, never sent to the caller.
func NewInternalError(c echo.Context, detail string) error {
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: detail})
}
