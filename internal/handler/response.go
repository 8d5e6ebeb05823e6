package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"urlboard/internal/service"
)

type errorResponse struct {
	Error string `json:"error"`
}

// writeServiceError maps service sentinel errors onto HTTP statuses. The
// allow-list rejection keeps its verbatim message so clients can surface it
// directly.
func writeServiceError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrKeyNotAllowed):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: service.ErrKeyNotAllowed.Error()})
	case errors.Is(err, service.ErrInvalid):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: "resource not found"})
	case errors.Is(err, service.ErrConflict):
		return c.JSON(http.StatusConflict, errorResponse{Error: "conflict"})
	case errors.Is(err, service.ErrStoreUnreachable):
		return c.JSON(http.StatusBadGateway, errorResponse{Error: "store unreachable"})
	default:
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func writeError(c echo.Context, status int, message string) error {
	return c.JSON(status, errorResponse{Error: message})
}
