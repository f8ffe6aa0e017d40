package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Envelope wraps every API response. Exactly one of Error and Data is set.
type Envelope struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

// Failure builds the error envelope.
func Failure(msg string) Envelope {
	return Envelope{Status: statusError, Error: msg}
}

func respond(c echo.Context, code int, data any) error {
	return c.JSON(code, Envelope{Status: statusSuccess, Data: data})
}

func ok(c echo.Context, data any) error {
	return respond(c, http.StatusOK, data)
}

func created(c echo.Context, data any) error {
	return respond(c, http.StatusCreated, data)
}

func badPayload() error {
	return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
}
