package handler

import "github.com/labstack/echo/v4"

// apiResponse is the success envelope shared by all endpoints: a success
// flag, a human message and the payload.
type apiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func respond(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, apiResponse{
		Success: status < 400,
		Message: message,
		Data:    data,
	})
}
