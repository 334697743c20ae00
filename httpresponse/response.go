package httpresponse

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type successResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// ApplySuccessToResponse writes the standard success envelope.
func ApplySuccessToResponse(c *fiber.Ctx, data any) error {
	return c.JSON(successResponse{Success: true, Data: data})
}

// ApplyErrorToResponse logs the underlying error and writes the standard
// error envelope with a 500 status.
func ApplyErrorToResponse(c *fiber.Ctx, message string, err error) error {
	if err != nil {
		log.Error(fmt.Sprintf("%s: %v", message, err))
	}
	return c.Status(fiber.StatusInternalServerError).JSON(errorResponse{
		Success: false,
		Error:   message,
	})
}

// ApplyBadRequestToResponse writes the error envelope with a 400 status
// for caller mistakes.
func ApplyBadRequestToResponse(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(errorResponse{
		Success: false,
		Error:   message,
	})
}

// ApplyConflictToResponse writes the error envelope with a 409 status,
// used when a concurrent merge holds the lock for the same act.
func ApplyConflictToResponse(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusConflict).JSON(errorResponse{
		Success: false,
		Error:   message,
	})
}
