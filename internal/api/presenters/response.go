package presenters

import (
	"Pantry-API/domain"

	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data any, status int, message string) error {
	return c.Status(status).JSON(Response{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	res := Response{
		Status:  "error",
		Message: message,
	}
	if err != nil {
		res.Error = err.Error()
	}
	return c.Status(status).JSON(res)
}

// NotFoundResponse renders the detailed envelope used for missing resources:
// status code, reason phrase, domain message and the request path.
func NotFoundResponse(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusNotFound).JSON(domain.ErrorDetail{
		Status:  fiber.StatusNotFound,
		Error:   "Not Found",
		Message: err.Error(),
		Path:    c.Path(),
	})
}
