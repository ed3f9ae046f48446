package response

import (
	"github.com/gofiber/fiber/v2"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type Ext struct {
	*fiber.Ctx
}

// Ok : 성공(200) 응답
func (ext Ext) Ok(data interface{}) error {
	return ext.Status(fiber.StatusOK).JSON(data)
}

// Error : 에러 응답
// - status: HTTP StatusCode (0 이면 400)
func (ext Ext) Error(err error, status int) error {
	if status == 0 {
		status = fiber.StatusBadRequest
	}
	return ext.Status(status).JSON(ErrorResponse{
		Code:    status,
		Message: err.Error(),
	})
}

// Unavailable : 아직 준비되지 않은 리소스 (503)
func (ext Ext) Unavailable(err error) error {
	return ext.Error(err, fiber.StatusServiceUnavailable)
}
