package fiberhelpers

import (
	_error "errors"
	"github.com/gofiber/fiber/v2"
	"klinechart/utils/fiberhelper/response"
	"klinechart/utils/log"
)

// DefaultErrorHandler : fiber.Error 는 해당 상태코드, 그 외는 500
func DefaultErrorHandler(ctx *fiber.Ctx, err error) error {
	var fiberError *fiber.Error
	if _error.As(err, &fiberError) {
		return ctx.Status(fiberError.Code).JSON(response.ErrorResponse{
			Code:    fiberError.Code,
			Message: fiberError.Message,
		})
	}
	log.Errorf("[WebServer] %s %s: %v", ctx.Method(), ctx.Path(), err)
	return ctx.Status(fiber.StatusInternalServerError).JSON(response.ErrorResponse{
		Code:    fiber.StatusInternalServerError,
		Message: "Internal Server Error",
	})
}
