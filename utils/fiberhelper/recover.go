package fiberhelpers

import (
	"fmt"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"klinechart/utils/log"
	"runtime/debug"
)

func NewRecover() fiber.Handler {
	return recover.New(
		recover.Config{
			StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
				log.WithField("stack_trace", string(debug.Stack())).
					Errorf("[PANIC] %s %s: %s", c.Method(), c.Path(), fmt.Sprintf("%v", e))
			},
			EnableStackTrace: true,
		},
	)
}
