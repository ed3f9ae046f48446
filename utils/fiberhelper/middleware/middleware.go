package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

// LogMiddleware : 요청 로그. skipPath 는 기록하지 않음 (폴링되는 이미지 경로 등)
func LogMiddleware(skipPath ...string) fiber.Handler {
	return logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "${time} | ${status} | ${latency} | ${method} | ${path} | Query: ${queryParams}\n",
		Next: func(c *fiber.Ctx) bool {
			// Skip the middleware if the request path
			for _, p := range skipPath {
				if c.Path() == p {
					return true
				}
			}
			return false
		},
	})
}
