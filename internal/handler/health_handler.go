package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const readinessTimeout = 2 * time.Second

// RegisterHealthRoutes mounts liveness and readiness probes. rdb may be nil
// when sessions are kept in process.
func RegisterHealthRoutes(app fiber.Router, rdb *redis.Client) {
	app.Get("/livez", LivezHandler())
	app.Get("/readyz", ReadyzHandler(rdb))
}

func LivezHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "ok",
		})
	}
}

func ReadyzHandler(rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rdb == nil {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"status": "ready",
				"checks": fiber.Map{
					"sessionStore": "memory",
				},
			})
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), readinessTimeout)
		defer cancel()

		status := "ready"
		statusCode := fiber.StatusOK
		redisStatus := "ok"
		if err := rdb.Ping(ctx).Err(); err != nil {
			status = "not_ready"
			statusCode = fiber.StatusServiceUnavailable
			redisStatus = "down"
		}

		return c.Status(statusCode).JSON(fiber.Map{
			"status": status,
			"checks": fiber.Map{
				"sessionStore": "redis",
				"redis":        redisStatus,
			},
		})
	}
}
