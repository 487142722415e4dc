package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

type HealthHandler struct {
	PingDB func(ctx context.Context) error
	Redis  *redis.Client
}

func NewHealthHandler(pingDB func(ctx context.Context) error, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{PingDB: pingDB, Redis: rdb}
}

func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"service": "servicios-api",
	})
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"service": "servicios-api",
	})
}

// Ready checks the store (and the cache when configured).
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx := c.UserContext()

	dbOK := h.PingDB(ctx) == nil
	status := "ready"
	if !dbOK {
		status = "not ready"
	}

	resp := fiber.Map{
		"status":   status,
		"database": map[bool]string{true: "connected", false: "disconnected"}[dbOK],
		"service":  "servicios-api",
	}
	if h.Redis != nil {
		resp["cache"] = "connected"
		if err := h.Redis.Ping(ctx).Err(); err != nil {
			resp["cache"] = "disconnected"
		}
	}

	if !dbOK {
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}
