package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taskfixer/servicios-api/internal/cache"
	"github.com/taskfixer/servicios-api/internal/models"
	"github.com/taskfixer/servicios-api/internal/storage"
)

// PublicHandler serves the unauthenticated read surface.
type PublicHandler struct {
	Store storage.ProfessionStore
	Cache *cache.ProfessionCache
}

func NewPublicHandler(store storage.ProfessionStore, c *cache.ProfessionCache) *PublicHandler {
	return &PublicHandler{Store: store, Cache: c}
}

// Professions lists professions by partial name and/or exact category.
// Results are cached briefly; a cache miss or error falls through to the
// store.
func (h *PublicHandler) Professions(c *fiber.Ctx) error {
	name := c.Query("name")
	category := c.Query("category")
	ctx := c.UserContext()

	key := cache.Key(name, category)
	cached := []models.Profession{}
	if h.Cache.Get(ctx, key, &cached) {
		return c.JSON(fiber.Map{"success": true, "data": cached})
	}

	out, err := h.Store.PublicList(ctx, name, category)
	if err != nil {
		return err
	}
	h.Cache.Set(ctx, key, out)

	return c.JSON(fiber.Map{"success": true, "data": out})
}
