package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/taskfixer/servicios-api/internal/apperr"
	"github.com/taskfixer/servicios-api/internal/authz"
	"github.com/taskfixer/servicios-api/internal/cache"
	"github.com/taskfixer/servicios-api/internal/middleware"
	"github.com/taskfixer/servicios-api/internal/models"
	"github.com/taskfixer/servicios-api/internal/services/catalog"
	"github.com/taskfixer/servicios-api/internal/storage"
)

type ProfessionHandler struct {
	Store   storage.ProfessionStore
	Cache   *cache.ProfessionCache
	deleter *catalog.SafeDeleter
}

func NewProfessionHandler(store storage.ProfessionStore, c *cache.ProfessionCache) *ProfessionHandler {
	return &ProfessionHandler{
		Store:   store,
		Cache:   c,
		deleter: &catalog.SafeDeleter{Store: store},
	}
}

type ProfessionReq struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Active   *bool  `json:"active"`
}

func (h *ProfessionHandler) Create(c *fiber.Ctx) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return apperr.Unauthorized("missing identity")
	}

	var req ProfessionReq
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid body")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return apperr.BadRequest("name is required")
	}

	ctx := c.UserContext()

	taken, err := h.Store.NameTaken(ctx, name, "")
	if err != nil {
		return err
	}
	if taken {
		return apperr.Conflict("profession already exists")
	}

	owner, err := storage.OID(ident.ID)
	if err != nil {
		return err
	}

	p := &models.Profession{
		Name:      name,
		Active:    true,
		Category:  strings.TrimSpace(req.Category),
		CreatedBy: owner,
	}
	if req.Active != nil {
		p.Active = *req.Active
	}

	p, err = h.Store.Insert(ctx, p)
	if err != nil {
		return err
	}
	h.Cache.Invalidate(ctx)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": p})
}

func (h *ProfessionHandler) List(c *fiber.Ctx) error {
	includeInactive := c.QueryBool("include_inactive", false)
	skip := int64(c.QueryInt("skip", 0))
	limit := int64(c.QueryInt("limit", 10000))

	out, err := h.Store.List(c.UserContext(), includeInactive, skip, limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": out})
}

func (h *ProfessionHandler) GetByID(c *fiber.Ctx) error {
	p, err := h.Store.FindByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": p})
}

// Update requires ownership or the admin flag. Existence is checked first so
// a missing record reads as 404, not 403.
func (h *ProfessionHandler) Update(c *fiber.Ctx) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return apperr.Unauthorized("missing identity")
	}

	var req ProfessionReq
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid body")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return apperr.BadRequest("name is required")
	}

	id := c.Params("id")
	ctx := c.UserContext()

	rec, err := h.Store.FindRecord(ctx, id)
	if err != nil {
		return err
	}
	if err := authz.CanMutate(rec.OwnerRef, ident); err != nil {
		return err
	}

	taken, err := h.Store.NameTaken(ctx, name, id)
	if err != nil {
		return err
	}
	if taken {
		return apperr.Conflict("another profession already has that name")
	}

	active := rec.Active
	if req.Active != nil {
		active = *req.Active
	}

	p, err := h.Store.Update(ctx, id, name, active)
	if err != nil {
		return err
	}
	h.Cache.Invalidate(ctx)

	return c.JSON(fiber.Map{"success": true, "data": p})
}

// Delete is the safe-delete endpoint: deactivates when services still
// reference the profession, removes permanently otherwise.
func (h *ProfessionHandler) Delete(c *fiber.Ctx) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return apperr.Unauthorized("missing identity")
	}

	ctx := c.UserContext()
	res, err := h.deleter.Delete(ctx, c.Params("id"), ident)
	if err != nil {
		return err
	}
	h.Cache.Invalidate(ctx)

	return c.JSON(res)
}

func (h *ProfessionHandler) WithServiceCount(c *fiber.Ctx) error {
	out, err := h.Store.ListWithServiceCount(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": out})
}

func (h *ProfessionHandler) Search(c *fiber.Ctx) error {
	term := c.Query("q")
	skip := int64(c.QueryInt("skip", 0))
	limit := int64(c.QueryInt("limit", 10))

	out, err := h.Store.Search(c.UserContext(), term, skip, limit)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": out})
}

// Usage reports how many service offerings reference one profession.
func (h *ProfessionHandler) Usage(c *fiber.Ctx) error {
	usage, err := h.Store.Usage(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": usage})
}
