package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/taskfixer/servicios-api/internal/apperr"
	"github.com/taskfixer/servicios-api/internal/authz"
	"github.com/taskfixer/servicios-api/internal/middleware"
	"github.com/taskfixer/servicios-api/internal/models"
	"github.com/taskfixer/servicios-api/internal/services/catalog"
	"github.com/taskfixer/servicios-api/internal/storage"
)

type ServiceOfferingHandler struct {
	Store       storage.ServiceOfferingStore
	Professions storage.ProfessionStore
	deleter     *catalog.SafeDeleter
}

func NewServiceOfferingHandler(store storage.ServiceOfferingStore, professions storage.ProfessionStore) *ServiceOfferingHandler {
	return &ServiceOfferingHandler{
		Store:       store,
		Professions: professions,
		deleter:     &catalog.SafeDeleter{Store: store},
	}
}

type ServiceOfferingReq struct {
	IDProfession      string  `json:"id_profession"`
	Description       string  `json:"description"`
	EstimatedPrice    float64 `json:"estimated_price"`
	EstimatedDuration string  `json:"estimated_duration"`
	Active            *bool   `json:"active"`
}

// requireActiveProfession enforces the write-time invariant: a service must
// reference a profession that exists and is active.
func (h *ServiceOfferingHandler) requireActiveProfession(c *fiber.Ctx, id string) error {
	ok, err := h.Professions.ExistsActive(c.UserContext(), id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.NotFound("profession not found or inactive")
	}
	return nil
}

func (h *ServiceOfferingHandler) List(c *fiber.Ctx) error {
	activeOnly := !c.QueryBool("include_inactive", false)
	out, err := h.Store.ListEnriched(c.UserContext(), activeOnly)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": out})
}

func (h *ServiceOfferingHandler) GetByID(c *fiber.Ctx) error {
	view, err := h.Store.GetEnriched(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": view})
}

func (h *ServiceOfferingHandler) Create(c *fiber.Ctx) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return apperr.Unauthorized("missing identity")
	}

	var req ServiceOfferingReq
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid body")
	}
	if strings.TrimSpace(req.Description) == "" {
		return apperr.BadRequest("description is required")
	}
	if req.EstimatedPrice <= 0 {
		return apperr.BadRequest("estimated_price must be greater than zero")
	}

	pid, err := storage.OID(req.IDProfession)
	if err != nil {
		return apperr.BadRequest("invalid id_profession")
	}
	if err := h.requireActiveProfession(c, req.IDProfession); err != nil {
		return err
	}

	owner, err := storage.OID(ident.ID)
	if err != nil {
		return err
	}

	so := &models.ServiceOffering{
		IDProfession:      pid,
		Description:       strings.TrimSpace(req.Description),
		EstimatedPrice:    req.EstimatedPrice,
		EstimatedDuration: strings.TrimSpace(req.EstimatedDuration),
		Active:            true,
		CreatedBy:         owner,
	}
	if req.Active != nil {
		so.Active = *req.Active
	}

	so, err = h.Store.Insert(c.UserContext(), so)
	if err != nil {
		return err
	}

	view, err := h.Store.GetEnriched(c.UserContext(), so.ID.Hex())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": view})
}

func (h *ServiceOfferingHandler) Update(c *fiber.Ctx) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return apperr.Unauthorized("missing identity")
	}

	var req ServiceOfferingReq
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid body")
	}

	pid, err := storage.OID(req.IDProfession)
	if err != nil {
		return apperr.BadRequest("invalid id_profession")
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
	if err := h.requireActiveProfession(c, req.IDProfession); err != nil {
		return err
	}

	active := rec.Active
	if req.Active != nil {
		active = *req.Active
	}

	so := &models.ServiceOffering{
		IDProfession:      pid,
		Description:       strings.TrimSpace(req.Description),
		EstimatedPrice:    req.EstimatedPrice,
		EstimatedDuration: strings.TrimSpace(req.EstimatedDuration),
		Active:            active,
	}
	if err := h.Store.Update(ctx, id, so); err != nil {
		return err
	}

	view, err := h.Store.GetEnriched(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": view})
}

// Delete safe-deletes a service offering; reservations referencing it keep
// it alive as a deactivated record.
func (h *ServiceOfferingHandler) Delete(c *fiber.Ctx) error {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		return apperr.Unauthorized("missing identity")
	}

	res, err := h.deleter.Delete(c.UserContext(), c.Params("id"), ident)
	if err != nil {
		return err
	}
	return c.JSON(res)
}
