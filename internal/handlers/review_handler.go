package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/taskfixer/servicios-api/internal/apperr"
	"github.com/taskfixer/servicios-api/internal/models"
	"github.com/taskfixer/servicios-api/internal/storage"
)

type ReviewHandler struct {
	Store    storage.ReviewStore
	Services storage.ServiceOfferingStore
}

func NewReviewHandler(store storage.ReviewStore, services storage.ServiceOfferingStore) *ReviewHandler {
	return &ReviewHandler{Store: store, Services: services}
}

type ReviewReq struct {
	IDUser            string  `json:"id_user"`
	IDServiceOffering string  `json:"id_service_offering"`
	Opinion           string  `json:"opinion"`
	Rating            float64 `json:"rating"`
}

func (h *ReviewHandler) parse(c *fiber.Ctx) (*models.Review, error) {
	var req ReviewReq
	if err := c.BodyParser(&req); err != nil {
		return nil, apperr.BadRequest("invalid body")
	}

	uid, err := storage.OID(req.IDUser)
	if err != nil {
		return nil, apperr.BadRequest("invalid id_user")
	}
	sid, err := storage.OID(req.IDServiceOffering)
	if err != nil {
		return nil, apperr.BadRequest("invalid id_service_offering")
	}
	if req.Rating < 0 || req.Rating > 5 {
		return nil, apperr.BadRequest("rating must be between 0 and 5")
	}

	return &models.Review{
		IDUser:            uid,
		IDServiceOffering: sid,
		Opinion:           strings.TrimSpace(req.Opinion),
		Rating:            req.Rating,
	}, nil
}

func (h *ReviewHandler) Create(c *fiber.Ctx) error {
	r, err := h.parse(c)
	if err != nil {
		return err
	}

	ctx := c.UserContext()

	exists, err := h.Services.Exists(ctx, r.IDServiceOffering.Hex())
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("service does not exist")
	}

	r, err = h.Store.Insert(ctx, r)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": r})
}

func (h *ReviewHandler) List(c *fiber.Ctx) error {
	out, err := h.Store.FindAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": out})
}

func (h *ReviewHandler) GetByID(c *fiber.Ctx) error {
	r, err := h.Store.FindByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": r})
}

func (h *ReviewHandler) Update(c *fiber.Ctx) error {
	r, err := h.parse(c)
	if err != nil {
		return err
	}
	updated, err := h.Store.Update(c.UserContext(), c.Params("id"), r)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": updated})
}

func (h *ReviewHandler) Delete(c *fiber.Ctx) error {
	if err := h.Store.Remove(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "review deleted"})
}

// Stats returns average rating and review count per service offering.
func (h *ReviewHandler) Stats(c *fiber.Ctx) error {
	out, err := h.Store.StatsByService(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": out})
}
