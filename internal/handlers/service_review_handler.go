package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taskfixer/servicios-api/internal/apperr"
	"github.com/taskfixer/servicios-api/internal/models"
	"github.com/taskfixer/servicios-api/internal/storage"
)

type ServiceReviewHandler struct {
	Store storage.ServiceReviewStore
}

func NewServiceReviewHandler(store storage.ServiceReviewStore) *ServiceReviewHandler {
	return &ServiceReviewHandler{Store: store}
}

type ServiceReviewReq struct {
	IDService     string `json:"id_service"`
	IDReservation string `json:"id_reservation"`
	IDReview      string `json:"id_review"`
	Calification  string `json:"calification"`
}

func (h *ServiceReviewHandler) Create(c *fiber.Ctx) error {
	var req ServiceReviewReq
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid body")
	}

	sid, err := storage.OID(req.IDService)
	if err != nil {
		return apperr.BadRequest("invalid id_service")
	}
	rid, err := storage.OID(req.IDReservation)
	if err != nil {
		return apperr.BadRequest("invalid id_reservation")
	}
	vid, err := storage.OID(req.IDReview)
	if err != nil {
		return apperr.BadRequest("invalid id_review")
	}

	sr := &models.ServiceReview{
		IDService:     sid,
		IDReservation: rid,
		IDReview:      vid,
		Calification:  req.Calification,
	}
	sr, err = h.Store.Insert(c.UserContext(), sr)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": sr})
}

func (h *ServiceReviewHandler) List(c *fiber.Ctx) error {
	out, err := h.Store.FindAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": out})
}

func (h *ServiceReviewHandler) GetByID(c *fiber.Ctx) error {
	sr, err := h.Store.FindByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": sr})
}

func (h *ServiceReviewHandler) Delete(c *fiber.Ctx) error {
	if err := h.Store.Remove(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "service review deleted"})
}
