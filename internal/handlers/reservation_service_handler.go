package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taskfixer/servicios-api/internal/apperr"
	"github.com/taskfixer/servicios-api/internal/models"
	"github.com/taskfixer/servicios-api/internal/storage"
)

type ReservationServiceHandler struct {
	Store storage.ReservationServiceStore
}

func NewReservationServiceHandler(store storage.ReservationServiceStore) *ReservationServiceHandler {
	return &ReservationServiceHandler{Store: store}
}

type ReservationServiceReq struct {
	IDReservation     string `json:"id_reservation"`
	IDServiceOffering string `json:"id_service_offering"`
	Quantity          int    `json:"quantity"`
	Notes             string `json:"notes"`
}

func (h *ReservationServiceHandler) parse(c *fiber.Ctx) (*models.ReservationService, error) {
	var req ReservationServiceReq
	if err := c.BodyParser(&req); err != nil {
		return nil, apperr.BadRequest("invalid body")
	}

	rid, err := storage.OID(req.IDReservation)
	if err != nil {
		return nil, apperr.BadRequest("invalid id_reservation")
	}
	sid, err := storage.OID(req.IDServiceOffering)
	if err != nil {
		return nil, apperr.BadRequest("invalid id_service_offering")
	}
	if req.Quantity <= 0 {
		return nil, apperr.BadRequest("quantity must be greater than zero")
	}

	return &models.ReservationService{
		IDReservation:     rid,
		IDServiceOffering: sid,
		Quantity:          req.Quantity,
		Notes:             req.Notes,
	}, nil
}

func (h *ReservationServiceHandler) Create(c *fiber.Ctx) error {
	rs, err := h.parse(c)
	if err != nil {
		return err
	}
	rs, err = h.Store.Insert(c.UserContext(), rs)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": rs})
}

func (h *ReservationServiceHandler) List(c *fiber.Ctx) error {
	out, err := h.Store.FindAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": out})
}

func (h *ReservationServiceHandler) GetByID(c *fiber.Ctx) error {
	rs, err := h.Store.FindByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": rs})
}

func (h *ReservationServiceHandler) Update(c *fiber.Ctx) error {
	rs, err := h.parse(c)
	if err != nil {
		return err
	}
	updated, err := h.Store.Update(c.UserContext(), c.Params("id"), rs)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": updated})
}

func (h *ReservationServiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.Store.Remove(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "reservation service deleted"})
}
