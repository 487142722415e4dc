package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/taskfixer/servicios-api/internal/apperr"
	"github.com/taskfixer/servicios-api/internal/models"
	"github.com/taskfixer/servicios-api/internal/storage"
)

type ReservationHandler struct {
	Store storage.ReservationStore
	Users storage.UserStore

	// Minimum lead time before the reserved date during which the
	// reservation becomes immutable.
	LeadTime time.Duration
}

func NewReservationHandler(store storage.ReservationStore, users storage.UserStore, leadHours int) *ReservationHandler {
	return &ReservationHandler{
		Store:    store,
		Users:    users,
		LeadTime: time.Duration(leadHours) * time.Hour,
	}
}

type ReservationReq struct {
	IDUser          string    `json:"id_user"`
	ReservationDate time.Time `json:"reservation_date"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes"`
}

// Modifiable reports whether a reservation at date can still be changed at
// now, given the required lead time.
func Modifiable(date, now time.Time, lead time.Duration) bool {
	return date.Sub(now) >= lead
}

func (h *ReservationHandler) Create(c *fiber.Ctx) error {
	var req ReservationReq
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid body")
	}

	uid, err := storage.OID(req.IDUser)
	if err != nil {
		return apperr.BadRequest("invalid user id")
	}
	if req.ReservationDate.IsZero() {
		return apperr.BadRequest("reservation_date is required")
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = models.ReservationPending
	}
	if !models.ValidReservationStatus(status) {
		return apperr.BadRequest("invalid status")
	}

	ctx := c.UserContext()

	exists, err := h.Users.Exists(ctx, req.IDUser)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("referenced user does not exist")
	}

	r := &models.Reservation{
		IDUser:          uid,
		ReservationDate: req.ReservationDate,
		Status:          status,
		Notes:           req.Notes,
		CreatedAt:       time.Now().UTC(),
	}
	r, err = h.Store.Insert(ctx, r)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": r})
}

func (h *ReservationHandler) List(c *fiber.Ctx) error {
	out, err := h.Store.FindAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": out})
}

func (h *ReservationHandler) GetByID(c *fiber.Ctx) error {
	r, err := h.Store.FindByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": r})
}

// Update refuses changes inside the lead-time window before the reserved
// date.
func (h *ReservationHandler) Update(c *fiber.Ctx) error {
	var req ReservationReq
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid body")
	}

	id := c.Params("id")
	ctx := c.UserContext()

	existing, err := h.Store.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !Modifiable(existing.ReservationDate, time.Now().UTC(), h.LeadTime) {
		hours := int(h.LeadTime.Hours())
		return apperr.BadRequest(fmt.Sprintf("reservation can only be modified at least %d hours in advance", hours))
	}

	uid, err := storage.OID(req.IDUser)
	if err != nil {
		return apperr.BadRequest("invalid user id")
	}
	status := strings.TrimSpace(req.Status)
	if !models.ValidReservationStatus(status) {
		return apperr.BadRequest("invalid status")
	}

	r := &models.Reservation{
		IDUser:          uid,
		ReservationDate: req.ReservationDate,
		Status:          status,
		Notes:           req.Notes,
	}
	updated, err := h.Store.Update(ctx, id, r)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": updated})
}

func (h *ReservationHandler) Delete(c *fiber.Ctx) error {
	if err := h.Store.Remove(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "message": "reservation deleted"})
}
