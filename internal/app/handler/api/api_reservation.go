package api

import (
	"errors"
	"net/http"

	"ship_berth/internal/app/ds"
	"ship_berth/internal/app/metrics"
	"ship_berth/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ReservationHandler struct {
	Repository *repository.Repository
}

func reservationDTOs(reservations []ds.Reservation) []ds.ReservationDTO {
	dtos := make([]ds.ReservationDTO, 0, len(reservations))
	for _, r := range reservations {
		dtos = append(dtos, r.ToDTO())
	}
	return dtos
}

// outcome is the result label used in reservation metrics.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, repository.ErrConflict):
		return "conflict"
	case errors.Is(err, repository.ErrNotFound):
		return "not_found"
	case errors.Is(err, repository.ErrForbidden):
		return "forbidden"
	case errors.Is(err, repository.ErrInvalidInput):
		return "invalid"
	default:
		return "error"
	}
}

// CreateReservationAPI - POST /api/reservations - бронирование причала
// @Summary Create reservation
// @Description Books a berth for a ship. The user is taken from the bearer token.
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param reservation body ds.ReservationRequest true "Reservation"
// @Success 201 {object} ds.ReservationDTO
// @Failure 400 {object} object "message: string"
// @Failure 404 {object} object "message: string"
// @Router /api/reservations [post]
func (h *ReservationHandler) CreateReservationAPI(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req ds.ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid reservation data", err)
		return
	}

	reservation, err := h.Repository.CreateReservation(c.Request.Context(), userID, req)
	metrics.ObserveReservation("create", outcome(err))
	if err != nil {
		respondError(c, "creating the reservation", err)
		return
	}
	logrus.Infof("reservation %d: berth %d ship %d user %d", reservation.ID, reservation.BerthID, reservation.ShipID, userID)
	c.JSON(http.StatusCreated, reservation.ToDTO())
}

// @Summary My reservations
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ds.ReservationDTO
// @Router /api/reservations [get]
func (h *ReservationHandler) GetMyReservationsAPI(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	reservations, err := h.Repository.GetUserReservations(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "retrieving reservations", err)
		return
	}
	c.JSON(http.StatusOK, reservationDTOs(reservations))
}

// @Summary Get reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Reservation ID"
// @Success 200 {object} ds.ReservationDTO
// @Failure 404 {object} object "message: string"
// @Router /api/reservations/{id} [get]
func (h *ReservationHandler) GetReservationAPI(c *gin.Context) {
	id, ok := pathID(c, "reservation")
	if !ok {
		return
	}
	reservation, err := h.Repository.GetReservation(c.Request.Context(), id)
	if err != nil {
		respondError(c, "retrieving the reservation", err)
		return
	}
	c.JSON(http.StatusOK, reservation.ToDTO())
}

// CancelReservationAPI - DELETE /api/reservations/:id - отмена бронирования владельцем
// @Summary Cancel reservation
// @Tags reservations
// @Security BearerAuth
// @Param id path int true "Reservation ID"
// @Success 204
// @Failure 403 {object} object "message: string"
// @Failure 404 {object} object "message: string"
// @Router /api/reservations/{id} [delete]
func (h *ReservationHandler) CancelReservationAPI(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "reservation")
	if !ok {
		return
	}

	err := h.Repository.CancelReservation(c.Request.Context(), id, userID)
	metrics.ObserveReservation("cancel", outcome(err))
	if err != nil {
		respondError(c, "cancelling the reservation", err)
		return
	}
	logrus.Infof("reservation %d cancelled by user %d", id, userID)
	c.Status(http.StatusNoContent)
}
