package api

import (
	"net/http"
	"strconv"
	"strings"

	"ship_berth/internal/app/ds"
	"ship_berth/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type BerthHandler struct {
	Repository *repository.Repository
}

func berthDTOs(berths []ds.Berth) []ds.BerthDTO {
	dtos := make([]ds.BerthDTO, 0, len(berths))
	for _, b := range berths {
		dtos = append(dtos, b.ToDTO())
	}
	return dtos
}

// GetBerthsAPI - GET /api/berths - поиск причалов
// @Summary Search berths
// @Description All filters are optional and combined with AND. Unknown filter values are ignored and listed in X-Ignored-Filters.
// @Tags berths
// @Produce json
// @Security BearerAuth
// @Param location query string false "Location substring (case-sensitive)"
// @Param minSize query int false "Minimum ship size"
// @Param status query string false "Available, Occupied or Reserved"
// @Success 200 {array} ds.BerthDTO
// @Router /api/berths [get]
func (h *BerthHandler) GetBerthsAPI(c *gin.Context) {
	minSize := 0
	if raw := strings.TrimSpace(c.Query("minSize")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondBadRequest(c, "minSize must be an integer", err)
			return
		}
		minSize = n
	}

	search, ignored := repository.NewBerthSearch(c.Query("location"), minSize, c.Query("status"))
	if len(ignored) > 0 {
		parts := make([]string, 0, len(ignored))
		for _, f := range ignored {
			parts = append(parts, f.String())
		}
		logrus.Warnf("berth search: ignored filters %s", strings.Join(parts, ", "))
		c.Header("X-Ignored-Filters", strings.Join(parts, "; "))
	}

	berths, err := h.Repository.SearchBerths(c.Request.Context(), search)
	if err != nil {
		respondError(c, "searching berths", err)
		return
	}
	c.JSON(http.StatusOK, berthDTOs(berths))
}

// @Summary Available berths
// @Tags berths
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ds.BerthDTO
// @Router /api/berths/available [get]
func (h *BerthHandler) GetAvailableBerthsAPI(c *gin.Context) {
	berths, err := h.Repository.GetAvailableBerths(c.Request.Context())
	if err != nil {
		respondError(c, "retrieving available berths", err)
		return
	}
	c.JSON(http.StatusOK, berthDTOs(berths))
}

// GetBerthAPI - GET /api/berths/:id - причал с активными бронированиями
// @Summary Get berth
// @Tags berths
// @Produce json
// @Security BearerAuth
// @Param id path int true "Berth ID"
// @Success 200 {object} ds.BerthDetailDTO
// @Failure 404 {object} object "message: string"
// @Router /api/berths/{id} [get]
func (h *BerthHandler) GetBerthAPI(c *gin.Context) {
	id, ok := pathID(c, "berth")
	if !ok {
		return
	}
	ctx := c.Request.Context()
	berth, err := h.Repository.GetBerth(ctx, id)
	if err != nil {
		respondError(c, "retrieving the berth", err)
		return
	}
	reservations, err := h.Repository.GetBerthReservations(ctx, id)
	if err != nil {
		respondError(c, "retrieving the berth", err)
		return
	}
	c.JSON(http.StatusOK, ds.BerthDetailDTO{
		BerthDTO:     berth.ToDTO(),
		Reservations: reservationDTOs(reservations),
	})
}

// @Summary Berth availability
// @Tags berths
// @Produce json
// @Security BearerAuth
// @Param id path int true "Berth ID"
// @Param start query string true "Interval start (RFC 3339)"
// @Param end query string true "Interval end (RFC 3339)"
// @Success 200 {object} object "available: bool"
// @Router /api/berths/{id}/availability [get]
func (h *BerthHandler) GetAvailabilityAPI(c *gin.Context) {
	id, ok := pathID(c, "berth")
	if !ok {
		return
	}
	start, err := parseQueryTime(c.Query("start"))
	if err != nil {
		respondBadRequest(c, "Invalid start time", err)
		return
	}
	end, err := parseQueryTime(c.Query("end"))
	if err != nil {
		respondBadRequest(c, "Invalid end time", err)
		return
	}
	if end.Before(start) {
		respondBadRequest(c, "end must not be before start", nil)
		return
	}

	available, err := h.Repository.IsBerthAvailable(c.Request.Context(), id, start, end)
	if err != nil {
		respondError(c, "checking berth availability", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": available})
}

// @Summary Berth reservations
// @Tags berths
// @Produce json
// @Security BearerAuth
// @Param id path int true "Berth ID"
// @Success 200 {array} ds.ReservationDTO
// @Router /api/berths/{id}/reservations [get]
func (h *BerthHandler) GetBerthReservationsAPI(c *gin.Context) {
	id, ok := pathID(c, "berth")
	if !ok {
		return
	}
	reservations, err := h.Repository.GetBerthReservations(c.Request.Context(), id)
	if err != nil {
		respondError(c, "retrieving berth reservations", err)
		return
	}
	c.JSON(http.StatusOK, reservationDTOs(reservations))
}

// @Summary Create berth
// @Tags berths
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param berth body ds.BerthRequest true "Berth"
// @Success 201 {object} ds.BerthDTO
// @Failure 400 {object} object "message: string"
// @Router /api/berths [post]
func (h *BerthHandler) CreateBerthAPI(c *gin.Context) {
	var req ds.BerthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid berth data", err)
		return
	}
	berth, err := h.Repository.CreateBerth(c.Request.Context(), req)
	if err != nil {
		respondError(c, "creating the berth", err)
		return
	}
	logrus.Infof("berth %d %q created", berth.ID, berth.Name)
	c.JSON(http.StatusCreated, berth.ToDTO())
}

// @Summary Update berth
// @Tags berths
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Berth ID"
// @Param berth body ds.BerthRequest true "Berth"
// @Success 200 {object} ds.BerthDTO
// @Router /api/berths/{id} [put]
func (h *BerthHandler) UpdateBerthAPI(c *gin.Context) {
	id, ok := pathID(c, "berth")
	if !ok {
		return
	}
	var req ds.BerthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid berth data", err)
		return
	}
	berth, err := h.Repository.UpdateBerth(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, "updating the berth", err)
		return
	}
	c.JSON(http.StatusOK, berth.ToDTO())
}

// @Summary Delete berth
// @Tags berths
// @Produce json
// @Security BearerAuth
// @Param id path int true "Berth ID"
// @Success 200 {object} object "message: string"
// @Router /api/berths/{id} [delete]
func (h *BerthHandler) DeleteBerthAPI(c *gin.Context) {
	id, ok := pathID(c, "berth")
	if !ok {
		return
	}
	if err := h.Repository.DeleteBerth(c.Request.Context(), id); err != nil {
		respondError(c, "deleting the berth", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Berth deleted successfully"})
}
