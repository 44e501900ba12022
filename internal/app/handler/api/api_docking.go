package api

import (
	"net/http"

	"ship_berth/internal/app/ds"
	"ship_berth/internal/app/repository"

	"github.com/gin-gonic/gin"
)

type DockingHandler struct {
	Repository *repository.Repository
}

// @Summary Record docking
// @Tags docking
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param record body ds.DockingRecordRequest true "Docking record"
// @Success 201 {object} ds.DockingRecordDTO
// @Router /api/docking-records [post]
func (h *DockingHandler) RecordDockingAPI(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req ds.DockingRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid docking record", err)
		return
	}
	record, err := h.Repository.RecordDocking(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, "recording the docking", err)
		return
	}
	c.JSON(http.StatusCreated, record.ToDTO())
}

// @Summary Berth docking log
// @Tags docking
// @Produce json
// @Security BearerAuth
// @Param id path int true "Berth ID"
// @Success 200 {array} ds.DockingRecordDTO
// @Router /api/berths/{id}/docking-records [get]
func (h *DockingHandler) GetBerthDockingRecordsAPI(c *gin.Context) {
	id, ok := pathID(c, "berth")
	if !ok {
		return
	}
	records, err := h.Repository.GetBerthDockingRecords(c.Request.Context(), id)
	if err != nil {
		respondError(c, "retrieving docking records", err)
		return
	}
	dtos := make([]ds.DockingRecordDTO, 0, len(records))
	for _, r := range records {
		dtos = append(dtos, r.ToDTO())
	}
	c.JSON(http.StatusOK, dtos)
}
