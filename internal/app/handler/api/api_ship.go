package api

import (
	"context"
	"io"
	"net/http"

	"ship_berth/internal/app/ds"
	"ship_berth/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const maxPhotoSize = 10 << 20 // 10 MB

// PhotoStorage is the object store for ship photos.
type PhotoStorage interface {
	Upload(ctx context.Context, filename string, r io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, name string) error
}

type ShipHandler struct {
	Repository *repository.Repository
	Photos     PhotoStorage
}

// GetShipsAPI - GET /api/ships - список кораблей
// @Summary List ships
// @Tags ships
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ds.ShipDTO
// @Router /api/ships [get]
func (h *ShipHandler) GetShipsAPI(c *gin.Context) {
	ships, err := h.Repository.GetShips(c.Request.Context())
	if err != nil {
		respondError(c, "retrieving ships", err)
		return
	}
	dtos := make([]ds.ShipDTO, 0, len(ships))
	for _, s := range ships {
		dtos = append(dtos, s.ToDTO())
	}
	c.JSON(http.StatusOK, dtos)
}

// GetShipAPI - GET /api/ships/:id - один корабль
// @Summary Get ship
// @Tags ships
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ship ID"
// @Success 200 {object} ds.ShipDTO
// @Failure 404 {object} object "message: string"
// @Router /api/ships/{id} [get]
func (h *ShipHandler) GetShipAPI(c *gin.Context) {
	id, ok := pathID(c, "ship")
	if !ok {
		return
	}
	ship, err := h.Repository.GetShip(c.Request.Context(), id)
	if err != nil {
		respondError(c, "retrieving the ship", err)
		return
	}
	c.JSON(http.StatusOK, ship.ToDTO())
}

// CreateShipAPI - POST /api/ships - создание корабля
// @Summary Create ship
// @Tags ships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param ship body ds.ShipRequest true "Ship"
// @Success 201 {object} ds.ShipDTO
// @Failure 400 {object} object "message: string"
// @Router /api/ships [post]
func (h *ShipHandler) CreateShipAPI(c *gin.Context) {
	var req ds.ShipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid ship data", err)
		return
	}
	ship, err := h.Repository.CreateShip(c.Request.Context(), req)
	if err != nil {
		respondError(c, "creating the ship", err)
		return
	}
	logrus.Infof("ship %d %q created", ship.ID, ship.Name)
	c.JSON(http.StatusCreated, ship.ToDTO())
}

// UpdateShipAPI - PUT /api/ships/:id - обновление корабля
// @Summary Update ship
// @Tags ships
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ship ID"
// @Param ship body ds.ShipRequest true "Ship"
// @Success 200 {object} ds.ShipDTO
// @Failure 404 {object} object "message: string"
// @Router /api/ships/{id} [put]
func (h *ShipHandler) UpdateShipAPI(c *gin.Context) {
	id, ok := pathID(c, "ship")
	if !ok {
		return
	}
	var req ds.ShipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid ship data", err)
		return
	}
	ship, err := h.Repository.UpdateShip(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, "updating the ship", err)
		return
	}
	c.JSON(http.StatusOK, ship.ToDTO())
}

// DeleteShipAPI - DELETE /api/ships/:id - удаление корабля
// @Summary Delete ship
// @Tags ships
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ship ID"
// @Success 200 {object} object "message: string"
// @Failure 404 {object} object "message: string"
// @Router /api/ships/{id} [delete]
func (h *ShipHandler) DeleteShipAPI(c *gin.Context) {
	id, ok := pathID(c, "ship")
	if !ok {
		return
	}
	if err := h.Repository.DeleteShip(c.Request.Context(), id); err != nil {
		respondError(c, "deleting the ship", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ship deleted successfully"})
}

// AddShipImageAPI - POST /api/ships/:id/image - добавление изображения
// @Summary Upload ship photo
// @Tags ships
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ship ID"
// @Param file formData file true "Image"
// @Success 200 {object} object "shipId: int, photoUrl: string"
// @Failure 404 {object} object "message: string"
// @Router /api/ships/{id}/image [post]
func (h *ShipHandler) AddShipImageAPI(c *gin.Context) {
	id, ok := pathID(c, "ship")
	if !ok {
		return
	}
	if h.Photos == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Photo storage is not configured"})
		return
	}
	ctx := c.Request.Context()

	if _, err := h.Repository.GetShip(ctx, id); err != nil {
		respondError(c, "uploading the ship image", err)
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxPhotoSize)
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		file, header, err = c.Request.FormFile("image")
		if err != nil {
			respondBadRequest(c, "No image file provided", err)
			return
		}
	}
	defer file.Close()

	name, err := h.Photos.Upload(ctx, header.Filename, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		respondError(c, "uploading the ship image", err)
		return
	}

	previous, err := h.Repository.SetShipPhoto(ctx, id, name)
	if err != nil {
		_ = h.Photos.Remove(ctx, name)
		respondError(c, "uploading the ship image", err)
		return
	}
	if previous != "" {
		if err := h.Photos.Remove(ctx, previous); err != nil {
			logrus.Warnf("remove old photo %s of ship %d: %v", previous, id, err)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"shipId":   id,
		"photoUrl": name,
		"message":  "Image uploaded successfully",
	})
}
