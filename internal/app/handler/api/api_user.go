package api

import (
	"net/http"

	"ship_berth/internal/app/ds"
	"ship_berth/internal/app/repository"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	Repository *repository.Repository
}

// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ds.UserDTO
// @Router /api/users [get]
func (h *UserHandler) GetUsersAPI(c *gin.Context) {
	users, err := h.Repository.GetUsers(c.Request.Context())
	if err != nil {
		respondError(c, "retrieving users", err)
		return
	}
	dtos := make([]ds.UserDTO, 0, len(users))
	for _, u := range users {
		dtos = append(dtos, u.ToDTO())
	}
	c.JSON(http.StatusOK, dtos)
}
