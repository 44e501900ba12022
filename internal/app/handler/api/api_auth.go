package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"ship_berth/internal/app/ds"
	"ship_berth/internal/app/handler/middleware"
	"ship_berth/internal/app/metrics"
	"ship_berth/internal/app/repository"
	"ship_berth/internal/app/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type AuthHandler struct {
	Repository *repository.Repository
	Revoked    *utils.TokenStore
}

// @Summary Login user
// @Description Authenticate user, set session cookie and return JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body ds.LoginRequest true "Credentials"
// @Success 200 {object} ds.LoginResult
// @Failure 400 {object} object "message: string"
// @Failure 401 {object} object "message: string"
// @Router /api/auth/login [post]
func (h *AuthHandler) LoginAPI(c *gin.Context) {
	var req ds.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid login request", err)
		return
	}

	res, err := h.Repository.LoginUser(c.Request.Context(), strings.TrimSpace(req.Username), req.Password)
	metrics.ObserveLogin(err == nil)
	if errors.Is(err, repository.ErrUnauthenticated) {
		logrus.Warnf("failed login for %q", req.Username)
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username or password."})
		return
	}
	if err != nil {
		respondError(c, "logging in", err)
		return
	}

	c.SetCookie("jwt", res.Token, int(time.Until(res.ExpiresAt).Seconds()), "/", "", false, true)
	logrus.Infof("user %s logged in", res.Username)
	c.JSON(http.StatusOK, res)
}

// @Summary Register a new user
// @Description Register a new user; a taken username or email answers 400 with success=false
// @Tags auth
// @Accept json
// @Produce json
// @Param user body ds.RegisterRequest true "User info"
// @Success 200 {object} ds.RegisterResult
// @Failure 400 {object} ds.RegisterResult
// @Router /api/auth/register [post]
func (h *AuthHandler) RegisterAPI(c *gin.Context) {
	var req ds.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid registration data.",
			"error":   err.Error(),
		})
		return
	}

	res, err := h.Repository.RegisterUser(c.Request.Context(), req)
	if err != nil {
		respondError(c, "registering the user", err)
		return
	}
	if !res.Success {
		logrus.Infof("registration of %q refused: %s", req.Username, res.Message)
		c.JSON(http.StatusBadRequest, res)
		return
	}
	logrus.Infof("user %s registered with id %d", res.Username, res.UserID)
	c.JSON(http.StatusOK, res)
}

// @Summary Check username
// @Tags auth
// @Produce json
// @Param username query string true "Username"
// @Success 200 {object} object "exists: bool"
// @Router /api/auth/check-username [get]
func (h *AuthHandler) CheckUsernameAPI(c *gin.Context) {
	username := strings.TrimSpace(c.Query("username"))
	if username == "" {
		respondBadRequest(c, "username is required", nil)
		return
	}
	taken, err := h.Repository.UsernameTaken(c.Request.Context(), username)
	if err != nil {
		respondError(c, "checking the username", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": taken})
}

// @Summary Check email
// @Tags auth
// @Produce json
// @Param email query string true "Email"
// @Success 200 {object} object "exists: bool"
// @Router /api/auth/check-email [get]
func (h *AuthHandler) CheckEmailAPI(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		respondBadRequest(c, "email is required", nil)
		return
	}
	taken, err := h.Repository.EmailTaken(c.Request.Context(), email)
	if err != nil {
		respondError(c, "checking the email", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"exists": taken})
}

// @Summary Logout user
// @Description Revoke the presented token and clear the session cookie
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object "message: string"
// @Router /api/auth/logout [post]
func (h *AuthHandler) LogoutAPI(c *gin.Context) {
	claims, ok := middleware.CurrentClaims(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
		return
	}

	if claims.ExpiresAt != nil {
		ttl := time.Until(claims.ExpiresAt.Time)
		if err := h.Revoked.Revoke(c.Request.Context(), claims.ID, ttl); err != nil {
			respondError(c, "logging out", err)
			return
		}
	}
	if !h.Revoked.Enabled() {
		logrus.Debug("logout without revocation store, token stays valid until expiry")
	}

	c.SetCookie("jwt", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

// @Summary Current user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ds.UserDTO
// @Failure 404 {object} object "message: string"
// @Router /api/auth/me [get]
func (h *AuthHandler) MeAPI(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	user, err := h.Repository.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "loading the profile", err)
		return
	}
	c.JSON(http.StatusOK, user.ToDTO())
}
