package handler

import (
	"context"
	"net/http"
	"time"

	"ship_berth/internal/app/handler/api"
	"ship_berth/internal/app/handler/middleware"
	"ship_berth/internal/app/metrics"
	"ship_berth/internal/app/repository"
	"ship_berth/internal/app/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Handler struct {
	Repository  *repository.Repository
	Revoked     *utils.TokenStore
	CORSOrigins []string

	AuthAPIHandler        *api.AuthHandler
	UserAPIHandler        *api.UserHandler
	ShipAPIHandler        *api.ShipHandler
	BerthAPIHandler       *api.BerthHandler
	ReservationAPIHandler *api.ReservationHandler
	DockingAPIHandler     *api.DockingHandler
}

// NewHandler wires the API handlers. revoked and photos may be nil: logout
// then only clears the cookie and photo upload answers 503.
func NewHandler(rep *repository.Repository, revoked *utils.TokenStore, photos api.PhotoStorage) *Handler {
	api.RegisterValidators()
	return &Handler{
		Repository:            rep,
		Revoked:               revoked,
		AuthAPIHandler:        &api.AuthHandler{Repository: rep, Revoked: revoked},
		UserAPIHandler:        &api.UserHandler{Repository: rep},
		ShipAPIHandler:        &api.ShipHandler{Repository: rep, Photos: photos},
		BerthAPIHandler:       &api.BerthHandler{Repository: rep},
		ReservationAPIHandler: &api.ReservationHandler{Repository: rep},
		DockingAPIHandler:     &api.DockingHandler{Repository: rep},
	}
}

func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(middleware.RequestLogger(), metrics.GinMiddleware())
	if len(h.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     h.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"X-Ignored-Filters"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.GET("/health", h.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	auth := middleware.AuthMiddleware(h.Repository.Tokens(), h.Revoked)

	// API маршруты
	apiGroup := router.Group("/api")
	{
		// Домен пользователя
		apiGroup.POST("/auth/login", h.AuthAPIHandler.LoginAPI)
		apiGroup.POST("/auth/register", h.AuthAPIHandler.RegisterAPI)
		apiGroup.GET("/auth/check-username", h.AuthAPIHandler.CheckUsernameAPI)
		apiGroup.GET("/auth/check-email", h.AuthAPIHandler.CheckEmailAPI)

		authGroup := apiGroup.Group("/", auth)
		{
			authGroup.POST("/auth/logout", h.AuthAPIHandler.LogoutAPI)
			authGroup.GET("/auth/me", h.AuthAPIHandler.MeAPI)
			authGroup.GET("/users", h.UserAPIHandler.GetUsersAPI)

			// Причалы
			authGroup.GET("/berths", h.BerthAPIHandler.GetBerthsAPI)
			authGroup.GET("/berths/available", h.BerthAPIHandler.GetAvailableBerthsAPI)
			authGroup.GET("/berths/:id", h.BerthAPIHandler.GetBerthAPI)
			authGroup.GET("/berths/:id/availability", h.BerthAPIHandler.GetAvailabilityAPI)
			authGroup.GET("/berths/:id/reservations", h.BerthAPIHandler.GetBerthReservationsAPI)
			authGroup.GET("/berths/:id/docking-records", h.DockingAPIHandler.GetBerthDockingRecordsAPI)
			authGroup.POST("/berths", h.BerthAPIHandler.CreateBerthAPI)
			authGroup.PUT("/berths/:id", h.BerthAPIHandler.UpdateBerthAPI)
			authGroup.DELETE("/berths/:id", h.BerthAPIHandler.DeleteBerthAPI)

			// Корабли
			authGroup.GET("/ships", h.ShipAPIHandler.GetShipsAPI)
			authGroup.GET("/ships/:id", h.ShipAPIHandler.GetShipAPI)
			authGroup.POST("/ships", h.ShipAPIHandler.CreateShipAPI)
			authGroup.PUT("/ships/:id", h.ShipAPIHandler.UpdateShipAPI)
			authGroup.DELETE("/ships/:id", h.ShipAPIHandler.DeleteShipAPI)
			authGroup.POST("/ships/:id/image", h.ShipAPIHandler.AddShipImageAPI)

			// Бронирования
			authGroup.POST("/reservations", h.ReservationAPIHandler.CreateReservationAPI)
			authGroup.GET("/reservations", h.ReservationAPIHandler.GetMyReservationsAPI)
			authGroup.GET("/reservations/:id", h.ReservationAPIHandler.GetReservationAPI)
			authGroup.DELETE("/reservations/:id", h.ReservationAPIHandler.CancelReservationAPI)

			authGroup.POST("/docking-records", h.DockingAPIHandler.RecordDockingAPI)
		}
	}
}

// Health reports whether the database answers.
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := h.Repository.Ping(ctx); err != nil {
		logrus.Errorf("health: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
