package api

import (
	"errors"
	"net/http"

	"ship_berth/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// respondError maps repository errors onto HTTP statuses. action completes
// the generic message, e.g. "creating the reservation".
func respondError(c *gin.Context, action string, err error) {
	status := http.StatusBadRequest
	body := gin.H{"message": err.Error()}

	switch {
	case errors.Is(err, repository.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, repository.ErrConflict), errors.Is(err, repository.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, repository.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, repository.ErrForbidden):
		status = http.StatusForbidden
	default:
		body = gin.H{
			"message": "An error occurred while " + action + ".",
			"error":   err.Error(),
		}
	}

	logrus.WithFields(logrus.Fields{
		"path":   c.Request.URL.Path,
		"status": status,
	}).Errorf("error %s: %v", action, err)
	c.AbortWithStatusJSON(status, body)
}

func respondBadRequest(c *gin.Context, message string, err error) {
	body := gin.H{"message": message}
	if err != nil {
		body["error"] = err.Error()
		logrus.Warnf("%s: %v", message, err)
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, body)
}
