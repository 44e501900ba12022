package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ship_berth/internal/app/handler/middleware"

	"github.com/gin-gonic/gin"
)

// queryTimeLayouts are tried in order; the second one is what HTML
// datetime-local inputs send and is read as UTC.
var queryTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

func parseQueryTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range queryTimeLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid time %q, expected RFC 3339", raw)
}

// pathID reads a positive integer path parameter; on failure it answers 400
// and returns false.
func pathID(c *gin.Context, what string) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		respondBadRequest(c, "Invalid "+what+" ID", nil)
		return 0, false
	}
	return id, true
}

func currentUser(c *gin.Context) (int, bool) {
	id, ok := middleware.CurrentUserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid user ID in token"})
	}
	return id, ok
}
