package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	m := &dto.Metric{}
	require.NoError(t, c.Write(m))
	return m.GetCounter().GetValue()
}

func TestGinMiddlewareUsesRoutePattern(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(GinMiddleware())
	router.GET("/api/ships/:id", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	counter := httpRequestsTotal.WithLabelValues("GET", "/api/ships/:id", "418")
	before := counterValue(t, counter)
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/ships/7", nil))

	assert.Equal(t, before+1, counterValue(t, counter))
}

func TestObserveReservation(t *testing.T) {
	counter := reservationOperations.WithLabelValues("create", "conflict")
	before := counterValue(t, counter)
	ObserveReservation("create", "conflict")
	assert.Equal(t, before+1, counterValue(t, counter))
}
