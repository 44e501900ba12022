package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"ship_berth/internal/app/ds"
	"ship_berth/internal/app/repository"
	"ship_berth/internal/app/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type fakePhotos struct {
	mu      sync.Mutex
	stored  map[string][]byte
	removed []string
}

func (f *fakePhotos) Upload(_ context.Context, filename string, r io.Reader, _ int64, _ string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	name := fmt.Sprintf("%d-%s", len(f.stored), filename)
	f.stored[name] = data
	return name, nil
}

func (f *fakePhotos) Remove(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, name)
	delete(f.stored, name)
	return nil
}

type testServer struct {
	router *gin.Engine
	repo   *repository.Repository
	photos *fakePhotos
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newRevokingTestServer(t, nil)
}

// newRevokingTestServer wires logout to the given revocation store.
func newRevokingTestServer(t *testing.T, revoked *utils.TokenStore) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := filepath.Join(t.TempDir(), "api.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&ds.User{}, &ds.Ship{}, &ds.Berth{}, &ds.Reservation{}, &ds.DockingRecord{}))

	tokens, err := utils.NewTokenManager("test-key", "ship_berth", "ship_berth_client", time.Hour)
	require.NoError(t, err)
	repo := repository.NewWithDB(db, tokens)

	photos := &fakePhotos{stored: map[string][]byte{}}
	h := NewHandler(repo, revoked, photos)
	router := gin.New()
	h.SetupRoutes(router)

	return &testServer{router: router, repo: repo, photos: photos}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// signUp registers and logs in a user, returning the bearer token.
func (s *testServer) signUp(t *testing.T, username string) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/auth/register", "", ds.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "Secret#123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/auth/login", "", ds.LoginRequest{Username: username, Password: "Secret#123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[ds.LoginResult](t, w).Token
}

func (s *testServer) createBerth(t *testing.T, token string, req ds.BerthRequest) ds.BerthDTO {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/berths", token, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[ds.BerthDTO](t, w)
}

func (s *testServer) createShip(t *testing.T, token string, name string, length float64) ds.ShipDTO {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/ships", token, ds.ShipRequest{Name: name, Length: length})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[ds.ShipDTO](t, w)
}

func day(hour int) time.Time {
	return time.Date(2025, time.June, 1, hour, 0, 0, 0, time.UTC)
}

func TestRegisterLoginMe(t *testing.T) {
	s := newTestServer(t)
	token := s.signUp(t, "skipper")

	w := s.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode[ds.UserDTO](t, w)
	assert.Equal(t, "skipper", me.Username)
	assert.Equal(t, ds.DefaultRole, me.Role)

	w = s.do(t, http.MethodGet, "/api/users", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]ds.UserDTO](t, w), 1)

	w = s.do(t, http.MethodGet, "/api/auth/check-username?username=skipper", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"exists":true}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/auth/check-email?email=nobody@example.com", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"exists":false}`, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	s := newRevokingTestServer(t, utils.NewTokenStore(client))

	token := s.signUp(t, "skipper")
	w := s.do(t, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, mr.Keys(), 1)

	w = s.do(t, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// a fresh login is not affected by the earlier logout
	w = s.do(t, http.MethodPost, "/api/auth/login", "", ds.LoginRequest{Username: "skipper", Password: "Secret#123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	fresh := decode[ds.LoginResult](t, w).Token
	w = s.do(t, http.MethodGet, "/api/auth/me", fresh, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterConflictAndValidation(t *testing.T) {
	s := newTestServer(t)
	s.signUp(t, "skipper")

	w := s.do(t, http.MethodPost, "/api/auth/register", "", ds.RegisterRequest{
		Username: "skipper", Email: "other@example.com", Password: "Secret#123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	res := decode[ds.RegisterResult](t, w)
	assert.False(t, res.Success)
	assert.Equal(t, "Username already exists.", res.Message)

	w = s.do(t, http.MethodPost, "/api/auth/register", "", ds.RegisterRequest{
		Username: "bad name", Email: "x@example.com", Password: "Secret#123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/auth/register", "", ds.RegisterRequest{
		Username: "weak", Email: "weak@example.com", Password: "password",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginRejected(t *testing.T) {
	s := newTestServer(t)
	s.signUp(t, "skipper")

	w := s.do(t, http.MethodPost, "/api/auth/login", "", ds.LoginRequest{Username: "skipper", Password: "Wrong#123"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtectedRoutesNeedToken(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{"/api/berths", "/api/ships", "/api/users", "/api/reservations"} {
		assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, path, "", nil).Code, path)
	}
}

func TestSearchBerthsEndpoint(t *testing.T) {
	s := newTestServer(t)
	token := s.signUp(t, "harbormaster")
	s.createBerth(t, token, ds.BerthRequest{Name: "North Pier", Location: "North Pier", MaxShipSize: 60})
	s.createBerth(t, token, ds.BerthRequest{Name: "South Pier", Location: "South Pier", MaxShipSize: 40})
	s.createBerth(t, token, ds.BerthRequest{Name: "Dry Dock", Location: "Dry Dock", MaxShipSize: 80, Status: "Occupied"})

	w := s.do(t, http.MethodGet, "/api/berths?location=Pier&minSize=50&status=Available", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	berths := decode[[]ds.BerthDTO](t, w)
	require.Len(t, berths, 1)
	assert.Equal(t, "North Pier", berths[0].Name)
	assert.Empty(t, w.Header().Get("X-Ignored-Filters"))

	w = s.do(t, http.MethodGet, "/api/berths?location=Pier&status=Sunk", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]ds.BerthDTO](t, w), 2)
	assert.Contains(t, w.Header().Get("X-Ignored-Filters"), "status")

	w = s.do(t, http.MethodGet, "/api/berths?minSize=big", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/berths/available", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]ds.BerthDTO](t, w), 2)
}

func TestBerthCRUDEndpoints(t *testing.T) {
	s := newTestServer(t)
	token := s.signUp(t, "harbormaster")
	berth := s.createBerth(t, token, ds.BerthRequest{Name: "B1", Location: "East Quay", MaxShipSize: 100})
	assert.Equal(t, ds.BerthAvailable, berth.Status)

	w := s.do(t, http.MethodPost, "/api/berths", token, ds.BerthRequest{Name: "B1", Location: "West", MaxShipSize: 10})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPut, fmt.Sprintf("/api/berths/%d", berth.ID), token,
		ds.BerthRequest{Name: "B1", Location: "West Quay", MaxShipSize: 120, Status: "Available"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "West Quay", decode[ds.BerthDTO](t, w).Location)

	w = s.do(t, http.MethodGet, fmt.Sprintf("/api/berths/%d", berth.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	detail := decode[ds.BerthDetailDTO](t, w)
	assert.Equal(t, "B1", detail.Name)
	assert.Empty(t, detail.Reservations)

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/api/berths/%d", berth.ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, fmt.Sprintf("/api/berths/%d", berth.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/berths/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestShipEndpoints(t *testing.T) {
	s := newTestServer(t)
	token := s.signUp(t, "harbormaster")
	ship := s.createShip(t, token, "Aurora", 120)

	w := s.do(t, http.MethodPost, "/api/ships", token, ds.ShipRequest{Name: "Too long", Length: 1500})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPut, fmt.Sprintf("/api/ships/%d", ship.ID), token, ds.ShipRequest{Name: "Aurora", Length: 125, Type: "Ferry"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 125.0, decode[ds.ShipDTO](t, w).Length)

	w = s.do(t, http.MethodGet, "/api/ships", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]ds.ShipDTO](t, w), 1)

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/api/ships/%d", ship.ID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodDelete, fmt.Sprintf("/api/ships/%d", ship.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestShipImageUpload(t *testing.T) {
	s := newTestServer(t)
	token := s.signUp(t, "harbormaster")
	ship := s.createShip(t, token, "Aurora", 120)

	upload := func(filename string) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("file", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte("jpeg bytes"))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/ships/%d/image", ship.ID), &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		return w
	}

	w := upload("first.jpg")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	first := decode[map[string]any](t, w)["photoUrl"].(string)

	w = upload("second.jpg")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	second := decode[map[string]any](t, w)["photoUrl"].(string)

	assert.Equal(t, []string{first}, s.photos.removed)
	got, err := s.repo.GetShip(context.Background(), ship.ID)
	require.NoError(t, err)
	assert.Equal(t, second, got.PhotoURL)
}

func TestReservationFlow(t *testing.T) {
	s := newTestServer(t)
	owner := s.signUp(t, "skipper")
	stranger := s.signUp(t, "stranger")
	berth := s.createBerth(t, owner, ds.BerthRequest{Name: "North Pier", Location: "North Pier", MaxShipSize: 100})
	ship := s.createShip(t, owner, "Aurora", 90)

	req := ds.ReservationRequest{
		BerthID: berth.ID, ShipID: ship.ID, ScheduledArrival: day(8), ScheduledDeparture: day(18),
	}
	w := s.do(t, http.MethodPost, "/api/reservations", owner, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[ds.ReservationDTO](t, w)
	assert.Equal(t, "North Pier", created.BerthName)
	assert.Equal(t, "Aurora", created.ShipName)
	assert.Equal(t, ds.ReservationActive, created.Status)

	w = s.do(t, http.MethodGet, fmt.Sprintf("/api/reservations/%d", created.ID), owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	got := decode[ds.ReservationDTO](t, w)
	assert.Equal(t, created.BerthName, got.BerthName)
	assert.Equal(t, created.ShipName, got.ShipName)
	assert.True(t, day(8).Equal(got.ScheduledArrival))
	assert.True(t, day(18).Equal(got.ScheduledDeparture))

	// berth is Reserved now
	w = s.do(t, http.MethodPost, "/api/reservations", owner, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, fmt.Sprintf("/api/berths/%d/availability?start=2025-06-02T08:00:00Z&end=2025-06-02T10:00:00Z", berth.ID), owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"available":false}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/reservations", owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]ds.ReservationDTO](t, w), 1)

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/api/reservations/%d", created.ID), stranger, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/api/reservations/%d", created.ID), owner, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodGet, fmt.Sprintf("/api/berths/%d/availability?start=2025-06-02T08:00:00&end=2025-06-02T10:00:00", berth.ID), owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"available":true}`, w.Body.String())

	w = s.do(t, http.MethodDelete, "/api/reservations/999", owner, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReservationRejectedForLongShip(t *testing.T) {
	s := newTestServer(t)
	token := s.signUp(t, "skipper")
	berth := s.createBerth(t, token, ds.BerthRequest{Name: "Small", Location: "Marina", MaxShipSize: 30})
	ship := s.createShip(t, token, "Tanker", 250)

	w := s.do(t, http.MethodPost, "/api/reservations", token, ds.ReservationRequest{
		BerthID: berth.ID, ShipID: ship.ID, ScheduledArrival: day(1), ScheduledDeparture: day(2),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/reservations", token, ds.ReservationRequest{
		BerthID: 999, ShipID: ship.ID, ScheduledArrival: day(1), ScheduledDeparture: day(2),
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDockingRecordEndpoints(t *testing.T) {
	s := newTestServer(t)
	token := s.signUp(t, "skipper")
	berth := s.createBerth(t, token, ds.BerthRequest{Name: "B1", Location: "East Quay", MaxShipSize: 100})
	ship := s.createShip(t, token, "Aurora", 90)

	w := s.do(t, http.MethodPost, "/api/docking-records", token, ds.DockingRecordRequest{
		BerthID: berth.ID, ShipID: ship.ID, ArrivalTime: day(2), DepartureTime: day(6),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, fmt.Sprintf("/api/berths/%d/docking-records", berth.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	records := decode[[]ds.DockingRecordDTO](t, w)
	require.Len(t, records, 1)
	assert.Equal(t, "Aurora", records[0].ShipName)
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ship_berth_http_requests_total")
}
