package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ship_berth/internal/app/repository"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("Berth with ID 3 %w", repository.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("taken: %w", repository.ErrConflict), http.StatusBadRequest},
		{fmt.Errorf("bad: %w", repository.ErrInvalidInput), http.StatusBadRequest},
		{repository.ErrUnauthenticated, http.StatusUnauthorized},
		{fmt.Errorf("not yours: %w", repository.ErrForbidden), http.StatusForbidden},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		respondError(c, "doing things", tt.err)
		assert.Equal(t, tt.status, w.Code, tt.err.Error())
	}
}

func TestRespondErrorUnclassified(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/reservations", nil)

	respondError(c, "creating the reservation", errors.New("connection reset"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "An error occurred while creating the reservation.", body["message"])
	assert.Equal(t, "connection reset", body["error"])
}

func TestStrongPassword(t *testing.T) {
	assert.True(t, strongPassword("Secret#123"))
	assert.False(t, strongPassword("Sh#1a"))
	assert.False(t, strongPassword("secret#123"))
	assert.False(t, strongPassword("SECRET#123"))
	assert.False(t, strongPassword("Secret1234"))
	assert.False(t, strongPassword("Secret#abc"))
}

func TestUsernamePattern(t *testing.T) {
	assert.True(t, usernamePattern.MatchString("first.mate_2"))
	assert.False(t, usernamePattern.MatchString("first mate"))
	assert.False(t, usernamePattern.MatchString("mate!"))
}

func TestRegisterRulesLogsFailures(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()

	v := validator.New()
	registerRules(v, map[string]validator.Func{
		"":         validateUsername,
		"username": validateUsername,
	})

	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Contains(t, hook.LastEntry().Message, `register validation ""`)

	type form struct {
		Username string `validate:"username"`
	}
	assert.NoError(t, v.Struct(form{Username: "captain.kirk"}))
	assert.Error(t, v.Struct(form{Username: "captain kirk"}))
}

func TestParseQueryTime(t *testing.T) {
	want := time.Date(2025, time.March, 10, 8, 30, 0, 0, time.UTC)

	for _, raw := range []string{"2025-03-10T08:30:00Z", "2025-03-10T10:30:00+02:00", "2025-03-10T08:30:00", "2025-03-10T08:30"} {
		got, err := parseQueryTime(raw)
		require.NoError(t, err, raw)
		assert.True(t, want.Equal(got), raw)
	}

	_, err := parseQueryTime("tomorrow")
	assert.Error(t, err)
}
