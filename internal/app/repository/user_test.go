package repository

import (
	"context"
	"testing"

	"ship_berth/internal/app/ds"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegistration() ds.RegisterRequest {
	return ds.RegisterRequest{
		FirstName: "Ivan",
		LastName:  "Petrov",
		Username:  "captain",
		Email:     "Captain@Example.com",
		Password:  "Secret#123",
	}
}

func TestRegisterUser(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()

	res, err := r.RegisterUser(ctx, validRegistration())
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "User registered successfully.", res.Message)
	assert.Equal(t, "captain", res.Username)
	assert.NotZero(t, res.UserID)

	user, err := r.GetUserByID(ctx, res.UserID)
	require.NoError(t, err)
	assert.Equal(t, ds.DefaultRole, user.Role)
	assert.Equal(t, "captain@example.com", user.Email)
	assert.NotEqual(t, "Secret#123", user.PasswordHash)
}

func TestRegisterUserTaken(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()

	_, err := r.RegisterUser(ctx, validRegistration())
	require.NoError(t, err)

	t.Run("username", func(t *testing.T) {
		req := validRegistration()
		req.Email = "other@example.com"
		res, err := r.RegisterUser(ctx, req)
		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.Equal(t, "Username already exists.", res.Message)
	})

	t.Run("email", func(t *testing.T) {
		req := validRegistration()
		req.Username = "firstmate"
		req.Email = "CAPTAIN@example.com"
		res, err := r.RegisterUser(ctx, req)
		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.Equal(t, "Email already exists.", res.Message)
	})

	users, err := r.GetUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUsernameAndEmailTaken(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()
	seedUser(t, r, "bosun")

	taken, err := r.UsernameTaken(ctx, "bosun")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = r.UsernameTaken(ctx, "cook")
	require.NoError(t, err)
	assert.False(t, taken)

	taken, err = r.EmailTaken(ctx, " BOSUN@example.com ")
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestLoginUser(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()
	user := seedUser(t, r, "navigator")

	res, err := r.LoginUser(ctx, "navigator", "Secret#123")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, user.ID, res.UserID)
	assert.Equal(t, "navigator", res.Username)
	assert.Equal(t, ds.DefaultRole, res.Role)
	assert.True(t, res.ExpiresAt.After(user.CreatedAt))

	claims, err := r.Tokens().ParseJWT(res.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestLoginUserRejected(t *testing.T) {
	r := newTestRepository(t)
	ctx := context.Background()
	seedUser(t, r, "navigator")

	_, err := r.LoginUser(ctx, "navigator", "wrong")
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = r.LoginUser(ctx, "nobody", "Secret#123")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
