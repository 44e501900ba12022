package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ship_berth/internal/app/ds"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// GetUserByUsername returns user by username
func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*ds.User, error) {
	user := &ds.User{}
	err := r.db.WithContext(ctx).Where("username = ?", username).First(user).Error
	if err != nil {
		return nil, notFound(err, "User", username)
	}
	return user, nil
}

// GetUserByID - получить пользователя по ID
func (r *Repository) GetUserByID(ctx context.Context, userID int) (*ds.User, error) {
	user := &ds.User{}
	if err := r.db.WithContext(ctx).First(user, userID).Error; err != nil {
		return nil, notFound(err, "User", userID)
	}
	return user, nil
}

func (r *Repository) GetUsers(ctx context.Context) ([]ds.User, error) {
	var users []ds.User
	err := r.db.WithContext(ctx).Order("id").Find(&users).Error
	return users, err
}

// UsernameTaken also counts deleted accounts, the unique index does.
func (r *Repository) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&ds.User{}).
		Where("username = ?", strings.TrimSpace(username)).
		Count(&count).Error
	return count > 0, err
}

func (r *Repository) EmailTaken(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&ds.User{}).
		Where("email = ?", normalizeEmail(email)).
		Count(&count).Error
	return count > 0, err
}

// CreateUser hashes password and saves new user
func (r *Repository) CreateUser(ctx context.Context, user *ds.User, password string) error {
	if password == "" {
		return newInvalid("password is empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("bcrypt generate error: %w", err)
	}
	user.PasswordHash = string(hashed)
	if user.Role == "" {
		user.Role = ds.DefaultRole
	}
	user.Email = normalizeEmail(user.Email)
	return r.db.WithContext(ctx).Create(user).Error
}

// RegisterUser checks uniqueness and creates user. A taken username or email
// is reported through the result, not as an error.
func (r *Repository) RegisterUser(ctx context.Context, req ds.RegisterRequest) (ds.RegisterResult, error) {
	username := strings.TrimSpace(req.Username)

	taken, err := r.UsernameTaken(ctx, username)
	if err != nil {
		return ds.RegisterResult{}, err
	}
	if taken {
		return ds.RegisterResult{Success: false, Message: "Username already exists."}, nil
	}

	taken, err = r.EmailTaken(ctx, req.Email)
	if err != nil {
		return ds.RegisterResult{}, err
	}
	if taken {
		return ds.RegisterResult{Success: false, Message: "Email already exists."}, nil
	}

	user := ds.User{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Username:  username,
		Email:     req.Email,
		Role:      ds.DefaultRole,
	}
	if err := r.CreateUser(ctx, &user, req.Password); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ds.RegisterResult{Success: false, Message: "Username or email already exists."}, nil
		}
		return ds.RegisterResult{}, err
	}

	return ds.RegisterResult{
		Success:  true,
		Message:  "User registered successfully.",
		Username: user.Username,
		UserID:   user.ID,
	}, nil
}

// Authenticate returns the user when username and password match.
func (r *Repository) Authenticate(ctx context.Context, username, password string) (*ds.User, error) {
	user, err := r.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrUnauthenticated
	}
	return user, nil
}

// LoginUser: проверка учётных данных и выпуск JWT
func (r *Repository) LoginUser(ctx context.Context, username, password string) (ds.LoginResult, error) {
	if r.tokens == nil {
		return ds.LoginResult{}, fmt.Errorf("token manager is not configured")
	}

	user, err := r.Authenticate(ctx, username, password)
	if err != nil {
		return ds.LoginResult{}, err
	}

	token, claims, err := r.tokens.GenerateJWT(*user)
	if err != nil {
		return ds.LoginResult{}, fmt.Errorf("jwt sign error: %w", err)
	}

	return ds.LoginResult{
		Token:     token,
		Username:  user.Username,
		Role:      user.Role,
		UserID:    user.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
