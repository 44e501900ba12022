package repository

import (
	"context"
	"errors"
	"log"
	"os"
	"time"

	"ship_berth/internal/app/utils"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Repository struct {
	db     *gorm.DB
	tokens *utils.TokenManager
}

func New(dsn string, tokens *utils.TokenManager) (*Repository, error) {
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
		},
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return NewWithDB(db, tokens), nil
}

// NewWithDB wraps an already opened connection. The connection should be
// opened with TranslateError so unique violations surface as gorm.ErrDuplicatedKey.
func NewWithDB(db *gorm.DB, tokens *utils.TokenManager) *Repository {
	return &Repository{
		db:     db,
		tokens: tokens,
	}
}

func (r *Repository) DB() *gorm.DB {
	return r.db
}

func (r *Repository) Tokens() *utils.TokenManager {
	return r.tokens
}

func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// notFound converts gorm.ErrRecordNotFound into ErrNotFound and passes other
// errors through unchanged.
func notFound(err error, what string, id any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return newNotFound(what, id)
	}
	return err
}
