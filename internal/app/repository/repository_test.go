package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"ship_berth/internal/app/ds"
	"ship_berth/internal/app/utils"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "ship_berth.db")
	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", dbPath)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection serializes transactions the way row locks do in postgres
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(
		&ds.User{},
		&ds.Ship{},
		&ds.Berth{},
		&ds.Reservation{},
		&ds.DockingRecord{},
	))

	tokens, err := utils.NewTokenManager("test-key", "ship_berth", "ship_berth_client", time.Hour)
	require.NoError(t, err)

	return NewWithDB(db, tokens)
}

func seedUser(t *testing.T, r *Repository, username string) ds.User {
	t.Helper()
	user := ds.User{Username: username, Email: username + "@example.com"}
	require.NoError(t, r.CreateUser(context.Background(), &user, "Secret#123"))
	return user
}

func seedShip(t *testing.T, r *Repository, name string, length float64) ds.Ship {
	t.Helper()
	ship, err := r.CreateShip(context.Background(), ds.ShipRequest{Name: name, Length: length, Type: "Cargo"})
	require.NoError(t, err)
	return ship
}

func seedBerth(t *testing.T, r *Repository, name, location string, maxSize int, status ds.BerthStatus) ds.Berth {
	t.Helper()
	berth, err := r.CreateBerth(context.Background(), ds.BerthRequest{
		Name:        name,
		Location:    location,
		MaxShipSize: maxSize,
		Status:      string(status),
	})
	require.NoError(t, err)
	return berth
}

// at returns a whole-second UTC time on a fixed day.
func at(hour int) time.Time {
	return time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC).Add(time.Duration(hour) * time.Hour)
}
