package main

import (
	"ship_berth/internal/app/ds"
	"ship_berth/internal/app/dsn"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("Error loading .env file, using environment")
	}

	db, err := gorm.Open(postgres.Open(dsn.FromEnv()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("error connecting to database: %v", err)
	}

	// Порядок миграций: сначала users, ships, berths, потом ссылающиеся на них таблицы
	models := []struct {
		name  string
		model any
	}{
		{"users", &ds.User{}},
		{"ships", &ds.Ship{}},
		{"berths", &ds.Berth{}},
		{"reservations", &ds.Reservation{}},
		{"docking_records", &ds.DockingRecord{}},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m.model); err != nil {
			logrus.Fatalf("error migrating %s: %v", m.name, err)
		}
	}

	logrus.Info("Database migration completed")
}
