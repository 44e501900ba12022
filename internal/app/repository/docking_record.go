package repository

import (
	"context"

	"ship_berth/internal/app/ds"

	"gorm.io/gorm"
)

// RecordDocking appends a realized docking. Records are never updated.
func (r *Repository) RecordDocking(ctx context.Context, userID int, req ds.DockingRecordRequest) (ds.DockingRecord, error) {
	if !req.ArrivalTime.Before(req.DepartureTime) {
		return ds.DockingRecord{}, newInvalid("arrival time must be before departure time")
	}

	record := ds.DockingRecord{
		BerthID:       req.BerthID,
		ShipID:        req.ShipID,
		UserID:        userID,
		ArrivalTime:   req.ArrivalTime.UTC(),
		DepartureTime: req.DepartureTime.UTC(),
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := getBerth(tx, req.BerthID); err != nil {
			return err
		}
		if err := tx.First(&ds.Ship{}, req.ShipID).Error; err != nil {
			return notFound(err, "Ship", req.ShipID)
		}
		if err := tx.First(&ds.User{}, userID).Error; err != nil {
			return notFound(err, "User", userID)
		}
		return tx.Omit("Berth", "Ship", "User").Create(&record).Error
	})
	if err != nil {
		return ds.DockingRecord{}, err
	}
	return record, nil
}

func (r *Repository) GetBerthDockingRecords(ctx context.Context, berthID int) ([]ds.DockingRecord, error) {
	if _, err := r.GetBerth(ctx, berthID); err != nil {
		return nil, err
	}
	var records []ds.DockingRecord
	err := r.db.WithContext(ctx).
		Preload("Ship").
		Where("berth_id = ?", berthID).
		Order("arrival_time DESC").
		Find(&records).Error
	return records, err
}
