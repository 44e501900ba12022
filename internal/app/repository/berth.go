package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"ship_berth/internal/app/ds"

	"gorm.io/gorm"
)

func (r *Repository) GetBerths(ctx context.Context) ([]ds.Berth, error) {
	var berths []ds.Berth
	err := r.db.WithContext(ctx).Order("id").Find(&berths).Error
	return berths, err
}

func (r *Repository) GetAvailableBerths(ctx context.Context) ([]ds.Berth, error) {
	var berths []ds.Berth
	err := r.db.WithContext(ctx).
		Where("status = ?", ds.BerthAvailable).
		Order("id").
		Find(&berths).Error
	return berths, err
}

func (r *Repository) GetBerth(ctx context.Context, id int) (ds.Berth, error) {
	return getBerth(r.db.WithContext(ctx), id)
}

func getBerth(db *gorm.DB, id int) (ds.Berth, error) {
	berth := ds.Berth{}
	if err := db.Where("id = ?", id).First(&berth).Error; err != nil {
		return ds.Berth{}, notFound(err, "Berth", id)
	}
	return berth, nil
}

func (r *Repository) CreateBerth(ctx context.Context, req ds.BerthRequest) (ds.Berth, error) {
	if err := validateBerth(req); err != nil {
		return ds.Berth{}, err
	}
	status, err := berthStatusFromRequest(req.Status)
	if err != nil {
		return ds.Berth{}, err
	}

	berth := ds.Berth{
		Name:        req.Name,
		Location:    req.Location,
		MaxShipSize: req.MaxShipSize,
		Status:      status,
	}
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureBerthNameFree(tx, req.Name, 0); err != nil {
			return err
		}
		return tx.Create(&berth).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ds.Berth{}, newConflict("berth name %q is already taken", req.Name)
	}
	if err != nil {
		return ds.Berth{}, err
	}
	return berth, nil
}

func (r *Repository) UpdateBerth(ctx context.Context, id int, req ds.BerthRequest) (ds.Berth, error) {
	if err := validateBerth(req); err != nil {
		return ds.Berth{}, err
	}
	status, err := berthStatusFromRequest(req.Status)
	if err != nil {
		return ds.Berth{}, err
	}

	var berth ds.Berth
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		found, err := getBerth(tx, id)
		if err != nil {
			return err
		}
		berth = found
		if err := ensureBerthNameFree(tx, req.Name, id); err != nil {
			return err
		}
		berth.Name = req.Name
		berth.Location = req.Location
		berth.MaxShipSize = req.MaxShipSize
		berth.Status = status
		return tx.Save(&berth).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ds.Berth{}, newConflict("berth name %q is already taken", req.Name)
	}
	if err != nil {
		return ds.Berth{}, err
	}
	return berth, nil
}

func (r *Repository) DeleteBerth(ctx context.Context, id int) error {
	res := r.db.WithContext(ctx).Delete(&ds.Berth{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return newNotFound("Berth", id)
	}
	return nil
}

// IsBerthAvailable reports whether the berth is Available and no active
// reservation overlaps [start, end].
func (r *Repository) IsBerthAvailable(ctx context.Context, berthID int, start, end time.Time) (bool, error) {
	db := r.db.WithContext(ctx)

	berth, err := getBerth(db, berthID)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if berth.Status != ds.BerthAvailable {
		return false, nil
	}

	conflicts, err := overlappingReservations(db, berthID, start, end)
	if err != nil {
		return false, err
	}
	return len(conflicts) == 0, nil
}

// GetBerthReservations lists the berth's active reservations, soonest first.
func (r *Repository) GetBerthReservations(ctx context.Context, berthID int) ([]ds.Reservation, error) {
	if _, err := r.GetBerth(ctx, berthID); err != nil {
		return nil, err
	}
	var reservations []ds.Reservation
	err := r.db.WithContext(ctx).
		Preload("Berth").
		Preload("Ship").
		Where("berth_id = ? AND status = ?", berthID, ds.ReservationActive).
		Order("scheduled_arrival").
		Find(&reservations).Error
	return reservations, err
}

// ensureBerthNameFree checks the unique name among all berths, deleted ones
// included, except the berth being updated.
func ensureBerthNameFree(tx *gorm.DB, name string, exceptID int) error {
	var count int64
	err := tx.Unscoped().Model(&ds.Berth{}).
		Where("name = ? AND id <> ?", name, exceptID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return newConflict("berth name %q is already taken", name)
	}
	return nil
}

func validateBerth(req ds.BerthRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return newInvalid("berth name is empty")
	}
	if req.MaxShipSize <= 0 {
		return newInvalid("max ship size must be positive")
	}
	return nil
}

func berthStatusFromRequest(raw string) (ds.BerthStatus, error) {
	if raw == "" {
		return ds.BerthAvailable, nil
	}
	status, ok := ds.ParseBerthStatus(raw)
	if !ok {
		return "", newInvalid("unknown berth status %q", raw)
	}
	return status, nil
}
