package repository

import (
	"context"
	"strings"

	"ship_berth/internal/app/ds"
)

func (r *Repository) GetShips(ctx context.Context) ([]ds.Ship, error) {
	var ships []ds.Ship
	err := r.db.WithContext(ctx).Order("id").Find(&ships).Error
	if err != nil {
		return nil, err
	}
	return ships, nil
}

func (r *Repository) GetShip(ctx context.Context, id int) (ds.Ship, error) {
	ship := ds.Ship{}
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&ship).Error
	if err != nil {
		return ds.Ship{}, notFound(err, "Ship", id)
	}
	return ship, nil
}

// CreateShip - создание корабля
func (r *Repository) CreateShip(ctx context.Context, req ds.ShipRequest) (ds.Ship, error) {
	if err := validateShip(req); err != nil {
		return ds.Ship{}, err
	}
	ship := ds.Ship{
		Name:   req.Name,
		Length: req.Length,
		Type:   req.Type,
	}
	if err := r.db.WithContext(ctx).Create(&ship).Error; err != nil {
		return ds.Ship{}, err
	}
	return ship, nil
}

// UpdateShip - обновление корабля
func (r *Repository) UpdateShip(ctx context.Context, id int, req ds.ShipRequest) (ds.Ship, error) {
	if err := validateShip(req); err != nil {
		return ds.Ship{}, err
	}
	ship, err := r.GetShip(ctx, id)
	if err != nil {
		return ds.Ship{}, err
	}
	ship.Name = req.Name
	ship.Length = req.Length
	ship.Type = req.Type
	if err := r.db.WithContext(ctx).Save(&ship).Error; err != nil {
		return ds.Ship{}, err
	}
	return ship, nil
}

// SetShipPhoto stores the object name of the ship's current photo and returns
// the previous one so the caller can remove it from storage.
func (r *Repository) SetShipPhoto(ctx context.Context, id int, objectName string) (string, error) {
	ship, err := r.GetShip(ctx, id)
	if err != nil {
		return "", err
	}
	previous := ship.PhotoURL
	err = r.db.WithContext(ctx).Model(&ship).Update("photo_url", objectName).Error
	if err != nil {
		return "", err
	}
	return previous, nil
}

// DeleteShip - удаление корабля (логическое)
func (r *Repository) DeleteShip(ctx context.Context, id int) error {
	res := r.db.WithContext(ctx).Delete(&ds.Ship{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return newNotFound("Ship", id)
	}
	return nil
}

const maxShipLength = 1000

func validateShip(req ds.ShipRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return newInvalid("ship name is empty")
	}
	if req.Length <= 0 || req.Length > maxShipLength {
		return newInvalid("ship length %.1f is outside (0, %d] meters", req.Length, maxShipLength)
	}
	return nil
}
