package repository

import (
	"context"
	"fmt"
	"time"

	"ship_berth/internal/app/ds"

	"gorm.io/gorm"
)

// CreateReservation books a berth for a ship on behalf of userID. All checks
// and both writes happen in one transaction; the berth moves from Available
// to Reserved only if nobody else moved it first.
func (r *Repository) CreateReservation(ctx context.Context, userID int, req ds.ReservationRequest) (ds.Reservation, error) {
	if !req.ScheduledArrival.Before(req.ScheduledDeparture) {
		return ds.Reservation{}, newInvalid("scheduled arrival must be before scheduled departure")
	}

	var reservationID int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		berth, err := getBerth(tx, req.BerthID)
		if err != nil {
			return err
		}
		if berth.Status != ds.BerthAvailable {
			return newConflict("berth %d is %s", berth.ID, berth.Status)
		}

		ship := ds.Ship{}
		if err := tx.First(&ship, req.ShipID).Error; err != nil {
			return notFound(err, "Ship", req.ShipID)
		}
		user := ds.User{}
		if err := tx.First(&user, userID).Error; err != nil {
			return notFound(err, "User", userID)
		}

		if ship.Length > float64(berth.MaxShipSize) {
			return newConflict("ship %q (%.1fm) does not fit berth %q (max %dm)",
				ship.Name, ship.Length, berth.Name, berth.MaxShipSize)
		}

		conflicts, err := overlappingReservations(tx, berth.ID, req.ScheduledArrival, req.ScheduledDeparture)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return newConflict("berth %d already has reservation %d in this period", berth.ID, conflicts[0].ID)
		}

		reservation := ds.Reservation{
			BerthID:            berth.ID,
			ShipID:             ship.ID,
			UserID:             user.ID,
			ScheduledArrival:   req.ScheduledArrival.UTC(),
			ScheduledDeparture: req.ScheduledDeparture.UTC(),
			Status:             ds.ReservationActive,
		}
		if err := tx.Omit("Berth", "Ship", "User").Create(&reservation).Error; err != nil {
			return err
		}

		res := tx.Model(&ds.Berth{}).
			Where("id = ? AND status = ?", berth.ID, ds.BerthAvailable).
			Update("status", ds.BerthReserved)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return newConflict("berth %d was reserved concurrently", berth.ID)
		}

		reservationID = reservation.ID
		return nil
	})
	if err != nil {
		return ds.Reservation{}, err
	}

	return r.GetReservation(ctx, reservationID)
}

// CancelReservation cancels a reservation owned by userID and frees its berth.
func (r *Repository) CancelReservation(ctx context.Context, id, userID int) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reservation := ds.Reservation{}
		if err := tx.First(&reservation, id).Error; err != nil {
			return notFound(err, "Reservation", id)
		}
		if reservation.UserID != userID {
			return fmt.Errorf("reservation %d belongs to another user: %w", id, ErrForbidden)
		}
		if reservation.Status == ds.ReservationCancelled {
			return nil
		}

		err := tx.Model(&reservation).Update("status", ds.ReservationCancelled).Error
		if err != nil {
			return err
		}
		return tx.Model(&ds.Berth{}).
			Where("id = ?", reservation.BerthID).
			Update("status", ds.BerthAvailable).Error
	})
}

func (r *Repository) GetReservation(ctx context.Context, id int) (ds.Reservation, error) {
	reservation := ds.Reservation{}
	err := r.db.WithContext(ctx).
		Preload("Berth").
		Preload("Ship").
		First(&reservation, id).Error
	if err != nil {
		return ds.Reservation{}, notFound(err, "Reservation", id)
	}
	return reservation, nil
}

// GetUserReservations returns the user's reservations, latest arrival first.
func (r *Repository) GetUserReservations(ctx context.Context, userID int) ([]ds.Reservation, error) {
	var reservations []ds.Reservation
	err := r.db.WithContext(ctx).
		Preload("Berth").
		Preload("Ship").
		Where("user_id = ?", userID).
		Order("scheduled_arrival DESC").
		Find(&reservations).Error
	return reservations, err
}

// overlappingReservations finds active reservations on the berth that touch
// [start, end]; both bounds are inclusive. The query narrows the candidates,
// Overlaps makes the final call on the loaded values.
func overlappingReservations(db *gorm.DB, berthID int, start, end time.Time) ([]ds.Reservation, error) {
	var candidates []ds.Reservation
	err := db.
		Where("berth_id = ? AND status = ?", berthID, ds.ReservationActive).
		Where("scheduled_arrival <= ? AND scheduled_departure >= ?", end.UTC(), start.UTC()).
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}
	var overlapping []ds.Reservation
	for _, r := range candidates {
		if r.Overlaps(start, end) {
			overlapping = append(overlapping, r)
		}
	}
	return overlapping, nil
}
