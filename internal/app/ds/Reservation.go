package ds

import "time"

type ReservationStatus string

const (
	ReservationActive    ReservationStatus = "Active"
	ReservationCancelled ReservationStatus = "Cancelled"
)

// @Schema(description="Reservation of a berth by a ship for a scheduled interval")
type Reservation struct {
	Model
	BerthID            int               `gorm:"column:berth_id;not null;index"`
	ShipID             int               `gorm:"column:ship_id;not null;index"`
	UserID             int               `gorm:"column:user_id;not null;index"`
	ScheduledArrival   time.Time         `gorm:"column:scheduled_arrival"`
	ScheduledDeparture time.Time         `gorm:"column:scheduled_departure"`
	Status             ReservationStatus `gorm:"column:status;type:varchar(16);default:Active;index"`

	Berth Berth `gorm:"foreignKey:BerthID"`
	Ship  Ship  `gorm:"foreignKey:ShipID"`
	User  User  `gorm:"foreignKey:UserID"`
}

func (Reservation) TableName() string {
	return "reservations"
}

// Overlaps uses inclusive bounds: touching intervals collide.
func (r Reservation) Overlaps(start, end time.Time) bool {
	return !r.ScheduledArrival.After(end) && !r.ScheduledDeparture.Before(start)
}

func (r Reservation) ToDTO() ReservationDTO {
	dto := ReservationDTO{
		ID:                 r.ID,
		BerthID:            r.BerthID,
		BerthName:          "Unknown",
		ShipID:             r.ShipID,
		ShipName:           "Unknown",
		UserID:             r.UserID,
		ScheduledArrival:   r.ScheduledArrival,
		ScheduledDeparture: r.ScheduledDeparture,
		Status:             r.Status,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
		IsDeleted:          r.IsDeleted(),
	}
	if r.Berth.ID != 0 {
		dto.BerthName = r.Berth.Name
	}
	if r.Ship.ID != 0 {
		dto.ShipName = r.Ship.Name
	}
	return dto
}
