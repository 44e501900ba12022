package ds

import "time"

// @Schema(description="Realized docking of a ship at a berth")
type DockingRecord struct {
	Model
	BerthID       int       `gorm:"column:berth_id;not null;index"`
	ShipID        int       `gorm:"column:ship_id;not null;index"`
	UserID        int       `gorm:"column:user_id;not null;index"`
	ArrivalTime   time.Time `gorm:"column:arrival_time"`
	DepartureTime time.Time `gorm:"column:departure_time"`

	Berth Berth `gorm:"foreignKey:BerthID"`
	Ship  Ship  `gorm:"foreignKey:ShipID"`
	User  User  `gorm:"foreignKey:UserID"`
}

func (DockingRecord) TableName() string {
	return "docking_records"
}

func (d DockingRecord) ToDTO() DockingRecordDTO {
	dto := DockingRecordDTO{
		ID:            d.ID,
		BerthID:       d.BerthID,
		ShipID:        d.ShipID,
		ShipName:      "Unknown",
		UserID:        d.UserID,
		ArrivalTime:   d.ArrivalTime,
		DepartureTime: d.DepartureTime,
		CreatedAt:     d.CreatedAt,
	}
	if d.Ship.ID != 0 {
		dto.ShipName = d.Ship.Name
	}
	return dto
}
