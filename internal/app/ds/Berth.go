package ds

import (
	"strconv"
	"strings"
)

type BerthStatus string

const (
	BerthAvailable BerthStatus = "Available"
	BerthOccupied  BerthStatus = "Occupied"
	BerthReserved  BerthStatus = "Reserved"
)

var berthStatuses = []BerthStatus{BerthAvailable, BerthOccupied, BerthReserved}

// ParseBerthStatus accepts an exact, case-sensitive status name or its
// numeric code (1 = Available, 2 = Occupied, 3 = Reserved).
func ParseBerthStatus(s string) (BerthStatus, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > len(berthStatuses) {
			return "", false
		}
		return berthStatuses[n-1], true
	}
	for _, status := range berthStatuses {
		if s == string(status) {
			return status, true
		}
	}
	return "", false
}

// @Schema(description="Berth model representing a docking slot")
type Berth struct {
	Model
	Name        string      `gorm:"column:name;uniqueIndex;not null"`
	Location    string      `gorm:"column:location"`
	MaxShipSize int         `gorm:"column:max_ship_size"` // meters
	Status      BerthStatus `gorm:"column:status;type:varchar(16);default:Available;index"`
}

func (Berth) TableName() string {
	return "berths"
}

func (b Berth) ToDTO() BerthDTO {
	return BerthDTO{
		ID:          b.ID,
		Name:        b.Name,
		Location:    b.Location,
		MaxShipSize: b.MaxShipSize,
		Status:      b.Status,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
		IsDeleted:   b.IsDeleted(),
	}
}
