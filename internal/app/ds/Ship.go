package ds

// @Schema(description="Ship model representing a vessel that can be berthed")
type Ship struct {
	Model
	Name     string  `gorm:"column:name;not null"`
	Length   float64 `gorm:"column:length"` // meters
	Type     string  `gorm:"column:type"`
	PhotoURL string  `gorm:"column:photo_url"`
}

func (Ship) TableName() string {
	return "ships"
}

func (s Ship) ToDTO() ShipDTO {
	return ShipDTO{
		ID:        s.ID,
		Name:      s.Name,
		Length:    s.Length,
		Type:      s.Type,
		PhotoURL:  s.PhotoURL,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
		IsDeleted: s.IsDeleted(),
	}
}
