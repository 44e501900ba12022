package ds

import (
	"time"

	"gorm.io/gorm"
)

// Model is embedded by every persisted entity. Deleted rows keep their id and
// are hidden from queries by the gorm soft-delete scope.
type Model struct {
	ID        int            `gorm:"primaryKey;column:id"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (m Model) IsDeleted() bool {
	return m.DeletedAt.Valid
}
