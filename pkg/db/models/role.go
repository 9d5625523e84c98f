package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role groups staff users for authorization purposes.
type Role struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"column:name;size:50;not null;uniqueIndex" json:"name"`
	Description *string   `gorm:"column:description;size:120" json:"description,omitempty"`
	IsActive    bool      `gorm:"column:is_active;not null" json:"isActive"`
	Users     []User    `gorm:"foreignKey:RoleID" json:"users,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (r *Role) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
