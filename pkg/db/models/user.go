package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a staff account. PasswordHash never leaves the API.
type User struct {
	ID              uuid.UUID  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Email           string     `gorm:"column:email;size:50;not null;uniqueIndex" json:"email"`
	PasswordHash    string     `gorm:"column:password_hash;not null" json:"-"`
	FirstName       string     `gorm:"column:first_name;size:30;not null" json:"firstName"`
	LastName        string     `gorm:"column:last_name;size:30;not null" json:"lastName"`
	DocumentNumber  string     `gorm:"column:document_number;size:20;not null" json:"documentNumber"`
	Phone           *string    `gorm:"column:phone;size:20" json:"phone,omitempty"`
	Address         string     `gorm:"column:address;size:120;not null" json:"address"`
	IsEmailVerified bool       `gorm:"column:is_email_verified;not null;default:false" json:"isEmailVerified"`
	IsActive        bool       `gorm:"column:is_active;not null" json:"isActive"`
	RoleID          *uuid.UUID `gorm:"column:role_id;type:uuid" json:"roleId,omitempty"`
	Role            *Role      `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	LastLogin       *time.Time `gorm:"column:last_login" json:"lastLogin,omitempty"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// RoleName returns the assigned role name or an empty string.
func (u *User) RoleName() string {
	if u.Role == nil {
		return ""
	}
	return u.Role.Name
}
