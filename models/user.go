package models

import (
	"time"
)

type User struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	Name            string     `json:"name" gorm:"not null"`
	Email           string     `json:"email" gorm:"uniqueIndex;not null"`
	Password        string     `json:"-" gorm:"not null"`
	Username        string     `json:"username"`
	Language        string     `json:"language"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	RememberToken   string     `json:"-"`
	RoleID          uint       `json:"role_id" gorm:"not null"`
	Image           string     `json:"image"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// Relationships
	Role Role `json:"role,omitempty"`
}
