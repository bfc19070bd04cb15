package models

import (
	"time"
)

type Game struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	SubjectID   uint      `json:"subject_id" gorm:"not null"`
	GameTypeID  uint      `json:"game_type_id" gorm:"not null"`
	Title       string    `json:"title" gorm:"not null"`
	Language    string    `json:"language" gorm:"not null"`
	Description string    `json:"description"`
	CreatedBy   uint      `json:"created_by" gorm:"not null;index"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relationships
	Subject     Subject      `json:"subject,omitempty"`
	GameType    GameType     `json:"game_type,omitempty"`
	Assignments []Assignment `json:"assignments,omitempty" gorm:"foreignKey:GameID"`
	Questions   []Question   `json:"questions,omitempty" gorm:"foreignKey:GameID"`
}
