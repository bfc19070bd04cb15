package models

import (
	"time"
)

// Assignment binds a game to a class with a due date. The create/update paths
// maintain exactly one assignment per game even though the schema allows more.
type Assignment struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	GameID          uint      `json:"game_id" gorm:"not null;index"`
	AssignedBy      uint      `json:"assigned_by" gorm:"not null"`
	AssignedToClass uint      `json:"assigned_to_class" gorm:"not null;index"`
	DueDate         time.Time `json:"due_date" gorm:"not null"`
	CreatedAt       time.Time `json:"created_at"`
}
