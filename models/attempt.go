package models

import (
	"time"
)

// StudentGameAttempt records one student's play of a game with a 0-100 score.
type StudentGameAttempt struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	GameID      uint      `json:"game_id" gorm:"not null;index"`
	StudentID   uint      `json:"student_id" gorm:"not null;index"`
	Score       float64   `json:"score" gorm:"not null"`
	CompletedAt time.Time `json:"completed_at"`
}

func (StudentGameAttempt) TableName() string { return "student_game_attempts" }

// ChallengeSubmission records a student's submission against an assignment.
type ChallengeSubmission struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	AssignmentID uint      `json:"assignment_id" gorm:"not null;index"`
	StudentID    uint      `json:"student_id" gorm:"not null;index"`
	Score        float64   `json:"score" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
}

// Like marks a student's like of an assigned game.
type Like struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	AssignmentID uint      `json:"assignment_id" gorm:"not null;index"`
	StudentID    uint      `json:"student_id" gorm:"not null"`
	CreatedAt    time.Time `json:"created_at"`
}
