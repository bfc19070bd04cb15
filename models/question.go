package models

import (
	"gorm.io/datatypes"
)

// Question belongs to a game. Options holds the serialized answer list;
// updates replace a game's whole question set rather than merging.
type Question struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	GameID        uint           `json:"game_id" gorm:"not null;index"`
	QuestionText  string         `json:"question_text" gorm:"not null"`
	CorrectAnswer string         `json:"correct_answer" gorm:"not null"`
	Options       datatypes.JSON `json:"options" gorm:"not null"`
}
