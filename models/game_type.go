package models

type GameType struct {
	ID        uint   `json:"id" gorm:"primaryKey"`
	Name      string `json:"name" gorm:"not null"`
	CreatedBy uint   `json:"created_by" gorm:"not null;index"`
}
