package models

type School struct {
	ID      uint   `json:"id" gorm:"primaryKey"`
	Name    string `json:"name" gorm:"not null"`
	Address string `json:"address" gorm:"not null"`

	// Relationships
	Classes []Class `json:"classes,omitempty" gorm:"foreignKey:SchoolID"`
}
