package models

type Class struct {
	ID         uint   `json:"id" gorm:"primaryKey"`
	Name       string `json:"name" gorm:"not null"`
	GradeLevel int    `json:"grade_level" gorm:"not null"`
	SchoolID   uint   `json:"school_id" gorm:"not null"`

	// Relationships
	School School `json:"school,omitempty"`
}

// ClassTeacher links a teacher to a class they run.
type ClassTeacher struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	ClassID   uint `json:"class_id" gorm:"not null;index"`
	TeacherID uint `json:"teacher_id" gorm:"not null;index"`
}

func (ClassTeacher) TableName() string { return "class_teachers" }

// ClassStudent links an enrolled student to a class.
type ClassStudent struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	ClassID   uint `json:"class_id" gorm:"not null;index"`
	StudentID uint `json:"student_id" gorm:"not null;index"`
}

func (ClassStudent) TableName() string { return "class_students" }
