package services

import (
	"fmt"
	"strings"
	"time"

	"classquiz/models"
	"classquiz/store"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// studentRoleID matches the seeded "student" role.
const studentRoleID = 1

// defaultStudentPassword is assigned to roster-created students until they
// log in and change it.
const defaultStudentPassword = "student123"

type ClassService struct {
	store *store.Store
}

func NewClassService(st *store.Store) *ClassService {
	return &ClassService{store: st}
}

type ClassSummaryRow struct {
	ClassID    uint   `json:"classId"`
	ClassName  string `json:"className"`
	GradeLevel int    `json:"grade_level"`
	SchoolName string `json:"schoolName"`
}

func (s *ClassService) ListForTeacher(teacherID uint) ([]ClassSummaryRow, error) {
	var rows []ClassSummaryRow
	err := s.store.DB().Table("classes c").
		Select("c.id AS class_id, c.name AS class_name, c.grade_level, s.name AS school_name").
		Joins("JOIN schools s ON c.school_id = s.id").
		Joins("JOIN class_teachers ct ON ct.class_id = c.id").
		Where("ct.teacher_id = ?", teacherID).
		Scan(&rows).Error
	return rows, err
}

// Create resolves the teacher's school through an existing class link, then
// inserts the class and the class_teachers link as one transactional pair.
func (s *ClassService) Create(teacherID uint, name string, gradeLevel int) (classID, schoolID uint, err error) {
	var row struct{ SchoolID uint }
	err = s.store.DB().Table("class_teachers ct").
		Select("c.school_id").
		Joins("JOIN classes c ON ct.class_id = c.id").
		Where("ct.teacher_id = ?", teacherID).
		Limit(1).
		Take(&row).Error
	if err != nil {
		if store.IsNotFound(err) {
			return 0, 0, ErrNoSchoolForTeacher
		}
		return 0, 0, err
	}

	class := models.Class{Name: name, GradeLevel: gradeLevel, SchoolID: row.SchoolID}
	err = s.store.RunWrite("create class", func(tx *gorm.DB) error {
		class.ID = 0
		if err := tx.Create(&class).Error; err != nil {
			return err
		}
		link := models.ClassTeacher{ClassID: class.ID, TeacherID: teacherID}
		return tx.Create(&link).Error
	})
	if err != nil {
		return 0, 0, err
	}
	return class.ID, row.SchoolID, nil
}

func (s *ClassService) Update(classID, teacherID uint, name string, gradeLevel int) error {
	if err := s.verifyOwnership(classID, teacherID); err != nil {
		return err
	}
	return s.store.RunWrite("update class", func(tx *gorm.DB) error {
		res := tx.Model(&models.Class{}).Where("id = ?", classID).Updates(map[string]interface{}{
			"name":        name,
			"grade_level": gradeLevel,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrClassNotFound
		}
		return nil
	})
}

func (s *ClassService) Delete(classID, teacherID uint) error {
	if err := s.verifyOwnership(classID, teacherID); err != nil {
		return err
	}
	return s.store.RunWrite("delete class", func(tx *gorm.DB) error {
		if err := tx.Where("class_id = ? AND teacher_id = ?", classID, teacherID).
			Delete(&models.ClassTeacher{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Class{}, classID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrClassNotFound
		}
		return nil
	})
}

func (s *ClassService) verifyOwnership(classID, teacherID uint) error {
	var count int64
	err := s.store.DB().Model(&models.ClassTeacher{}).
		Where("class_id = ? AND teacher_id = ?", classID, teacherID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrClassNotOwned
	}
	return nil
}

type StudentRow struct {
	ID                 uint    `json:"id"`
	Name               string  `json:"name"`
	Email              string  `json:"email"`
	QuestionsAttempted int     `json:"questionsAttempted"`
	AverageAccuracy    float64 `json:"average_accuracy"`
}

// Students returns the roster with per-student attempt stats; the requesting
// teacher must own the class.
func (s *ClassService) Students(classID, teacherID uint) ([]StudentRow, error) {
	if err := s.verifyOwnership(classID, teacherID); err != nil {
		return nil, err
	}
	var rows []StudentRow
	err := s.store.DB().Table("class_students cs").
		Select(`u.id, u.name, u.email,
			COUNT(ga.id) AS questions_attempted,
			ROUND(COALESCE(AVG(ga.score), 0), 2) AS average_accuracy`).
		Joins("JOIN users u ON cs.student_id = u.id").
		Joins("LEFT JOIN student_game_attempts ga ON u.id = ga.student_id").
		Where("cs.class_id = ? AND u.role_id = ?", classID, studentRoleID).
		Group("u.id, u.name, u.email").
		Scan(&rows).Error
	return rows, err
}

// AddStudent creates the student user and enrolls them in the class as one
// transactional pair. A duplicate email aborts both inserts.
func (s *ClassService) AddStudent(classID, teacherID uint, name, email string) (uint, error) {
	if err := s.verifyOwnership(classID, teacherID); err != nil {
		return 0, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(defaultStudentPassword), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}
	student := models.User{
		Name:     strings.TrimSpace(name),
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: string(hash),
		RoleID:   studentRoleID,
	}
	err = s.store.RunWrite("add student to class", func(tx *gorm.DB) error {
		student.ID = 0
		if err := tx.Create(&student).Error; err != nil {
			return err
		}
		link := models.ClassStudent{ClassID: classID, StudentID: student.ID}
		return tx.Create(&link).Error
	})
	if err != nil {
		if store.IsConflict(err) {
			return 0, ErrEmailTaken
		}
		return 0, err
	}
	return student.ID, nil
}

type ClassCounts struct {
	TotalStudents   int `json:"total_students"`
	TotalChallenges int `json:"total_challenges"`
}

func (s *ClassService) Summary(classID, teacherID uint) (*ClassCounts, error) {
	if err := s.verifyOwnership(classID, teacherID); err != nil {
		return nil, err
	}
	var counts ClassCounts
	err := s.store.DB().Raw(`
		SELECT
			(SELECT COUNT(*) FROM class_students WHERE class_id = ?) AS total_students,
			(SELECT COUNT(*) FROM assignments WHERE assigned_to_class = ?) AS total_challenges`,
		classID, classID).Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return &counts, nil
}

type ChallengeStats struct {
	AverageAccuracy string `json:"average_accuracy"`
	HighestScore    string `json:"highest_score"`
	LowestScore     string `json:"lowest_score"`
}

// ChallengeStats aggregates attempt scores for the teacher's assignments in
// the class, formatted as percentages.
func (s *ClassService) ChallengeStats(classID, teacherID uint) (*ChallengeStats, error) {
	var row struct {
		AverageAccuracy *float64
		HighestScore    *float64
		LowestScore     *float64
	}
	err := s.store.DB().Table("assignments a").
		Select(`ROUND(AVG(sga.score), 2) AS average_accuracy,
			MAX(sga.score) AS highest_score,
			MIN(sga.score) AS lowest_score`).
		Joins("JOIN student_game_attempts sga ON a.game_id = sga.game_id").
		Where("a.assigned_to_class = ? AND a.assigned_by = ?", classID, teacherID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &ChallengeStats{
		AverageAccuracy: percent(row.AverageAccuracy),
		HighestScore:    percent(row.HighestScore),
		LowestScore:     percent(row.LowestScore),
	}, nil
}

func percent(v *float64) string {
	if v == nil {
		return "0%"
	}
	return fmt.Sprintf("%g%%", *v)
}

type TrendPoint struct {
	ID            uint     `json:"id"`
	ChallengeName string   `json:"challenge_name"`
	AverageScore  *float64 `json:"average_score"`
}

// AccuracyTrend returns the last 10 assignments with their average
// submission score.
func (s *ClassService) AccuracyTrend(classID, teacherID uint) ([]TrendPoint, error) {
	if err := s.verifyOwnership(classID, teacherID); err != nil {
		return nil, err
	}
	var rows []TrendPoint
	err := s.store.DB().Table("assignments a").
		Select("a.id, g.title AS challenge_name, ROUND(AVG(cs.score), 0) AS average_score").
		Joins("JOIN games g ON g.id = a.game_id").
		Joins("LEFT JOIN challenge_submissions cs ON cs.assignment_id = a.id").
		Where("a.assigned_to_class = ?", classID).
		Group("a.id, g.title, a.created_at").
		Order("a.created_at DESC").
		Limit(10).
		Scan(&rows).Error
	return rows, err
}

type ChallengeRow struct {
	ID              uint     `json:"id"`
	Title           string   `json:"title"`
	DueDate         string   `json:"due_date"`
	TeacherName     string   `json:"teacher_name"`
	Submissions     int      `json:"submissions"`
	AverageAccuracy *float64 `json:"average_accuracy"`
	Highest         *float64 `json:"highest"`
	Lowest          *float64 `json:"lowest"`
	Status          string   `json:"status"`
}

// Challenges lists the class's assignments with attempt stats and an ON/OFF
// status from the due date.
func (s *ClassService) Challenges(classID, teacherID uint) ([]ChallengeRow, error) {
	if err := s.verifyOwnership(classID, teacherID); err != nil {
		return nil, err
	}

	type raw struct {
		ID              uint
		Title           string
		DueDate         time.Time
		TeacherName     string
		Submissions     int
		AverageAccuracy *float64
		Highest         *float64
		Lowest          *float64
	}
	var rows []raw
	err := s.store.DB().Table("assignments a").
		Select(`a.id, g.title, a.due_date, t.name AS teacher_name,
			COUNT(sga.id) AS submissions,
			ROUND(AVG(sga.score), 2) AS average_accuracy,
			MAX(sga.score) AS highest,
			MIN(sga.score) AS lowest`).
		Joins("JOIN games g ON a.game_id = g.id").
		Joins("JOIN users t ON a.assigned_by = t.id").
		Joins("LEFT JOIN student_game_attempts sga ON a.game_id = sga.game_id").
		Where("a.assigned_to_class = ?", classID).
		Group("a.id, g.title, a.due_date, t.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	now := time.Now()
	out := make([]ChallengeRow, 0, len(rows))
	for _, r := range rows {
		status := "OFF"
		if r.DueDate.After(now) {
			status = "ON"
		}
		out = append(out, ChallengeRow{
			ID:              r.ID,
			Title:           r.Title,
			DueDate:         r.DueDate.Format(time.RFC3339),
			TeacherName:     r.TeacherName,
			Submissions:     r.Submissions,
			AverageAccuracy: r.AverageAccuracy,
			Highest:         r.Highest,
			Lowest:          r.Lowest,
			Status:          status,
		})
	}
	return out, nil
}

// GradeLevels lists the distinct grade levels among the teacher's classes.
func (s *ClassService) GradeLevels(teacherID uint) ([]int, error) {
	var levels []int
	err := s.store.DB().Table("classes c").
		Distinct("c.grade_level").
		Joins("JOIN class_teachers ct ON c.id = ct.class_id").
		Where("ct.teacher_id = ?", teacherID).
		Order("c.grade_level").
		Pluck("c.grade_level", &levels).Error
	return levels, err
}
