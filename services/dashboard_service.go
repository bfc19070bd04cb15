package services

import (
	"time"

	"classquiz/models"
	"classquiz/store"
)

type DashboardService struct {
	store *store.Store
}

func NewDashboardService(st *store.Store) *DashboardService {
	return &DashboardService{store: st}
}

type DashboardOverview struct {
	TotalClassrooms int `json:"totalClassrooms"`
	TotalStudents   int `json:"totalStudents"`
	UpcomingQuizzes int `json:"upcomingQuizzes"`
	OngoingQuizzes  int `json:"ongoingQuizzes"`
}

// Overview aggregates the teacher's classrooms, distinct students, and quiz
// counts split by due date. A teacher with no classes gets all zeros.
func (s *DashboardService) Overview(teacherID uint) (*DashboardOverview, error) {
	db := s.store.DB()

	var classIDs []uint
	err := db.Table("class_teachers ct").
		Joins("JOIN classes c ON ct.class_id = c.id").
		Where("ct.teacher_id = ?", teacherID).
		Pluck("c.id", &classIDs).Error
	if err != nil {
		return nil, err
	}

	overview := &DashboardOverview{TotalClassrooms: len(classIDs)}
	if len(classIDs) == 0 {
		return overview, nil
	}

	var students int64
	err = db.Model(&models.ClassStudent{}).
		Where("class_id IN ?", classIDs).
		Distinct("student_id").
		Count(&students).Error
	if err != nil {
		return nil, err
	}
	overview.TotalStudents = int(students)

	now := time.Now()
	var quizStats struct {
		Upcoming *int
		Ongoing  *int
	}
	err = db.Table("assignments").
		Select(`SUM(CASE WHEN due_date > ? THEN 1 ELSE 0 END) AS upcoming,
			SUM(CASE WHEN ? BETWEEN created_at AND due_date THEN 1 ELSE 0 END) AS ongoing`,
			now, now).
		Where("assigned_to_class IN ?", classIDs).
		Scan(&quizStats).Error
	if err != nil {
		return nil, err
	}
	if quizStats.Upcoming != nil {
		overview.UpcomingQuizzes = *quizStats.Upcoming
	}
	if quizStats.Ongoing != nil {
		overview.OngoingQuizzes = *quizStats.Ongoing
	}
	return overview, nil
}

type RecentGame struct {
	GameID          uint    `json:"game_id"`
	Title           string  `json:"title"`
	DateRange       string  `json:"date_range"`
	TotalStudents   int     `json:"total_students"`
	AverageAccuracy float64 `json:"average_accuracy"`
}

// RecentGames lists the teacher's three most recently played games.
func (s *DashboardService) RecentGames(teacherID uint) ([]RecentGame, error) {
	type raw struct {
		GameID          uint
		Title           string
		LastPlayed      time.Time
		TotalStudents   int
		AverageAccuracy float64
	}
	var rows []raw
	err := s.store.DB().Table("games g").
		Select(`g.id AS game_id, g.title,
			MAX(sga.completed_at) AS last_played,
			COUNT(DISTINCT sga.student_id) AS total_students,
			ROUND(AVG(sga.score), 0) AS average_accuracy`).
		Joins("JOIN assignments a ON g.id = a.game_id").
		Joins("JOIN student_game_attempts sga ON sga.game_id = g.id").
		Where("a.assigned_by = ?", teacherID).
		Group("g.id, g.title").
		Order("last_played DESC").
		Limit(3).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	games := make([]RecentGame, 0, len(rows))
	for _, r := range rows {
		games = append(games, RecentGame{
			GameID:          r.GameID,
			Title:           r.Title,
			DateRange:       r.LastPlayed.Format("01/02"),
			TotalStudents:   r.TotalStudents,
			AverageAccuracy: r.AverageAccuracy,
		})
	}
	return games, nil
}

type ScoreBucket struct {
	Score        float64 `json:"score"`
	StudentCount int     `json:"student_count"`
}

// GameDistribution buckets attempts of one game by score.
func (s *DashboardService) GameDistribution(gameID uint) ([]ScoreBucket, error) {
	var buckets []ScoreBucket
	err := s.store.DB().Model(&models.StudentGameAttempt{}).
		Select("score, COUNT(*) AS student_count").
		Where("game_id = ?", gameID).
		Group("score").
		Order("score DESC").
		Scan(&buckets).Error
	return buckets, err
}
