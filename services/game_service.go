package services

import (
	"encoding/json"
	"fmt"
	"time"

	"classquiz/models"
	"classquiz/storage"
	"classquiz/store"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// GameService builds and tears down the compound game entity: the game row,
// its single assignment and its question set always commit as one unit.
type GameService struct {
	store    *store.Store
	images   *storage.Images
	log      *logrus.Logger
	validate *validator.Validate
}

func NewGameService(st *store.Store, images *storage.Images, log *logrus.Logger) *GameService {
	return &GameService{
		store:    st,
		images:   images,
		log:      log,
		validate: validator.New(),
	}
}

type QuestionInput struct {
	QuestionText  string   `json:"question_text" validate:"required"`
	CorrectAnswer string   `json:"correct_answer" validate:"required"`
	Options       []string `json:"options" validate:"required,min=1"`
}

// SkippedQuestion reports a dropped question item so clients can tell a
// silently shrunk question set from one they actually sent.
type SkippedQuestion struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

type GameInput struct {
	SubjectID       uint
	GameTypeID      uint
	Title           string
	Language        string
	Description     string
	AssignedBy      uint
	AssignedToClass uint
	DueDate         time.Time
	Image           string
	Questions       []json.RawMessage
}

type GameWriteResult struct {
	GameID            uint              `json:"game_id"`
	Image             string            `json:"image,omitempty"`
	QuestionsInserted int               `json:"questions_inserted"`
	SkippedQuestions  []SkippedQuestion `json:"skipped_questions,omitempty"`
}

// ParseQuestions accepts the questions payload either as an already-structured
// JSON array or as a serialized text blob. Anything that does not deserialize
// to a list rejects the request; individual malformed items are judged later,
// per item, inside the builder.
func ParseQuestions(raw json.RawMessage) ([]json.RawMessage, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	// A quoted blob is unwrapped first: `"[{...}]"` -> `[{...}]`.
	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		raw = json.RawMessage(text)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, ErrInvalidQuestions
	}
	return items, nil
}

// CreateGame inserts the game, its assignment and every well-formed question
// in one retried transaction. Malformed question items are skipped and
// reported, never stored partially and never fatal to the batch.
func (s *GameService) CreateGame(in *GameInput) (*GameWriteResult, error) {
	res := &GameWriteResult{Image: in.Image}

	err := s.store.RunWrite("create game", func(tx *gorm.DB) error {
		game := models.Game{
			SubjectID:   in.SubjectID,
			GameTypeID:  in.GameTypeID,
			Title:       in.Title,
			Language:    in.Language,
			Description: in.Description,
			CreatedBy:   in.AssignedBy,
			Image:       in.Image,
		}
		if err := tx.Create(&game).Error; err != nil {
			return err
		}

		assignment := models.Assignment{
			GameID:          game.ID,
			AssignedBy:      in.AssignedBy,
			AssignedToClass: in.AssignedToClass,
			DueDate:         in.DueDate,
		}
		if err := tx.Create(&assignment).Error; err != nil {
			return err
		}

		inserted, skipped, err := s.insertQuestions(tx, game.ID, in.Questions)
		if err != nil {
			return err
		}

		res.GameID = game.ID
		res.QuestionsInserted = inserted
		res.SkippedQuestions = skipped
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// UpdateGame rewrites the compound entity in place: game fields, the single
// assignment, and a wholesale replacement of the question set. When a new
// image was stored, the previous file is removed best-effort afterwards.
func (s *GameService) UpdateGame(gameID uint, in *GameInput) (*GameWriteResult, error) {
	var prior models.Game
	if err := s.store.DB().First(&prior, gameID).Error; err != nil {
		if store.IsNotFound(err) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	image := in.Image
	if image == "" {
		image = prior.Image
	}
	res := &GameWriteResult{GameID: gameID, Image: image}

	err := s.store.RunWrite("update game", func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"subject_id":   in.SubjectID,
			"game_type_id": in.GameTypeID,
			"title":        in.Title,
			"language":     in.Language,
			"description":  in.Description,
			"created_by":   in.AssignedBy,
			"image":        image,
		}
		if err := tx.Model(&models.Game{}).Where("id = ?", gameID).Updates(updates).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Assignment{}).Where("game_id = ?", gameID).Updates(map[string]interface{}{
			"assigned_by":       in.AssignedBy,
			"assigned_to_class": in.AssignedToClass,
			"due_date":          in.DueDate,
		}).Error; err != nil {
			return err
		}

		if err := tx.Where("game_id = ?", gameID).Delete(&models.Question{}).Error; err != nil {
			return err
		}
		inserted, skipped, err := s.insertQuestions(tx, gameID, in.Questions)
		if err != nil {
			return err
		}

		res.QuestionsInserted = inserted
		res.SkippedQuestions = skipped
		return nil
	})
	if err != nil {
		return nil, err
	}

	if in.Image != "" && prior.Image != "" && prior.Image != in.Image {
		s.images.Remove(prior.Image)
	}
	return res, nil
}

// DeleteGame cascades questions, assignment and the game row in one
// transaction, then removes the stored image file best-effort.
func (s *GameService) DeleteGame(gameID uint) error {
	var prior models.Game
	if err := s.store.DB().First(&prior, gameID).Error; err != nil {
		if store.IsNotFound(err) {
			return ErrGameNotFound
		}
		return err
	}

	err := s.store.RunWrite("delete game", func(tx *gorm.DB) error {
		if err := tx.Where("game_id = ?", gameID).Delete(&models.Question{}).Error; err != nil {
			return err
		}
		if err := tx.Where("game_id = ?", gameID).Delete(&models.Assignment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Game{}, gameID).Error
	})
	if err != nil {
		return err
	}

	s.images.Remove(prior.Image)
	return nil
}

// insertQuestions applies the per-item validation/skip rule shared by create
// and update. An item survives only with non-empty text, a non-empty correct
// answer and an options list; everything else is skipped with a reason.
func (s *GameService) insertQuestions(tx *gorm.DB, gameID uint, items []json.RawMessage) (int, []SkippedQuestion, error) {
	inserted := 0
	var skipped []SkippedQuestion
	for i, item := range items {
		var q QuestionInput
		if err := json.Unmarshal(item, &q); err != nil {
			skipped = append(skipped, SkippedQuestion{Index: i, Reason: "malformed question object"})
			s.log.WithField("index", i).Warn("skipping invalid question")
			continue
		}
		if err := s.validate.Struct(&q); err != nil {
			skipped = append(skipped, SkippedQuestion{Index: i, Reason: "question_text, correct_answer and a non-empty options list are required"})
			s.log.WithField("index", i).Warn("skipping invalid question")
			continue
		}
		options, err := json.Marshal(q.Options)
		if err != nil {
			return 0, nil, err
		}
		question := models.Question{
			GameID:        gameID,
			QuestionText:  q.QuestionText,
			CorrectAnswer: q.CorrectAnswer,
			Options:       options,
		}
		if err := tx.Create(&question).Error; err != nil {
			return 0, nil, err
		}
		inserted++
	}
	return inserted, skipped, nil
}

type QuestionDetail struct {
	ID            uint     `json:"id"`
	QuestionText  string   `json:"question_text"`
	CorrectAnswer string   `json:"correct_answer"`
	Options       []string `json:"options"`
}

type GameDetail struct {
	GameID      uint               `json:"game_id"`
	Title       string             `json:"title"`
	Language    string             `json:"language"`
	Description string             `json:"description"`
	Image       string             `json:"image,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	Subject     string             `json:"subject"`
	Teacher     string             `json:"teacher"`
	TeacherID   uint               `json:"teacher_id"`
	Assignment  *models.Assignment `json:"assignment"`
	Questions   []QuestionDetail   `json:"questions"`
}

// GetGame returns the game joined with its subject and teacher names, its
// assignment, and its questions with options deserialized.
func (s *GameService) GetGame(gameID uint) (*GameDetail, error) {
	db := s.store.DB()

	var detail GameDetail
	err := db.Table("games g").
		Select("g.id AS game_id, g.title, g.language, g.description, g.image, g.created_at, g.updated_at, s.name AS subject, u.name AS teacher, u.id AS teacher_id").
		Joins("LEFT JOIN subjects s ON g.subject_id = s.id").
		Joins("LEFT JOIN users u ON g.created_by = u.id").
		Where("g.id = ?", gameID).
		Take(&detail).Error
	if err != nil {
		if store.IsNotFound(err) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	var assignment models.Assignment
	if err := db.Where("game_id = ?", gameID).First(&assignment).Error; err == nil {
		detail.Assignment = &assignment
	} else if !store.IsNotFound(err) {
		return nil, err
	}

	var questions []models.Question
	if err := db.Where("game_id = ?", gameID).Find(&questions).Error; err != nil {
		return nil, err
	}
	detail.Questions = make([]QuestionDetail, 0, len(questions))
	for _, q := range questions {
		item := QuestionDetail{
			ID:            q.ID,
			QuestionText:  q.QuestionText,
			CorrectAnswer: q.CorrectAnswer,
			Options:       []string{},
		}
		// Unreadable stored options degrade to an empty list, not an error.
		_ = json.Unmarshal(q.Options, &item.Options)
		detail.Questions = append(detail.Questions, item)
	}
	return &detail, nil
}

// CountTeacherQuestions totals every question in games created by the teacher.
func (s *GameService) CountTeacherQuestions(teacherID uint) (int64, error) {
	var count int64
	err := s.store.DB().Table("questions q").
		Joins("JOIN games g ON q.game_id = g.id").
		Where("g.created_by = ?", teacherID).
		Count(&count).Error
	return count, err
}

type SearchFilters struct {
	Query       string
	SubjectID   uint
	GameTypeID  uint
	GradeLevel  int
	Language    string
	MinLikes    int
	SortByLikes bool
}

type SearchResult struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Subject       string `json:"subject"`
	GameType      string `json:"gameType"`
	QuestionCount int    `json:"questionCount"`
	LikeCount     int    `json:"likeCount"`
}

// SearchGames filters the catalog by keyword, subject, type, grade level,
// language and like count.
func (s *GameService) SearchGames(f *SearchFilters) ([]SearchResult, error) {
	db := s.store.DB().Table("games g").
		Select(`g.id, g.title, g.description, s.name AS subject, gt.name AS game_type,
			COUNT(DISTINCT q.id) AS question_count, COALESCE(l.like_count, 0) AS like_count`).
		Joins("JOIN subjects s ON g.subject_id = s.id").
		Joins("JOIN game_types gt ON g.game_type_id = gt.id").
		Joins("LEFT JOIN questions q ON g.id = q.game_id").
		Joins(`LEFT JOIN (
			SELECT a.game_id, COUNT(l.id) AS like_count
			FROM assignments a
			LEFT JOIN likes l ON l.assignment_id = a.id
			GROUP BY a.game_id
		) l ON g.id = l.game_id`).
		Joins("LEFT JOIN assignments a ON a.game_id = g.id").
		Joins("LEFT JOIN classes c ON a.assigned_to_class = c.id")

	if f.Query != "" {
		keyword := "%" + f.Query + "%"
		db = db.Where("LOWER(g.title) LIKE LOWER(?) OR LOWER(g.description) LIKE LOWER(?)", keyword, keyword)
	}
	if f.SubjectID != 0 {
		db = db.Where("g.subject_id = ?", f.SubjectID)
	}
	if f.GameTypeID != 0 {
		db = db.Where("g.game_type_id = ?", f.GameTypeID)
	}
	if f.GradeLevel != 0 {
		db = db.Where("c.grade_level = ?", f.GradeLevel)
	}
	if f.Language != "" {
		db = db.Where("LOWER(g.language) = LOWER(?)", f.Language)
	}
	if f.MinLikes > 0 {
		db = db.Where("COALESCE(l.like_count, 0) >= ?", f.MinLikes)
	}

	order := "g.created_at DESC"
	if f.SortByLikes {
		order = "like_count DESC"
	}

	var results []SearchResult
	err := db.Group("g.id, g.title, g.description, s.name, gt.name, l.like_count").
		Order(order).
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("search games: %w", err)
	}
	return results, nil
}
