package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"classquiz/services"
	"classquiz/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type GameHandler struct {
	games  *services.GameService
	images *storage.Images
	log    *logrus.Logger
}

func NewGameHandler(games *services.GameService, images *storage.Images, log *logrus.Logger) *GameHandler {
	return &GameHandler{games: games, images: images, log: log}
}

// gameForm is the multipart (or JSON) field set shared by create and update.
type gameForm struct {
	SubjectID       string
	GameTypeID      string
	Title           string
	Language        string
	Description     string
	AssignedBy      string
	AssignedToClass string
	DueDate         string
	Questions       json.RawMessage
}

func (h *GameHandler) bindGameForm(c *gin.Context) (*gameForm, bool) {
	ct := c.ContentType()
	if strings.HasPrefix(ct, "multipart/form-data") || ct == "application/x-www-form-urlencoded" {
		form := &gameForm{
			SubjectID:       c.PostForm("subject_id"),
			GameTypeID:      c.PostForm("game_type_id"),
			Title:           c.PostForm("title"),
			Language:        c.PostForm("language"),
			Description:     c.PostForm("description"),
			AssignedBy:      c.PostForm("assigned_by"),
			AssignedToClass: c.PostForm("assigned_to_class"),
			DueDate:         c.PostForm("due_date"),
		}
		if raw := c.PostForm("questions"); raw != "" {
			form.Questions = json.RawMessage(raw)
		}
		return form, true
	}

	var body struct {
		SubjectID       json.Number     `json:"subject_id"`
		GameTypeID      json.Number     `json:"game_type_id"`
		Title           string          `json:"title"`
		Language        string          `json:"language"`
		Description     string          `json:"description"`
		AssignedBy      json.Number     `json:"assigned_by"`
		AssignedToClass json.Number     `json:"assigned_to_class"`
		DueDate         string          `json:"due_date"`
		Questions       json.RawMessage `json:"questions"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return &gameForm{
		SubjectID:       body.SubjectID.String(),
		GameTypeID:      body.GameTypeID.String(),
		Title:           body.Title,
		Language:        body.Language,
		Description:     body.Description,
		AssignedBy:      body.AssignedBy.String(),
		AssignedToClass: body.AssignedToClass.String(),
		DueDate:         body.DueDate,
		Questions:       body.Questions,
	}, true
}

// toInput validates presence and shape before any write happens: missing
// fields, unparseable ids, bad due dates and non-list question payloads are
// all rejected here.
func (h *GameHandler) toInput(c *gin.Context, form *gameForm) (*services.GameInput, bool) {
	if form.SubjectID == "" || form.GameTypeID == "" || form.Title == "" || form.Language == "" ||
		form.AssignedBy == "" || form.AssignedToClass == "" || form.DueDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required fields"})
		return nil, false
	}

	ids := make([]uint, 0, 4)
	for _, raw := range []string{form.SubjectID, form.GameTypeID, form.AssignedBy, form.AssignedToClass} {
		v, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ID fields must be valid numbers"})
			return nil, false
		}
		ids = append(ids, uint(v))
	}

	dueDate, err := parseDueDate(form.DueDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "due_date must be a valid date"})
		return nil, false
	}

	questions, err := services.ParseQuestions(form.Questions)
	if err != nil {
		respondError(c, h.log, err)
		return nil, false
	}

	return &services.GameInput{
		SubjectID:       ids[0],
		GameTypeID:      ids[1],
		Title:           form.Title,
		Language:        form.Language,
		Description:     form.Description,
		AssignedBy:      ids[2],
		AssignedToClass: ids[3],
		DueDate:         dueDate,
		Questions:       questions,
	}, true
}

// saveUploadedImage stores an optional "image" part and returns its stored
// name, or "" when the request carries none.
func (h *GameHandler) saveUploadedImage(c *gin.Context) (string, bool) {
	file, err := c.FormFile("image")
	if err != nil {
		return "", true
	}
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only images allowed"})
		return "", false
	}
	if file.Size > storage.MaxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image exceeds the 2MB limit"})
		return "", false
	}
	name, err := h.images.Save(file)
	if err != nil {
		respondError(c, h.log, err)
		return "", false
	}
	return name, true
}

func (h *GameHandler) CreateGame(c *gin.Context) {
	form, ok := h.bindGameForm(c)
	if !ok {
		return
	}
	input, ok := h.toInput(c, form)
	if !ok {
		return
	}
	image, ok := h.saveUploadedImage(c)
	if !ok {
		return
	}
	input.Image = image

	result, err := h.games.CreateGame(input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":            "Game created and assigned successfully",
		"game_id":            result.GameID,
		"image":              result.Image,
		"questions_inserted": result.QuestionsInserted,
		"skipped_questions":  result.SkippedQuestions,
	})
}

func (h *GameHandler) UpdateGame(c *gin.Context) {
	gameID, ok := idParam(c, "id")
	if !ok {
		return
	}
	form, ok := h.bindGameForm(c)
	if !ok {
		return
	}
	input, ok := h.toInput(c, form)
	if !ok {
		return
	}
	image, ok := h.saveUploadedImage(c)
	if !ok {
		return
	}
	input.Image = image

	result, err := h.games.UpdateGame(gameID, input)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":            "Game updated successfully",
		"game_id":            result.GameID,
		"image":              result.Image,
		"questions_inserted": result.QuestionsInserted,
		"skipped_questions":  result.SkippedQuestions,
	})
}

func (h *GameHandler) DeleteGame(c *gin.Context) {
	gameID, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.games.DeleteGame(gameID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Game and related data deleted successfully",
		"game_id": gameID,
	})
}

func (h *GameHandler) GetGame(c *gin.Context) {
	gameID, ok := idParam(c, "id")
	if !ok {
		return
	}
	detail, err := h.games.GetGame(gameID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (h *GameHandler) CountTeacherQuestions(c *gin.Context) {
	teacherID, ok := idParam(c, "teacherId")
	if !ok {
		return
	}
	count, err := h.games.CountTeacherQuestions(teacherID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"teacher_id":              teacherID,
		"total_questions_created": count,
	})
}

func (h *GameHandler) SearchGames(c *gin.Context) {
	filters := &services.SearchFilters{
		Query:       c.Query("query"),
		Language:    c.Query("language"),
		SortByLikes: c.Query("sort_by_likes") == "desc",
	}
	if v, err := strconv.ParseUint(c.Query("subject_id"), 10, 32); err == nil {
		filters.SubjectID = uint(v)
	}
	if v, err := strconv.ParseUint(c.Query("game_type_id"), 10, 32); err == nil {
		filters.GameTypeID = uint(v)
	}
	if v, err := strconv.Atoi(c.Query("grade_level")); err == nil {
		filters.GradeLevel = v
	}
	if v, err := strconv.Atoi(c.Query("min_likes")); err == nil {
		filters.MinLikes = v
	}

	results, err := h.games.SearchGames(filters)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, results)
}
