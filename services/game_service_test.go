package services

import (
	"encoding/json"
	"testing"
	"time"

	"classquiz/models"
	"classquiz/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGameService(t *testing.T) (*GameService, *store.Store) {
	t.Helper()
	st := newTestStore(t)
	return NewGameService(st, newTestImages(t), testLogger()), st
}

func seedGameRefs(t *testing.T, st *store.Store, teacherID uint) (subjectID, gameTypeID, classID uint) {
	t.Helper()
	subject := models.Subject{Name: "Math", CreatedBy: teacherID}
	require.NoError(t, st.DB().Create(&subject).Error)
	gameType := models.GameType{Name: "Quiz", CreatedBy: teacherID}
	require.NoError(t, st.DB().Create(&gameType).Error)
	school := models.School{Name: "Test School"}
	require.NoError(t, st.DB().Create(&school).Error)
	class := models.Class{Name: "5A", GradeLevel: 5, SchoolID: school.ID}
	require.NoError(t, st.DB().Create(&class).Error)
	return subject.ID, gameType.ID, class.ID
}

func rawQuestions(items ...string) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(items))
	for _, it := range items {
		out = append(out, json.RawMessage(it))
	}
	return out
}

func TestParseQuestions(t *testing.T) {
	t.Run("structured array", func(t *testing.T) {
		items, err := ParseQuestions(json.RawMessage(`[{"question_text":"2+2?"},{"question_text":"3+3?"}]`))
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("serialized blob", func(t *testing.T) {
		items, err := ParseQuestions(json.RawMessage(`"[{\"question_text\":\"2+2?\"}]"`))
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})

	t.Run("empty payload", func(t *testing.T) {
		items, err := ParseQuestions(nil)
		require.NoError(t, err)
		assert.Nil(t, items)
	})

	t.Run("not a list", func(t *testing.T) {
		_, err := ParseQuestions(json.RawMessage(`{"question_text":"2+2?"}`))
		assert.ErrorIs(t, err, ErrInvalidQuestions)
	})
}

func TestCreateGameInsertsCompoundEntity(t *testing.T) {
	svc, st := newTestGameService(t)
	teacherID := seedTeacher(t, st, "create-game@test.dev")
	subjectID, gameTypeID, classID := seedGameRefs(t, st, teacherID)

	due := time.Now().Add(72 * time.Hour).Truncate(time.Second)
	res, err := svc.CreateGame(&GameInput{
		SubjectID:       subjectID,
		GameTypeID:      gameTypeID,
		Title:           "Addition Sprint",
		Language:        "en",
		Description:     "Quick sums",
		AssignedBy:      teacherID,
		AssignedToClass: classID,
		DueDate:         due,
		Questions: rawQuestions(
			`{"question_text":"What is 2+2?","correct_answer":"4","options":["3","4","5"]}`,
			`{"question_text":"What is 5+5?","correct_answer":"10","options":["10","12"]}`,
		),
	})
	require.NoError(t, err)
	assert.NotZero(t, res.GameID)
	assert.Equal(t, 2, res.QuestionsInserted)
	assert.Empty(t, res.SkippedQuestions)

	detail, err := svc.GetGame(res.GameID)
	require.NoError(t, err)
	assert.Equal(t, "Addition Sprint", detail.Title)
	assert.Equal(t, "Math", detail.Subject)
	assert.Equal(t, "Test Teacher", detail.Teacher)
	require.NotNil(t, detail.Assignment)
	assert.Equal(t, classID, detail.Assignment.AssignedToClass)
	require.Len(t, detail.Questions, 2)
	assert.Equal(t, "What is 2+2?", detail.Questions[0].QuestionText)
	assert.Equal(t, "4", detail.Questions[0].CorrectAnswer)
	assert.Equal(t, []string{"3", "4", "5"}, detail.Questions[0].Options)
}

func TestCreateGameSkipsInvalidQuestions(t *testing.T) {
	svc, st := newTestGameService(t)
	teacherID := seedTeacher(t, st, "skip-questions@test.dev")
	subjectID, gameTypeID, classID := seedGameRefs(t, st, teacherID)

	res, err := svc.CreateGame(&GameInput{
		SubjectID:       subjectID,
		GameTypeID:      gameTypeID,
		Title:           "Mixed Bag",
		Language:        "en",
		AssignedBy:      teacherID,
		AssignedToClass: classID,
		DueDate:         time.Now().Add(24 * time.Hour),
		Questions: rawQuestions(
			`{"question_text":"Valid?","correct_answer":"yes","options":["yes","no"]}`,
			`{"question_text":"Missing answer","options":["a","b"]}`,
			`{"question_text":"Empty options","correct_answer":"a","options":[]}`,
			`"not an object"`,
			`{"question_text":"Also valid","correct_answer":"b","options":["a","b"]}`,
		),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.QuestionsInserted)
	require.Len(t, res.SkippedQuestions, 3)
	assert.Equal(t, 1, res.SkippedQuestions[0].Index)
	assert.Equal(t, 2, res.SkippedQuestions[1].Index)
	assert.Equal(t, 3, res.SkippedQuestions[2].Index)
	assert.Equal(t, "malformed question object", res.SkippedQuestions[2].Reason)

	var count int64
	require.NoError(t, st.DB().Model(&models.Question{}).Where("game_id = ?", res.GameID).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestUpdateGameReplacesQuestionSet(t *testing.T) {
	svc, st := newTestGameService(t)
	teacherID := seedTeacher(t, st, "update-game@test.dev")
	subjectID, gameTypeID, classID := seedGameRefs(t, st, teacherID)

	created, err := svc.CreateGame(&GameInput{
		SubjectID:       subjectID,
		GameTypeID:      gameTypeID,
		Title:           "Before",
		Language:        "en",
		AssignedBy:      teacherID,
		AssignedToClass: classID,
		DueDate:         time.Now().Add(24 * time.Hour),
		Questions: rawQuestions(
			`{"question_text":"Old 1","correct_answer":"a","options":["a"]}`,
			`{"question_text":"Old 2","correct_answer":"b","options":["b"]}`,
			`{"question_text":"Old 3","correct_answer":"c","options":["c"]}`,
		),
	})
	require.NoError(t, err)

	school := models.School{Name: "Other School"}
	require.NoError(t, st.DB().Create(&school).Error)
	otherClass := models.Class{Name: "6B", GradeLevel: 6, SchoolID: school.ID}
	require.NoError(t, st.DB().Create(&otherClass).Error)

	newDue := time.Now().Add(96 * time.Hour).Truncate(time.Second)
	updated, err := svc.UpdateGame(created.GameID, &GameInput{
		SubjectID:       subjectID,
		GameTypeID:      gameTypeID,
		Title:           "After",
		Language:        "fr",
		AssignedBy:      teacherID,
		AssignedToClass: otherClass.ID,
		DueDate:         newDue,
		Questions: rawQuestions(
			`{"question_text":"New only","correct_answer":"x","options":["x","y"]}`,
		),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.QuestionsInserted)

	detail, err := svc.GetGame(created.GameID)
	require.NoError(t, err)
	assert.Equal(t, "After", detail.Title)
	assert.Equal(t, "fr", detail.Language)
	require.NotNil(t, detail.Assignment)
	assert.Equal(t, otherClass.ID, detail.Assignment.AssignedToClass)
	require.Len(t, detail.Questions, 1)
	assert.Equal(t, "New only", detail.Questions[0].QuestionText)
}

func TestUpdateGameMissing(t *testing.T) {
	svc, _ := newTestGameService(t)
	_, err := svc.UpdateGame(9999, &GameInput{Title: "nope"})
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestDeleteGameCascades(t *testing.T) {
	svc, st := newTestGameService(t)
	teacherID := seedTeacher(t, st, "delete-game@test.dev")
	subjectID, gameTypeID, classID := seedGameRefs(t, st, teacherID)

	created, err := svc.CreateGame(&GameInput{
		SubjectID:       subjectID,
		GameTypeID:      gameTypeID,
		Title:           "Doomed",
		Language:        "en",
		AssignedBy:      teacherID,
		AssignedToClass: classID,
		DueDate:         time.Now().Add(24 * time.Hour),
		Questions: rawQuestions(
			`{"question_text":"Q","correct_answer":"a","options":["a"]}`,
		),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteGame(created.GameID))

	_, err = svc.GetGame(created.GameID)
	assert.ErrorIs(t, err, ErrGameNotFound)

	var questions, assignments int64
	require.NoError(t, st.DB().Model(&models.Question{}).Where("game_id = ?", created.GameID).Count(&questions).Error)
	require.NoError(t, st.DB().Model(&models.Assignment{}).Where("game_id = ?", created.GameID).Count(&assignments).Error)
	assert.Zero(t, questions)
	assert.Zero(t, assignments)

	assert.ErrorIs(t, svc.DeleteGame(created.GameID), ErrGameNotFound)
}

func TestCountTeacherQuestions(t *testing.T) {
	svc, st := newTestGameService(t)
	teacherID := seedTeacher(t, st, "count-questions@test.dev")
	subjectID, gameTypeID, classID := seedGameRefs(t, st, teacherID)

	for i := 0; i < 2; i++ {
		_, err := svc.CreateGame(&GameInput{
			SubjectID:       subjectID,
			GameTypeID:      gameTypeID,
			Title:           "Counter",
			Language:        "en",
			AssignedBy:      teacherID,
			AssignedToClass: classID,
			DueDate:         time.Now().Add(24 * time.Hour),
			Questions: rawQuestions(
				`{"question_text":"Q1","correct_answer":"a","options":["a"]}`,
				`{"question_text":"Q2","correct_answer":"b","options":["b"]}`,
				`{"question_text":"Q3","correct_answer":"c","options":["c"]}`,
			),
		})
		require.NoError(t, err)
	}

	count, err := svc.CountTeacherQuestions(teacherID)
	require.NoError(t, err)
	assert.EqualValues(t, 6, count)

	other, err := svc.CountTeacherQuestions(teacherID + 100)
	require.NoError(t, err)
	assert.Zero(t, other)
}
