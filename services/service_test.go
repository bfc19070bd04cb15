package services

import (
	"fmt"
	"io"
	"testing"

	"classquiz/models"
	"classquiz/storage"
	"classquiz/store"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestStore opens a per-test in-memory database with the full schema.
func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Role{},
		&models.School{},
		&models.User{},
		&models.Class{},
		&models.ClassTeacher{},
		&models.ClassStudent{},
		&models.Subject{},
		&models.GameType{},
		&models.Game{},
		&models.Assignment{},
		&models.Question{},
		&models.StudentGameAttempt{},
		&models.ChallengeSubmission{},
		&models.Like{},
	))
	return store.New(db, testLogger())
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestImages(t *testing.T) *storage.Images {
	t.Helper()
	images, err := storage.NewImages(t.TempDir(), testLogger())
	require.NoError(t, err)
	return images
}

// seedTeacher creates a role and a teacher user, returning the teacher id.
func seedTeacher(t *testing.T, st *store.Store, email string) uint {
	t.Helper()
	role := models.Role{Name: "teacher"}
	require.NoError(t, st.DB().FirstOrCreate(&role, models.Role{Name: "teacher"}).Error)
	user := models.User{Name: "Test Teacher", Email: email, Password: "x", RoleID: role.ID}
	require.NoError(t, st.DB().Create(&user).Error)
	return user.ID
}
