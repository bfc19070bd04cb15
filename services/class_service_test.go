package services

import (
	"testing"

	"classquiz/models"
	"classquiz/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedClass creates a school, a class and the teacher link.
func seedClass(t *testing.T, st *store.Store, teacherID uint) uint {
	t.Helper()
	school := models.School{Name: "Seed School"}
	require.NoError(t, st.DB().Create(&school).Error)
	class := models.Class{Name: "Seed Class", GradeLevel: 4, SchoolID: school.ID}
	require.NoError(t, st.DB().Create(&class).Error)
	link := models.ClassTeacher{ClassID: class.ID, TeacherID: teacherID}
	require.NoError(t, st.DB().Create(&link).Error)
	return class.ID
}

func TestClassCreateReusesTeacherSchool(t *testing.T) {
	st := newTestStore(t)
	svc := NewClassService(st)
	teacherID := seedTeacher(t, st, "class-create@test.dev")
	seedClass(t, st, teacherID)

	classID, schoolID, err := svc.Create(teacherID, "New Class", 5)
	require.NoError(t, err)
	assert.NotZero(t, classID)
	assert.NotZero(t, schoolID)

	classes, err := svc.ListForTeacher(teacherID)
	require.NoError(t, err)
	assert.Len(t, classes, 2)
}

func TestClassCreateWithoutSchool(t *testing.T) {
	st := newTestStore(t)
	svc := NewClassService(st)
	teacherID := seedTeacher(t, st, "class-noschool@test.dev")

	_, _, err := svc.Create(teacherID, "Orphan Class", 5)
	assert.ErrorIs(t, err, ErrNoSchoolForTeacher)
}

func TestClassOwnershipEnforced(t *testing.T) {
	st := newTestStore(t)
	svc := NewClassService(st)
	owner := seedTeacher(t, st, "class-owner@test.dev")
	stranger := seedTeacher(t, st, "class-stranger@test.dev")
	classID := seedClass(t, st, owner)

	assert.ErrorIs(t, svc.Update(classID, stranger, "Hijack", 9), ErrClassNotOwned)
	assert.ErrorIs(t, svc.Delete(classID, stranger), ErrClassNotOwned)
	_, err := svc.Students(classID, stranger)
	assert.ErrorIs(t, err, ErrClassNotOwned)

	require.NoError(t, svc.Update(classID, owner, "Renamed", 6))
	require.NoError(t, svc.Delete(classID, owner))
}

func TestAddStudentEnrollsAndRejectsDuplicates(t *testing.T) {
	st := newTestStore(t)
	svc := NewClassService(st)
	teacherID := seedTeacher(t, st, "class-roster@test.dev")
	classID := seedClass(t, st, teacherID)

	// The student role id is fixed; make sure it exists for the roster query.
	require.NoError(t, st.DB().Save(&models.Role{ID: studentRoleID, Name: "student"}).Error)

	studentID, err := svc.AddStudent(classID, teacherID, "Sam Student", "Sam@Test.dev")
	require.NoError(t, err)
	assert.NotZero(t, studentID)

	var student models.User
	require.NoError(t, st.DB().First(&student, studentID).Error)
	assert.Equal(t, "sam@test.dev", student.Email)
	assert.EqualValues(t, studentRoleID, student.RoleID)

	_, err = svc.AddStudent(classID, teacherID, "Sam Again", "sam@test.dev")
	assert.ErrorIs(t, err, ErrEmailTaken)

	// The duplicate must not leave a dangling enrollment behind.
	var links int64
	require.NoError(t, st.DB().Model(&models.ClassStudent{}).Where("class_id = ?", classID).Count(&links).Error)
	assert.EqualValues(t, 1, links)

	roster, err := svc.Students(classID, teacherID)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, "Sam Student", roster[0].Name)
}
