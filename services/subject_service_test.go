package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectCreateRejectsDuplicatePerTeacher(t *testing.T) {
	st := newTestStore(t)
	svc := NewSubjectService(st)
	teacherA := seedTeacher(t, st, "subj-a@test.dev")
	teacherB := seedTeacher(t, st, "subj-b@test.dev")

	id, err := svc.Create("Math", teacherA)
	require.NoError(t, err)
	assert.NotZero(t, id)

	_, err = svc.Create("Math", teacherA)
	assert.ErrorIs(t, err, ErrSubjectExists)

	// Same name under another teacher is fine.
	_, err = svc.Create("Math", teacherB)
	assert.NoError(t, err)

	subjects, err := svc.List(teacherA)
	require.NoError(t, err)
	assert.Len(t, subjects, 1)
}

func TestSubjectUpdateAndDeleteScopedToOwner(t *testing.T) {
	st := newTestStore(t)
	svc := NewSubjectService(st)
	owner := seedTeacher(t, st, "subj-owner@test.dev")
	stranger := seedTeacher(t, st, "subj-stranger@test.dev")

	id, err := svc.Create("Science", owner)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Update(id, "Physics", stranger), ErrSubjectNotFound)
	require.NoError(t, svc.Update(id, "Physics", owner))

	assert.ErrorIs(t, svc.Delete(id, stranger), ErrSubjectNotFound)
	require.NoError(t, svc.Delete(id, owner))
	assert.ErrorIs(t, svc.Delete(id, owner), ErrSubjectNotFound)
}
