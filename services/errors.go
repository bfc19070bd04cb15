package services

import "errors"

// Sentinel errors the handlers translate into HTTP status codes. Validation
// and not-found conditions are decided before any write is attempted.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")

	ErrSubjectExists   = errors.New("subject already exists for this teacher")
	ErrSubjectNotFound = errors.New("subject not found or unauthorized")

	ErrGameTypeExists   = errors.New("game type already exists for this teacher")
	ErrGameTypeNotFound = errors.New("game type not found or unauthorized")

	ErrSchoolNotFound = errors.New("school not found")
	ErrRoleNotFound   = errors.New("role not found")
	ErrUserNotFound   = errors.New("user not found")

	ErrClassNotFound      = errors.New("class not found")
	ErrClassNotOwned      = errors.New("teacher does not have access to this class")
	ErrNoSchoolForTeacher = errors.New("no school found for this teacher")
	ErrStudentNotFound    = errors.New("student not found")

	ErrGameNotFound     = errors.New("game not found")
	ErrInvalidQuestions = errors.New("invalid questions format, must be an array")
)
