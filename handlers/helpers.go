package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"classquiz/services"
	"classquiz/store"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// respondError maps service and store errors onto the HTTP taxonomy:
// validation 400, forbidden 403, missing 404, conflicts 409, exhausted
// write retries 503, anything unclassified 500.
func respondError(c *gin.Context, log *logrus.Logger, err error) {
	switch {
	case errors.Is(err, store.ErrBusy):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "database is busy, please try again"})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrSubjectExists),
		errors.Is(err, services.ErrGameTypeExists),
		errors.Is(err, services.ErrInvalidQuestions):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrClassNotOwned):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrSubjectNotFound),
		errors.Is(err, services.ErrGameTypeNotFound),
		errors.Is(err, services.ErrSchoolNotFound),
		errors.Is(err, services.ErrRoleNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrClassNotFound),
		errors.Is(err, services.ErrGameNotFound),
		errors.Is(err, services.ErrStudentNotFound),
		errors.Is(err, services.ErrNoSchoolForTeacher):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case store.IsConflict(err):
		c.JSON(http.StatusConflict, gin.H{"error": "record already exists"})
	default:
		log.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// idParam parses a numeric path parameter; on failure it writes a 400 and
// returns false.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// teacherIDQuery reads the required teacher_id query parameter.
func teacherIDQuery(c *gin.Context) (uint, bool) {
	raw := c.Query("teacher_id")
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "teacher_id query parameter is required"})
		return 0, false
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "teacher_id must be a number"})
		return 0, false
	}
	return uint(id), true
}

var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseDueDate accepts the date formats clients send for due dates.
func parseDueDate(raw string) (time.Time, error) {
	var err error
	for _, layout := range dueDateLayouts {
		var t time.Time
		if t, err = time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, err
}
