package handlers

import (
	"net/http"

	"classquiz/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type SubjectHandler struct {
	subjects *services.SubjectService
	log      *logrus.Logger
}

func NewSubjectHandler(subjects *services.SubjectService, log *logrus.Logger) *SubjectHandler {
	return &SubjectHandler{subjects: subjects, log: log}
}

type subjectRequest struct {
	Name      string `json:"name" binding:"required"`
	TeacherID uint   `json:"teacher_id" binding:"required"`
}

func (h *SubjectHandler) List(c *gin.Context) {
	teacherID, ok := teacherIDQuery(c)
	if !ok {
		return
	}
	subjects, err := h.subjects.List(teacherID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, subjects)
}

func (h *SubjectHandler) Create(c *gin.Context) {
	var req subjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "subject name and teacher_id are required"})
		return
	}
	id, err := h.subjects.Create(req.Name, req.TeacherID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Subject added successfully", "subject_id": id})
}

func (h *SubjectHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req subjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "subject name and teacher_id are required"})
		return
	}
	if err := h.subjects.Update(id, req.Name, req.TeacherID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Subject updated successfully"})
}

func (h *SubjectHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	teacherID, ok := teacherIDQuery(c)
	if !ok {
		return
	}
	if err := h.subjects.Delete(id, teacherID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Subject deleted successfully"})
}
