package handlers

import (
	"net/http"

	"classquiz/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ClassHandler struct {
	classes *services.ClassService
	log     *logrus.Logger
}

func NewClassHandler(classes *services.ClassService, log *logrus.Logger) *ClassHandler {
	return &ClassHandler{classes: classes, log: log}
}

func (h *ClassHandler) List(c *gin.Context) {
	teacherID, ok := teacherIDQuery(c)
	if !ok {
		return
	}
	classes, err := h.classes.ListForTeacher(teacherID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, classes)
}

type classRequest struct {
	Name       string `json:"name" binding:"required"`
	GradeLevel int    `json:"grade_level" binding:"required"`
	TeacherID  uint   `json:"teacher_id" binding:"required"`
}

func (h *ClassHandler) Create(c *gin.Context) {
	var req classRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, grade_level and teacher_id are required"})
		return
	}
	classID, schoolID, err := h.classes.Create(req.TeacherID, req.Name, req.GradeLevel)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":   "Class created successfully",
		"class_id":  classID,
		"school_id": schoolID,
	})
}

func (h *ClassHandler) Update(c *gin.Context) {
	classID, ok := idParam(c, "classId")
	if !ok {
		return
	}
	var req classRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, grade_level and teacher_id are required"})
		return
	}
	if err := h.classes.Update(classID, req.TeacherID, req.Name, req.GradeLevel); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Class updated successfully"})
}

func (h *ClassHandler) Delete(c *gin.Context) {
	classID, ok := idParam(c, "classId")
	if !ok {
		return
	}
	teacherID, ok := teacherIDQuery(c)
	if !ok {
		return
	}
	if err := h.classes.Delete(classID, teacherID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Class deleted successfully"})
}

func (h *ClassHandler) Students(c *gin.Context) {
	classID, ok := idParam(c, "classId")
	if !ok {
		return
	}
	teacherID, ok := teacherIDQuery(c)
	if !ok {
		return
	}
	students, err := h.classes.Students(classID, teacherID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, students)
}

func (h *ClassHandler) AddStudent(c *gin.Context) {
	classID, ok := idParam(c, "classId")
	if !ok {
		return
	}
	var req struct {
		Name      string `json:"name" binding:"required"`
		Email     string `json:"email" binding:"required,email"`
		TeacherID uint   `json:"teacher_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email and teacher_id are required"})
		return
	}
	studentID, err := h.classes.AddStudent(classID, req.TeacherID, req.Name, req.Email)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":    "Student added to class successfully",
		"student_id": studentID,
	})
}

func (h *ClassHandler) Summary(c *gin.Context) {
	classID, ok := idParam(c, "classId")
	if !ok {
		return
	}
	teacherID, ok := teacherIDQuery(c)
	if !ok {
		return
	}
	summary, err := h.classes.Summary(classID, teacherID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *ClassHandler) ChallengeStats(c *gin.Context) {
	classID, ok := idParam(c, "classId")
	if !ok {
		return
	}
	teacherID, ok := teacherIDQuery(c)
	if !ok {
		return
	}
	stats, err := h.classes.ChallengeStats(classID, teacherID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *ClassHandler) AccuracyTrend(c *gin.Context) {
	classID, ok := idParam(c, "classId")
	if !ok {
		return
	}
	teacherID, ok := teacherIDQuery(c)
	if !ok {
		return
	}
	trend, err := h.classes.AccuracyTrend(classID, teacherID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, trend)
}

func (h *ClassHandler) Challenges(c *gin.Context) {
	classID, ok := idParam(c, "classId")
	if !ok {
		return
	}
	teacherID, ok := teacherIDQuery(c)
	if !ok {
		return
	}
	challenges, err := h.classes.Challenges(classID, teacherID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, challenges)
}

func (h *ClassHandler) GradeLevels(c *gin.Context) {
	teacherID, ok := teacherIDQuery(c)
	if !ok {
		return
	}
	levels, err := h.classes.GradeLevels(teacherID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"grade_levels": levels})
}
