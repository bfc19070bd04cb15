package handlers

import (
	"net/http"

	"classquiz/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type SchoolHandler struct {
	schools *services.SchoolService
	log     *logrus.Logger
}

func NewSchoolHandler(schools *services.SchoolService, log *logrus.Logger) *SchoolHandler {
	return &SchoolHandler{schools: schools, log: log}
}

type schoolRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
}

func (h *SchoolHandler) List(c *gin.Context) {
	schools, err := h.schools.List()
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, schools)
}

func (h *SchoolHandler) Create(c *gin.Context) {
	var req schoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "school name is required"})
		return
	}
	id, err := h.schools.Create(req.Name, req.Address)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "School added successfully", "school_id": id})
}

func (h *SchoolHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req schoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "school name is required"})
		return
	}
	if err := h.schools.Update(id, req.Name, req.Address); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "School updated successfully"})
}

func (h *SchoolHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.schools.Delete(id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "School deleted successfully"})
}
