package handlers

import (
	"net/http"

	"classquiz/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type GameTypeHandler struct {
	gameTypes *services.GameTypeService
	log       *logrus.Logger
}

func NewGameTypeHandler(gameTypes *services.GameTypeService, log *logrus.Logger) *GameTypeHandler {
	return &GameTypeHandler{gameTypes: gameTypes, log: log}
}

type gameTypeRequest struct {
	Name      string `json:"name" binding:"required"`
	TeacherID uint   `json:"teacher_id" binding:"required"`
}

func (h *GameTypeHandler) List(c *gin.Context) {
	teacherID, ok := teacherIDQuery(c)
	if !ok {
		return
	}
	types, err := h.gameTypes.List(teacherID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, types)
}

func (h *GameTypeHandler) Create(c *gin.Context) {
	var req gameTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "game type name and teacher_id are required"})
		return
	}
	id, err := h.gameTypes.Create(req.Name, req.TeacherID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Game type added successfully", "game_type_id": id})
}

func (h *GameTypeHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req gameTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "game type name and teacher_id are required"})
		return
	}
	if err := h.gameTypes.Update(id, req.Name, req.TeacherID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Game type updated successfully"})
}

func (h *GameTypeHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	teacherID, ok := teacherIDQuery(c)
	if !ok {
		return
	}
	if err := h.gameTypes.Delete(id, teacherID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Game type deleted successfully"})
}
