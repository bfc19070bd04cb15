package handlers

import (
	"net/http"
	"strconv"

	"classquiz/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type DashboardHandler struct {
	dashboard *services.DashboardService
	log       *logrus.Logger
}

func NewDashboardHandler(dashboard *services.DashboardService, log *logrus.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, log: log}
}

func (h *DashboardHandler) Overview(c *gin.Context) {
	teacherID, ok := teacherIDQuery(c)
	if !ok {
		return
	}
	overview, err := h.dashboard.Overview(teacherID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}

func (h *DashboardHandler) RecentGames(c *gin.Context) {
	teacherID, ok := teacherIDQuery(c)
	if !ok {
		return
	}
	games, err := h.dashboard.RecentGames(teacherID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, games)
}

func (h *DashboardHandler) GameDistribution(c *gin.Context) {
	gameID, err := strconv.ParseUint(c.Query("game_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "game_id query parameter is required"})
		return
	}
	buckets, err := h.dashboard.GameDistribution(uint(gameID))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, buckets)
}
