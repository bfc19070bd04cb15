package handlers

import (
	"net/http"

	"classquiz/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type RoleHandler struct {
	roles *services.RoleService
	log   *logrus.Logger
}

func NewRoleHandler(roles *services.RoleService, log *logrus.Logger) *RoleHandler {
	return &RoleHandler{roles: roles, log: log}
}

type roleRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *RoleHandler) List(c *gin.Context) {
	roles, err := h.roles.List()
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, roles)
}

func (h *RoleHandler) Create(c *gin.Context) {
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role name is required"})
		return
	}
	id, err := h.roles.Create(req.Name)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Role added successfully", "role_id": id})
}

func (h *RoleHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role name is required"})
		return
	}
	if err := h.roles.Update(id, req.Name); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Role updated successfully"})
}

func (h *RoleHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	if err := h.roles.Delete(id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Role deleted successfully"})
}
