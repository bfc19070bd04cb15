package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"classquiz/services"
	"classquiz/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// profileImageSize is the square profile images are scaled to on upload.
const profileImageSize = 300

type AuthHandler struct {
	auth   *services.AuthService
	images *storage.Images
	log    *logrus.Logger
}

func NewAuthHandler(auth *services.AuthService, images *storage.Images, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, images: images, log: log}
}

// Register accepts multipart form data with an optional profile image. The
// image is stored resized; the original upload is never kept.
func (h *AuthHandler) Register(c *gin.Context) {
	name := c.PostForm("name")
	email := c.PostForm("email")
	password := c.PostForm("password")
	roleIDRaw := c.PostForm("role_id")
	if name == "" || email == "" || password == "" || roleIDRaw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "all fields are required"})
		return
	}
	roleID, err := strconv.ParseUint(roleIDRaw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role_id must be a number"})
		return
	}

	image := ""
	if file, err := c.FormFile("image"); err == nil {
		if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "only images allowed"})
			return
		}
		if file.Size > storage.MaxUploadSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image exceeds the 2MB limit"})
			return
		}
		image, err = h.images.SaveResized(file, profileImageSize, profileImageSize)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
	}

	user, err := h.auth.Register(&services.RegisterInput{
		Name:     name,
		Email:    email,
		Password: password,
		RoleID:   uint(roleID),
		Image:    image,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user": gin.H{
			"id":      user.ID,
			"name":    user.Name,
			"email":   user.Email,
			"role_id": user.RoleID,
			"image":   user.Image,
		},
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	user, err := h.auth.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user": gin.H{
			"id":      user.ID,
			"name":    user.Name,
			"email":   user.Email,
			"role_id": user.RoleID,
		},
	})
}
