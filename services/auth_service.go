package services

import (
	"strings"

	"classquiz/models"
	"classquiz/store"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	store *store.Store
}

func NewAuthService(st *store.Store) *AuthService {
	return &AuthService{store: st}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	RoleID   uint
	Image    string
}

// Register creates a user with a normalized email and a bcrypt-hashed
// password. A taken email is rejected before any write.
func (s *AuthService) Register(in *RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	var existing models.User
	err := s.store.DB().Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !store.IsNotFound(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(in.Password)), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    email,
		Password: string(hash),
		RoleID:   in.RoleID,
		Image:    in.Image,
	}
	err = s.store.RunWrite("register user", func(tx *gorm.DB) error {
		return tx.Create(&user).Error
	})
	if err != nil {
		if store.IsConflict(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return &user, nil
}

// Login verifies the password against the stored hash. The same error covers
// an unknown email and a wrong password.
func (s *AuthService) Login(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.store.DB().Where("email = ?", email).First(&user).Error; err != nil {
		if store.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(strings.TrimSpace(password))); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}
