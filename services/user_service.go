package services

import (
	"strings"
	"time"

	"classquiz/models"
	"classquiz/store"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	store *store.Store
}

func NewUserService(st *store.Store) *UserService {
	return &UserService{store: st}
}

type UserRow struct {
	ID              uint       `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Username        string     `json:"username"`
	Language        string     `json:"language"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	RoleID          uint       `json:"role_id"`
	RoleName        string     `json:"role_name"`
	Image           string     `json:"image"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (s *UserService) List() ([]UserRow, error) {
	var rows []UserRow
	err := s.store.DB().Table("users").
		Select("users.id, users.name, users.email, users.username, users.language, users.email_verified_at, users.role_id, users.image, users.created_at, users.updated_at, roles.name AS role_name").
		Joins("JOIN roles ON users.role_id = roles.id").
		Scan(&rows).Error
	return rows, err
}

func (s *UserService) Get(id uint) (*UserRow, error) {
	var row UserRow
	err := s.store.DB().Table("users").
		Select("users.id, users.name, users.email, users.username, users.language, users.email_verified_at, users.role_id, users.image, users.created_at, users.updated_at, roles.name AS role_name").
		Joins("JOIN roles ON users.role_id = roles.id").
		Where("users.id = ?", id).
		Take(&row).Error
	if err != nil {
		if store.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &row, nil
}

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Username string
	Language string
	RoleID   uint
	Image    string
}

func (s *UserService) Create(in *CreateUserInput) (uint, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}
	user := models.User{
		Name:     in.Name,
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Password: string(hash),
		Username: in.Username,
		Language: in.Language,
		RoleID:   in.RoleID,
		Image:    in.Image,
	}
	err = s.store.RunWrite("create user", func(tx *gorm.DB) error {
		return tx.Create(&user).Error
	})
	if err != nil {
		if store.IsConflict(err) {
			return 0, ErrEmailTaken
		}
		return 0, err
	}
	return user.ID, nil
}

type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
	Username *string
	Language *string
	RoleID   *uint
	Image    *string
}

// Update applies only the supplied fields; a new password is re-hashed.
func (s *UserService) Update(id uint, in *UpdateUserInput) error {
	fields := map[string]interface{}{}
	if in.Name != nil {
		fields["name"] = *in.Name
	}
	if in.Email != nil {
		fields["email"] = strings.ToLower(strings.TrimSpace(*in.Email))
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		fields["password"] = string(hash)
	}
	if in.Username != nil {
		fields["username"] = *in.Username
	}
	if in.Language != nil {
		fields["language"] = *in.Language
	}
	if in.RoleID != nil {
		fields["role_id"] = *in.RoleID
	}
	if in.Image != nil {
		fields["image"] = *in.Image
	}
	if len(fields) == 0 {
		return nil
	}

	err := s.store.RunWrite("update user", func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return nil
	})
	if err != nil && store.IsConflict(err) {
		return ErrEmailTaken
	}
	return err
}

func (s *UserService) Delete(id uint) error {
	return s.store.RunWrite("delete user", func(tx *gorm.DB) error {
		res := tx.Delete(&models.User{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return nil
	})
}

type Settings struct {
	General struct {
		Image    *string `json:"image"`
		Name     string  `json:"name"`
		Username *string `json:"username"`
		Password *string `json:"password"`
		Email    string  `json:"email"`
	} `json:"general"`
	AccountSetting struct {
		PreferredSubject        []string `json:"preferredSubject"`
		Organisation            *string  `json:"organisation"`
		ConvertToStudentAccount bool     `json:"convertToStudentAccount"`
	} `json:"accountSetting"`
	Language struct {
		PreferredLanguage string `json:"preferredLanguage"`
	} `json:"language"`
}

// Settings composes the settings document: profile basics plus, for teachers,
// the distinct subjects they have built games for and their school.
func (s *UserService) Settings(userID uint) (*Settings, error) {
	db := s.store.DB()

	var user struct {
		ID       uint
		Name     string
		Username string
		Email    string
		Image    string
		Language string
		Role     string
	}
	err := db.Table("users").
		Select("users.id, users.name, users.username, users.email, users.image, users.language, roles.name AS role").
		Joins("LEFT JOIN roles ON users.role_id = roles.id").
		Where("users.id = ?", userID).
		Take(&user).Error
	if err != nil {
		if store.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	settings := &Settings{}
	settings.General.Name = user.Name
	settings.General.Email = user.Email
	if user.Image != "" {
		settings.General.Image = &user.Image
	}
	if user.Username != "" {
		settings.General.Username = &user.Username
	}
	settings.Language.PreferredLanguage = "en"
	if user.Language != "" {
		settings.Language.PreferredLanguage = user.Language
	}

	if user.Role == "teacher" {
		var subjects []string
		err := db.Table("subjects").
			Distinct("subjects.name").
			Joins("JOIN games ON subjects.id = games.subject_id").
			Where("games.created_by = ?", userID).
			Pluck("subjects.name", &subjects).Error
		if err != nil {
			return nil, err
		}
		settings.AccountSetting.PreferredSubject = subjects

		var school struct{ Name string }
		err = db.Table("class_teachers ct").
			Select("s.name").
			Joins("JOIN classes c ON ct.class_id = c.id").
			Joins("JOIN schools s ON c.school_id = s.id").
			Where("ct.teacher_id = ?", userID).
			Limit(1).
			Take(&school).Error
		if err == nil {
			settings.AccountSetting.Organisation = &school.Name
		} else if !store.IsNotFound(err) {
			return nil, err
		}
	}
	return settings, nil
}

// GetStudent returns one student with attempt stats.
func (s *UserService) GetStudent(id uint) (*StudentRow, error) {
	var row StudentRow
	err := s.store.DB().Table("users u").
		Select(`u.id, u.name, u.email,
			COUNT(ga.id) AS questions_attempted,
			ROUND(COALESCE(AVG(ga.score), 0), 2) AS average_accuracy`).
		Joins("LEFT JOIN student_game_attempts ga ON u.id = ga.student_id").
		Where("u.role_id = ? AND u.id = ?", studentRoleID, id).
		Group("u.id, u.name, u.email").
		Take(&row).Error
	if err != nil {
		if store.IsNotFound(err) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	if row.ID == 0 {
		return nil, ErrStudentNotFound
	}
	return &row, nil
}
