package services

import (
	"classquiz/models"
	"classquiz/store"

	"gorm.io/gorm"
)

type SubjectService struct {
	store *store.Store
}

func NewSubjectService(st *store.Store) *SubjectService {
	return &SubjectService{store: st}
}

func (s *SubjectService) List(teacherID uint) ([]models.Subject, error) {
	var subjects []models.Subject
	err := s.store.DB().Where("created_by = ?", teacherID).Find(&subjects).Error
	return subjects, err
}

// Create rejects a duplicate name for the same teacher before inserting.
func (s *SubjectService) Create(name string, teacherID uint) (uint, error) {
	var existing models.Subject
	err := s.store.DB().Where("name = ? AND created_by = ?", name, teacherID).First(&existing).Error
	if err == nil {
		return 0, ErrSubjectExists
	}
	if !store.IsNotFound(err) {
		return 0, err
	}

	subject := models.Subject{Name: name, CreatedBy: teacherID}
	err = s.store.RunWrite("create subject", func(tx *gorm.DB) error {
		return tx.Create(&subject).Error
	})
	if err != nil {
		return 0, err
	}
	return subject.ID, nil
}

func (s *SubjectService) Update(id uint, name string, teacherID uint) error {
	var existing models.Subject
	err := s.store.DB().
		Where("name = ? AND created_by = ? AND id != ?", name, teacherID, id).
		First(&existing).Error
	if err == nil {
		return ErrSubjectExists
	}
	if !store.IsNotFound(err) {
		return err
	}

	return s.store.RunWrite("update subject", func(tx *gorm.DB) error {
		res := tx.Model(&models.Subject{}).
			Where("id = ? AND created_by = ?", id, teacherID).
			Update("name", name)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrSubjectNotFound
		}
		return nil
	})
}

func (s *SubjectService) Delete(id, teacherID uint) error {
	return s.store.RunWrite("delete subject", func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND created_by = ?", id, teacherID).Delete(&models.Subject{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrSubjectNotFound
		}
		return nil
	})
}
