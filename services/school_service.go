package services

import (
	"strings"

	"classquiz/models"
	"classquiz/store"

	"gorm.io/gorm"
)

type SchoolService struct {
	store *store.Store
}

func NewSchoolService(st *store.Store) *SchoolService {
	return &SchoolService{store: st}
}

func (s *SchoolService) List() ([]models.School, error) {
	var schools []models.School
	err := s.store.DB().Find(&schools).Error
	return schools, err
}

func (s *SchoolService) Create(name, address string) (uint, error) {
	school := models.School{Name: strings.TrimSpace(name), Address: strings.TrimSpace(address)}
	err := s.store.RunWrite("create school", func(tx *gorm.DB) error {
		return tx.Create(&school).Error
	})
	if err != nil {
		return 0, err
	}
	return school.ID, nil
}

func (s *SchoolService) Update(id uint, name, address string) error {
	return s.store.RunWrite("update school", func(tx *gorm.DB) error {
		res := tx.Model(&models.School{}).Where("id = ?", id).Updates(map[string]interface{}{
			"name":    strings.TrimSpace(name),
			"address": strings.TrimSpace(address),
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrSchoolNotFound
		}
		return nil
	})
}

func (s *SchoolService) Delete(id uint) error {
	return s.store.RunWrite("delete school", func(tx *gorm.DB) error {
		res := tx.Delete(&models.School{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrSchoolNotFound
		}
		return nil
	})
}
