package services

import (
	"classquiz/models"
	"classquiz/store"

	"gorm.io/gorm"
)

type RoleService struct {
	store *store.Store
}

func NewRoleService(st *store.Store) *RoleService {
	return &RoleService{store: st}
}

func (s *RoleService) List() ([]models.Role, error) {
	var roles []models.Role
	err := s.store.DB().Find(&roles).Error
	return roles, err
}

func (s *RoleService) Create(name string) (uint, error) {
	role := models.Role{Name: name}
	err := s.store.RunWrite("create role", func(tx *gorm.DB) error {
		return tx.Create(&role).Error
	})
	if err != nil {
		return 0, err
	}
	return role.ID, nil
}

func (s *RoleService) Update(id uint, name string) error {
	return s.store.RunWrite("update role", func(tx *gorm.DB) error {
		res := tx.Model(&models.Role{}).Where("id = ?", id).Update("name", name)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRoleNotFound
		}
		return nil
	})
}

func (s *RoleService) Delete(id uint) error {
	return s.store.RunWrite("delete role", func(tx *gorm.DB) error {
		res := tx.Delete(&models.Role{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRoleNotFound
		}
		return nil
	})
}
