package services

import (
	"classquiz/models"
	"classquiz/store"

	"gorm.io/gorm"
)

type GameTypeService struct {
	store *store.Store
}

func NewGameTypeService(st *store.Store) *GameTypeService {
	return &GameTypeService{store: st}
}

func (s *GameTypeService) List(teacherID uint) ([]models.GameType, error) {
	var types []models.GameType
	err := s.store.DB().Where("created_by = ?", teacherID).Find(&types).Error
	return types, err
}

func (s *GameTypeService) Create(name string, teacherID uint) (uint, error) {
	var existing models.GameType
	err := s.store.DB().Where("name = ? AND created_by = ?", name, teacherID).First(&existing).Error
	if err == nil {
		return 0, ErrGameTypeExists
	}
	if !store.IsNotFound(err) {
		return 0, err
	}

	gameType := models.GameType{Name: name, CreatedBy: teacherID}
	err = s.store.RunWrite("create game type", func(tx *gorm.DB) error {
		return tx.Create(&gameType).Error
	})
	if err != nil {
		return 0, err
	}
	return gameType.ID, nil
}

func (s *GameTypeService) Update(id uint, name string, teacherID uint) error {
	var existing models.GameType
	err := s.store.DB().
		Where("name = ? AND created_by = ? AND id != ?", name, teacherID, id).
		First(&existing).Error
	if err == nil {
		return ErrGameTypeExists
	}
	if !store.IsNotFound(err) {
		return err
	}

	return s.store.RunWrite("update game type", func(tx *gorm.DB) error {
		res := tx.Model(&models.GameType{}).
			Where("id = ? AND created_by = ?", id, teacherID).
			Update("name", name)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrGameTypeNotFound
		}
		return nil
	})
}

func (s *GameTypeService) Delete(id, teacherID uint) error {
	return s.store.RunWrite("delete game type", func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND created_by = ?", id, teacherID).Delete(&models.GameType{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrGameTypeNotFound
		}
		return nil
	})
}
