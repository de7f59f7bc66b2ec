package repository

import (
	"errors"

	"clinic-appointment-backend/internal/models"

	"gorm.io/gorm"
)

type SpecializationRepository struct {
	db *gorm.DB
}

func NewSpecializationRepo(db *gorm.DB) *SpecializationRepository {
	return &SpecializationRepository{db: db}
}

// GetAll returns all specializations ordered by name
func (r *SpecializationRepository) GetAll() ([]models.Specialization, error) {
	var specs []models.Specialization
	err := r.db.Order("name").Find(&specs).Error
	return specs, err
}

// GetByID returns one specialization
func (r *SpecializationRepository) GetByID(id uint) (*models.Specialization, error) {
	var spec models.Specialization
	err := r.db.First(&spec, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &spec, nil
}
