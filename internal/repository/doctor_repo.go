package repository

import (
	"errors"

	"clinic-appointment-backend/internal/models"

	"gorm.io/gorm"
)

type DoctorRepository struct {
	db *gorm.DB
}

func NewDoctorRepo(db *gorm.DB) *DoctorRepository {
	return &DoctorRepository{db: db}
}

// GetAllDoctors returns all doctors with their user and specialization
func (r *DoctorRepository) GetAllDoctors() ([]models.Doctor, error) {
	var doctors []models.Doctor
	err := r.db.Preload("User").Preload("Specialization").Find(&doctors).Error
	return doctors, err
}

// GetActiveDoctors returns doctors available for booking
func (r *DoctorRepository) GetActiveDoctors() ([]models.Doctor, error) {
	var doctors []models.Doctor
	err := r.db.Preload("User").Preload("Specialization").
		Where("status = ?", models.DoctorActive).
		Find(&doctors).Error
	return doctors, err
}

// GetDoctorsBySpecialization returns active doctors for one specialization
func (r *DoctorRepository) GetDoctorsBySpecialization(specializationID uint) ([]models.Doctor, error) {
	var doctors []models.Doctor
	err := r.db.Preload("User").Preload("Specialization").
		Where("specialization_id = ? AND status = ?", specializationID, models.DoctorActive).
		Find(&doctors).Error
	return doctors, err
}

// GetDoctorByID returns one doctor with preloaded relations
func (r *DoctorRepository) GetDoctorByID(id uint) (*models.Doctor, error) {
	var doctor models.Doctor
	err := r.db.Preload("User").Preload("Specialization").First(&doctor, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &doctor, nil
}

// GetDoctorByUserID returns the doctor profile owned by a user account
func (r *DoctorRepository) GetDoctorByUserID(userID uint) (*models.Doctor, error) {
	var doctor models.Doctor
	err := r.db.Preload("User").Preload("Specialization").
		Where("user_id = ?", userID).
		First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &doctor, nil
}

// UpdateRating stores a recomputed rolling rating
func (r *DoctorRepository) UpdateRating(id uint, rating float64) error {
	return r.db.Model(&models.Doctor{}).
		Where("id = ?", id).
		Update("rating", rating).Error
}
