package repository

import (
	"errors"

	"clinic-appointment-backend/internal/models"

	"gorm.io/gorm"
)

type MedicalRecordRepository struct {
	db *gorm.DB
}

func NewMedicalRecordRepo(db *gorm.DB) *MedicalRecordRepository {
	return &MedicalRecordRepository{db: db}
}

// CreateRecord creates a medical record for a patient
func (r *MedicalRecordRepository) CreateRecord(record *models.MedicalRecord) error {
	return r.db.Create(record).Error
}

// GetByPatientID returns the record belonging to a patient
func (r *MedicalRecordRepository) GetByPatientID(patientID uint) (*models.MedicalRecord, error) {
	var record models.MedicalRecord
	err := r.db.Preload("Patient").
		Where("patient_id = ?", patientID).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// Update saves changes to a medical record
func (r *MedicalRecordRepository) Update(record *models.MedicalRecord) error {
	return r.db.Save(record).Error
}
