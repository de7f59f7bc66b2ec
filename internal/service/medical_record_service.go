package service

import (
	"fmt"

	"clinic-appointment-backend/internal/models"
	"clinic-appointment-backend/internal/repository"
)

// MedicalRecordService exposes patients' medical records. Patients see and
// edit their own; doctors and admins can read any patient's record.
type MedicalRecordService struct {
	recordRepo *repository.MedicalRecordRepository
}

func NewMedicalRecordService(recordRepo *repository.MedicalRecordRepository) *MedicalRecordService {
	return &MedicalRecordService{recordRepo: recordRepo}
}

// GetForPatient reads a patient's record with role-based access control
func (s *MedicalRecordService) GetForPatient(patientID, requesterID uint, requesterRole models.Role) (*models.MedicalRecord, error) {
	if requesterRole == models.RolePatient && patientID != requesterID {
		return nil, ErrNotAppointmentOwner
	}
	record, err := s.recordRepo.GetByPatientID(patientID)
	if err != nil {
		return nil, ErrRecordNotFound
	}
	return record, nil
}

// UpdateOwn lets a patient update their own record fields. Empty fields
// keep their current value.
func (s *MedicalRecordService) UpdateOwn(patientID uint, bloodType, allergies, chronicConditions string) (*models.MedicalRecord, error) {
	record, err := s.recordRepo.GetByPatientID(patientID)
	if err != nil {
		return nil, ErrRecordNotFound
	}

	if bloodType != "" {
		record.BloodType = bloodType
	}
	if allergies != "" {
		record.Allergies = allergies
	}
	if chronicConditions != "" {
		record.ChronicConditions = chronicConditions
	}

	if err := s.recordRepo.Update(record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return record, nil
}
