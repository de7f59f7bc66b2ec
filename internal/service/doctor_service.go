package service

import (
	"clinic-appointment-backend/internal/models"
	"clinic-appointment-backend/internal/repository"
)

// DoctorService backs the public doctor directory: specializations and the
// doctors offered for booking.
type DoctorService struct {
	doctorRepo         *repository.DoctorRepository
	specializationRepo *repository.SpecializationRepository
}

func NewDoctorService(
	doctorRepo *repository.DoctorRepository,
	specializationRepo *repository.SpecializationRepository,
) *DoctorService {
	return &DoctorService{
		doctorRepo:         doctorRepo,
		specializationRepo: specializationRepo,
	}
}

// ListSpecializations returns the static specialization reference data
func (s *DoctorService) ListSpecializations() ([]models.Specialization, error) {
	return s.specializationRepo.GetAll()
}

// ListDoctors returns bookable doctors, optionally filtered by
// specialization. Admins use includeInactive to see the full roster.
func (s *DoctorService) ListDoctors(specializationID *uint, includeInactive bool) ([]models.Doctor, error) {
	if specializationID != nil {
		return s.doctorRepo.GetDoctorsBySpecialization(*specializationID)
	}
	if includeInactive {
		return s.doctorRepo.GetAllDoctors()
	}
	return s.doctorRepo.GetActiveDoctors()
}

// GetDoctor returns one doctor profile
func (s *DoctorService) GetDoctor(id uint) (*models.Doctor, error) {
	doctor, err := s.doctorRepo.GetDoctorByID(id)
	if err != nil {
		return nil, ErrDoctorNotFound
	}
	return doctor, nil
}
