package repository

import (
	"errors"
	"time"

	"clinic-appointment-backend/internal/models"

	"gorm.io/gorm"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepo(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// CreateAppointment inserts a new appointment
func (r *AppointmentRepository) CreateAppointment(a *models.Appointment) error {
	return r.db.Create(a).Error
}

// GetAppointmentByID returns one appointment with preloaded relations
func (r *AppointmentRepository) GetAppointmentByID(id uint) (*models.Appointment, error) {
	var a models.Appointment
	err := r.db.Preload("Patient").
		Preload("Doctor").
		Preload("Doctor.User").
		Preload("Doctor.Specialization").
		First(&a, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// GetPatientAppointments lists a patient's appointments, newest day first,
// earliest time first within a day
func (r *AppointmentRepository) GetPatientAppointments(patientID uint) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.Preload("Doctor").
		Preload("Doctor.User").
		Preload("Doctor.Specialization").
		Where("patient_id = ?", patientID).
		Order("date DESC").
		Order("time_of_day ASC").
		Find(&appointments).Error
	return appointments, err
}

// GetDoctorAppointments lists a doctor's appointments, newest day first,
// earliest time first within a day
func (r *AppointmentRepository) GetDoctorAppointments(doctorID uint) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.Preload("Patient").
		Where("doctor_id = ?", doctorID).
		Order("date DESC").
		Order("time_of_day ASC").
		Find(&appointments).Error
	return appointments, err
}

// GetAppointmentsByDate lists appointments for one day ordered by time,
// optionally restricted to a single doctor
func (r *AppointmentRepository) GetAppointmentsByDate(date time.Time, doctorID *uint) ([]models.Appointment, error) {
	query := r.db.Preload("Patient").
		Preload("Doctor").
		Preload("Doctor.User").
		Where("date = ?", models.DateOnly(date))
	if doctorID != nil {
		query = query.Where("doctor_id = ?", *doctorID)
	}

	var appointments []models.Appointment
	err := query.Order("time_of_day ASC").Find(&appointments).Error
	return appointments, err
}

// IsSlotFree reports whether no active (non-cancelled) appointment occupies
// the (doctor, date, time) slot. Time equality is exact; slots are discrete
// points on the booking grid, not intervals.
func (r *AppointmentRepository) IsSlotFree(doctorID uint, date time.Time, timeOfDay string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Appointment{}).
		Where("doctor_id = ? AND date = ? AND time_of_day = ? AND status != ?",
			doctorID, models.DateOnly(date), timeOfDay, models.StatusCancelled).
		Count(&count).Error
	return count == 0, err
}

// Save persists status and field changes on an existing appointment
func (r *AppointmentRepository) Save(a *models.Appointment) error {
	return r.db.Save(a).Error
}

// GetStalePendingCancellations lists appointments stuck in pending_cancel
// since before the cutoff
func (r *AppointmentRepository) GetStalePendingCancellations(cutoff time.Time) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.Where("status = ? AND updated_at < ?", models.StatusPendingCancel, cutoff).
		Find(&appointments).Error
	return appointments, err
}
