package repository

import (
	"errors"
	"time"

	"clinic-appointment-backend/internal/models"

	"gorm.io/gorm"
)

type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepo(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// GetAll returns every schedule slot with doctor info, for the admin view
func (r *ScheduleRepository) GetAll() ([]models.ScheduleSlot, error) {
	var slots []models.ScheduleSlot
	err := r.db.Preload("Doctor").
		Preload("Doctor.User").
		Preload("Doctor.Specialization").
		Order("doctor_id").
		Order("weekday").
		Order("start_time").
		Find(&slots).Error
	return slots, err
}

// GetByID returns one schedule slot
func (r *ScheduleRepository) GetByID(id uint) (*models.ScheduleSlot, error) {
	var slot models.ScheduleSlot
	err := r.db.First(&slot, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &slot, nil
}

// GetDoctorSlots returns a doctor's active slots ordered by weekday
func (r *ScheduleRepository) GetDoctorSlots(doctorID uint) ([]models.ScheduleSlot, error) {
	var slots []models.ScheduleSlot
	err := r.db.Where("doctor_id = ? AND active = ?", doctorID, true).
		Order("weekday").
		Order("start_time").
		Find(&slots).Error
	return slots, err
}

// GetDoctorSlotsForWeekday returns a doctor's active slots for one weekday
func (r *ScheduleRepository) GetDoctorSlotsForWeekday(doctorID uint, weekday time.Weekday) ([]models.ScheduleSlot, error) {
	var slots []models.ScheduleSlot
	err := r.db.Where("doctor_id = ? AND weekday = ? AND active = ?", doctorID, weekday, true).
		Find(&slots).Error
	return slots, err
}

// CountDoctorSlots counts all active slots a doctor has, any weekday
func (r *ScheduleRepository) CountDoctorSlots(doctorID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.ScheduleSlot{}).
		Where("doctor_id = ? AND active = ?", doctorID, true).
		Count(&count).Error
	return count, err
}

// Create inserts a new schedule slot
func (r *ScheduleRepository) Create(slot *models.ScheduleSlot) error {
	return r.db.Create(slot).Error
}

// Update saves changes to an existing slot
func (r *ScheduleRepository) Update(slot *models.ScheduleSlot) error {
	return r.db.Save(slot).Error
}

// Delete removes a slot
func (r *ScheduleRepository) Delete(id uint) error {
	return r.db.Delete(&models.ScheduleSlot{}, id).Error
}

// SetActive toggles a slot without touching its times
func (r *ScheduleRepository) SetActive(id uint, active bool) error {
	return r.db.Model(&models.ScheduleSlot{}).
		Where("id = ?", id).
		Update("active", active).Error
}
