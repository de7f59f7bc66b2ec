package service

import (
	"fmt"
	"time"

	"clinic-appointment-backend/internal/models"
	"clinic-appointment-backend/internal/repository"
)

// ScheduleService is the admin schedule manager: CRUD over doctors'
// weekly working windows.
type ScheduleService struct {
	scheduleRepo *repository.ScheduleRepository
	doctorRepo   *repository.DoctorRepository
	auditRepo    *repository.AuditRepository
}

func NewScheduleService(
	scheduleRepo *repository.ScheduleRepository,
	doctorRepo *repository.DoctorRepository,
	auditRepo *repository.AuditRepository,
) *ScheduleService {
	return &ScheduleService{
		scheduleRepo: scheduleRepo,
		doctorRepo:   doctorRepo,
		auditRepo:    auditRepo,
	}
}

// ListAll returns every slot for the admin view
func (s *ScheduleService) ListAll() ([]models.ScheduleSlot, error) {
	return s.scheduleRepo.GetAll()
}

// ListForDoctor returns a doctor's active schedule, for the booking UI
func (s *ScheduleService) ListForDoctor(doctorID uint) ([]models.ScheduleSlot, error) {
	if _, err := s.doctorRepo.GetDoctorByID(doctorID); err != nil {
		return nil, ErrDoctorNotFound
	}
	return s.scheduleRepo.GetDoctorSlots(doctorID)
}

// Create validates and inserts a new schedule slot
func (s *ScheduleService) Create(slot *models.ScheduleSlot, adminID uint) error {
	if _, err := s.doctorRepo.GetDoctorByID(slot.DoctorID); err != nil {
		return ErrDoctorNotFound
	}
	if err := validateSlotWindow(slot); err != nil {
		return err
	}
	if err := s.scheduleRepo.Create(slot); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	_ = s.auditRepo.CreateAuditLog(&adminID, "schedule_created",
		fmt.Sprintf("Slot %d for doctor %d: %s %s-%s", slot.ID, slot.DoctorID, slot.Weekday, slot.StartTime, slot.EndTime))
	return nil
}

// Update validates and saves changes to an existing slot
func (s *ScheduleService) Update(id uint, updated *models.ScheduleSlot, adminID uint) (*models.ScheduleSlot, error) {
	slot, err := s.scheduleRepo.GetByID(id)
	if err != nil {
		return nil, ErrScheduleSlotNotFound
	}
	if err := validateSlotWindow(updated); err != nil {
		return nil, err
	}

	slot.DoctorID = updated.DoctorID
	slot.Weekday = updated.Weekday
	slot.StartTime = updated.StartTime
	slot.EndTime = updated.EndTime
	slot.BreakStart = updated.BreakStart
	slot.BreakEnd = updated.BreakEnd
	slot.Active = updated.Active
	if err := s.scheduleRepo.Update(slot); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	_ = s.auditRepo.CreateAuditLog(&adminID, "schedule_updated",
		fmt.Sprintf("Slot %d updated", slot.ID))
	return slot, nil
}

// Delete removes a slot
func (s *ScheduleService) Delete(id, adminID uint) error {
	if _, err := s.scheduleRepo.GetByID(id); err != nil {
		return ErrScheduleSlotNotFound
	}
	if err := s.scheduleRepo.Delete(id); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	_ = s.auditRepo.CreateAuditLog(&adminID, "schedule_deleted",
		fmt.Sprintf("Slot %d deleted", id))
	return nil
}

// SetActive toggles a slot on or off without deleting it
func (s *ScheduleService) SetActive(id uint, active bool, adminID uint) error {
	if _, err := s.scheduleRepo.GetByID(id); err != nil {
		return ErrScheduleSlotNotFound
	}
	if err := s.scheduleRepo.SetActive(id, active); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	_ = s.auditRepo.CreateAuditLog(&adminID, "schedule_toggled",
		fmt.Sprintf("Slot %d active=%v", id, active))
	return nil
}

func validateSlotWindow(slot *models.ScheduleSlot) error {
	if slot.Weekday < time.Sunday || slot.Weekday > time.Saturday {
		return ErrInvalidTimeWindow
	}

	start, err := models.ParseTimeOfDay(slot.StartTime)
	if err != nil {
		return ErrInvalidTimeWindow
	}
	end, err := models.ParseTimeOfDay(slot.EndTime)
	if err != nil {
		return ErrInvalidTimeWindow
	}
	if start >= end {
		return ErrInvalidTimeWindow
	}
	slot.StartTime, slot.EndTime = start, end

	// Break is optional but must be set as a pair inside the window.
	if slot.BreakStart == "" && slot.BreakEnd == "" {
		return nil
	}
	bs, err := models.ParseTimeOfDay(slot.BreakStart)
	if err != nil {
		return ErrInvalidTimeWindow
	}
	be, err := models.ParseTimeOfDay(slot.BreakEnd)
	if err != nil {
		return ErrInvalidTimeWindow
	}
	if bs >= be || bs < start || be > end {
		return ErrInvalidTimeWindow
	}
	slot.BreakStart, slot.BreakEnd = bs, be
	return nil
}
