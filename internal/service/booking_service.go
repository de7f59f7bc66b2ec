package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"clinic-appointment-backend/internal/models"
	"clinic-appointment-backend/internal/repository"

	"gorm.io/gorm"
)

// BookingService orchestrates appointment creation: patient and doctor
// validation, date and working-hours checks, the slot conflict check and
// the final insert. Validation short-circuits on the first failure.
type BookingService struct {
	appointmentRepo *repository.AppointmentRepository
	userRepo        *repository.UserRepository
	doctorRepo      *repository.DoctorRepository
	scheduleRepo    *repository.ScheduleRepository
	auditRepo       *repository.AuditRepository
	now             func() time.Time
}

func NewBookingService(
	appointmentRepo *repository.AppointmentRepository,
	userRepo *repository.UserRepository,
	doctorRepo *repository.DoctorRepository,
	scheduleRepo *repository.ScheduleRepository,
	auditRepo *repository.AuditRepository,
) *BookingService {
	return &BookingService{
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
		doctorRepo:      doctorRepo,
		scheduleRepo:    scheduleRepo,
		auditRepo:       auditRepo,
		now:             time.Now,
	}
}

// SetClock overrides the time source. Used by tests.
func (s *BookingService) SetClock(now func() time.Time) {
	s.now = now
}

// CreateAppointment books a slot for a patient. Validation order, first
// failure wins:
//  1. patient exists, role patient, active
//  2. doctor exists and active
//  3. date not before today
//  4. time inside the doctor's declared working hours (when a schedule exists)
//  5. slot free among non-cancelled appointments
func (s *BookingService) CreateAppointment(patientID, doctorID uint, date time.Time, timeOfDay, symptoms string) (*models.Appointment, error) {
	timeOfDay, err := models.ParseTimeOfDay(timeOfDay)
	if err != nil {
		return nil, fmt.Errorf("invalid appointment time: %w", err)
	}
	date = models.DateOnly(date)

	patient, err := s.userRepo.FindUserByID(patientID)
	if err != nil || patient.Role != models.RolePatient || !patient.Active {
		return nil, ErrPatientNotFound
	}

	doctor, err := s.doctorRepo.GetDoctorByID(doctorID)
	if err != nil || doctor.Status != models.DoctorActive {
		return nil, ErrDoctorNotFound
	}

	if date.Before(models.DateOnly(s.now())) {
		return nil, ErrDateInPast
	}

	if err := s.checkWorkingHours(doctorID, date, timeOfDay); err != nil {
		return nil, err
	}

	free, err := s.appointmentRepo.IsSlotFree(doctorID, date, timeOfDay)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if !free {
		return nil, ErrSlotTaken
	}

	appointment := &models.Appointment{
		PatientID: patientID,
		DoctorID:  doctorID,
		Date:      date,
		TimeOfDay: timeOfDay,
		Status:    models.StatusScheduled,
		Symptoms:  symptoms,
	}
	if err := s.appointmentRepo.CreateAppointment(appointment); err != nil {
		// A concurrent booking can slip between the conflict check and the
		// insert; the partial unique index turns that race into a
		// duplicate-key error, which is still just a taken slot.
		if isDuplicateSlot(err) {
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	details := fmt.Sprintf("Appointment %d booked with doctor %d on %s %s",
		appointment.ID, doctorID, date.Format("2006-01-02"), timeOfDay)
	_ = s.auditRepo.CreateAuditLog(&patientID, "appointment_booked", details)

	return appointment, nil
}

// checkWorkingHours rejects times outside the doctor's declared schedule.
// A doctor with no active schedule at all accepts any time; once a schedule
// exists, the requested weekday must have a covering slot.
func (s *BookingService) checkWorkingHours(doctorID uint, date time.Time, timeOfDay string) error {
	total, err := s.scheduleRepo.CountDoctorSlots(doctorID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if total == 0 {
		return nil
	}

	slots, err := s.scheduleRepo.GetDoctorSlotsForWeekday(doctorID, date.Weekday())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	for i := range slots {
		if slots[i].Covers(timeOfDay) {
			return nil
		}
	}
	return ErrScheduleClosed
}

func isDuplicateSlot(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")
}
