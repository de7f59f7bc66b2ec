package service

import (
	"fmt"
	"time"

	"clinic-appointment-backend/internal/models"
	"clinic-appointment-backend/internal/repository"
	"clinic-appointment-backend/internal/statemachine"
)

// AppointmentService handles queries over existing appointments and their
// status lifecycle: cancel, request-cancel, confirm-cancel, complete.
// Every transition goes through the statemachine table.
type AppointmentService struct {
	appointmentRepo *repository.AppointmentRepository
	doctorRepo      *repository.DoctorRepository
	auditRepo       *repository.AuditRepository
}

func NewAppointmentService(
	appointmentRepo *repository.AppointmentRepository,
	doctorRepo *repository.DoctorRepository,
	auditRepo *repository.AuditRepository,
) *AppointmentService {
	return &AppointmentService{
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		auditRepo:       auditRepo,
	}
}

// GetPatientAppointments lists the appointments belonging to a patient
func (s *AppointmentService) GetPatientAppointments(patientID uint) ([]models.Appointment, error) {
	return s.appointmentRepo.GetPatientAppointments(patientID)
}

// GetDoctorAppointmentsForUser lists the appointments of the doctor profile
// owned by the given user account
func (s *AppointmentService) GetDoctorAppointmentsForUser(userID uint) ([]models.Appointment, error) {
	doctor, err := s.doctorRepo.GetDoctorByUserID(userID)
	if err != nil {
		return nil, ErrDoctorNotFound
	}
	return s.appointmentRepo.GetDoctorAppointments(doctor.ID)
}

// GetAppointmentsByDate lists one day's appointments, optionally for a
// single doctor. Admin view.
func (s *AppointmentService) GetAppointmentsByDate(date time.Time, doctorID *uint) ([]models.Appointment, error) {
	return s.appointmentRepo.GetAppointmentsByDate(date, doctorID)
}

// Cancel moves an appointment straight to cancelled. Patients may cancel
// their own scheduled appointments, admins any; the reason is mandatory and
// is appended to the symptoms field for audit.
func (s *AppointmentService) Cancel(id uint, role models.Role, userID uint, reason string) (*models.Appointment, error) {
	appointment, err := s.appointmentRepo.GetAppointmentByID(id)
	if err != nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.Status == models.StatusCancelled {
		return nil, ErrAlreadyCancelled
	}
	if reason == "" {
		return nil, ErrReasonRequired
	}
	if role == models.RolePatient && appointment.PatientID != userID {
		return nil, ErrNotAppointmentOwner
	}

	actor := statemachine.ActorForRole(role)
	if err := statemachine.CanTransition(appointment.Status, models.StatusCancelled, actor); err != nil {
		return nil, err
	}

	appointment.Status = models.StatusCancelled
	appointment.Symptoms = fmt.Sprintf("%s (Cancellation reason: %s)", appointment.Symptoms, reason)
	if err := s.appointmentRepo.Save(appointment); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	_ = s.auditRepo.CreateAuditLog(&userID, "appointment_cancelled",
		fmt.Sprintf("Appointment %d cancelled: %s", appointment.ID, reason))

	return appointment, nil
}

// RequestCancel flags a scheduled appointment as pending_cancel on behalf
// of its patient; the doctor (or the sweeper) finalizes it later.
func (s *AppointmentService) RequestCancel(id, patientID uint, reason string) (*models.Appointment, error) {
	appointment, err := s.appointmentRepo.GetAppointmentByID(id)
	if err != nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.Status == models.StatusCancelled {
		return nil, ErrAlreadyCancelled
	}
	if reason == "" {
		return nil, ErrReasonRequired
	}
	if appointment.PatientID != patientID {
		return nil, ErrNotAppointmentOwner
	}

	if err := statemachine.CanTransition(appointment.Status, models.StatusPendingCancel, statemachine.ActorPatient); err != nil {
		return nil, err
	}

	appointment.Status = models.StatusPendingCancel
	appointment.Symptoms = fmt.Sprintf("%s (Cancellation requested: %s)", appointment.Symptoms, reason)
	if err := s.appointmentRepo.Save(appointment); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	_ = s.auditRepo.CreateAuditLog(&patientID, "appointment_cancel_requested",
		fmt.Sprintf("Appointment %d flagged for cancellation: %s", appointment.ID, reason))

	return appointment, nil
}

// ConfirmCancel finalizes a pending cancellation. Doctors confirm for their
// own appointments, admins for any.
func (s *AppointmentService) ConfirmCancel(id uint, role models.Role, userID uint) (*models.Appointment, error) {
	appointment, err := s.appointmentRepo.GetAppointmentByID(id)
	if err != nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.Status == models.StatusCancelled {
		return nil, ErrAlreadyCancelled
	}
	if role == models.RoleDoctor {
		if err := s.requireOwningDoctor(appointment, userID); err != nil {
			return nil, err
		}
	}

	actor := statemachine.ActorForRole(role)
	if err := statemachine.CanTransition(appointment.Status, models.StatusCancelled, actor); err != nil {
		return nil, err
	}

	appointment.Status = models.StatusCancelled
	if err := s.appointmentRepo.Save(appointment); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	_ = s.auditRepo.CreateAuditLog(&userID, "appointment_cancel_confirmed",
		fmt.Sprintf("Appointment %d cancellation confirmed", appointment.ID))

	return appointment, nil
}

// Complete closes a scheduled appointment with a diagnosis. Only the owning
// doctor may complete; recommendations are optional, diagnosis is not.
func (s *AppointmentService) Complete(id, doctorUserID uint, diagnosis, recommendations string) (*models.Appointment, error) {
	appointment, err := s.appointmentRepo.GetAppointmentByID(id)
	if err != nil {
		return nil, ErrAppointmentNotFound
	}
	if diagnosis == "" {
		return nil, ErrDiagnosisRequired
	}
	if err := s.requireOwningDoctor(appointment, doctorUserID); err != nil {
		return nil, err
	}

	if err := statemachine.CanTransition(appointment.Status, models.StatusCompleted, statemachine.ActorDoctor); err != nil {
		return nil, err
	}

	appointment.Status = models.StatusCompleted
	appointment.Diagnosis = diagnosis
	appointment.Recommendations = recommendations
	if err := s.appointmentRepo.Save(appointment); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	_ = s.auditRepo.CreateAuditLog(&doctorUserID, "appointment_completed",
		fmt.Sprintf("Appointment %d completed", appointment.ID))

	return appointment, nil
}

func (s *AppointmentService) requireOwningDoctor(appointment *models.Appointment, userID uint) error {
	doctor, err := s.doctorRepo.GetDoctorByUserID(userID)
	if err != nil {
		return ErrDoctorNotFound
	}
	if appointment.DoctorID != doctor.ID {
		return ErrNotAppointmentOwner
	}
	return nil
}
