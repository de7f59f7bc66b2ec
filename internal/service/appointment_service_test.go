package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"clinic-appointment-backend/internal/models"
	"clinic-appointment-backend/internal/statemachine"
)

func TestCancel(t *testing.T) {
	env := newTestEnv(t)
	patient := env.createUser(t, "p@clinic.local", models.RolePatient, true)
	doctor := env.createDoctor(t, "d@clinic.local", models.DoctorActive)
	appointment := env.createAppointment(t, patient.ID, doctor.ID, day("2025-01-10"), "09:00", models.StatusScheduled)

	got, err := env.appointments.Cancel(appointment.ID, models.RolePatient, patient.ID, "patient request")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != models.StatusCancelled {
		t.Errorf("expected cancelled, got %s", got.Status)
	}
	if !strings.Contains(got.Symptoms, "patient request") {
		t.Errorf("cancellation reason should be appended to symptoms, got %q", got.Symptoms)
	}
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	env := newTestEnv(t)
	patient := env.createUser(t, "p@clinic.local", models.RolePatient, true)
	doctor := env.createDoctor(t, "d@clinic.local", models.DoctorActive)
	appointment := env.createAppointment(t, patient.ID, doctor.ID, day("2025-01-10"), "09:00", models.StatusCancelled)

	_, err := env.appointments.Cancel(appointment.ID, models.RoleAdmin, 1, "again")
	if !errors.Is(err, ErrAlreadyCancelled) {
		t.Fatalf("expected ErrAlreadyCancelled, got %v", err)
	}

	// And no write happened.
	reloaded, err := env.apptRepo.GetAppointmentByID(appointment.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if strings.Contains(reloaded.Symptoms, "again") {
		t.Error("failed cancel must not modify the appointment")
	}
}

func TestCancel_ReasonRequired(t *testing.T) {
	env := newTestEnv(t)
	patient := env.createUser(t, "p@clinic.local", models.RolePatient, true)
	doctor := env.createDoctor(t, "d@clinic.local", models.DoctorActive)
	appointment := env.createAppointment(t, patient.ID, doctor.ID, day("2025-01-10"), "09:00", models.StatusScheduled)

	if _, err := env.appointments.Cancel(appointment.ID, models.RolePatient, patient.ID, ""); !errors.Is(err, ErrReasonRequired) {
		t.Errorf("expected ErrReasonRequired, got %v", err)
	}
}

func TestCancel_OwnershipAndActor(t *testing.T) {
	env := newTestEnv(t)
	patient := env.createUser(t, "p@clinic.local", models.RolePatient, true)
	stranger := env.createUser(t, "p2@clinic.local", models.RolePatient, true)
	doctor := env.createDoctor(t, "d@clinic.local", models.DoctorActive)
	appointment := env.createAppointment(t, patient.ID, doctor.ID, day("2025-01-10"), "09:00", models.StatusScheduled)

	if _, err := env.appointments.Cancel(appointment.ID, models.RolePatient, stranger.ID, "not mine"); !errors.Is(err, ErrNotAppointmentOwner) {
		t.Errorf("expected ErrNotAppointmentOwner, got %v", err)
	}

	// Doctors cannot cancel a scheduled appointment outright.
	if _, err := env.appointments.Cancel(appointment.ID, models.RoleDoctor, doctor.UserID, "no-show"); !errors.Is(err, statemachine.ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestRequestAndConfirmCancel(t *testing.T) {
	env := newTestEnv(t)
	patient := env.createUser(t, "p@clinic.local", models.RolePatient, true)
	doctor := env.createDoctor(t, "d@clinic.local", models.DoctorActive)
	appointment := env.createAppointment(t, patient.ID, doctor.ID, day("2025-01-10"), "09:00", models.StatusScheduled)

	flagged, err := env.appointments.RequestCancel(appointment.ID, patient.ID, "conflict at work")
	if err != nil {
		t.Fatalf("request cancel failed: %v", err)
	}
	if flagged.Status != models.StatusPendingCancel {
		t.Fatalf("expected pending_cancel, got %s", flagged.Status)
	}

	confirmed, err := env.appointments.ConfirmCancel(appointment.ID, models.RoleDoctor, doctor.UserID)
	if err != nil {
		t.Fatalf("confirm cancel failed: %v", err)
	}
	if confirmed.Status != models.StatusCancelled {
		t.Errorf("expected cancelled, got %s", confirmed.Status)
	}
}

func TestConfirmCancel_WrongDoctor(t *testing.T) {
	env := newTestEnv(t)
	patient := env.createUser(t, "p@clinic.local", models.RolePatient, true)
	doctor := env.createDoctor(t, "d@clinic.local", models.DoctorActive)
	other := env.createDoctor(t, "d2@clinic.local", models.DoctorActive)
	appointment := env.createAppointment(t, patient.ID, doctor.ID, day("2025-01-10"), "09:00", models.StatusPendingCancel)

	if _, err := env.appointments.ConfirmCancel(appointment.ID, models.RoleDoctor, other.UserID); !errors.Is(err, ErrNotAppointmentOwner) {
		t.Errorf("expected ErrNotAppointmentOwner, got %v", err)
	}
}

func TestComplete(t *testing.T) {
	env := newTestEnv(t)
	patient := env.createUser(t, "p@clinic.local", models.RolePatient, true)
	doctor := env.createDoctor(t, "d@clinic.local", models.DoctorActive)
	appointment := env.createAppointment(t, patient.ID, doctor.ID, day("2025-01-10"), "09:00", models.StatusScheduled)

	got, err := env.appointments.Complete(appointment.ID, doctor.UserID, "seasonal flu", "rest and fluids")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != models.StatusCompleted {
		t.Errorf("expected completed, got %s", got.Status)
	}
	if got.Diagnosis != "seasonal flu" || got.Recommendations != "rest and fluids" {
		t.Errorf("diagnosis/recommendations not stored: %q / %q", got.Diagnosis, got.Recommendations)
	}
}

func TestComplete_RequiresDiagnosis(t *testing.T) {
	env := newTestEnv(t)
	patient := env.createUser(t, "p@clinic.local", models.RolePatient, true)
	doctor := env.createDoctor(t, "d@clinic.local", models.DoctorActive)
	appointment := env.createAppointment(t, patient.ID, doctor.ID, day("2025-01-10"), "09:00", models.StatusScheduled)

	if _, err := env.appointments.Complete(appointment.ID, doctor.UserID, "", "rest"); !errors.Is(err, ErrDiagnosisRequired) {
		t.Fatalf("expected ErrDiagnosisRequired, got %v", err)
	}

	reloaded, err := env.apptRepo.GetAppointmentByID(appointment.ID)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if reloaded.Status != models.StatusScheduled {
		t.Errorf("status must stay scheduled on empty diagnosis, got %s", reloaded.Status)
	}
}

func TestComplete_TerminalStates(t *testing.T) {
	env := newTestEnv(t)
	patient := env.createUser(t, "p@clinic.local", models.RolePatient, true)
	doctor := env.createDoctor(t, "d@clinic.local", models.DoctorActive)

	times := map[models.AppointmentStatus]string{
		models.StatusCompleted: "09:00",
		models.StatusCancelled: "10:00",
	}
	for status, timeOfDay := range times {
		appointment := env.createAppointment(t, patient.ID, doctor.ID, day("2025-01-10"), timeOfDay, status)
		if _, err := env.appointments.Complete(appointment.ID, doctor.UserID, "diagnosis", ""); !errors.Is(err, statemachine.ErrInvalidTransition) {
			t.Errorf("completing a %s appointment: expected ErrInvalidTransition, got %v", status, err)
		}
	}
}

func TestSweeper(t *testing.T) {
	env := newTestEnv(t)
	patient := env.createUser(t, "p@clinic.local", models.RolePatient, true)
	doctor := env.createDoctor(t, "d@clinic.local", models.DoctorActive)

	stale := env.createAppointment(t, patient.ID, doctor.ID, day("2025-01-10"), "09:00", models.StatusPendingCancel)
	fresh := env.createAppointment(t, patient.ID, doctor.ID, day("2025-01-10"), "10:00", models.StatusPendingCancel)
	scheduled := env.createAppointment(t, patient.ID, doctor.ID, day("2025-01-10"), "11:00", models.StatusScheduled)

	sweeper := NewSweeperService(env.apptRepo, env.auditRepo, time.Minute, 48*time.Hour)

	// Nothing is old enough yet.
	sweeper.Sweep(time.Now())
	reloaded, _ := env.apptRepo.GetAppointmentByID(fresh.ID)
	if reloaded.Status != models.StatusPendingCancel {
		t.Fatalf("fresh pending cancellation swept too early")
	}

	// Three days later the pending ones are finalized.
	sweeper.Sweep(time.Now().Add(72 * time.Hour))
	for _, id := range []uint{stale.ID, fresh.ID} {
		reloaded, err := env.apptRepo.GetAppointmentByID(id)
		if err != nil {
			t.Fatalf("reload failed: %v", err)
		}
		if reloaded.Status != models.StatusCancelled {
			t.Errorf("appointment %d: expected cancelled after sweep, got %s", id, reloaded.Status)
		}
	}

	reloaded, _ = env.apptRepo.GetAppointmentByID(scheduled.ID)
	if reloaded.Status != models.StatusScheduled {
		t.Errorf("scheduled appointment must not be swept, got %s", reloaded.Status)
	}
}

func TestQueriesAreScoped(t *testing.T) {
	env := newTestEnv(t)
	patient := env.createUser(t, "p@clinic.local", models.RolePatient, true)
	other := env.createUser(t, "p2@clinic.local", models.RolePatient, true)
	doctor := env.createDoctor(t, "d@clinic.local", models.DoctorActive)

	env.createAppointment(t, patient.ID, doctor.ID, day("2025-01-10"), "09:00", models.StatusScheduled)
	env.createAppointment(t, other.ID, doctor.ID, day("2025-01-10"), "10:00", models.StatusScheduled)
	env.createAppointment(t, patient.ID, doctor.ID, day("2025-01-11"), "09:00", models.StatusScheduled)

	mine, err := env.appointments.GetPatientAppointments(patient.ID)
	if err != nil {
		t.Fatalf("patient query failed: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("expected 2 appointments for patient, got %d", len(mine))
	}
	// Newest day first.
	if len(mine) == 2 && !mine[0].Date.After(mine[1].Date) {
		t.Error("expected newest day first")
	}

	all, err := env.appointments.GetDoctorAppointmentsForUser(doctor.UserID)
	if err != nil {
		t.Fatalf("doctor query failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 appointments for doctor, got %d", len(all))
	}

	byDate, err := env.appointments.GetAppointmentsByDate(day("2025-01-10"), nil)
	if err != nil {
		t.Fatalf("by-date query failed: %v", err)
	}
	if len(byDate) != 2 {
		t.Errorf("expected 2 appointments on 2025-01-10, got %d", len(byDate))
	}
	if len(byDate) == 2 && byDate[0].TimeOfDay > byDate[1].TimeOfDay {
		t.Error("expected earliest time first for the day view")
	}
}
