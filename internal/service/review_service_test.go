package service

import (
	"errors"
	"testing"

	"clinic-appointment-backend/internal/models"
)

func TestLeaveReview(t *testing.T) {
	env := newTestEnv(t)
	patient := env.createUser(t, "p@clinic.local", models.RolePatient, true)
	doctor := env.createDoctor(t, "d@clinic.local", models.DoctorActive)
	appointment := env.createAppointment(t, patient.ID, doctor.ID, day("2025-01-10"), "09:00", models.StatusCompleted)

	review, err := env.reviews.LeaveReview(patient.ID, appointment.ID, 4, "helpful visit")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if review.Approved {
		t.Error("new reviews must start unapproved")
	}

	// Unapproved reviews stay off the doctor's public profile.
	public, err := env.reviews.ListForDoctor(doctor.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(public) != 0 {
		t.Errorf("expected no approved reviews yet, got %d", len(public))
	}

	pending, err := env.reviews.ListPending()
	if err != nil {
		t.Fatalf("pending list failed: %v", err)
	}
	if len(pending) != 1 {
		t.Errorf("expected 1 pending review, got %d", len(pending))
	}
}

func TestLeaveReview_Rejections(t *testing.T) {
	env := newTestEnv(t)
	patient := env.createUser(t, "p@clinic.local", models.RolePatient, true)
	stranger := env.createUser(t, "p2@clinic.local", models.RolePatient, true)
	doctor := env.createDoctor(t, "d@clinic.local", models.DoctorActive)
	completed := env.createAppointment(t, patient.ID, doctor.ID, day("2025-01-10"), "09:00", models.StatusCompleted)
	scheduled := env.createAppointment(t, patient.ID, doctor.ID, day("2025-01-10"), "10:00", models.StatusScheduled)

	tests := []struct {
		name          string
		patientID     uint
		appointmentID uint
		rating        int
		wantErr       error
	}{
		{"rating too low", patient.ID, completed.ID, 0, ErrInvalidRating},
		{"rating too high", patient.ID, completed.ID, 6, ErrInvalidRating},
		{"unknown appointment", patient.ID, 9999, 4, ErrAppointmentNotFound},
		{"someone else's appointment", stranger.ID, completed.ID, 4, ErrNotAppointmentOwner},
		{"not completed yet", patient.ID, scheduled.ID, 4, ErrReviewNotCompleted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := env.reviews.LeaveReview(tt.patientID, tt.appointmentID, tt.rating, "c"); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLeaveReview_OnePerAppointment(t *testing.T) {
	env := newTestEnv(t)
	patient := env.createUser(t, "p@clinic.local", models.RolePatient, true)
	doctor := env.createDoctor(t, "d@clinic.local", models.DoctorActive)
	appointment := env.createAppointment(t, patient.ID, doctor.ID, day("2025-01-10"), "09:00", models.StatusCompleted)

	if _, err := env.reviews.LeaveReview(patient.ID, appointment.ID, 5, "great"); err != nil {
		t.Fatalf("first review failed: %v", err)
	}
	if _, err := env.reviews.LeaveReview(patient.ID, appointment.ID, 1, "changed my mind"); !errors.Is(err, ErrReviewExists) {
		t.Errorf("expected ErrReviewExists, got %v", err)
	}
}

func TestApprove_UpdatesDoctorRating(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "a@clinic.local", models.RoleAdmin, true)
	patient := env.createUser(t, "p@clinic.local", models.RolePatient, true)
	doctor := env.createDoctor(t, "d@clinic.local", models.DoctorActive)

	first := env.createAppointment(t, patient.ID, doctor.ID, day("2025-01-10"), "09:00", models.StatusCompleted)
	second := env.createAppointment(t, patient.ID, doctor.ID, day("2025-01-11"), "09:00", models.StatusCompleted)

	r1, err := env.reviews.LeaveReview(patient.ID, first.ID, 5, "excellent")
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}
	r2, err := env.reviews.LeaveReview(patient.ID, second.ID, 3, "fine")
	if err != nil {
		t.Fatalf("review failed: %v", err)
	}

	if err := env.reviews.Approve(r1.ID, admin.ID); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	reloaded, _ := env.doctorRepo.GetDoctorByID(doctor.ID)
	if reloaded.Rating != 5 {
		t.Errorf("expected rating 5 after first approval, got %.2f", reloaded.Rating)
	}

	if err := env.reviews.Approve(r2.ID, admin.ID); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	reloaded, _ = env.doctorRepo.GetDoctorByID(doctor.ID)
	if reloaded.Rating != 4 {
		t.Errorf("expected rating 4 over both approvals, got %.2f", reloaded.Rating)
	}

	public, err := env.reviews.ListForDoctor(doctor.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(public) != 2 {
		t.Errorf("expected 2 approved reviews, got %d", len(public))
	}
}
