package service

import (
	"errors"
	"testing"
	"time"

	"clinic-appointment-backend/internal/models"
)

func mondaySlot(doctorID uint) *models.ScheduleSlot {
	return &models.ScheduleSlot{
		DoctorID:  doctorID,
		Weekday:   time.Monday,
		StartTime: "09:00",
		EndTime:   "18:00",
		Active:    true,
	}
}

func TestScheduleCreate(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "a@clinic.local", models.RoleAdmin, true)
	doctor := env.createDoctor(t, "d@clinic.local", models.DoctorActive)

	slot := mondaySlot(doctor.ID)
	if err := env.schedules.Create(slot, admin.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	slots, err := env.schedules.ListForDoctor(doctor.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}

	unknown := mondaySlot(9999)
	if err := env.schedules.Create(unknown, admin.ID); !errors.Is(err, ErrDoctorNotFound) {
		t.Errorf("expected ErrDoctorNotFound, got %v", err)
	}
}

func TestScheduleCreate_WindowValidation(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "a@clinic.local", models.RoleAdmin, true)
	doctor := env.createDoctor(t, "d@clinic.local", models.DoctorActive)

	tests := []struct {
		name   string
		mutate func(*models.ScheduleSlot)
	}{
		{"start after end", func(s *models.ScheduleSlot) { s.StartTime, s.EndTime = "18:00", "09:00" }},
		{"start equals end", func(s *models.ScheduleSlot) { s.EndTime = s.StartTime }},
		{"malformed start", func(s *models.ScheduleSlot) { s.StartTime = "nine" }},
		{"break without end", func(s *models.ScheduleSlot) { s.BreakStart = "13:00" }},
		{"break outside window", func(s *models.ScheduleSlot) { s.BreakStart, s.BreakEnd = "08:00", "08:30" }},
		{"break past closing", func(s *models.ScheduleSlot) { s.BreakStart, s.BreakEnd = "17:30", "18:30" }},
		{"inverted break", func(s *models.ScheduleSlot) { s.BreakStart, s.BreakEnd = "14:00", "13:00" }},
		{"weekday out of range", func(s *models.ScheduleSlot) { s.Weekday = time.Weekday(7) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot := mondaySlot(doctor.ID)
			tt.mutate(slot)
			if err := env.schedules.Create(slot, admin.ID); !errors.Is(err, ErrInvalidTimeWindow) {
				t.Errorf("expected ErrInvalidTimeWindow, got %v", err)
			}
		})
	}
}

func TestScheduleUpdateAndDelete(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "a@clinic.local", models.RoleAdmin, true)
	doctor := env.createDoctor(t, "d@clinic.local", models.DoctorActive)

	slot := mondaySlot(doctor.ID)
	if err := env.schedules.Create(slot, admin.ID); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	changed := mondaySlot(doctor.ID)
	changed.Weekday = time.Tuesday
	changed.BreakStart, changed.BreakEnd = "13:00", "14:00"
	updated, err := env.schedules.Update(slot.ID, changed, admin.ID)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Weekday != time.Tuesday || updated.BreakStart != "13:00" {
		t.Errorf("changes not applied: %+v", updated)
	}

	if _, err := env.schedules.Update(9999, changed, admin.ID); !errors.Is(err, ErrScheduleSlotNotFound) {
		t.Errorf("expected ErrScheduleSlotNotFound, got %v", err)
	}

	if err := env.schedules.Delete(slot.ID, admin.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := env.schedules.Delete(slot.ID, admin.ID); !errors.Is(err, ErrScheduleSlotNotFound) {
		t.Errorf("expected ErrScheduleSlotNotFound after delete, got %v", err)
	}
}

func TestScheduleSetActive(t *testing.T) {
	env := newTestEnv(t)
	admin := env.createUser(t, "a@clinic.local", models.RoleAdmin, true)
	doctor := env.createDoctor(t, "d@clinic.local", models.DoctorActive)

	slot := mondaySlot(doctor.ID)
	if err := env.schedules.Create(slot, admin.ID); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := env.schedules.SetActive(slot.ID, false, admin.ID); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}

	// Deactivated slots vanish from the booking view.
	slots, err := env.schedules.ListForDoctor(doctor.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(slots) != 0 {
		t.Errorf("expected no active slots, got %d", len(slots))
	}

	// But stay in the admin view.
	all, err := env.schedules.ListAll()
	if err != nil {
		t.Fatalf("list all failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected 1 slot in admin view, got %d", len(all))
	}
}

func TestMedicalRecordAccess(t *testing.T) {
	env := newTestEnv(t)
	patient := env.createUser(t, "p@clinic.local", models.RolePatient, true)
	stranger := env.createUser(t, "p2@clinic.local", models.RolePatient, true)
	doctorUser := env.createUser(t, "d@clinic.local", models.RoleDoctor, true)

	record := &models.MedicalRecord{PatientID: patient.ID, BloodType: "O+"}
	if err := env.recordRepo.CreateRecord(record); err != nil {
		t.Fatalf("seed record failed: %v", err)
	}

	if _, err := env.records.GetForPatient(patient.ID, patient.ID, models.RolePatient); err != nil {
		t.Errorf("patient reading own record failed: %v", err)
	}
	if _, err := env.records.GetForPatient(patient.ID, stranger.ID, models.RolePatient); err == nil {
		t.Error("patient must not read another patient's record")
	}
	if _, err := env.records.GetForPatient(patient.ID, doctorUser.ID, models.RoleDoctor); err != nil {
		t.Errorf("doctor reading a patient record failed: %v", err)
	}

	updated, err := env.records.UpdateOwn(patient.ID, "", "pollen", "")
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.BloodType != "O+" || updated.Allergies != "pollen" {
		t.Errorf("empty fields must keep current values: %+v", updated)
	}
}
