package models

import "time"

// AppointmentStatus is the lifecycle state of an appointment.
//
//	scheduled -> completed | cancelled | pending_cancel
//	pending_cancel -> cancelled
//
// completed and cancelled are terminal.
type AppointmentStatus string

const (
	StatusScheduled     AppointmentStatus = "scheduled"
	StatusCompleted     AppointmentStatus = "completed"
	StatusCancelled     AppointmentStatus = "cancelled"
	StatusPendingCancel AppointmentStatus = "pending_cancel"
)

// Valid reports whether s is one of the known statuses.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusPendingCancel:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed from s.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Appointment represents the appointments table. A slot is the
// (doctor, date, time) triple; among non-cancelled appointments each slot
// is unique, enforced by a partial unique index (see database.Migrate).
//
// Date is always a normalized day (midnight UTC) and TimeOfDay an "HH:MM"
// string, so slot comparison is exact equality with no interval reasoning.
type Appointment struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	PatientID       uint              `gorm:"not null;index" json:"patient_id"`
	DoctorID        uint              `gorm:"not null;index" json:"doctor_id"`
	Date            time.Time         `gorm:"not null" json:"date"`
	TimeOfDay       string            `gorm:"size:5;not null" json:"time"`
	Status          AppointmentStatus `gorm:"size:20;not null;default:'scheduled'" json:"status"`
	Symptoms        string            `gorm:"type:text;not null;default:''" json:"symptoms"`
	Diagnosis       string            `gorm:"type:text;not null;default:''" json:"diagnosis"`
	Recommendations string            `gorm:"type:text;not null;default:''" json:"recommendations"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	Patient         *User             `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor          *Doctor           `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

// TableName specifies the table name for Appointment model
func (Appointment) TableName() string {
	return "appointments"
}

// DateOnly truncates t to its calendar day in UTC. All appointment dates
// are stored in this form so equality checks and the slot index behave.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseTimeOfDay validates an "HH:MM" string and returns it normalized.
func ParseTimeOfDay(s string) (string, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return "", err
	}
	return t.Format("15:04"), nil
}
