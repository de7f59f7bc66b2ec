package service

import "errors"

// Booking and lifecycle failures the API maps to specific HTTP statuses.
// Anything else coming out of the store is wrapped as ErrPersistence.
var (
	ErrPatientNotFound = errors.New("patient not found or inactive")
	ErrDoctorNotFound  = errors.New("doctor not found or inactive")
	ErrDateInPast      = errors.New("appointment date is in the past")
	ErrSlotTaken       = errors.New("slot is already taken")
	ErrScheduleClosed  = errors.New("doctor does not accept appointments at this time")
	ErrPersistence     = errors.New("could not save changes")

	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrNotAppointmentOwner = errors.New("appointment belongs to another user")
	ErrAlreadyCancelled    = errors.New("appointment is already cancelled")
	ErrReasonRequired      = errors.New("cancellation reason is required")
	ErrDiagnosisRequired   = errors.New("diagnosis is required to complete an appointment")

	ErrEmailTaken       = errors.New("email is already registered")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrInvalidRole      = errors.New("invalid role")

	ErrRecordNotFound       = errors.New("medical record not found")
	ErrReviewExists         = errors.New("appointment already has a review")
	ErrReviewNotCompleted   = errors.New("only completed appointments can be reviewed")
	ErrInvalidRating        = errors.New("rating must be between 1 and 5")
	ErrScheduleSlotNotFound = errors.New("schedule slot not found")
	ErrInvalidTimeWindow    = errors.New("invalid schedule time window")
)
