package service

import (
	"errors"
	"fmt"

	"clinic-appointment-backend/internal/models"
	"clinic-appointment-backend/internal/repository"
)

// ReviewService lets patients review completed appointments and admins
// moderate the results. Approving a review recomputes the doctor's rating.
type ReviewService struct {
	reviewRepo      *repository.ReviewRepository
	appointmentRepo *repository.AppointmentRepository
	doctorRepo      *repository.DoctorRepository
	auditRepo       *repository.AuditRepository
}

func NewReviewService(
	reviewRepo *repository.ReviewRepository,
	appointmentRepo *repository.AppointmentRepository,
	doctorRepo *repository.DoctorRepository,
	auditRepo *repository.AuditRepository,
) *ReviewService {
	return &ReviewService{
		reviewRepo:      reviewRepo,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		auditRepo:       auditRepo,
	}
}

// LeaveReview creates an unapproved review for a completed appointment
// belonging to the patient. One review per appointment.
func (s *ReviewService) LeaveReview(patientID, appointmentID uint, rating int, comment string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	appointment, err := s.appointmentRepo.GetAppointmentByID(appointmentID)
	if err != nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.PatientID != patientID {
		return nil, ErrNotAppointmentOwner
	}
	if appointment.Status != models.StatusCompleted {
		return nil, ErrReviewNotCompleted
	}

	if _, err := s.reviewRepo.GetByAppointmentID(appointmentID); err == nil {
		return nil, ErrReviewExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	review := &models.Review{
		AppointmentID: appointmentID,
		Rating:        rating,
		Comment:       comment,
	}
	if err := s.reviewRepo.CreateReview(review); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	_ = s.auditRepo.CreateAuditLog(&patientID, "review_created",
		fmt.Sprintf("Review %d for appointment %d, rating %d", review.ID, appointmentID, rating))

	return review, nil
}

// ListForDoctor returns the approved reviews shown on a doctor's profile
func (s *ReviewService) ListForDoctor(doctorID uint) ([]models.Review, error) {
	if _, err := s.doctorRepo.GetDoctorByID(doctorID); err != nil {
		return nil, ErrDoctorNotFound
	}
	return s.reviewRepo.GetApprovedForDoctor(doctorID)
}

// ListPending returns reviews awaiting moderation
func (s *ReviewService) ListPending() ([]models.Review, error) {
	return s.reviewRepo.GetPending()
}

// Approve publishes a review and refreshes the doctor's rolling rating
// over all approved reviews.
func (s *ReviewService) Approve(reviewID, adminID uint) error {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		return errors.New("review not found")
	}

	if err := s.reviewRepo.Approve(reviewID); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	appointment, err := s.appointmentRepo.GetAppointmentByID(review.AppointmentID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	avg, err := s.reviewRepo.AverageApprovedRating(appointment.DoctorID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := s.doctorRepo.UpdateRating(appointment.DoctorID, avg); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	_ = s.auditRepo.CreateAuditLog(&adminID, "review_approved",
		fmt.Sprintf("Review %d approved, doctor %d rating now %.2f", reviewID, appointment.DoctorID, avg))

	return nil
}
