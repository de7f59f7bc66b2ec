package repository

import (
	"errors"

	"clinic-appointment-backend/internal/models"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepo(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// CreateReview inserts a new review
func (r *ReviewRepository) CreateReview(review *models.Review) error {
	return r.db.Create(review).Error
}

// GetByID returns one review with its appointment
func (r *ReviewRepository) GetByID(id uint) (*models.Review, error) {
	var review models.Review
	err := r.db.Preload("Appointment").First(&review, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

// GetByAppointmentID returns the review left for an appointment, if any
func (r *ReviewRepository) GetByAppointmentID(appointmentID uint) (*models.Review, error) {
	var review models.Review
	err := r.db.Where("appointment_id = ?", appointmentID).First(&review).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

// GetApprovedForDoctor lists approved reviews for a doctor's appointments
func (r *ReviewRepository) GetApprovedForDoctor(doctorID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Joins("JOIN appointments ON appointments.id = reviews.appointment_id").
		Where("appointments.doctor_id = ? AND reviews.approved = ?", doctorID, true).
		Order("reviews.created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

// GetPending lists reviews awaiting moderation
func (r *ReviewRepository) GetPending() ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Preload("Appointment").
		Where("approved = ?", false).
		Order("created_at ASC").
		Find(&reviews).Error
	return reviews, err
}

// Approve marks a review as approved
func (r *ReviewRepository) Approve(id uint) error {
	return r.db.Model(&models.Review{}).
		Where("id = ?", id).
		Update("approved", true).Error
}

// AverageApprovedRating computes the doctor's rating over approved reviews.
// Returns 0 when the doctor has no approved reviews yet.
func (r *ReviewRepository) AverageApprovedRating(doctorID uint) (float64, error) {
	var avg *float64
	err := r.db.Model(&models.Review{}).
		Select("AVG(reviews.rating)").
		Joins("JOIN appointments ON appointments.id = reviews.appointment_id").
		Where("appointments.doctor_id = ? AND reviews.approved = ?", doctorID, true).
		Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}
