package handler

import (
	"net/http"

	"clinic-appointment-backend/internal/middleware"
	"clinic-appointment-backend/internal/service"
	"clinic-appointment-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviewService *service.ReviewService
}

func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

type CreateReviewRequest struct {
	AppointmentID uint   `json:"appointment_id" binding:"required"`
	Rating        int    `json:"rating" binding:"required,min=1,max=5"`
	Comment       string `json:"comment" binding:"max=2000"`
}

// Create lets a patient review one of their completed appointments
func (h *ReviewHandler) Create(c *gin.Context) {
	userID, _, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	review, err := h.reviewService.LeaveReview(userID, req.AppointmentID, req.Rating, req.Comment)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.CreatedResponse(c, review)
}

// ListPending returns unmoderated reviews (admin)
func (h *ReviewHandler) ListPending(c *gin.Context) {
	reviews, err := h.reviewService.ListPending()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch reviews")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"reviews": reviews,
		"count":   len(reviews),
	})
}

// Approve publishes a review (admin)
func (h *ReviewHandler) Approve(c *gin.Context) {
	userID, _, _ := middleware.CurrentUser(c)

	id, err := parseIDParam(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid review ID")
		return
	}

	if err := h.reviewService.Approve(id, userID); err != nil {
		serviceError(c, err)
		return
	}

	utils.MessageResponse(c, "Review approved")
}
