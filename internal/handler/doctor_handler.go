package handler

import (
	"net/http"
	"strconv"

	"clinic-appointment-backend/internal/middleware"
	"clinic-appointment-backend/internal/models"
	"clinic-appointment-backend/internal/service"
	"clinic-appointment-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type DoctorHandler struct {
	doctorService   *service.DoctorService
	scheduleService *service.ScheduleService
	reviewService   *service.ReviewService
}

func NewDoctorHandler(
	doctorService *service.DoctorService,
	scheduleService *service.ScheduleService,
	reviewService *service.ReviewService,
) *DoctorHandler {
	return &DoctorHandler{
		doctorService:   doctorService,
		scheduleService: scheduleService,
		reviewService:   reviewService,
	}
}

// ListSpecializations returns the specialization reference data
func (h *DoctorHandler) ListSpecializations(c *gin.Context) {
	specs, err := h.doctorService.ListSpecializations()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch specializations")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"specializations": specs,
		"count":           len(specs),
	})
}

// ListDoctors returns doctors available for booking. Admins see the whole
// roster; an optional specialization_id query filters the list.
func (h *DoctorHandler) ListDoctors(c *gin.Context) {
	var specializationID *uint
	if s := c.Query("specialization_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 32)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid specialization ID")
			return
		}
		v := uint(id)
		specializationID = &v
	}

	_, role, _ := middleware.CurrentUser(c)
	includeInactive := role == models.RoleAdmin

	doctors, err := h.doctorService.ListDoctors(specializationID, includeInactive)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch doctors")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"doctors": doctors,
		"count":   len(doctors),
	})
}

// GetDoctor returns one doctor profile
func (h *DoctorHandler) GetDoctor(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid doctor ID")
		return
	}

	doctor, err := h.doctorService.GetDoctor(id)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, doctor)
}

// GetDoctorSchedule returns a doctor's active working hours, for the
// booking grid
func (h *DoctorHandler) GetDoctorSchedule(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid doctor ID")
		return
	}

	slots, err := h.scheduleService.ListForDoctor(id)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"schedule": slots,
		"count":    len(slots),
	})
}

// GetDoctorReviews returns the approved reviews for a doctor
func (h *DoctorHandler) GetDoctorReviews(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid doctor ID")
		return
	}

	reviews, err := h.reviewService.ListForDoctor(id)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"reviews": reviews,
		"count":   len(reviews),
	})
}
