package handler

import (
	"net/http"
	"time"

	"clinic-appointment-backend/internal/middleware"
	"clinic-appointment-backend/internal/models"
	"clinic-appointment-backend/internal/service"
	"clinic-appointment-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ScheduleHandler is the admin schedule manager surface.
type ScheduleHandler struct {
	scheduleService *service.ScheduleService
}

func NewScheduleHandler(scheduleService *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{
		scheduleService: scheduleService,
	}
}

type ScheduleSlotRequest struct {
	DoctorID   uint   `json:"doctor_id" binding:"required"`
	Weekday    int    `json:"weekday" binding:"min=0,max=6"`
	StartTime  string `json:"start_time" binding:"required"`
	EndTime    string `json:"end_time" binding:"required"`
	BreakStart string `json:"break_start"`
	BreakEnd   string `json:"break_end"`
	Active     *bool  `json:"active"`
}

func (r *ScheduleSlotRequest) toModel() *models.ScheduleSlot {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return &models.ScheduleSlot{
		DoctorID:   r.DoctorID,
		Weekday:    time.Weekday(r.Weekday),
		StartTime:  r.StartTime,
		EndTime:    r.EndTime,
		BreakStart: r.BreakStart,
		BreakEnd:   r.BreakEnd,
		Active:     active,
	}
}

// List returns all schedule slots
func (h *ScheduleHandler) List(c *gin.Context) {
	slots, err := h.scheduleService.ListAll()
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch schedule")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"schedule": slots,
		"count":    len(slots),
	})
}

// Create adds a new schedule slot
func (h *ScheduleHandler) Create(c *gin.Context) {
	userID, _, _ := middleware.CurrentUser(c)

	var req ScheduleSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	slot := req.toModel()
	if err := h.scheduleService.Create(slot, userID); err != nil {
		serviceError(c, err)
		return
	}

	utils.CreatedResponse(c, slot)
}

// Update replaces a schedule slot's fields
func (h *ScheduleHandler) Update(c *gin.Context) {
	userID, _, _ := middleware.CurrentUser(c)

	id, err := parseIDParam(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid slot ID")
		return
	}

	var req ScheduleSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	slot, err := h.scheduleService.Update(id, req.toModel(), userID)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, slot)
}

// Delete removes a schedule slot
func (h *ScheduleHandler) Delete(c *gin.Context) {
	userID, _, _ := middleware.CurrentUser(c)

	id, err := parseIDParam(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid slot ID")
		return
	}

	if err := h.scheduleService.Delete(id, userID); err != nil {
		serviceError(c, err)
		return
	}

	utils.MessageResponse(c, "Schedule slot deleted")
}

// SetActive toggles a schedule slot
func (h *ScheduleHandler) SetActive(c *gin.Context) {
	userID, _, _ := middleware.CurrentUser(c)

	id, err := parseIDParam(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid slot ID")
		return
	}

	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := h.scheduleService.SetActive(id, *req.Active, userID); err != nil {
		serviceError(c, err)
		return
	}

	utils.MessageResponse(c, "Schedule slot updated")
}
