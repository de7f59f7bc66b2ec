package handler

import (
	"net/http"
	"strconv"
	"time"

	"clinic-appointment-backend/internal/middleware"
	"clinic-appointment-backend/internal/models"
	"clinic-appointment-backend/internal/service"
	"clinic-appointment-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	bookingService     *service.BookingService
	appointmentService *service.AppointmentService
}

func NewAppointmentHandler(
	bookingService *service.BookingService,
	appointmentService *service.AppointmentService,
) *AppointmentHandler {
	return &AppointmentHandler{
		bookingService:     bookingService,
		appointmentService: appointmentService,
	}
}

type CreateAppointmentRequest struct {
	DoctorID uint   `json:"doctor_id" binding:"required"`
	Date     string `json:"date" binding:"required,datetime=2006-01-02"`
	Time     string `json:"time" binding:"required"`
	Symptoms string `json:"symptoms" binding:"required"`
}

type CancelRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type CompleteRequest struct {
	Diagnosis       string `json:"diagnosis" binding:"required"`
	Recommendations string `json:"recommendations"`
}

// Create books a new appointment for the authenticated patient
func (h *AppointmentHandler) Create(c *gin.Context) {
	userID, _, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid date")
		return
	}

	appointment, err := h.bookingService.CreateAppointment(userID, req.DoctorID, date, req.Time, req.Symptoms)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.CreatedResponse(c, appointment)
}

// List returns appointments scoped by role: patients see their own,
// doctors their own schedule, admins one day (with optional doctor filter)
func (h *AppointmentHandler) List(c *gin.Context) {
	userID, role, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var (
		appointments []models.Appointment
		err          error
	)
	switch role {
	case models.RolePatient:
		appointments, err = h.appointmentService.GetPatientAppointments(userID)
	case models.RoleDoctor:
		appointments, err = h.appointmentService.GetDoctorAppointmentsForUser(userID)
	case models.RoleAdmin:
		appointments, err = h.listForAdmin(c)
	}
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"appointments": appointments,
		"count":        len(appointments),
	})
}

func (h *AppointmentHandler) listForAdmin(c *gin.Context) ([]models.Appointment, error) {
	date := time.Now()
	if d := c.Query("date"); d != "" {
		parsed, err := time.Parse("2006-01-02", d)
		if err == nil {
			date = parsed
		}
	}

	var doctorID *uint
	if d := c.Query("doctor_id"); d != "" {
		if id, err := strconv.ParseUint(d, 10, 32); err == nil {
			v := uint(id)
			doctorID = &v
		}
	}

	return h.appointmentService.GetAppointmentsByDate(date, doctorID)
}

// Cancel cancels an appointment outright (patient for their own, admin any)
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, func(id, userID uint, role models.Role, reason string) (*models.Appointment, error) {
		return h.appointmentService.Cancel(id, role, userID, reason)
	}, true)
}

// RequestCancel flags an appointment for cancellation (patient)
func (h *AppointmentHandler) RequestCancel(c *gin.Context) {
	h.transition(c, func(id, userID uint, _ models.Role, reason string) (*models.Appointment, error) {
		return h.appointmentService.RequestCancel(id, userID, reason)
	}, true)
}

// ConfirmCancel finalizes a pending cancellation (doctor or admin)
func (h *AppointmentHandler) ConfirmCancel(c *gin.Context) {
	h.transition(c, func(id, userID uint, role models.Role, _ string) (*models.Appointment, error) {
		return h.appointmentService.ConfirmCancel(id, role, userID)
	}, false)
}

// Complete closes an appointment with a diagnosis (owning doctor)
func (h *AppointmentHandler) Complete(c *gin.Context) {
	userID, _, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid appointment ID")
		return
	}

	var req CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	appointment, err := h.appointmentService.Complete(id, userID, req.Diagnosis, req.Recommendations)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, appointment)
}

// transition factors the shared cancel-style handler shape: parse the id,
// optionally read a reason body, run the service call.
func (h *AppointmentHandler) transition(
	c *gin.Context,
	run func(id, userID uint, role models.Role, reason string) (*models.Appointment, error),
	needsReason bool,
) {
	userID, role, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid appointment ID")
		return
	}

	var reason string
	if needsReason {
		var req CancelRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Cancellation reason is required")
			return
		}
		reason = req.Reason
	}

	appointment, err := run(id, userID, role, reason)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, appointment)
}

func parseIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}
