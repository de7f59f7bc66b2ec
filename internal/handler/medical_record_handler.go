package handler

import (
	"net/http"

	"clinic-appointment-backend/internal/middleware"
	"clinic-appointment-backend/internal/service"
	"clinic-appointment-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type MedicalRecordHandler struct {
	recordService *service.MedicalRecordService
}

func NewMedicalRecordHandler(recordService *service.MedicalRecordService) *MedicalRecordHandler {
	return &MedicalRecordHandler{
		recordService: recordService,
	}
}

type UpdateRecordRequest struct {
	BloodType         string `json:"blood_type" binding:"omitempty,max=20"`
	Allergies         string `json:"allergies" binding:"omitempty,max=2000"`
	ChronicConditions string `json:"chronic_conditions" binding:"omitempty,max=2000"`
}

// GetOwn returns the authenticated patient's medical record
func (h *MedicalRecordHandler) GetOwn(c *gin.Context) {
	userID, role, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	record, err := h.recordService.GetForPatient(userID, userID, role)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, record)
}

// GetForPatient returns a patient's record to a doctor or admin
func (h *MedicalRecordHandler) GetForPatient(c *gin.Context) {
	userID, role, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	patientID, err := parseIDParam(c)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid patient ID")
		return
	}

	record, err := h.recordService.GetForPatient(patientID, userID, role)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, record)
}

// UpdateOwn updates the authenticated patient's own record
func (h *MedicalRecordHandler) UpdateOwn(c *gin.Context) {
	userID, _, ok := middleware.CurrentUser(c)
	if !ok {
		utils.ErrorResponse(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req UpdateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	record, err := h.recordService.UpdateOwn(userID, req.BloodType, req.Allergies, req.ChronicConditions)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.SuccessResponse(c, record)
}
