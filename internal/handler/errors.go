package handler

import (
	"errors"
	"net/http"

	"clinic-appointment-backend/internal/service"
	"clinic-appointment-backend/internal/statemachine"
	"clinic-appointment-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// serviceError converts service-layer errors into the JSON error envelope
// with a matching HTTP status. Unknown errors become a generic 500 so no
// internals leak to the client.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPatientNotFound),
		errors.Is(err, service.ErrDoctorNotFound),
		errors.Is(err, service.ErrAppointmentNotFound),
		errors.Is(err, service.ErrRecordNotFound),
		errors.Is(err, service.ErrScheduleSlotNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrSlotTaken),
		errors.Is(err, service.ErrScheduleClosed),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrAlreadyCancelled),
		errors.Is(err, service.ErrReviewExists),
		errors.Is(err, statemachine.ErrInvalidTransition):
		utils.ErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrNotAppointmentOwner):
		utils.ErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrDateInPast),
		errors.Is(err, service.ErrReasonRequired),
		errors.Is(err, service.ErrDiagnosisRequired),
		errors.Is(err, service.ErrPasswordMismatch),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidRating),
		errors.Is(err, service.ErrReviewNotCompleted),
		errors.Is(err, service.ErrInvalidTimeWindow),
		errors.Is(err, utils.ErrPasswordTooShort):
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrPersistence):
		utils.ErrorResponse(c, http.StatusInternalServerError, service.ErrPersistence.Error())
	default:
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
	}
}
