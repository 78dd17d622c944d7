package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barberking/booking-api/internal/httperr"
	"github.com/barberking/booking-api/internal/middleware"
	"github.com/barberking/booking-api/internal/models"
	ucAppointment "github.com/barberking/booking-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	db           *gorm.DB
	createUC     *ucAppointment.CreateAppointment
	transitionUC *ucAppointment.TransitionAppointment
}

func NewBookingHandler(
	db *gorm.DB,
	createUC *ucAppointment.CreateAppointment,
	transitionUC *ucAppointment.TransitionAppointment,
) *BookingHandler {
	return &BookingHandler{
		db:           db,
		createUC:     createUC,
		transitionUC: transitionUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	ServiceID string `json:"service_id" binding:"required"`
	Start     string `json:"start" binding:"required"` // RFC 3339 instant

	ClientData *struct {
		FullName string `json:"full_name"`
		Phone    string `json:"phone"`
	} `json:"client_data"`
}

type UpdateStatusRequest struct {
	AppointmentID      string `json:"appointment_id" binding:"required"`
	Status             string `json:"status" binding:"required"`
	CancellationReason string `json:"cancellation_reason"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	start, err := time.Parse(time.RFC3339, req.Start)
	if err != nil {
		httperr.BadRequest(c, "invalid_start", "La hora de inicio debe ser un instante ISO-8601.")
		return
	}

	in := ucAppointment.CreateAppointmentInput{
		ClientID:  userID,
		ServiceID: req.ServiceID,
		Start:     start,
	}
	if req.ClientData != nil {
		in.ClientName = req.ClientData.FullName
		in.ClientPhone = req.ClientData.Phone
	}

	ap, err := h.createUC.Execute(c.Request.Context(), in)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"appointment_id": ap.ID})
}

// ======================================================
// UPDATE STATUS
// ======================================================

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	// The role comes from the stored profile on every call, not from the
	// token: a stale token never grants admin actions.
	var profile models.Profile
	if err := h.db.First(&profile, "id = ?", userID).Error; err != nil {
		httperr.Unauthorized(c, "profile_not_found", "Perfil no encontrado.")
		return
	}

	_, err := h.transitionUC.Execute(c.Request.Context(), ucAppointment.TransitionInput{
		AppointmentID: req.AppointmentID,
		Requested:     req.Status,
		ActorID:       userID,
		ActorRole:     profile.Role,
		Reason:        req.CancellationReason,
	})
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
