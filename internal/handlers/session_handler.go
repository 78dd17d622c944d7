package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/barberking/booking-api/internal/config"
	domain "github.com/barberking/booking-api/internal/domain/appointment"
	"github.com/barberking/booking-api/internal/domain/booking"
	"github.com/barberking/booking-api/internal/httperr"
	"github.com/barberking/booking-api/internal/infra/session"
	"github.com/barberking/booking-api/internal/middleware"
	"github.com/barberking/booking-api/internal/timezone"
	ucAppointment "github.com/barberking/booking-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

// SessionHandler exposes the step-wise booking flow. The state machine lives
// in the domain; this layer only loads, transitions and saves.
type SessionHandler struct {
	store          *session.Store
	repo           domain.Repository
	availabilityUC *ucAppointment.GetAvailability
	createUC       *ucAppointment.CreateAppointment
	cfg            *config.Config
}

func NewSessionHandler(
	store *session.Store,
	repo domain.Repository,
	availabilityUC *ucAppointment.GetAvailability,
	createUC *ucAppointment.CreateAppointment,
	cfg *config.Config,
) *SessionHandler {
	return &SessionHandler{
		store:          store,
		repo:           repo,
		availabilityUC: availabilityUC,
		createUC:       createUC,
		cfg:            cfg,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type SelectServiceRequest struct {
	ServiceID string `json:"service_id" binding:"required"`
}

type SelectDateRequest struct {
	Date string `json:"date" binding:"required"` // YYYY-MM-DD
}

type SelectTimeRequest struct {
	Start string `json:"start" binding:"required"` // RFC 3339 instant
}

type ConfirmRequest struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

// ======================================================
// LIFECYCLE
// ======================================================

func (h *SessionHandler) Start(c *gin.Context) {
	sess := booking.New(uuid.NewString())

	if err := h.store.Save(c.Request.Context(), sess); err != nil {
		httperr.Internal(c, "session_save_failed", "Error al iniciar la reserva.")
		return
	}

	c.JSON(http.StatusCreated, sess)
}

func (h *SessionHandler) Get(c *gin.Context) {
	sess, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	c.JSON(http.StatusOK, sess)
}

// ======================================================
// TRANSITIONS
// ======================================================

func (h *SessionHandler) SelectService(c *gin.Context) {
	var req SelectServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if _, err := h.repo.GetService(c.Request.Context(), req.ServiceID); err != nil {
		httperr.NotFound(c, "service_not_found", "Servicio no disponible.")
		return
	}

	sess, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	if err := sess.SelectService(req.ServiceID); err != nil {
		writeBusinessError(c, err)
		return
	}

	h.save(c, sess)
}

func (h *SessionHandler) SelectDate(c *gin.Context) {
	var req SelectDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	loc := timezone.Location(h.cfg.ShopTimezone)
	date, err := time.ParseInLocation("2006-01-02", req.Date, loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}

	sess, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	rules := booking.Rules{ClosedWeekday: h.cfg.ClosedWeekday}
	now := timezone.NowIn(h.cfg.ShopTimezone)

	if err := sess.SelectDate(date, now, rules); err != nil {
		writeBusinessError(c, err)
		return
	}

	h.save(c, sess)
}

func (h *SessionHandler) SelectTime(c *gin.Context) {
	var req SelectTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	start, err := time.Parse(time.RFC3339, req.Start)
	if err != nil {
		httperr.BadRequest(c, "invalid_start", "La hora debe ser un instante ISO-8601.")
		return
	}

	sess, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	now := timezone.NowIn(h.cfg.ShopTimezone)
	available, err := h.availabilityUC.Execute(
		c.Request.Context(), sess.ServiceID, sess.Date, now,
	)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	if err := sess.SelectTime(start, available); err != nil {
		writeBusinessError(c, err)
		return
	}

	if err := h.store.Save(c.Request.Context(), sess); err != nil {
		httperr.Internal(c, "session_save_failed", "Error al guardar la reserva.")
		return
	}

	// Pre-fill the confirmation form for signed-in visitors.
	resp := gin.H{"session": sess}
	if userID, ok := c.Get(middleware.ContextUserID); ok {
		if profile, err := h.repo.GetProfile(c.Request.Context(), userID.(string)); err == nil {
			resp["prefill"] = gin.H{
				"full_name": profile.FullName,
				"phone":     profile.Phone,
			}
		}
	}

	c.JSON(http.StatusOK, resp)
}

func (h *SessionHandler) Back(c *gin.Context) {
	sess, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	if err := sess.Back(); err != nil {
		writeBusinessError(c, err)
		return
	}

	h.save(c, sess)
}

// ======================================================
// CONFIRM
// ======================================================

// Confirm issues exactly one creation call per request. An anonymous caller
// is bounced back to time selection and told to sign in; any backend failure
// leaves the session at confirmation so the visitor can retry.
func (h *SessionHandler) Confirm(c *gin.Context) {
	sess, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	userIDVal, authenticated := c.Get(middleware.ContextUserID)
	if !authenticated {
		sess.AbortToTimeSelection()
		if err := h.store.Save(c.Request.Context(), sess); err != nil {
			httperr.Internal(c, "session_save_failed", "Error al guardar la reserva.")
			return
		}
		httperr.Unauthorized(c, "must_sign_in", "Debes iniciar sesión para reservar una cita.")
		return
	}

	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	if err := sess.ReadyToConfirm(req.FullName, req.Phone); err != nil {
		writeBusinessError(c, err)
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ClientID:    userIDVal.(string),
		ServiceID:   sess.ServiceID,
		Start:       sess.Start,
		ClientName:  req.FullName,
		ClientPhone: req.Phone,
	})
	if err != nil {
		// Session stays at confirmation_pending for a retry.
		writeBusinessError(c, err)
		return
	}

	sess.Reset()
	if err := h.store.Save(c.Request.Context(), sess); err != nil {
		httperr.Internal(c, "session_save_failed", "Error al guardar la reserva.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"appointment_id": ap.ID,
		"session":        sess,
	})
}

func (h *SessionHandler) save(c *gin.Context, sess *booking.Session) {
	if err := h.store.Save(c.Request.Context(), sess); err != nil {
		httperr.Internal(c, "session_save_failed", "Error al guardar la reserva.")
		return
	}
	c.JSON(http.StatusOK, sess)
}
