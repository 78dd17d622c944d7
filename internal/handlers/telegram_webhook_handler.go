package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/barberking/booking-api/internal/httperr"
	"github.com/barberking/booking-api/internal/notify"
	"github.com/barberking/booking-api/internal/outbox"
	ucAppointment "github.com/barberking/booking-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

// TelegramWebhookHandler turns operator button presses into status
// transitions. Telegram retries on non-2xx responses, so the handler answers
// 200 even when an update cannot be processed.
type TelegramWebhookHandler struct {
	transitionUC *ucAppointment.TransitionAppointment
	notifier     notify.Notifier
	outbox       outbox.Enqueuer
	adminChat    string
}

func NewTelegramWebhookHandler(
	transitionUC *ucAppointment.TransitionAppointment,
	notifier notify.Notifier,
	ob outbox.Enqueuer,
	adminChat string,
) *TelegramWebhookHandler {
	return &TelegramWebhookHandler{
		transitionUC: transitionUC,
		notifier:     notifier,
		outbox:       ob,
		adminChat:    adminChat,
	}
}

// ======================================================
// UPDATE PAYLOAD
// ======================================================

type telegramUpdate struct {
	CallbackQuery *struct {
		ID   string `json:"id"`
		Data string `json:"data"`
	} `json:"callback_query"`
}

// ======================================================
// WEBHOOK
// ======================================================

func (h *TelegramWebhookHandler) Handle(c *gin.Context) {
	var update telegramUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	cb := update.CallbackQuery
	if cb == nil || cb.Data == "" {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	action, appointmentID, found := strings.Cut(cb.Data, ":")
	if !found || appointmentID == "" {
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	requested := "cancelled"
	answer := "Cita cancelada"
	if action == "confirm" {
		requested = "confirmed"
		answer = "Cita confirmada"
	}

	ap, err := h.transitionUC.Execute(c.Request.Context(), ucAppointment.TransitionInput{
		AppointmentID: appointmentID,
		Requested:     requested,
		ActorRole:     "admin",
	})
	if err != nil {
		if httperr.IsBusiness(err, "appointment_not_found") {
			answer = "Cita no encontrada."
		} else {
			answer = "No se pudo procesar la cita."
			log.Println("webhook transition failed:", err)
		}
		h.answer(c, cb.ID, answer)
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	h.answer(c, cb.ID, answer)

	summary := fmt.Sprintf(
		"Cita %s: %s el %s.",
		statusLabel(requested),
		ap.Service.Name,
		ap.StartTime.Format("02/01 15:04"),
	)
	if err := h.outbox.Enqueue(c.Request.Context(), h.adminChat, summary, nil); err != nil {
		log.Println("failed to enqueue operator summary:", err)
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *TelegramWebhookHandler) answer(c *gin.Context, callbackID, text string) {
	if err := h.notifier.AnswerCallback(c.Request.Context(), callbackID, text); err != nil {
		log.Println("failed to answer callback:", err)
	}
}

func statusLabel(status string) string {
	if status == "confirmed" {
		return "confirmada"
	}
	return "cancelada"
}
