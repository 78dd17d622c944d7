package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barberking/booking-api/internal/httperr"
	"github.com/barberking/booking-api/internal/middleware"
	"github.com/barberking/booking-api/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

type UpdateMeRequest struct {
	FullName       string `json:"full_name"`
	Phone          string `json:"phone"`
	TelegramChatID string `json:"telegram_chat_id"`
}

func (h *MeHandler) GetMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	var profile models.Profile
	if err := h.db.First(&profile, "id = ?", userID).Error; err != nil {
		httperr.Internal(c, "profile_not_found", "Perfil no encontrado.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":               profile.ID,
		"full_name":        profile.FullName,
		"email":            profile.Email,
		"phone":            profile.Phone,
		"role":             profile.Role,
		"telegram_chat_id": profile.TelegramChatID,
	})
}

func (h *MeHandler) UpdateMe(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	updates := map[string]any{}
	if req.FullName != "" {
		updates["full_name"] = req.FullName
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.TelegramChatID != "" {
		updates["telegram_chat_id"] = req.TelegramChatID
	}

	if len(updates) == 0 {
		httperr.BadRequest(c, "nothing_to_update", "Nada que actualizar.")
		return
	}

	if err := h.db.Model(&models.Profile{}).
		Where("id = ?", userID).
		Updates(updates).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "Error al actualizar el perfil.")
		return
	}

	h.GetMe(c)
}

func (h *MeHandler) ListMyAppointments(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	var aps []models.Appointment
	if err := h.db.
		Preload("Service").
		Where("client_id = ?", userID).
		Order("start_time DESC").
		Find(&aps).Error; err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Error al listar las citas.")
		return
	}

	c.JSON(http.StatusOK, aps)
}
