package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/barberking/booking-api/internal/config"
	"github.com/barberking/booking-api/internal/httperr"
	"github.com/barberking/booking-api/internal/middleware"
	"github.com/barberking/booking-api/internal/models"
	"github.com/barberking/booking-api/internal/storage"
	"github.com/barberking/booking-api/internal/timezone"
	ucAppointment "github.com/barberking/booking-api/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AdminHandler struct {
	db         *gorm.DB
	archiveUC  *ucAppointment.ArchiveAppointments
	reportUC   *ucAppointment.MonthlyReport
	imageStore *storage.ImageStore // nil when S3 is not configured
	cfg        *config.Config
}

func NewAdminHandler(
	db *gorm.DB,
	archiveUC *ucAppointment.ArchiveAppointments,
	reportUC *ucAppointment.MonthlyReport,
	imageStore *storage.ImageStore,
	cfg *config.Config,
) *AdminHandler {
	return &AdminHandler{
		db:         db,
		archiveUC:  archiveUC,
		reportUC:   reportUC,
		imageStore: imageStore,
		cfg:        cfg,
	}
}

// ======================================================
// APPOINTMENTS
// ======================================================

func (h *AdminHandler) ListAppointments(c *gin.Context) {
	q := h.db.
		Preload("Client").
		Preload("Service")

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	if dateStr := c.Query("date"); dateStr != "" {
		loc := timezone.Location(h.cfg.ShopTimezone)
		day, err := time.ParseInLocation("2006-01-02", dateStr, loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
			return
		}
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
		q = q.Where("start_time >= ? AND start_time < ?", start, start.Add(24*time.Hour))
	}

	var aps []models.Appointment
	if err := q.Order("start_time ASC").Find(&aps).Error; err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Error al listar las citas.")
		return
	}

	c.JSON(http.StatusOK, aps)
}

// ======================================================
// ARCHIVE
// ======================================================

func (h *AdminHandler) Archive(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(string)

	count, err := h.archiveUC.Execute(c.Request.Context(), &userID)
	if err != nil {
		httperr.Internal(c, "archive_failed", "Error al archivar las citas.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"archived_count": count,
	})
}

// ======================================================
// REPORTS
// ======================================================

func (h *AdminHandler) Reports(c *gin.Context) {
	months := 12
	if raw := c.Query("months"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 120 {
			httperr.BadRequest(c, "invalid_months", "Ventana de meses inválida.")
			return
		}
		months = n
	}

	rows, err := h.reportUC.Execute(
		c.Request.Context(),
		months,
		timezone.NowIn(h.cfg.ShopTimezone),
	)
	if err != nil {
		httperr.Internal(c, "reports_failed", "Error al generar los reportes.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": rows})
}

// ======================================================
// SERVICE CATALOG
// ======================================================

type ServiceRequest struct {
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	Price           float64 `json:"price" binding:"required"`
	DurationMinutes int     `json:"duration_minutes" binding:"required"`
}

type ServiceUpdateRequest struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	Price           *float64 `json:"price"`
	DurationMinutes *int     `json:"duration_minutes"`
	Active          *bool    `json:"active"`
}

func (h *AdminHandler) CreateService(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	service := models.Service{
		ID:              uuid.NewString(),
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		Active:          true,
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Error al crear el servicio.")
		return
	}

	c.JSON(http.StatusCreated, service)
}

func (h *AdminHandler) UpdateService(c *gin.Context) {
	id := c.Param("id")

	var service models.Service
	if err := h.db.First(&service, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Servicio no encontrado.")
		return
	}

	var req ServiceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.DurationMinutes != nil {
		updates["duration_minutes"] = *req.DurationMinutes
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if len(updates) == 0 {
		httperr.BadRequest(c, "nothing_to_update", "Nada que actualizar.")
		return
	}

	if err := h.db.Model(&service).Updates(updates).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Error al actualizar el servicio.")
		return
	}

	c.JSON(http.StatusOK, service)
}

func (h *AdminHandler) UploadServiceImage(c *gin.Context) {
	if h.imageStore == nil {
		httperr.Write(c, http.StatusServiceUnavailable,
			"image_storage_disabled", "Almacenamiento de imágenes no configurado.")
		return
	}

	id := c.Param("id")

	var service models.Service
	if err := h.db.First(&service, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Servicio no encontrado.")
		return
	}

	file, _, err := c.Request.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "missing_image", "Falta el archivo de imagen.")
		return
	}
	defer file.Close()

	url, err := h.imageStore.UploadServiceImage(c.Request.Context(), service.ID, file)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	if err := h.db.Model(&service).Update("image_url", url).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Error al guardar la imagen.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"image_url": url})
}
