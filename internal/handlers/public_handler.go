package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/barberking/booking-api/internal/config"
	"github.com/barberking/booking-api/internal/httperr"
	"github.com/barberking/booking-api/internal/httpresp"
	"github.com/barberking/booking-api/internal/models"
	"github.com/barberking/booking-api/internal/timezone"
	ucAppointment "github.com/barberking/booking-api/internal/usecase/appointment"
)

type PublicHandler struct {
	db             *gorm.DB
	availabilityUC *ucAppointment.GetAvailability
	cfg            *config.Config
}

func NewPublicHandler(
	db *gorm.DB,
	availabilityUC *ucAppointment.GetAvailability,
	cfg *config.Config,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		availabilityUC: availabilityUC,
		cfg:            cfg,
	}
}

func (h *PublicHandler) ListServices(c *gin.Context) {
	var services []models.Service
	if err := h.db.
		Where("active = true").
		Order("name ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Error al listar los servicios.")
		return
	}

	httpresp.List(c, services)
}

func (h *PublicHandler) Availability(c *gin.Context) {
	dateStr := c.Query("date")
	serviceID := c.Query("service_id")

	if dateStr == "" || serviceID == "" {
		httperr.BadRequest(c, "missing_params", "Fecha y servicio obligatorios.")
		return
	}

	loc := timezone.Location(h.cfg.ShopTimezone)
	day, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}

	slots, err := h.availabilityUC.Execute(
		c.Request.Context(),
		serviceID,
		day,
		timezone.NowIn(h.cfg.ShopTimezone),
	)
	if err != nil {
		writeBusinessError(c, err)
		return
	}

	out := make([]string, 0, len(slots))
	for _, slot := range slots {
		out = append(out, slot.Format(time.RFC3339))
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": out,
	})
}
