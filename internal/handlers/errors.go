package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/barberking/booking-api/internal/httperr"
)

// Business codes raised by the booking workflow, mapped to HTTP at the edge.
var businessStatus = map[string]struct {
	status  int
	message string
}{
	"invalid_service":       {http.StatusBadRequest, "Servicio inválido."},
	"service_not_found":     {http.StatusNotFound, "Servicio no disponible."},
	"slot_taken":            {http.StatusConflict, "Ese horario acaba de ocuparse."},
	"appointment_not_found": {http.StatusNotFound, "Cita no encontrada."},
	"not_allowed":           {http.StatusForbidden, "No tienes permiso para esta acción."},
	"invalid_status":        {http.StatusBadRequest, "Estado inválido."},
	"invalid_state":         {http.StatusBadRequest, "La cita ya está cerrada."},
	"reason_required":       {http.StatusBadRequest, "Indica el motivo de la cancelación."},
	"session_not_found":     {http.StatusNotFound, "La sesión de reserva expiró."},
	"invalid_step":          {http.StatusBadRequest, "Paso de reserva inválido."},
	"date_in_past":          {http.StatusBadRequest, "La fecha ya pasó."},
	"shop_closed":           {http.StatusBadRequest, "La barbería cierra ese día."},
	"slot_unavailable":      {http.StatusBadRequest, "Ese horario no está disponible."},
	"contact_required":      {http.StatusBadRequest, "Nombre y teléfono son obligatorios."},
	"invalid_image":         {http.StatusBadRequest, "Imagen inválida."},
}

func writeBusinessError(c *gin.Context, err error) {
	for code, m := range businessStatus {
		if httperr.IsBusiness(err, code) {
			httperr.Write(c, m.status, code, m.message)
			return
		}
	}
	httperr.Internal(c, "internal_error", "Algo salió mal.")
}
