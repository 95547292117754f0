package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tallersur/agenda-api/internal/httperr"
	"github.com/tallersur/agenda-api/internal/httpresp"
	"github.com/tallersur/agenda-api/internal/schedule"
	ucAgenda "github.com/tallersur/agenda-api/internal/usecase/agenda"
)

// ======================================================
// HANDLER
// ======================================================

type AgendaHandler struct {
	loader  *ucAgenda.LoadDayIntervals
	checker *ucAgenda.CheckSlot

	loc          *time.Location
	workdayStart string
	workdayEnd   string
}

func NewAgendaHandler(
	loader *ucAgenda.LoadDayIntervals,
	checker *ucAgenda.CheckSlot,
	loc *time.Location,
	workdayStart string,
	workdayEnd string,
) *AgendaHandler {
	return &AgendaHandler{
		loader:       loader,
		checker:      checker,
		loc:          loc,
		workdayStart: workdayStart,
		workdayEnd:   workdayEnd,
	}
}

// ======================================================
// RESPUESTAS
// ======================================================

// intervalResponse entrega el bloque ya convertido a fecha y hora
// locales del taller, listo para precargar el formulario de edición.
type intervalResponse struct {
	FechaInicio string `json:"fecha_inicio"`
	HoraInicio  string `json:"hora_inicio"`
	FechaFin    string `json:"fecha_fin"`
	HoraFin     string `json:"hora_fin"`
}

// ======================================================
// GET /agenda/:empleadoId/intervalos?fecha=YYYY-MM-DD
// ======================================================

func (h *AgendaHandler) ListIntervals(c *gin.Context) {
	employeeID := c.Param("empleadoId")
	fecha := c.Query("fecha")

	snap := h.loader.Execute(c.Request.Context(), employeeID, fecha)

	data := make([]intervalResponse, 0, len(snap.Intervals))
	for _, iv := range snap.Intervals {
		data = append(data, intervalResponse{
			FechaInicio: schedule.LocalDateString(iv.Start, h.loc),
			HoraInicio:  schedule.LocalTimeString(iv.Start, h.loc),
			FechaFin:    schedule.LocalDateString(iv.End, h.loc),
			HoraFin:     schedule.LocalTimeString(iv.End, h.loc),
		})
	}

	httpresp.List(c, data, snap.Verified)
}

// ======================================================
// GET /agenda/:empleadoId/libres?fecha=YYYY-MM-DD&duracion_min=60
// ======================================================

func (h *AgendaHandler) ListFreeSlots(c *gin.Context) {
	employeeID := c.Param("empleadoId")
	fecha := c.Query("fecha")

	workStart, err := schedule.ToInstant(fecha, h.workdayStart, h.loc)
	if err != nil {
		httperr.BadRequest(c, "fecha_invalida", "Fecha inválida.")
		return
	}
	workEnd, err := schedule.ToInstant(fecha, h.workdayEnd, h.loc)
	if err != nil {
		httperr.BadRequest(c, "fecha_invalida", "Fecha inválida.")
		return
	}

	durMin := 60
	if v := c.Query("duracion_min"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || time.Duration(n)*time.Minute > schedule.MaxSlotDuration {
			httperr.BadRequest(c, "duracion_invalida", "Duración inválida.")
			return
		}
		durMin = n
	}

	snap := h.loader.Execute(c.Request.Context(), employeeID, fecha)
	slots := schedule.FreeSlots(workStart, workEnd, time.Duration(durMin)*time.Minute, snap.Intervals)

	httpresp.List(c, slots, snap.Verified)
}

// ======================================================
// POST /agenda/verificar
// ======================================================

type CheckSlotRequest struct {
	EmpleadoID string `json:"empleado_id" binding:"required"`
	Fecha      string `json:"fecha" binding:"required"`
	HoraInicio string `json:"hora_inicio" binding:"required"`
	HoraFin    string `json:"hora_fin"`
}

func (h *AgendaHandler) CheckSlot(c *gin.Context) {
	var req CheckSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	res := h.checker.Execute(c.Request.Context(), ucAgenda.CheckSlotInput{
		EmployeeID: req.EmpleadoID,
		Day:        req.Fecha,
		HoraInicio: req.HoraInicio,
		HoraFin:    req.HoraFin,
	})

	httpresp.OK(c, res)
}
