package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tallersur/agenda-api/internal/httperr"
	"github.com/tallersur/agenda-api/internal/httpresp"
	ucAgenda "github.com/tallersur/agenda-api/internal/usecase/agenda"
	"github.com/tallersur/agenda-api/internal/upstream"
)

// ======================================================
// HANDLER
// ======================================================

type CitasHandler struct {
	book *ucAgenda.BookCita
}

func NewCitasHandler(book *ucAgenda.BookCita) *CitasHandler {
	return &CitasHandler{book: book}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateCitaRequest struct {
	ClienteID  uint   `json:"cliente_id" binding:"required"`
	EmpleadoID uint   `json:"empleado_id" binding:"required"`
	Fecha      string `json:"fecha" binding:"required"`
	HoraInicio string `json:"hora_inicio" binding:"required"`
	HoraFin    string `json:"hora_fin" binding:"required"`
	Motivo     string `json:"motivo"`
}

type ReprogramarCitaRequest struct {
	EmpleadoID uint   `json:"empleado_id" binding:"required"`
	Fecha      string `json:"fecha" binding:"required"`
	HoraInicio string `json:"hora_inicio" binding:"required"`
	HoraFin    string `json:"hora_fin" binding:"required"`
}

// ======================================================
// POST /citas
// ======================================================

func (h *CitasHandler) Create(c *gin.Context) {
	var req CreateCitaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	cita, err := h.book.Execute(c.Request.Context(), ucAgenda.BookCitaInput{
		ClienteID:  req.ClienteID,
		EmpleadoID: req.EmpleadoID,
		Dia:        req.Fecha,
		HoraInicio: req.HoraInicio,
		HoraFin:    req.HoraFin,
		Motivo:     req.Motivo,
	})
	if err != nil {
		h.writeBookError(c, err)
		return
	}

	httpresp.Created(c, cita)
}

// ======================================================
// POST /citas/:id/reprogramar
// ======================================================

func (h *CitasHandler) Reprogramar(c *gin.Context) {
	citaID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req ReprogramarCitaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	cita, err := h.book.Reprogramar(c.Request.Context(), uint(citaID), ucAgenda.ReprogramarInput{
		EmpleadoID: req.EmpleadoID,
		Dia:        req.Fecha,
		HoraInicio: req.HoraInicio,
		HoraFin:    req.HoraFin,
	})
	if err != nil {
		h.writeBookError(c, err)
		return
	}

	httpresp.OK(c, cita)
}

// ======================================================
// ERRORES
// ======================================================

func (h *CitasHandler) writeBookError(c *gin.Context, err error) {
	var be httperr.BusinessError
	if errors.As(err, &be) {
		httperr.BadRequest(c, be.Code, "La cita no se puede agendar en ese horario.")
		return
	}

	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		if apiErr.IsRejection() {
			// El rechazo del backend es la palabra final: viaja con su
			// detalle y su mismo status.
			httperr.Write(c, apiErr.StatusCode, "rechazo_backend", apiErr.Detail)
			return
		}
		httperr.BadGateway(c, "backend_no_disponible", "El backend del taller no respondió.")
		return
	}

	httperr.BadGateway(c, "backend_no_disponible", "El backend del taller no respondió.")
}
