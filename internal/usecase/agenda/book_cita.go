package agenda

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/tallersur/agenda-api/internal/events"
	"github.com/tallersur/agenda-api/internal/httperr"
	"github.com/tallersur/agenda-api/internal/schedule"
	"github.com/tallersur/agenda-api/internal/upstream"
)

// ======================================================
// CREAR / REPROGRAMAR CITA
// ======================================================

type CitaWriter interface {
	CreateCita(ctx context.Context, req upstream.CreateCitaRequest) (*upstream.Cita, error)
	ReprogramarCita(ctx context.Context, citaID uint, req upstream.ReprogramarCitaRequest) (*upstream.Cita, error)
}

type BookCitaInput struct {
	ClienteID  uint
	EmpleadoID uint

	Dia        string
	HoraInicio string
	HoraFin    string
	Motivo     string
}

type ReprogramarInput struct {
	EmpleadoID uint

	Dia        string
	HoraInicio string
	HoraFin    string
}

type BookCita struct {
	checker *CheckSlot
	writer  CitaWriter
	loc     *time.Location
	events  *events.Dispatcher
}

func NewBookCita(
	checker *CheckSlot,
	writer CitaWriter,
	loc *time.Location,
	dispatcher *events.Dispatcher,
) *BookCita {
	return &BookCita{
		checker: checker,
		writer:  writer,
		loc:     loc,
		events:  dispatcher,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *BookCita) Execute(ctx context.Context, in BookCitaInput) (*upstream.Cita, error) {

	start, end, err := uc.precheck(ctx, in.EmpleadoID, in.Dia, in.HoraInicio, in.HoraFin)
	if err != nil {
		return nil, err
	}

	cita, err := uc.writer.CreateCita(ctx, upstream.CreateCitaRequest{
		ClienteID:       in.ClienteID,
		EmpleadoID:      in.EmpleadoID,
		FechaHoraInicio: start.UTC().Format(time.RFC3339),
		FechaHoraFin:    end.UTC().Format(time.RFC3339),
		Motivo:          in.Motivo,
	})
	if err != nil {
		return nil, uc.writeError(err, in.EmpleadoID, in.Dia)
	}
	return cita, nil
}

func (uc *BookCita) Reprogramar(ctx context.Context, citaID uint, in ReprogramarInput) (*upstream.Cita, error) {

	start, end, err := uc.precheck(ctx, in.EmpleadoID, in.Dia, in.HoraInicio, in.HoraFin)
	if err != nil {
		return nil, err
	}

	cita, err := uc.writer.ReprogramarCita(ctx, citaID, upstream.ReprogramarCitaRequest{
		FechaHoraInicio: start.UTC().Format(time.RFC3339),
		FechaHoraFin:    end.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, uc.writeError(err, in.EmpleadoID, in.Dia)
	}
	return cita, nil
}

// ======================================================
// INTERNO
// ======================================================

// precheck corre la verificación consultiva y resuelve los instantes.
// Un conflicto local corta antes de molestar al backend; un snapshot
// sin verificar deja pasar (fail-open) y el backend tiene la última
// palabra.
func (uc *BookCita) precheck(
	ctx context.Context,
	empleadoID uint,
	dia, horaInicio, horaFin string,
) (time.Time, time.Time, error) {

	res := uc.checker.Execute(ctx, CheckSlotInput{
		EmployeeID: strconv.FormatUint(uint64(empleadoID), 10),
		Day:        dia,
		HoraInicio: horaInicio,
		HoraFin:    horaFin,
	})
	if !res.Disponible {
		return time.Time{}, time.Time{}, httperr.ErrBusiness(res.Motivo)
	}

	start, err := schedule.ToInstant(dia, horaInicio, uc.loc)
	if err != nil {
		return time.Time{}, time.Time{}, httperr.ErrBusiness("fecha_u_hora_invalida")
	}
	end, err := schedule.ToInstant(dia, horaFin, uc.loc)
	if err != nil {
		return time.Time{}, time.Time{}, httperr.ErrBusiness("fecha_u_hora_invalida")
	}
	return start, end, nil
}

// writeError clasifica la respuesta del backend. Su rechazo de negocio
// pisa cualquier "disponible" calculado acá y viaja con su detalle.
func (uc *BookCita) writeError(err error, empleadoID uint, dia string) error {
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) && apiErr.IsRejection() {
		uc.events.Dispatch(events.Event{
			Tipo:       events.TipoRechazoBackend,
			EmpleadoID: strconv.FormatUint(uint64(empleadoID), 10),
			Dia:        dia,
			Detalle:    map[string]any{"detalle": apiErr.Detail, "status": apiErr.StatusCode},
		})
	}
	return err
}
