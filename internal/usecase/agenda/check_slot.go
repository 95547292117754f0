package agenda

import (
	"context"
	"time"

	"github.com/tallersur/agenda-api/internal/events"
	"github.com/tallersur/agenda-api/internal/schedule"
)

// ======================================================
// VERIFICACIÓN DE HORARIO CANDIDATO
// ======================================================

type CheckSlotInput struct {
	EmployeeID string
	Day        string
	HoraInicio string
	HoraFin    string // vacío = evaluar el inicio como punto
}

type CheckSlotResult struct {
	Disponible bool   `json:"disponible"`
	Verificado bool   `json:"verificado"`
	Motivo     string `json:"motivo,omitempty"`
}

type CheckSlot struct {
	loader *LoadDayIntervals
	loc    *time.Location
	events *events.Dispatcher
}

func NewCheckSlot(loader *LoadDayIntervals, loc *time.Location, dispatcher *events.Dispatcher) *CheckSlot {
	return &CheckSlot{
		loader: loader,
		loc:    loc,
		events: dispatcher,
	}
}

// Execute es consultivo: un "disponible" local no obliga al backend,
// que revalida al crear la cita. Verificado en false avisa que la
// carga de intervalos falló y el veredicto se apoya en una lista vacía.
func (uc *CheckSlot) Execute(ctx context.Context, in CheckSlotInput) CheckSlotResult {

	// Duración primero: es puro y no necesita red.
	if in.HoraFin != "" {
		if res := schedule.ValidateDuration(in.HoraInicio, in.HoraFin); res != schedule.DurationOK {
			return CheckSlotResult{
				Disponible: false,
				Verificado: true,
				Motivo:     res.String(),
			}
		}
	}

	snap := uc.loader.Snapshot(ctx, in.EmployeeID, in.Day)

	if schedule.IsOccupied(in.Day, in.HoraInicio, in.HoraFin, uc.loc, snap.Intervals) {
		uc.events.Dispatch(events.Event{
			Tipo:       events.TipoConflictoDetectado,
			EmpleadoID: in.EmployeeID,
			Dia:        in.Day,
			Detalle: map[string]any{
				"hora_inicio": in.HoraInicio,
				"hora_fin":    in.HoraFin,
			},
		})
		return CheckSlotResult{
			Disponible: false,
			Verificado: snap.Verified,
			Motivo:     "conflicto_horario",
		}
	}

	return CheckSlotResult{
		Disponible: true,
		Verificado: snap.Verified,
	}
}
