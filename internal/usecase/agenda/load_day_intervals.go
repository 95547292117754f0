package agenda

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"go.uber.org/zap"

	"github.com/tallersur/agenda-api/internal/events"
	"github.com/tallersur/agenda-api/internal/schedule"
	"github.com/tallersur/agenda-api/internal/session"
	"github.com/tallersur/agenda-api/internal/upstream"
)

// ======================================================
// CARGA DE INTERVALOS DEL DÍA
// ======================================================

// CalendarSource es lo único que este caso de uso necesita del backend.
type CalendarSource interface {
	EmployeeCalendar(ctx context.Context, employeeID string) ([]upstream.CalendarEntry, error)
}

// Una fecha que no calza con el patrón produce ventanas UTC erróneas
// en silencio, por eso se corta acá y no en el parseo.
var dayPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type LoadDayIntervals struct {
	source CalendarSource
	store  session.Store
	loc    *time.Location
	log    *zap.Logger
	events *events.Dispatcher
}

func NewLoadDayIntervals(
	source CalendarSource,
	store session.Store,
	loc *time.Location,
	log *zap.Logger,
	dispatcher *events.Dispatcher,
) *LoadDayIntervals {
	return &LoadDayIntervals{
		source: source,
		store:  store,
		loc:    loc,
		log:    log,
		events: dispatcher,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute trae la lista completa de bloques ocupados del empleado y la
// reduce a los que tocan el día pedido. Nunca devuelve error: una falla
// de red o de decodificación produce un snapshot Unverified vacío
// (fail-open) y queda registrada para diagnóstico.
func (uc *LoadDayIntervals) Execute(ctx context.Context, employeeID, day string) session.Snapshot {

	// --------------------------------------------------
	// 1. Guardas de forma
	// --------------------------------------------------
	if employeeID == "" || day == "" || !dayPattern.MatchString(day) {
		return session.Verified(nil, 0)
	}

	key := session.Key(employeeID, day)

	gen, err := uc.store.Begin(ctx, key)
	if err != nil {
		// Sin store no hay guarda de respuestas viejas, pero la
		// pantalla sigue recibiendo su snapshot.
		uc.log.Warn("session store begin failed", zap.String("key", key), zap.Error(err))
	}

	dayStart, dayEnd, err := schedule.DayWindow(day, uc.loc)
	if err != nil {
		// El patrón dejó pasar una fecha imposible (2025-13-40).
		return session.Verified(nil, gen)
	}

	// --------------------------------------------------
	// 2. Fetch completo (el backend no filtra por día)
	// --------------------------------------------------
	entries, err := uc.source.EmployeeCalendar(ctx, employeeID)
	if err != nil {
		uc.events.Dispatch(events.Event{
			Tipo:       events.TipoCargaFallida,
			EmpleadoID: employeeID,
			Dia:        day,
			Detalle:    map[string]any{"error": err.Error()},
		})
		snap := session.Unverified(gen)
		uc.commit(ctx, key, snap, employeeID, day)
		return snap
	}

	// --------------------------------------------------
	// 3. Esquema estricto: lo que no parsea se descarta
	// --------------------------------------------------
	intervals := make([]schedule.Interval, 0, len(entries))
	for _, e := range entries {
		iv, err := parseEntry(e)
		if err != nil {
			uc.events.Dispatch(events.Event{
				Tipo:       events.TipoRegistroDescartado,
				EmpleadoID: employeeID,
				Dia:        day,
				Detalle:    map[string]any{"registro_id": e.ID, "error": err.Error()},
			})
			continue
		}
		intervals = append(intervals, iv)
	}

	// --------------------------------------------------
	// 4. Filtro defensivo a la ventana del día
	// --------------------------------------------------
	snap := session.Verified(schedule.FilterDay(intervals, dayStart, dayEnd), gen)
	uc.commit(ctx, key, snap, employeeID, day)
	return snap
}

// Snapshot devuelve la foto vigente de la sesión si existe y está
// verificada; si no, dispara una carga nueva. Las verificaciones por
// edición de campo reusan la foto de la pantalla en vez de volver a
// golpear al backend.
func (uc *LoadDayIntervals) Snapshot(ctx context.Context, employeeID, day string) session.Snapshot {
	if employeeID == "" || day == "" || !dayPattern.MatchString(day) {
		return session.Verified(nil, 0)
	}

	snap, err := uc.store.Latest(ctx, session.Key(employeeID, day))
	if err != nil {
		uc.log.Warn("session store read failed", zap.Error(err))
	}
	if snap != nil && snap.Verified {
		return *snap
	}
	return uc.Execute(ctx, employeeID, day)
}

func (uc *LoadDayIntervals) commit(ctx context.Context, key string, snap session.Snapshot, employeeID, day string) {
	stored, err := uc.store.Commit(ctx, key, snap)
	if err != nil {
		uc.log.Warn("session store commit failed", zap.String("key", key), zap.Error(err))
		return
	}
	if !stored {
		uc.events.Dispatch(events.Event{
			Tipo:       events.TipoRespuestaVieja,
			EmpleadoID: employeeID,
			Dia:        day,
			Detalle:    map[string]any{"generacion": snap.Generation},
		})
	}
}

func parseEntry(e upstream.CalendarEntry) (schedule.Interval, error) {
	start, err := time.Parse(time.RFC3339, e.FechaHoraInicio)
	if err != nil {
		return schedule.Interval{}, fmt.Errorf("fecha_hora_inicio: %w", err)
	}
	end, err := time.Parse(time.RFC3339, e.FechaHoraFin)
	if err != nil {
		return schedule.Interval{}, fmt.Errorf("fecha_hora_fin: %w", err)
	}

	iv := schedule.Interval{Start: start, End: end}
	if !iv.Valid() {
		return schedule.Interval{}, fmt.Errorf("intervalo invertido o vacío")
	}
	return iv, nil
}
