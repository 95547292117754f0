package agenda

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tallersur/agenda-api/internal/events"
	"github.com/tallersur/agenda-api/internal/session"
	"github.com/tallersur/agenda-api/internal/upstream"
)

var lapaz = time.FixedZone("-04", -4*60*60)

// ------------------------------
// Fakes
// ------------------------------

type fakeSource struct {
	entries []upstream.CalendarEntry
	err     error
	calls   int

	// hook opcional que corre dentro del fetch, para simular carreras.
	onFetch func()
}

func (f *fakeSource) EmployeeCalendar(ctx context.Context, employeeID string) ([]upstream.CalendarEntry, error) {
	f.calls++
	if f.onFetch != nil {
		f.onFetch()
	}
	return f.entries, f.err
}

type fakeStore struct {
	gens  map[string]uint64
	snaps map[string]session.Snapshot
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		gens:  map[string]uint64{},
		snaps: map[string]session.Snapshot{},
	}
}

func (f *fakeStore) Begin(ctx context.Context, key string) (uint64, error) {
	f.gens[key]++
	return f.gens[key], nil
}

func (f *fakeStore) Commit(ctx context.Context, key string, snap session.Snapshot) (bool, error) {
	if snap.Generation != f.gens[key] {
		return false, nil
	}
	f.snaps[key] = snap
	return true, nil
}

func (f *fakeStore) Latest(ctx context.Context, key string) (*session.Snapshot, error) {
	snap, ok := f.snaps[key]
	if !ok {
		return nil, nil
	}
	return &snap, nil
}

type fakeWriter struct {
	created       []upstream.CreateCitaRequest
	reprogramadas []upstream.ReprogramarCitaRequest
	err           error
}

func (f *fakeWriter) CreateCita(ctx context.Context, req upstream.CreateCitaRequest) (*upstream.Cita, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = append(f.created, req)
	return &upstream.Cita{ID: 1, Estado: "pendiente", FechaHoraInicio: req.FechaHoraInicio, FechaHoraFin: req.FechaHoraFin}, nil
}

func (f *fakeWriter) ReprogramarCita(ctx context.Context, citaID uint, req upstream.ReprogramarCitaRequest) (*upstream.Cita, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.reprogramadas = append(f.reprogramadas, req)
	return &upstream.Cita{ID: citaID, Estado: "reprogramada", FechaHoraInicio: req.FechaHoraInicio, FechaHoraFin: req.FechaHoraFin}, nil
}

// ------------------------------
// Armado
// ------------------------------

func newLoader(source *fakeSource, store session.Store) *LoadDayIntervals {
	log := zap.NewNop()
	return NewLoadDayIntervals(source, store, lapaz, log, events.NewDispatcher(log))
}

func newChecker(source *fakeSource, store session.Store) *CheckSlot {
	return NewCheckSlot(newLoader(source, store), lapaz, events.NewDispatcher(zap.NewNop()))
}

func newBooker(source *fakeSource, writer *fakeWriter) *BookCita {
	return NewBookCita(newChecker(source, newFakeStore()), writer, lapaz, events.NewDispatcher(zap.NewNop()))
}

// entry arma un registro del backend con horas UTC del día dado.
func entry(id uint, startISO, endISO string) upstream.CalendarEntry {
	return upstream.CalendarEntry{
		ID:              id,
		FechaHoraInicio: startISO,
		FechaHoraFin:    endISO,
		Estado:          "confirmada",
	}
}
