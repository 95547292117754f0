package schedule

import "time"

// ===============================
// Intervalo ocupado
// ===============================

// Interval es un bloque ocupado de la agenda de un empleado.
// Start y End son instantes absolutos (UTC en el backend).
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Valid exige End posterior a Start. El backend debería garantizarlo,
// pero registros invertidos llegan y hay que descartarlos en el borde.
func (iv Interval) Valid() bool {
	return iv.End.After(iv.Start)
}

// Overlaps usa desigualdades estrictas: una cita que empieza exactamente
// cuando termina el bloque ocupado NO es conflicto (se permite agendar
// espalda con espalda).
func (iv Interval) Overlaps(start, end time.Time) bool {
	return start.Before(iv.End) && end.After(iv.Start)
}

// Contains es la prueba puntual semiabierta [Start, End).
func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && t.Before(iv.End)
}
