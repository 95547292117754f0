package schedule

import "time"

// MaxSlotDuration es la duración máxima permitida para una cita.
const MaxSlotDuration = 2 * time.Hour

// ===============================
// Verificación de conflicto
// ===============================

// IsOccupied decide si el horario candidato choca con alguno de los
// intervalos ocupados del día. endHM puede venir vacío: en ese caso se
// evalúa el inicio como un punto (prueba semiabierta), no como una
// reserva abierta.
//
// Nunca lanza: sin fecha no hay restricción conocible y se responde
// false; horas que no parsean se tratan como no agendables (true),
// salvo que no haya intervalos contra los cuales chocar.
func IsOccupied(day, startHM, endHM string, loc *time.Location, intervals []Interval) bool {
	if day == "" {
		return false
	}
	if len(intervals) == 0 {
		return false
	}

	start, err := ToInstant(day, startHM, loc)
	if err != nil {
		return true
	}

	if endHM == "" {
		for _, iv := range intervals {
			if iv.Contains(start) {
				return true
			}
		}
		return false
	}

	end, err := ToInstant(day, endHM, loc)
	if err != nil {
		return true
	}

	for _, iv := range intervals {
		if iv.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// ===============================
// Validación de duración
// ===============================

type DurationResult int

const (
	DurationOK       DurationResult = iota
	DurationTooShort                // fin <= inicio (o alguna hora no parsea)
	DurationTooLong                 // más de MaxSlotDuration
)

func (r DurationResult) String() string {
	switch r {
	case DurationTooShort:
		return "duracion_invalida"
	case DurationTooLong:
		return "duracion_excedida"
	default:
		return "ok"
	}
}

// ValidateDuration clasifica la duración de un horario candidato.
// Es función pura: el recorte/autoajuste ante una violación es
// política de la pantalla que llama.
func ValidateDuration(startHM, endHM string) DurationResult {
	start, err := time.Parse(timeLayout, startHM)
	if err != nil {
		return DurationTooShort
	}
	end, err := time.Parse(timeLayout, endHM)
	if err != nil {
		return DurationTooShort
	}

	d := end.Sub(start)
	switch {
	case d <= 0:
		return DurationTooShort
	case d > MaxSlotDuration:
		return DurationTooLong
	default:
		return DurationOK
	}
}
