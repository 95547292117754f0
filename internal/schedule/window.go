package schedule

import "time"

// ===============================
// Ventana del día
// ===============================

// DayWindow devuelve la medianoche local del día y la medianoche local
// del día siguiente como instantes absolutos. AddDate respeta los
// cambios de hora (un día puede no durar 24h exactas).
func DayWindow(day string, loc *time.Location) (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(dateLayout, day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.AddDate(0, 0, 1), nil
}

// FilterDay reduce la lista completa de intervalos del empleado a los
// que tocan la ventana [dayStart, dayEnd], con solape inclusivo: un
// bloque que cruza la medianoche cuenta para ambos días. El orden del
// resultado no está garantizado.
func FilterDay(intervals []Interval, dayStart, dayEnd time.Time) []Interval {
	var out []Interval
	for _, iv := range intervals {
		if !iv.Start.After(dayEnd) && !iv.End.Before(dayStart) {
			out = append(out, iv)
		}
	}
	return out
}

// ===============================
// Bloques libres
// ===============================

type TimeSlot struct {
	Start string `json:"inicio"`
	End   string `json:"fin"`
}

// FreeSlots genera los bloques de duración fija dentro de la jornada
// que no chocan con ningún intervalo ocupado. Se usa para sugerir
// horarios en la pantalla de nueva cita.
func FreeSlots(workStart, workEnd time.Time, slot time.Duration, busy []Interval) []TimeSlot {
	if slot <= 0 || !workEnd.After(workStart) {
		return nil
	}

	var out []TimeSlot
	for cur := workStart; !cur.Add(slot).After(workEnd); cur = cur.Add(slot) {
		slotEnd := cur.Add(slot)

		conflict := false
		for _, iv := range busy {
			if iv.Overlaps(cur, slotEnd) {
				conflict = true
				break
			}
		}

		if !conflict {
			out = append(out, TimeSlot{
				Start: cur.Format(timeLayout),
				End:   slotEnd.Format(timeLayout),
			})
		}
	}
	return out
}
