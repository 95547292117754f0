package schedule

import "time"

const (
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04"
	dateTimeLayout = "2006-01-02 15:04"
)

// ===============================
// Conversión hora local ⇄ instante
// ===============================

// ToInstant combina fecha (YYYY-MM-DD) y hora de pared (HH:MM) en un
// instante absoluto usando el huso dado. Sin aritmética de offsets
// propia: el manejo de cambios de hora queda en manos de la librería
// estándar.
func ToInstant(day, hm string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(dateTimeLayout, day+" "+hm, loc)
}

// LocalDateString es la inversa parcial de ToInstant, usada para
// precargar formularios de edición desde un instante del servidor.
func LocalDateString(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dateLayout)
}

func LocalTimeString(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(timeLayout)
}
