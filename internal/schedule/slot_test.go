package schedule

import (
	"testing"
	"time"
)

var lapaz = time.FixedZone("-04", -4*60*60)

func busyAt(t *testing.T, day, startHM, endHM string) Interval {
	t.Helper()
	s, err := ToInstant(day, startHM, lapaz)
	if err != nil {
		t.Fatalf("bad fixture start: %v", err)
	}
	e, err := ToInstant(day, endHM, lapaz)
	if err != nil {
		t.Fatalf("bad fixture end: %v", err)
	}
	return Interval{Start: s, End: e}
}

func TestIsOccupied(t *testing.T) {
	day := "2025-03-10"
	busy := []Interval{busyAt(t, day, "09:00", "10:00")}

	cases := []struct {
		name    string
		startHM string
		endHM   string
		want    bool
	}{
		{"solape parcial", "09:30", "10:30", true},
		{"mismo intervalo exacto", "09:00", "10:00", true},
		{"candidato contiene al ocupado", "08:30", "10:30", true},
		{"candidato contenido en el ocupado", "09:15", "09:45", true},
		{"espalda con espalda despues", "10:00", "10:30", false},
		{"espalda con espalda antes", "08:00", "09:00", false},
		{"sin solape", "08:00", "08:30", false},
		{"punto dentro (sin hora fin)", "09:30", "", true},
		{"punto en el inicio (sin hora fin)", "09:00", "", true},
		{"punto en el fin no cuenta", "10:00", "", false},
		{"hora inicio invalida", "9am", "10:30", true},
		{"hora fin invalida", "09:30", "mediodia", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := IsOccupied(day, tc.startHM, tc.endHM, lapaz, busy)
			if got != tc.want {
				t.Fatalf("IsOccupied(%q, %q) = %v, want %v", tc.startHM, tc.endHM, got, tc.want)
			}
		})
	}
}

func TestIsOccupied_SinRestricciones(t *testing.T) {
	// Sin intervalos nunca hay conflicto, sea cual sea el horario.
	if IsOccupied("2025-03-10", "09:00", "10:00", lapaz, nil) {
		t.Fatal("expected false with no intervals")
	}
	if IsOccupied("2025-03-10", "no-es-hora", "tampoco", lapaz, nil) {
		t.Fatal("expected false with no intervals even for bad times")
	}

	// Sin fecha no hay restricción conocible.
	busy := []Interval{busyAt(t, "2025-03-10", "09:00", "10:00")}
	if IsOccupied("", "09:30", "10:30", lapaz, busy) {
		t.Fatal("expected false without a day")
	}
}

func TestValidateDuration(t *testing.T) {
	cases := []struct {
		startHM string
		endHM   string
		want    DurationResult
	}{
		{"09:00", "11:00", DurationOK},
		{"09:00", "11:01", DurationTooLong},
		{"09:00", "09:00", DurationTooShort},
		{"09:00", "08:59", DurationTooShort},
		{"09:00", "09:01", DurationOK},
		{"bad", "10:00", DurationTooShort},
		{"09:00", "bad", DurationTooShort},
	}

	for _, tc := range cases {
		if got := ValidateDuration(tc.startHM, tc.endHM); got != tc.want {
			t.Errorf("ValidateDuration(%q, %q) = %v, want %v", tc.startHM, tc.endHM, got, tc.want)
		}
	}
}
