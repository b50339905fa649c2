package elders

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"care-companion/internal/platform/apperr"
)

// frequencySlots: franjas esperadas por frecuencia, en orden.
// "As needed" no tiene plantilla: acepta cualquier cantidad de tomas sin etiqueta.
var frequencySlots = map[Frequency][]TimeOfDay{
	FrequencyOnceADay:    {TimeMorning},
	FrequencyTwiceADay:   {TimeMorning, TimeEvening},
	FrequencyEvery8Hours: {TimeMorning, TimeAfternoon, TimeNight},
	FrequencyEvery4Hours: {TimeMorning, TimeAfternoon, TimeEvening, TimeNight},
	FrequencyAsNeeded:    nil,
}

// ExpectedSlots devuelve la plantilla de una frecuencia (copia) y si es conocida.
func ExpectedSlots(f Frequency) ([]TimeOfDay, bool) {
	slots, ok := frequencySlots[f]
	if !ok {
		return nil, false
	}
	return append([]TimeOfDay(nil), slots...), true
}

// ParseClock interpreta "HH:MM" (24h). Devuelve MalformedSchedule si no parsea.
func ParseClock(s string) (hour, minute int, err error) {
	t, perr := time.Parse("15:04", strings.TrimSpace(s))
	if perr != nil {
		return 0, 0, apperr.Wrap(apperr.KindMalformedSchedule, fmt.Sprintf("invalid time %q, expected HH:MM", s), perr)
	}
	return t.Hour(), t.Minute(), nil
}

// ValidateSchedule chequea que las tomas coincidan con la plantilla de la frecuencia.
func ValidateSchedule(f Frequency, entries []ScheduleEntry) error {
	slots, ok := frequencySlots[f]
	if !ok {
		return apperr.Validation(fmt.Sprintf("unknown frequency %q", f))
	}

	if f == FrequencyAsNeeded {
		for _, e := range entries {
			if e.TimeOfDay != TimeAsNeeded {
				return apperr.Validation("as needed medications must not carry a time of day")
			}
			if strings.TrimSpace(e.Time) == "" {
				continue
			}
			if _, _, err := ParseClock(e.Time); err != nil {
				return err
			}
		}
		return nil
	}

	if len(entries) != len(slots) {
		return apperr.Validation(fmt.Sprintf("frequency %q expects %d schedule entries, got %d", f, len(slots), len(entries)))
	}
	for i, e := range entries {
		if e.TimeOfDay != slots[i] {
			return apperr.Validation(fmt.Sprintf("schedule entry %d: expected %s, got %q", i+1, slots[i], e.TimeOfDay))
		}
		if _, _, err := ParseClock(e.Time); err != nil {
			return err
		}
	}
	return nil
}

// normalizeMedication aplica defaults (id, duration, schedule vacío) y valida.
func normalizeMedication(m Medication) (Medication, error) {
	m.Name = strings.TrimSpace(m.Name)
	m.Dosage = strings.TrimSpace(m.Dosage)
	m.Frequency = Frequency(strings.TrimSpace(string(m.Frequency)))
	m.Duration = Duration(strings.TrimSpace(string(m.Duration)))

	if m.Name == "" || m.Dosage == "" {
		return Medication{}, apperr.Validation("medication name and dosage are required")
	}
	if m.Duration == "" {
		m.Duration = DefaultDuration
	}
	if !m.Duration.Valid() {
		return Medication{}, apperr.Validation(fmt.Sprintf("unknown duration %q", m.Duration))
	}

	schedule := make([]ScheduleEntry, 0, len(m.Schedule))
	for _, e := range m.Schedule {
		schedule = append(schedule, ScheduleEntry{
			TimeOfDay: TimeOfDay(strings.TrimSpace(string(e.TimeOfDay))),
			Time:      strings.TrimSpace(e.Time),
		})
	}
	m.Schedule = schedule

	if err := ValidateSchedule(m.Frequency, m.Schedule); err != nil {
		return Medication{}, apperr.Wrap(apperr.KindOf(err), fmt.Sprintf("medication %q: %s", m.Name, apperr.PublicMessage(err)), err)
	}

	if strings.TrimSpace(m.ID) == "" {
		m.ID = uuid.NewString()
	}
	return m, nil
}
