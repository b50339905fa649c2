package agenda

import (
	"fmt"
	"sort"
	"time"

	"care-companion/internal/domain/elders"
	"care-companion/internal/platform/apperr"
)

// Ventanas en minutos, medidas como scheduled - now.
const (
	missedAfter  = -30.0
	dueSoonUntil = 15.0
)

// Classify clasifica una toma según los minutos que faltan (negativo = ya pasó).
func Classify(elapsed float64) Status {
	switch {
	case elapsed < missedAfter:
		return StatusMissed
	case elapsed < 0:
		return StatusTaken
	case elapsed <= dueSoonUntil:
		return StatusDueSoon
	default:
		return StatusScheduled
	}
}

func (s Status) Variant() Variant {
	switch s {
	case StatusTaken:
		return VariantOK
	case StatusDueSoon:
		return VariantWait
	case StatusMissed:
		return VariantMissed
	default:
		return VariantScheduled
	}
}

func (s Status) Label() string {
	switch s {
	case StatusTaken:
		return "Taken"
	case StatusDueSoon:
		return "Due soon"
	case StatusMissed:
		return "Missed"
	default:
		return "Scheduled"
	}
}

// Meta es el texto corto de la tarjeta: solo Taken y Missed son finales.
func (s Status) Meta() string {
	switch s {
	case StatusTaken:
		return "Taken"
	case StatusMissed:
		return "Missed"
	default:
		return "Awaiting"
	}
}

// Evaluate arma la agenda del día de now (en la zona de now).
// Es pura: mismo input, mismo output. No modifica meds.
func Evaluate(meds []elders.Medication, now time.Time) Agenda {
	out := Agenda{At: now, Items: make([]Item, 0)}

	for _, med := range meds {
		for _, e := range med.Schedule {
			// "as needed" sin hora: no se agenda
			if e.Time == "" && med.Frequency == elders.FrequencyAsNeeded {
				continue
			}

			h, m, err := elders.ParseClock(e.Time)
			if err != nil {
				out.Skipped = append(out.Skipped, Skipped{
					MedicationID: med.ID,
					Medication:   med.Name,
					Time:         e.Time,
					Reason:       apperr.PublicMessage(err),
					Kind:         apperr.KindMalformedSchedule,
				})
				continue
			}

			at := slotTime(now, h, m)
			status := Classify(at.Sub(now).Minutes())
			clock := fmt.Sprintf("%02d:%02d", h, m)

			title := med.Name
			if e.TimeOfDay != elders.TimeAsNeeded {
				title = med.Name + " - " + string(e.TimeOfDay)
			}

			out.Items = append(out.Items, Item{
				ID:           med.ID + "-" + clock,
				Title:        title,
				Time:         clock,
				TimeOfDay:    e.TimeOfDay,
				ScheduledAt:  at,
				MedicationID: med.ID,
				Medication:   med.Name,
				Dosage:       med.Dosage,
				Status:       status,
				Variant:      status.Variant(),
				Label:        status.Label(),
				Meta:         status.Meta(),
			})
		}
	}

	sort.SliceStable(out.Items, func(i, j int) bool {
		return out.Items[i].ScheduledAt.Before(out.Items[j].ScheduledAt)
	})
	return out
}

// slotTime ubica HH:MM en el día de now, en su zona. Si esa hora no existe
// (salto de DST hacia adelante) se corre lo que dura el salto: 02:30 en un
// salto de 02:00 a 03:00 queda 03:30. Item.Time e Item.ID conservan 02:30.
func slotTime(now time.Time, h, m int) time.Time {
	y, mo, d := now.Date()
	at := time.Date(y, mo, d, h, m, 0, 0, now.Location())
	if at.Hour() == h && at.Minute() == m {
		return at
	}
	want := time.Date(y, mo, d, h, m, 0, 0, time.UTC)
	got := time.Date(at.Year(), at.Month(), at.Day(), at.Hour(), at.Minute(), 0, 0, time.UTC)
	if got.Before(want) {
		at = at.Add(want.Sub(got))
	}
	return at
}
