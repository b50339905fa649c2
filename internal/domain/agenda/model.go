package agenda

import (
	"time"

	"care-companion/internal/domain/elders"
	"care-companion/internal/platform/apperr"
)

// Status de una toma respecto del instante de referencia.
// @Enum Taken, DueSoon, Missed, Scheduled
type Status string

const (
	StatusTaken     Status = "Taken"
	StatusDueSoon   Status = "DueSoon"
	StatusMissed    Status = "Missed"
	StatusScheduled Status = "Scheduled"
)

// Variant es solo cosmético (clase css del frontend).
type Variant string

const (
	VariantOK        Variant = "ok"
	VariantWait      Variant = "wait"
	VariantMissed    Variant = "missed"
	VariantScheduled Variant = "scheduled"
)

// Item es una toma calculada. Nunca se persiste.
type Item struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Time         string           `json:"time"`
	TimeOfDay    elders.TimeOfDay `json:"timeOfDay"`
	ScheduledAt  time.Time        `json:"scheduledAt"`
	MedicationID string           `json:"medicationId"`
	Medication   string           `json:"medication"`
	Dosage       string           `json:"dosage"`
	Status       Status           `json:"status"`
	Variant      Variant          `json:"variant"`
	Label        string           `json:"label"`
	Meta         string           `json:"meta"`
}

// Skipped: toma que no se pudo ubicar en el día (hora mal formada).
type Skipped struct {
	MedicationID string      `json:"medicationId"`
	Medication   string      `json:"medication"`
	Time         string      `json:"time"`
	Reason       string      `json:"reason"`
	Kind         apperr.Kind `json:"kind"`
}

type Agenda struct {
	At      time.Time `json:"at"`
	Items   []Item    `json:"items"`
	Skipped []Skipped `json:"skipped,omitempty"`
}
