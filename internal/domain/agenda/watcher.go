package agenda

import (
	"context"
	"time"

	"care-companion/internal/domain/elders"
)

const DefaultInterval = 60 * time.Second

// Watcher recalcula la agenda cada Interval contra un now nuevo.
// La lista de medicación es fija durante la vida del watcher.
type Watcher struct {
	Interval time.Duration
	Now      func() time.Time
}

// Run emite una vez al arrancar y luego en cada tick, hasta que ctx se cancela.
func (w Watcher) Run(ctx context.Context, meds []elders.Medication, emit func(Agenda)) error {
	interval := w.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	now := w.Now
	if now == nil {
		now = time.Now
	}

	emit(Evaluate(meds, now()))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			emit(Evaluate(meds, now()))
		}
	}
}
