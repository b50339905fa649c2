package agenda

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"care-companion/internal/domain/elders"
)

func TestWatcher_EmitsImmediatelyAndOnEachTick(t *testing.T) {
	var (
		mu    sync.Mutex
		calls int
		seen  []Agenda
	)
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		calls++
		// cada evaluación avanza 10 minutos
		return at(7, 40).Add(time.Duration(calls-1) * 10 * time.Minute)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	w := Watcher{Interval: 5 * time.Millisecond, Now: clock}
	go func() {
		done <- w.Run(ctx, []elders.Medication{aspirin()}, func(a Agenda) {
			mu.Lock()
			seen = append(seen, a)
			n := len(seen)
			mu.Unlock()
			if n == 3 {
				cancel()
			}
		})
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}

	mu.Lock()
	defer mu.Unlock()
	require.GreaterOrEqual(t, len(seen), 3)
	// 07:40 -> Scheduled, 07:50 -> DueSoon, 08:00 -> DueSoon
	assert.Equal(t, StatusScheduled, seen[0].Items[0].Status)
	assert.Equal(t, StatusDueSoon, seen[1].Items[0].Status)
	assert.Equal(t, StatusDueSoon, seen[2].Items[0].Status)
}

func TestWatcher_CancelledContextStillEmitsOnce(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	n := 0
	err := Watcher{Interval: time.Hour, Now: func() time.Time { return at(8, 0) }}.
		Run(ctx, nil, func(Agenda) { n++ })

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, n)
}
