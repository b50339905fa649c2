package carecli

import (
	"bytes"
	"context"
	"flag"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"care-companion/internal/adapters/auth/jwtauth"
	"care-companion/internal/client"
	"care-companion/internal/domain/agenda"
	"care-companion/internal/domain/elders"
	"care-companion/internal/router"
)

func TestParseConfig(t *testing.T) {
	env := map[string]string{"CARE_PASSWORD": "from-env", "CARE_ADDR": "http://api:3000"}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	cfg, err := ParseConfig(flag.NewFlagSet("t", flag.ContinueOnError), []string{"-email", "a@x.com", "watch"}, lookup)
	require.NoError(t, err)
	assert.Equal(t, CommandWatch, cfg.Command)
	assert.Equal(t, "from-env", cfg.Password)
	assert.Equal(t, "http://api:3000", cfg.Addr)
	assert.Equal(t, agenda.DefaultInterval, cfg.Interval)

	_, err = ParseConfig(flag.NewFlagSet("t", flag.ContinueOnError), []string{"-email", "a@x.com", "-password", "p", "dance"}, nil)
	assert.Error(t, err)

	_, err = ParseConfig(flag.NewFlagSet("t", flag.ContinueOnError), []string{"family"}, nil)
	assert.Error(t, err)

	_, err = ParseConfig(flag.NewFlagSet("t", flag.ContinueOnError), []string{"-email", "a@x.com", "-password", "p"}, nil)
	assert.Error(t, err)
}

func TestPrintAgenda(t *testing.T) {
	meds := []elders.Medication{
		{
			ID: "m1", Name: "Aspirin", Dosage: "100mg", Frequency: elders.FrequencyOnceADay,
			Schedule: []elders.ScheduleEntry{{TimeOfDay: elders.TimeMorning, Time: "08:00"}},
		},
		{
			ID: "m2", Name: "Broken", Dosage: "1", Frequency: elders.FrequencyOnceADay,
			Schedule: []elders.ScheduleEntry{{TimeOfDay: elders.TimeMorning, Time: "eight"}},
		},
	}
	a := agenda.Evaluate(meds, time.Date(2025, 3, 1, 8, 5, 0, 0, time.UTC))

	var buf bytes.Buffer
	require.NoError(t, PrintAgenda(&buf, a))
	out := buf.String()
	assert.Contains(t, out, "08:00")
	assert.Contains(t, out, "Taken")
	assert.Contains(t, out, "Aspirin - Morning")
	assert.Contains(t, out, `skipped Broken "eight"`)

	buf.Reset()
	require.NoError(t, PrintAgenda(&buf, agenda.Evaluate(nil, time.Now())))
	assert.Contains(t, buf.String(), "no scheduled doses")
}

func seedAPI(t *testing.T) (baseURL, elderID string) {
	t.Helper()

	tokens, err := jwtauth.NewManager(jwtauth.Config{Secret: []byte("carecli-test-secret-1"), TTL: time.Hour})
	require.NoError(t, err)
	ts := httptest.NewServer(router.NewRouter(router.Options{Tokens: tokens, BcryptCost: bcrypt.MinCost}))
	t.Cleanup(ts.Close)

	ctx := context.Background()
	c, err := client.New(ts.URL, client.Options{})
	require.NoError(t, err)
	_, err = c.Signup(ctx, client.SignupRequest{Name: "Ana", Email: "ana@example.com", Password: "pw", MobileNumber: "555"})
	require.NoError(t, err)

	e, err := c.CreateElder(ctx, client.NewElder{
		Name: "Rosa", Email: "rosa@example.com", Password: "secret", Relationship: "Mother",
		HealthData: elders.HealthProfile{
			Age: 80, Gender: elders.GenderFemale,
			Medications: []elders.Medication{{
				Name: "Aspirin", Dosage: "100mg", Frequency: elders.FrequencyOnceADay,
				Schedule: []elders.ScheduleEntry{{TimeOfDay: elders.TimeMorning, Time: "08:00"}},
			}},
			EmergencyContact: elders.EmergencyContact{Name: "Ana", Phone: "555"},
		},
	})
	require.NoError(t, err)
	return ts.URL, e.ID
}

func TestRun_Family(t *testing.T) {
	base, elderID := seedAPI(t)

	var buf bytes.Buffer
	err := Run(context.Background(), Config{
		Command: CommandFamily, Addr: base, Email: "ana@example.com", Password: "pw", Interval: time.Minute,
	}, &buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), elderID)
	assert.Contains(t, buf.String(), "Mother")
}

func TestRun_WatchStopsOnCancel(t *testing.T) {
	base, _ := seedAPI(t)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(200 * time.Millisecond)
		cancel()
	}()

	var buf bytes.Buffer
	err := Run(ctx, Config{
		Command: CommandWatch, Addr: base, Email: "rosa@example.com", Password: "secret",
		Interval: 10 * time.Millisecond, TZ: "UTC",
	}, &buf)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, strings.Count(buf.String(), "Agenda "), 2)
	assert.Contains(t, buf.String(), "Aspirin - Morning")
}

func TestRun_BadCredentials(t *testing.T) {
	base, _ := seedAPI(t)

	err := Run(context.Background(), Config{
		Command: CommandFamily, Addr: base, Email: "ana@example.com", Password: "wrong", Interval: time.Minute,
	}, nil)
	assert.Error(t, err)
}
