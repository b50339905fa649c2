package carecli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"care-companion/internal/client"
	"care-companion/internal/domain/agenda"
	"care-companion/internal/domain/elders"
	"care-companion/internal/platform/logger"
)

const (
	CommandFamily = "family"
	CommandAgenda = "agenda"
	CommandWatch  = "watch"
)

// Config del comando.
type Config struct {
	Command  string
	Addr     string
	Email    string
	Password string
	ElderID  string
	TZ       string
	Interval time.Duration
	LogLevel string
}

// EnvLookup devuelve el valor de una env var si existe.
type EnvLookup func(string) (string, bool)

// ParseConfig parsea flags + subcomando. El password puede venir de CARE_PASSWORD.
func ParseConfig(fs *flag.FlagSet, args []string, lookup EnvLookup) (Config, error) {
	cfg := Config{
		Addr:     envOr(lookup, "CARE_ADDR", "http://localhost:3000"),
		Email:    envOr(lookup, "CARE_EMAIL", ""),
		Password: envOr(lookup, "CARE_PASSWORD", ""),
	}

	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "API base url")
	fs.StringVar(&cfg.Email, "email", cfg.Email, "login email")
	fs.StringVar(&cfg.Password, "password", cfg.Password, "login password (or CARE_PASSWORD)")
	fs.StringVar(&cfg.ElderID, "elder", "", "elderly id (family accounts only)")
	fs.StringVar(&cfg.TZ, "tz", "", "IANA zone for schedule times (default local)")
	fs.DurationVar(&cfg.Interval, "interval", agenda.DefaultInterval, "refresh interval for watch")
	fs.StringVar(&cfg.LogLevel, "log-level", "warn", "log level")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if fs.NArg() != 1 {
		return Config{}, fmt.Errorf("expected one command: %s, %s or %s", CommandFamily, CommandAgenda, CommandWatch)
	}
	cfg.Command = fs.Arg(0)
	switch cfg.Command {
	case CommandFamily, CommandAgenda, CommandWatch:
	default:
		return Config{}, fmt.Errorf("unknown command %q", cfg.Command)
	}

	if strings.TrimSpace(cfg.Email) == "" || cfg.Password == "" {
		return Config{}, errors.New("email and password are required")
	}
	if cfg.Interval <= 0 {
		return Config{}, errors.New("interval must be positive")
	}
	return cfg, nil
}

// Run ejecuta el comando. watch corre hasta que ctx se cancela.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		App:    "carecli",
		Output: os.Stderr,
	})
	api, err := client.New(cfg.Addr, client.Options{Logger: log})
	if err != nil {
		return err
	}

	session, err := api.Login(ctx, cfg.Email, cfg.Password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	log.Debug("logged in", map[string]any{"user_id": session.UserID, "role": session.Role})

	switch cfg.Command {
	case CommandFamily:
		return runFamily(ctx, api, out)
	case CommandAgenda:
		var a agenda.Agenda
		if cfg.ElderID != "" {
			a, err = api.ElderAgenda(ctx, cfg.ElderID, time.Time{}, cfg.TZ)
		} else {
			a, err = api.Agenda(ctx, time.Time{}, cfg.TZ)
		}
		if err != nil {
			return err
		}
		return PrintAgenda(out, a)
	case CommandWatch:
		return runWatch(ctx, api, cfg, out)
	}
	return fmt.Errorf("unknown command %q", cfg.Command)
}

func runFamily(ctx context.Context, api *client.Client, out io.Writer) error {
	family, err := api.FamilyMembers(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tRELATION\tAGE\tMEDICATIONS")
	for _, p := range family {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n", p.ID, p.Name, p.Relationship, p.Health.Age, len(p.Health.Medications))
	}
	return tw.Flush()
}

// runWatch baja la medicación una vez y recalcula localmente en cada tick.
func runWatch(ctx context.Context, api *client.Client, cfg Config, out io.Writer) error {
	var meds []elders.Medication
	if cfg.ElderID != "" {
		e, err := api.Elder(ctx, cfg.ElderID)
		if err != nil {
			return err
		}
		meds = e.HealthData.Medications
	} else {
		m, err := api.Medications(ctx)
		if err != nil {
			return err
		}
		meds = m
	}

	loc := time.Local
	if cfg.TZ != "" {
		l, err := time.LoadLocation(cfg.TZ)
		if err != nil {
			return fmt.Errorf("tz: %w", err)
		}
		loc = l
	}

	w := agenda.Watcher{
		Interval: cfg.Interval,
		Now:      func() time.Time { return time.Now().In(loc) },
	}
	err := w.Run(ctx, meds, func(a agenda.Agenda) {
		_ = PrintAgenda(out, a)
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// PrintAgenda escribe la agenda como tabla.
func PrintAgenda(out io.Writer, a agenda.Agenda) error {
	fmt.Fprintf(out, "Agenda %s\n", a.At.Format("2006-01-02 15:04 MST"))
	if len(a.Items) == 0 {
		fmt.Fprintln(out, "  no scheduled doses")
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, it := range a.Items {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", it.Time, it.Label, it.Title, it.Dosage)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, s := range a.Skipped {
		fmt.Fprintf(out, "  skipped %s %q: %s\n", s.Medication, s.Time, s.Reason)
	}
	return nil
}

func envOr(lookup EnvLookup, key, def string) string {
	if lookup == nil {
		return def
	}
	if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return def
}
