package router

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "care-companion/docs"
	memcache "care-companion/internal/adapters/cache/memory"
	mem "care-companion/internal/adapters/storage/memory"
	pg "care-companion/internal/adapters/storage/postgres"
	"care-companion/internal/domain/accounts"
	"care-companion/internal/domain/agenda"
	"care-companion/internal/domain/elders"
	"care-companion/internal/middleware"
	"care-companion/internal/platform/logger"
	"care-companion/internal/ports/auth"
	"care-companion/internal/ports/cache"
)

// Tokens: el mismo componente emite (signup/login) y verifica (middleware).
type Tokens interface {
	auth.AuthVerifier
	auth.TokenIssuer
}

type Options struct {
	Logger logger.Logger
	Tokens Tokens

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB
	// Opcional: si no viene, cache en proceso.
	Cache cache.Cache

	BcryptCost     int
	FamilyCacheTTL time.Duration

	// Reloj de la agenda; nil = time.Now.
	Now func() time.Time
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(middleware.Recover)

	r.Use(middleware.AuthContext(opts.Tokens))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var (
		accountRepo accounts.Repository
		elderRepo   elders.Repository
	)
	if opts.DB != nil {
		accountRepo = pg.NewAccountsRepo(opts.DB)
		elderRepo = pg.NewEldersRepo(opts.DB)
	} else {
		store := mem.NewStore()
		accountRepo = store.Accounts()
		elderRepo = store.Elders()
	}

	c := opts.Cache
	if c == nil {
		c = memcache.New()
	}

	// Services por módulo
	accountsSvc := accounts.NewService(accountRepo, accounts.Options{BcryptCost: opts.BcryptCost})
	eldersSvc := elders.NewService(elderRepo, accountsSvc, elders.Options{
		Cache:    c,
		CacheTTL: opts.FamilyCacheTTL,
	})

	// Rutas por módulo
	r.Route("/api", func(api chi.Router) {
		accounts.RegisterRoutes(api, accountsSvc, opts.Tokens)
		elders.RegisterRoutes(api, eldersSvc)
		agenda.RegisterRoutes(api, eldersSvc, opts.Now)
	})

	return r
}
