package agenda

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"care-companion/internal/domain/accounts"
	"care-companion/internal/domain/elders"
	"care-companion/internal/middleware"
	"care-companion/internal/platform/apperr"
	"care-companion/internal/platform/respond"
)

// RegisterRoutes expone la agenda del día.
// now se inyecta para tests; nil = time.Now.
func RegisterRoutes(r chi.Router, people *elders.Service, now func() time.Time) {
	if now == nil {
		now = time.Now
	}

	r.With(middleware.RequireRole(string(accounts.RoleElderly))).
		Get("/agenda", myAgendaHandler(people, now))
	r.With(middleware.RequireRole(string(accounts.RoleFamily))).
		Get("/elderly/{elderID}/agenda", linkedAgendaHandler(people, now))
}

// myAgendaHandler godoc
// @Summary Agenda del día del elderly autenticado
// @Tags agenda
// @Produce json
// @Param Authorization header string true "Bearer token (role elderly)"
// @Param at query string false "Instante de referencia (RFC3339)"
// @Param tz query string false "Zona IANA en la que se leen las horas"
// @Success 200 {object} Agenda
// @Failure 400 {object} respond.ErrorBody "at / tz inválidos"
// @Router /agenda [get]
func myAgendaHandler(people *elders.Service, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		ref, err := referenceTime(r, now)
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		meds, err := people.Medications(r.Context(), claims.UserID)
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, Evaluate(meds, ref))
	}
}

// linkedAgendaHandler godoc
// @Summary Agenda del día de una persona vinculada
// @Tags agenda
// @Produce json
// @Param Authorization header string true "Bearer token (role family)"
// @Param elderID path string true "ID de la persona"
// @Param at query string false "Instante de referencia (RFC3339)"
// @Param tz query string false "Zona IANA en la que se leen las horas"
// @Success 200 {object} Agenda
// @Failure 404 {object} respond.ErrorBody "no vinculada o inexistente"
// @Router /elderly/{elderID}/agenda [get]
func linkedAgendaHandler(people *elders.Service, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		ref, err := referenceTime(r, now)
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		e, err := people.ResolveLinked(r.Context(), claims.UserID, chi.URLParam(r, "elderID"))
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, Evaluate(e.Health.Medications, ref))
	}
}

// referenceTime: ?at=RFC3339 (default now) y ?tz=IANA (default la zona de at).
func referenceTime(r *http.Request, now func() time.Time) (time.Time, error) {
	ref := now()

	if raw := strings.TrimSpace(r.URL.Query().Get("at")); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return time.Time{}, apperr.Validation("at must be an RFC3339 timestamp")
		}
		ref = t
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("tz")); raw != "" {
		loc, err := time.LoadLocation(raw)
		if err != nil {
			return time.Time{}, apperr.Validation("tz must be an IANA time zone")
		}
		ref = ref.In(loc)
	}
	return ref, nil
}
