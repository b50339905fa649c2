package elders

import (
	"net/http"
	"time"

	"care-companion/internal/domain/accounts"
	"care-companion/internal/middleware"
	"care-companion/internal/platform/logger"
	"care-companion/internal/platform/respond"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	// Caregiver (family)
	r.Group(func(fr chi.Router) {
		fr.Use(middleware.RequireRole(string(accounts.RoleFamily)))

		fr.Post("/create-elderly", createElderHandler(svc))
		fr.Get("/family-members", listFamilyHandler(svc))
		fr.Get("/elderly/{elderID}", getElderHandler(svc))
		fr.Put("/elderly/{elderID}", updateElderHandler(svc))
	})

	// Persona cuidada: su propia medicación
	r.With(middleware.RequireRole(string(accounts.RoleElderly))).
		Get("/medications", listMyMedicationsHandler(svc))
}

// createElderRequest mantiene las keys camelCase que envía el frontend.
type createElderRequest struct {
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Password     string        `json:"password"`
	Relationship string        `json:"relationship"` // opcional, default "Parent"
	HealthData   HealthProfile `json:"healthData"`
}

type updateElderRequest struct {
	// Punteros: nil = no tocar.
	Name       *string      `json:"name"`
	Email      *string      `json:"email"`
	Password   *string      `json:"password"`
	HealthData *HealthPatch `json:"healthData"`
}

type elderResponse struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Email      string        `json:"email"`
	Role       accounts.Role `json:"role"`
	HealthData HealthProfile `json:"healthData"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

type elderEnvelope struct {
	Message string        `json:"message"`
	Elderly elderResponse `json:"elderly"`
}

// createElderHandler godoc
// @Summary Crear persona cuidada y vincularla al caregiver
// @Description Crea la cuenta elderly con su perfil de salud y agrega el vínculo al caregiver del token, en una sola operación.
// @Tags elderly
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token (role family)"
// @Param payload body createElderRequest true "Datos de la persona"
// @Success 201 {object} elderEnvelope
// @Failure 400 {object} respond.ErrorBody "ValidationError / MalformedSchedule"
// @Failure 404 {object} respond.ErrorBody "family member not found"
// @Failure 409 {object} respond.ErrorBody "DuplicateIdentity"
// @Router /create-elderly [post]
func createElderHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req createElderRequest
		if err := respond.DecodeJSON(r, &req); err != nil {
			respond.Error(w, r, err)
			return
		}

		e, err := svc.Register(r.Context(), claims.UserID, CreateInput{
			Name:         req.Name,
			Email:        req.Email,
			Password:     req.Password,
			Health:       req.HealthData,
			Relationship: req.Relationship,
		})
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		logger.FromContext(r.Context()).Info("elderly created and linked", map[string]any{"elderly_id": e.Account.ID})

		respond.JSON(w, http.StatusCreated, elderEnvelope{
			Message: "Elderly user created and added to family",
			Elderly: toElderResponse(e),
		})
	}
}

// listFamilyHandler godoc
// @Summary Listar familia del caregiver
// @Tags elderly
// @Produce json
// @Param Authorization header string true "Bearer token (role family)"
// @Success 200 {array} LinkedPerson
// @Router /family-members [get]
func listFamilyHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		items, err := svc.ListLinked(r.Context(), claims.UserID)
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, items)
	}
}

// getElderHandler godoc
// @Summary Ver persona vinculada
// @Tags elderly
// @Produce json
// @Param Authorization header string true "Bearer token (role family)"
// @Param elderID path string true "ID de la persona"
// @Success 200 {object} elderResponse
// @Failure 404 {object} respond.ErrorBody "no vinculada o inexistente"
// @Router /elderly/{elderID} [get]
func getElderHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		e, err := svc.ResolveLinked(r.Context(), claims.UserID, chi.URLParam(r, "elderID"))
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, toElderResponse(e))
	}
}

// updateElderHandler godoc
// @Summary Actualizar persona vinculada (merge por campo)
// @Description Campos ausentes no se tocan. medications/allergies reemplazan la lista completa; emergencyContact se mergea por campo.
// @Tags elderly
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token (role family)"
// @Param elderID path string true "ID de la persona"
// @Param payload body updateElderRequest true "Campos a actualizar"
// @Success 200 {object} elderEnvelope
// @Router /elderly/{elderID} [put]
func updateElderHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		var req updateElderRequest
		if err := respond.DecodeJSON(r, &req); err != nil {
			respond.Error(w, r, err)
			return
		}

		e, err := svc.Update(r.Context(), claims.UserID, chi.URLParam(r, "elderID"), UpdateInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
			Health:   req.HealthData,
		})
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		respond.JSON(w, http.StatusOK, elderEnvelope{
			Message: "Elderly member updated successfully",
			Elderly: toElderResponse(e),
		})
	}
}

// listMyMedicationsHandler godoc
// @Summary Medicación del elderly autenticado
// @Tags elderly
// @Produce json
// @Param Authorization header string true "Bearer token (role elderly)"
// @Success 200 {array} Medication
// @Router /medications [get]
func listMyMedicationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		meds, err := svc.Medications(r.Context(), claims.UserID)
		if err != nil {
			respond.Error(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, meds)
	}
}

func toElderResponse(e Elder) elderResponse {
	return elderResponse{
		ID:         e.Account.ID,
		Name:       e.Account.Name,
		Email:      e.Account.Email,
		Role:       e.Account.Role,
		HealthData: e.Health,
		CreatedAt:  e.Account.CreatedAt,
		UpdatedAt:  e.Account.UpdatedAt,
	}
}
