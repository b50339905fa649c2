package accounts

import (
	"net/http"

	"care-companion/internal/platform/logger"
	"care-companion/internal/platform/respond"
	"care-companion/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, tokens auth.TokenIssuer) {
	r.Post("/signup", signupHandler(svc, tokens))
	r.Post("/login", loginHandler(svc, tokens))
}

// signupRequest mantiene los nombres de campo que ya usa el frontend.
type signupRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	MobileNumber string `json:"mobileNumber"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	Role    Role   `json:"role,omitempty"`
	UserID  string `json:"userId"`
}

// signupHandler godoc
// @Summary Registrar cuenta family (caregiver)
// @Description Crea la cuenta, guarda el password hasheado y devuelve un token.
// @Tags accounts
// @Accept json
// @Produce json
// @Param payload body signupRequest true "Datos de registro"
// @Success 201 {object} tokenResponse
// @Failure 400 {object} respond.ErrorBody "ValidationError"
// @Failure 409 {object} respond.ErrorBody "DuplicateIdentity"
// @Router /signup [post]
func signupHandler(svc *Service, tokens auth.TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signupRequest
		if err := respond.DecodeJSON(r, &req); err != nil {
			respond.Error(w, r, err)
			return
		}

		a, err := svc.RegisterCaregiver(r.Context(), SignupInput{
			Name:        req.Name,
			Email:       req.Email,
			Password:    req.Password,
			PhoneNumber: req.MobileNumber,
		})
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		token, err := tokens.Issue(r.Context(), a.ID, string(a.Role))
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		logger.FromContext(r.Context()).Info("caregiver registered", map[string]any{"user_id": a.ID})

		respond.JSON(w, http.StatusCreated, tokenResponse{
			Message: "User created successfully",
			Token:   token,
			Role:    a.Role,
			UserID:  a.ID,
		})
	}
}

// loginHandler godoc
// @Summary Login (family o elderly)
// @Tags accounts
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} tokenResponse
// @Failure 401 {object} respond.ErrorBody "InvalidCredential"
// @Failure 404 {object} respond.ErrorBody "NotFound"
// @Router /login [post]
func loginHandler(svc *Service, tokens auth.TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := respond.DecodeJSON(r, &req); err != nil {
			respond.Error(w, r, err)
			return
		}

		a, err := svc.Authenticate(r.Context(), req.Email, req.Password)
		if err != nil {
			// no logueamos el email completo
			logger.FromContext(r.Context()).Info("login rejected", map[string]any{"reason": err.Error()})
			respond.Error(w, r, err)
			return
		}

		token, err := tokens.Issue(r.Context(), a.ID, string(a.Role))
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		respond.JSON(w, http.StatusOK, tokenResponse{
			Message: "Login successful",
			Token:   token,
			Role:    a.Role,
			UserID:  a.ID,
		})
	}
}
