package elders

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"care-companion/internal/domain/accounts"
	"care-companion/internal/platform/apperr"
	"care-companion/internal/platform/logger"
	"care-companion/internal/ports/cache"
)

const maxRelationshipLen = 40

var (
	ErrCaregiverNotFound = apperr.NotFound("family member not found")
	ErrNotInFamily       = apperr.NotFound("elderly member not found in your family")
	ErrElderNotFound     = apperr.NotFound("elderly member not found")
	ErrElderExists       = apperr.Duplicate("elderly user already exists")
)

// AccountDirectory evita que elders dependa del Service concreto de accounts.
type AccountDirectory interface {
	GetByID(ctx context.Context, id string) (accounts.Account, error)
	HashPassword(password string) (string, error)
}

type Service struct {
	repo     Repository
	accounts AccountDirectory
	now      func() time.Time

	// read-through de la lista de familia; nil = sin cache
	cache    cache.Cache
	cacheTTL time.Duration
}

type Options struct {
	Cache    cache.Cache
	CacheTTL time.Duration
}

func NewService(repo Repository, dir AccountDirectory, opts Options) *Service {
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Service{
		repo:     repo,
		accounts: dir,
		now:      time.Now,
		cache:    opts.Cache,
		cacheTTL: ttl,
	}
}

type CreateInput struct {
	Name     string
	Email    string
	Password string
	Health   HealthProfile

	// vacío => DefaultRelationship
	Relationship string
}

// Register crea la persona cuidada y la vincula al caregiver en una sola escritura.
func (s *Service) Register(ctx context.Context, caregiverID string, in CreateInput) (Elder, error) {
	if _, err := s.caregiver(ctx, caregiverID); err != nil {
		return Elder{}, err
	}

	name := strings.TrimSpace(in.Name)
	email := accounts.NormalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" {
		return Elder{}, apperr.Validation("all fields are required")
	}
	if !strings.Contains(email, "@") {
		return Elder{}, apperr.Validation("email is invalid")
	}

	relationship, err := normalizeRelationship(in.Relationship)
	if err != nil {
		return Elder{}, err
	}

	health, err := normalizeHealth(in.Health)
	if err != nil {
		return Elder{}, err
	}

	hash, err := s.accounts.HashPassword(in.Password)
	if err != nil {
		return Elder{}, err
	}

	now := s.now()
	e := Elder{
		Account: accounts.Account{
			ID:           uuid.NewString(),
			Role:         accounts.RoleElderly,
			Name:         name,
			Email:        email,
			PasswordHash: hash,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		Health: health,
	}
	link := Link{
		CaregiverID:  strings.TrimSpace(caregiverID),
		PersonID:     e.Account.ID,
		Relationship: relationship,
		CreatedAt:    now,
	}

	if err := s.repo.CreateLinked(ctx, e, link); err != nil {
		if errors.Is(err, apperr.ErrDuplicateIdentity) {
			return Elder{}, ErrElderExists
		}
		return Elder{}, err
	}

	s.invalidateFamily(ctx, link.CaregiverID)
	return e, nil
}

// ResolveLinked devuelve la persona solo si está en la lista de links del caregiver.
func (s *Service) ResolveLinked(ctx context.Context, caregiverID, personID string) (Elder, error) {
	if _, err := s.caregiver(ctx, caregiverID); err != nil {
		return Elder{}, err
	}
	return s.resolveLinked(ctx, caregiverID, personID)
}

func (s *Service) resolveLinked(ctx context.Context, caregiverID, personID string) (Elder, error) {
	personID = strings.TrimSpace(personID)
	if personID == "" {
		return Elder{}, ErrNotInFamily
	}

	links, err := s.repo.ListLinks(ctx, strings.TrimSpace(caregiverID))
	if err != nil {
		return Elder{}, err
	}

	// scan lineal: las listas de familia son chicas
	linked := false
	for _, l := range links {
		if l.PersonID == personID {
			linked = true
			break
		}
	}
	if !linked {
		return Elder{}, ErrNotInFamily
	}

	e, err := s.repo.GetByID(ctx, personID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Elder{}, ErrElderNotFound
		}
		return Elder{}, err
	}
	return e, nil
}

// ListLinked devuelve la familia del caregiver en orden de vínculo.
// Links colgantes (persona inexistente) se omiten.
func (s *Service) ListLinked(ctx context.Context, caregiverID string) ([]LinkedPerson, error) {
	if _, err := s.caregiver(ctx, caregiverID); err != nil {
		return nil, err
	}
	caregiverID = strings.TrimSpace(caregiverID)

	// la generación se lee antes que los links: si un write entra en el medio,
	// lo que guardemos queda bajo una generación vieja y nadie lo vuelve a leer
	gen, cacheable := s.familyGeneration(ctx, caregiverID)
	if cacheable {
		if cached, ok := s.cachedFamily(ctx, caregiverID, gen); ok {
			return cached, nil
		}
	}

	links, err := s.repo.ListLinks(ctx, caregiverID)
	if err != nil {
		return nil, err
	}

	out := make([]LinkedPerson, 0, len(links))
	for _, l := range links {
		e, err := s.repo.GetByID(ctx, l.PersonID)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, LinkedPerson{
			ID:           e.Account.ID,
			Name:         e.Account.Name,
			Email:        e.Account.Email,
			Relationship: l.Relationship,
			Health:       e.Health,
		})
	}

	if cacheable {
		s.storeFamily(ctx, caregiverID, gen, out)
	}
	return out, nil
}

type UpdateInput struct {
	Name     *string
	Email    *string
	Password *string // vacío = mantener
	Health   *HealthPatch
}

// Update mergea los campos presentes; mismo chequeo de link que ResolveLinked.
func (s *Service) Update(ctx context.Context, caregiverID, personID string, in UpdateInput) (Elder, error) {
	current, err := s.ResolveLinked(ctx, caregiverID, personID)
	if err != nil {
		return Elder{}, err
	}

	next := current
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Elder{}, apperr.Validation("name cannot be empty")
		}
		next.Account.Name = name
	}
	if in.Email != nil {
		email := accounts.NormalizeEmail(*in.Email)
		if email == "" || !strings.Contains(email, "@") {
			return Elder{}, apperr.Validation("email is invalid")
		}
		next.Account.Email = email
	}
	if in.Password != nil && *in.Password != "" {
		hash, err := s.accounts.HashPassword(*in.Password)
		if err != nil {
			return Elder{}, err
		}
		next.Account.PasswordHash = hash
	}
	if in.Health != nil {
		health, err := normalizeHealth(ApplyHealthPatch(current.Health, *in.Health))
		if err != nil {
			return Elder{}, err
		}
		next.Health = health
	}
	next.Account.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, next); err != nil {
		if errors.Is(err, apperr.ErrDuplicateIdentity) {
			return Elder{}, apperr.Duplicate("email already in use")
		}
		if errors.Is(err, apperr.ErrNotFound) {
			return Elder{}, ErrElderNotFound
		}
		return Elder{}, err
	}

	// todos los caregivers vinculados ven el cambio
	caregivers, err := s.repo.LinkedCaregivers(ctx, next.Account.ID)
	if err != nil {
		logger.FromContext(ctx).Warn("family cache: list linked caregivers failed", map[string]any{"error": err.Error()})
		caregivers = []string{strings.TrimSpace(caregiverID)}
	}
	s.invalidateFamily(ctx, caregivers...)

	return next, nil
}

// Get devuelve la persona por id (acceso propio del elderly).
func (s *Service) Get(ctx context.Context, elderID string) (Elder, error) {
	elderID = strings.TrimSpace(elderID)
	if elderID == "" {
		return Elder{}, ErrElderNotFound
	}
	e, err := s.repo.GetByID(ctx, elderID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Elder{}, ErrElderNotFound
		}
		return Elder{}, err
	}
	return e, nil
}

// Medications devuelve la lista de medicación del propio elderly.
func (s *Service) Medications(ctx context.Context, elderID string) ([]Medication, error) {
	e, err := s.Get(ctx, elderID)
	if err != nil {
		return nil, err
	}
	return cloneMedications(e.Health.Medications), nil
}

func (s *Service) caregiver(ctx context.Context, caregiverID string) (accounts.Account, error) {
	caregiverID = strings.TrimSpace(caregiverID)
	if caregiverID == "" {
		return accounts.Account{}, ErrCaregiverNotFound
	}
	a, err := s.accounts.GetByID(ctx, caregiverID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return accounts.Account{}, ErrCaregiverNotFound
		}
		return accounts.Account{}, err
	}
	if a.Role != accounts.RoleFamily {
		return accounts.Account{}, ErrCaregiverNotFound
	}
	return a, nil
}

func normalizeRelationship(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultRelationship, nil
	}
	if len(s) > maxRelationshipLen {
		return "", apperr.Validation("relationship is too long")
	}
	return s, nil
}

func normalizeHealth(hp HealthProfile) (HealthProfile, error) {
	if hp.Age <= 0 {
		return HealthProfile{}, apperr.Validation("age is required and must be positive")
	}
	hp.Gender = Gender(strings.TrimSpace(string(hp.Gender)))
	if !hp.Gender.Valid() {
		return HealthProfile{}, apperr.Validation("gender must be one of Male, Female, Other")
	}

	hp.EmergencyContact.Name = strings.TrimSpace(hp.EmergencyContact.Name)
	hp.EmergencyContact.Phone = strings.TrimSpace(hp.EmergencyContact.Phone)
	if hp.EmergencyContact.Name == "" || hp.EmergencyContact.Phone == "" {
		return HealthProfile{}, apperr.Validation("emergency contact name and phone are required")
	}

	allergies := make([]string, 0, len(hp.Allergies))
	for _, a := range hp.Allergies {
		if a = strings.TrimSpace(a); a != "" {
			allergies = append(allergies, a)
		}
	}
	hp.Allergies = allergies

	meds := make([]Medication, 0, len(hp.Medications))
	for _, m := range hp.Medications {
		nm, err := normalizeMedication(m)
		if err != nil {
			return HealthProfile{}, err
		}
		meds = append(meds, nm)
	}
	hp.Medications = meds

	return hp, nil
}

// --- family cache ---
//
// family:gen:<caregiver> guarda la generación vigente; la lista vive en
// family:<caregiver>:<gen>. Invalidar es rotar la generación.

const initialFamilyGen = "0"

func familyGenKey(caregiverID string) string {
	return "family:gen:" + caregiverID
}

func familyKey(caregiverID, gen string) string {
	return "family:" + caregiverID + ":" + gen
}

// familyGeneration devuelve false si el cache no responde; en ese caso no se
// lee ni se escribe la lista.
func (s *Service) familyGeneration(ctx context.Context, caregiverID string) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	raw, found, err := s.cache.Get(ctx, familyGenKey(caregiverID))
	if err != nil {
		logger.FromContext(ctx).Warn("family cache: get generation failed", map[string]any{"error": err.Error()})
		return "", false
	}
	if !found || len(raw) == 0 {
		return initialFamilyGen, true
	}
	return string(raw), true
}

func (s *Service) cachedFamily(ctx context.Context, caregiverID, gen string) ([]LinkedPerson, bool) {
	raw, found, err := s.cache.Get(ctx, familyKey(caregiverID, gen))
	if err != nil {
		logger.FromContext(ctx).Warn("family cache: get failed", map[string]any{"error": err.Error()})
		return nil, false
	}
	if !found {
		return nil, false
	}
	var out []LinkedPerson
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, false
	}
	return out, true
}

func (s *Service) storeFamily(ctx context.Context, caregiverID, gen string, family []LinkedPerson) {
	raw, err := json.Marshal(family)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, familyKey(caregiverID, gen), raw, s.cacheTTL); err != nil {
		logger.FromContext(ctx).Warn("family cache: set failed", map[string]any{"error": err.Error()})
	}
}

// invalidateFamily rota la generación de cada caregiver. Se llama después
// del commit. La generación vive el doble que la lista: cuando vence,
// cualquier lista guardada bajo la inicial ya venció antes.
func (s *Service) invalidateFamily(ctx context.Context, caregiverIDs ...string) {
	if s.cache == nil {
		return
	}
	for _, id := range caregiverIDs {
		if err := s.cache.Set(ctx, familyGenKey(id), []byte(uuid.NewString()), 2*s.cacheTTL); err != nil {
			logger.FromContext(ctx).Warn("family cache: invalidate failed", map[string]any{
				"caregiver_id": id,
				"error":        err.Error(),
			})
		}
	}
}
