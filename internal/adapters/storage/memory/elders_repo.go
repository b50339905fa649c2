package memory

import (
	"context"
	"encoding/json"

	"care-companion/internal/domain/accounts"
	"care-companion/internal/domain/elders"
	"care-companion/internal/platform/apperr"
)

type elderRepo struct {
	s *Store
}

func (r *elderRepo) CreateLinked(ctx context.Context, e elders.Elder, l elders.Link) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	caregiver, ok := r.s.accounts[l.CaregiverID]
	if !ok || caregiver.Role != accounts.RoleFamily {
		return apperr.NotFound("family member not found")
	}

	// todas las validaciones antes de escribir: o entra todo o nada
	if err := r.s.insertAccountLocked(e.Account); err != nil {
		return err
	}
	r.s.health[e.Account.ID] = copyHealth(e.Health)
	r.s.links = append(r.s.links, l)
	return nil
}

func (r *elderRepo) GetByID(ctx context.Context, id string) (elders.Elder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.accounts[id]
	if !ok || a.Role != accounts.RoleElderly {
		return elders.Elder{}, apperr.ErrNotFound
	}
	return elders.Elder{Account: a, Health: copyHealth(r.s.health[id])}, nil
}

func (r *elderRepo) Update(ctx context.Context, e elders.Elder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.accounts[e.Account.ID]
	if !ok || current.Role != accounts.RoleElderly {
		return apperr.ErrNotFound
	}

	oldEmail := accounts.NormalizeEmail(current.Email)
	newEmail := accounts.NormalizeEmail(e.Account.Email)
	if newEmail != oldEmail {
		if _, taken := r.s.byEmail[newEmail]; taken {
			return apperr.Duplicate("email already exists")
		}
		delete(r.s.byEmail, oldEmail)
		r.s.byEmail[newEmail] = current.ID
	}

	// role y created_at no se tocan
	next := e.Account
	next.Role = current.Role
	next.CreatedAt = current.CreatedAt
	r.s.accounts[current.ID] = next
	r.s.health[current.ID] = copyHealth(e.Health)
	return nil
}

func (r *elderRepo) ListLinks(ctx context.Context, caregiverID string) ([]elders.Link, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]elders.Link, 0)
	for _, l := range r.s.links {
		if l.CaregiverID == caregiverID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *elderRepo) LinkedCaregivers(ctx context.Context, personID string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	seen := map[string]struct{}{}
	out := make([]string, 0)
	for _, l := range r.s.links {
		if l.PersonID != personID {
			continue
		}
		if _, ok := seen[l.CaregiverID]; ok {
			continue
		}
		seen[l.CaregiverID] = struct{}{}
		out = append(out, l.CaregiverID)
	}
	return out, nil
}

// copyHealth: el perfil tiene slices anidados; lo copiamos vía JSON
// para que nadie afuera comparta memoria con el store.
func copyHealth(hp elders.HealthProfile) elders.HealthProfile {
	b, err := json.Marshal(hp)
	if err != nil {
		return hp
	}
	var out elders.HealthProfile
	if err := json.Unmarshal(b, &out); err != nil {
		return hp
	}
	return out
}
