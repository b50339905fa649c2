package memory

import (
	"context"
	"errors"
	"strings"

	"care-companion/internal/domain/accounts"
	"care-companion/internal/platform/apperr"
)

type accountRepo struct {
	s *Store
}

func (r *accountRepo) Create(ctx context.Context, a accounts.Account) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.s.insertAccountLocked(a)
}

func (r *accountRepo) GetByID(ctx context.Context, id string) (accounts.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.accounts[id]
	if !ok {
		return accounts.Account{}, apperr.ErrNotFound
	}
	return a, nil
}

func (r *accountRepo) GetByEmail(ctx context.Context, email string) (accounts.Account, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.byEmail[accounts.NormalizeEmail(email)]
	if !ok {
		return accounts.Account{}, apperr.ErrNotFound
	}
	return r.s.accounts[id], nil
}

// insertAccountLocked valida unicidad e indexa. Requiere mu tomado.
func (s *Store) insertAccountLocked(a accounts.Account) error {
	if strings.TrimSpace(a.ID) == "" {
		return errors.New("account id required")
	}
	if _, exists := s.accounts[a.ID]; exists {
		return apperr.Duplicate("account already exists")
	}
	email := accounts.NormalizeEmail(a.Email)
	if _, taken := s.byEmail[email]; taken {
		return apperr.Duplicate("email already exists")
	}
	phone := strings.TrimSpace(a.PhoneNumber)
	if phone != "" {
		if _, taken := s.byPhone[phone]; taken {
			return apperr.Duplicate("phone number already exists")
		}
	}

	s.accounts[a.ID] = a
	s.byEmail[email] = a.ID
	if phone != "" {
		s.byPhone[phone] = a.ID
	}
	return nil
}
