package memory

import (
	"sync"

	"care-companion/internal/domain/accounts"
	"care-companion/internal/domain/elders"
)

// Store guarda cuentas, perfiles y links bajo un único lock,
// así CreateLinked es atómico igual que la transacción en postgres.
type Store struct {
	mu sync.RWMutex

	accounts map[string]accounts.Account
	byEmail  map[string]string // email -> id
	byPhone  map[string]string // phone -> id

	health map[string]elders.HealthProfile // account id -> perfil
	links  []elders.Link                   // orden de inserción
}

func NewStore() *Store {
	return &Store{
		accounts: make(map[string]accounts.Account),
		byEmail:  make(map[string]string),
		byPhone:  make(map[string]string),
		health:   make(map[string]elders.HealthProfile),
	}
}

func (s *Store) Accounts() accounts.Repository {
	return &accountRepo{s: s}
}

func (s *Store) Elders() elders.Repository {
	return &elderRepo{s: s}
}
