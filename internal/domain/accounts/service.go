package accounts

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"care-companion/internal/platform/apperr"
)

var (
	ErrInvalidInput = apperr.Validation("all fields are required")
	ErrUserExists   = apperr.Duplicate("user already exists")
	ErrUserNotFound = apperr.NotFound("user not found")
	ErrBadPassword  = apperr.New(apperr.KindInvalidCredential, "invalid credentials")
)

type Service struct {
	repo       Repository
	now        func() time.Time
	bcryptCost int
}

type Options struct {
	// 0 => bcrypt.DefaultCost
	BcryptCost int
}

func NewService(repo Repository, opts Options) *Service {
	cost := opts.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		now:        time.Now,
		bcryptCost: cost,
	}
}

type SignupInput struct {
	Name        string
	Email       string
	Password    string
	PhoneNumber string
}

// RegisterCaregiver crea una cuenta family con lista de vínculos vacía.
func (s *Service) RegisterCaregiver(ctx context.Context, in SignupInput) (Account, error) {
	name := strings.TrimSpace(in.Name)
	email := NormalizeEmail(in.Email)
	phone := strings.TrimSpace(in.PhoneNumber)

	if name == "" || email == "" || in.Password == "" || phone == "" {
		return Account{}, ErrInvalidInput
	}
	if !strings.Contains(email, "@") {
		return Account{}, apperr.Validation("email is invalid")
	}

	// chequeo temprano; el repo igual garantiza unicidad (email y teléfono)
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return Account{}, ErrUserExists
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return Account{}, err
	}

	hash, err := s.HashPassword(in.Password)
	if err != nil {
		return Account{}, err
	}

	now := s.now()
	a := Account{
		ID:           uuid.NewString(),
		Role:         RoleFamily,
		Name:         name,
		Email:        email,
		PhoneNumber:  phone,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Account{}, err
	}
	return a, nil
}

// Authenticate busca por email en la tabla única y compara el hash.
func (s *Service) Authenticate(ctx context.Context, email, password string) (Account, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return Account{}, apperr.Validation("email and password are required")
	}

	a, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Account{}, ErrUserNotFound
		}
		return Account{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
		return Account{}, ErrBadPassword
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Account, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Account{}, ErrUserNotFound
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return Account{}, ErrUserNotFound
		}
		return Account{}, err
	}
	return a, nil
}

// HashPassword nunca devuelve el valor crudo; lo usa también el módulo elders.
func (s *Service) HashPassword(password string) (string, error) {
	if password == "" {
		return "", apperr.Validation("password is required")
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", apperr.Validation("password is too long")
		}
		return "", err
	}
	return string(b), nil
}
