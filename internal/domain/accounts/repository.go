package accounts

import "context"

// Repository persiste cuentas. Create devuelve DuplicateIdentity si el email
// (o el teléfono, cuando viene) ya existe; los Get devuelven NotFound.
type Repository interface {
	Create(ctx context.Context, a Account) error
	GetByID(ctx context.Context, id string) (Account, error)
	GetByEmail(ctx context.Context, email string) (Account, error)
}
