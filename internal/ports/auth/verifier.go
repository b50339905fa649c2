package auth

import "context"

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenIssuer firma un token para {subject, role}.
type TokenIssuer interface {
	Issue(ctx context.Context, userID, role string) (string, error)
}
