package elders

import "context"

type Repository interface {
	// CreateLinked escribe cuenta + perfil + link en una sola unidad:
	// o queda todo o no queda nada.
	CreateLinked(ctx context.Context, e Elder, l Link) error

	GetByID(ctx context.Context, id string) (Elder, error)
	Update(ctx context.Context, e Elder) error

	// ListLinks en orden de creación.
	ListLinks(ctx context.Context, caregiverID string) ([]Link, error)
	LinkedCaregivers(ctx context.Context, personID string) ([]string, error)
}
