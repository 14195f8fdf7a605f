package ports

import (
	"context"

	"github.com/99minutos/backoffice/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password, email, role string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
}
