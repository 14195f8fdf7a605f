package ports

import (
	"context"

	"github.com/99minutos/backoffice/internal/core/domain"
)

// AuditService records and lists session events.
type AuditService interface {
	Record(ctx context.Context, event domain.SessionEvent) error
	Recent(ctx context.Context, limit int) ([]domain.SessionEvent, error)
}
