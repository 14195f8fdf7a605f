package ports

import (
	"context"

	"github.com/99minutos/backoffice/internal/core/domain"
)

// AuditRepository persists session events.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.SessionEvent) error
	// FindRecent returns at most limit events, newest first.
	FindRecent(ctx context.Context, limit int) ([]domain.SessionEvent, error)
}
