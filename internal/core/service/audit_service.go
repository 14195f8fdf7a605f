package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/backoffice/internal/core/domain"
	"github.com/99minutos/backoffice/internal/core/ports"
)

const maxRecentEvents = 200

var errInvalidSessionEvent = errors.New("invalid session event")

type auditService struct {
	repo ports.AuditRepository
	now  func() time.Time
	log  zerolog.Logger
}

// NewAuditService returns an AuditService implementation.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, now: time.Now, log: log}
}

// Record validates and persists one session event.
func (s *auditService) Record(ctx context.Context, ev domain.SessionEvent) error {
	if ev.ContextID == "" || (ev.Kind != domain.SessionLogin && ev.Kind != domain.SessionLogout) {
		return fmt.Errorf("record session event: %w", errInvalidSessionEvent)
	}
	if ev.At.IsZero() {
		ev.At = s.now().UTC()
	}

	if err := s.repo.Insert(ctx, &ev); err != nil {
		return fmt.Errorf("record session event: %w", err)
	}

	s.log.Info().
		Str("context_id", ev.ContextID).
		Str("username", ev.Username).
		Str("kind", string(ev.Kind)).
		Msg("session event recorded")
	return nil
}

// Recent returns the newest events; limit is clamped to [1, maxRecentEvents].
func (s *auditService) Recent(ctx context.Context, limit int) ([]domain.SessionEvent, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > maxRecentEvents {
		limit = maxRecentEvents
	}
	events, err := s.repo.FindRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("recent session events: %w", err)
	}
	return events, nil
}
