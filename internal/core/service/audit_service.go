package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/HtTelekom/ecommerce/internal/core/domain"
	"github.com/HtTelekom/ecommerce/internal/core/ports"
)

// auditService persists authentication audit events. It sits on the
// consumer side of the queue dispatcher, so per-actor ordering is
// already guaranteed when Process runs.
type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService implementation.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

func (s *auditService) Process(ctx context.Context, event domain.AuditEvent) error {
	if err := s.repo.Insert(ctx, &event); err != nil {
		return fmt.Errorf("process audit event: %w", err)
	}

	s.log.Debug().
		Str("actor", event.Actor).
		Str("action", string(event.Action)).
		Msg("audit event recorded")
	return nil
}
