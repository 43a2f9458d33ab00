package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/casewise/case-management-api/internal/core/domain"
	"github.com/casewise/case-management-api/internal/core/ports"
)

// AuditService persists audit events dequeued by the dispatcher.
type AuditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) *AuditService {
	return &AuditService{repo: repo, log: log}
}

// Record writes one audit event. The trail is best-effort: the error is
// returned for the worker to log, never propagated to a request.
func (s *AuditService) Record(ctx context.Context, event *domain.AuditEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if err := s.repo.Insert(ctx, event); err != nil {
		return err
	}
	s.log.Debug().
		Str("actor", event.Actor).
		Str("action", event.Action).
		Msg("audit event recorded")
	return nil
}
