package ports

import (
	"context"

	"github.com/casewise/case-management-api/internal/core/domain"
)

// AuditRepository persists audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}

// AuditRecorder consumes audit events dequeued by the dispatcher.
type AuditRecorder interface {
	Record(ctx context.Context, event *domain.AuditEvent) error
}

// AuditSink accepts audit events for asynchronous recording. Enqueue never
// blocks the request path on persistence and never reports failure.
type AuditSink interface {
	Enqueue(event domain.AuditEvent)
}
