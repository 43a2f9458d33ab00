package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/casewise/case-management-api/internal/core/domain"
)

const auditCollection = "audit_events"

type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type mongoAuditEvent struct {
	ID        string `bson:"_id"`
	Actor     string `bson:"actor"`
	Action    string `bson:"action"`
	Subject   string `bson:"subject,omitempty"`
	CreatedAt int64  `bson:"created_at"`
}

func (r *AuditRepository) Insert(ctx context.Context, event *domain.AuditEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, &mongoAuditEvent{
		ID:        event.ID,
		Actor:     event.Actor,
		Action:    event.Action,
		Subject:   event.Subject,
		CreatedAt: event.CreatedAt.Unix(),
	})
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
