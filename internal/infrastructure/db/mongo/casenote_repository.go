package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/casewise/case-management-api/internal/core/domain"
)

const caseNotesCollection = "case_notes"

type CaseNoteRepository struct {
	coll *mongo.Collection
}

func NewCaseNoteRepository(db *mongo.Database) *CaseNoteRepository {
	return &CaseNoteRepository{coll: db.Collection(caseNotesCollection)}
}

type mongoCaseNote struct {
	ID              string `bson:"_id"`
	ClientID        string `bson:"client_id"`
	Content         string `bson:"content"`
	InteractionType string `bson:"interaction_type"`
	CreatedBy       string `bson:"created_by"`
	CreatedByName   string `bson:"created_by_name"`
	CreatedAt       int64  `bson:"created_at"`
	UpdatedAt       int64  `bson:"updated_at"`
}

func (r *CaseNoteRepository) Insert(ctx context.Context, note *domain.CaseNote) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, &mongoCaseNote{
		ID:              note.ID,
		ClientID:        note.ClientID,
		Content:         note.Content,
		InteractionType: string(note.InteractionType),
		CreatedBy:       note.CreatedBy,
		CreatedByName:   note.CreatedByName,
		CreatedAt:       note.CreatedAt.Unix(),
		UpdatedAt:       note.UpdatedAt.Unix(),
	})
	if err != nil {
		return fmt.Errorf("insert case note: %w", err)
	}
	return nil
}

// ListByClient returns the client's notes ordered newest-first.
func (r *CaseNoteRepository) ListByClient(ctx context.Context, clientID string) ([]domain.CaseNote, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"client_id": clientID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find case notes: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoCaseNote
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode case notes: %w", err)
	}

	notes := make([]domain.CaseNote, 0, len(docs))
	for _, doc := range docs {
		notes = append(notes, domain.CaseNote{
			ID:              doc.ID,
			ClientID:        doc.ClientID,
			Content:         doc.Content,
			InteractionType: domain.InteractionType(doc.InteractionType),
			CreatedBy:       doc.CreatedBy,
			CreatedByName:   doc.CreatedByName,
			CreatedAt:       unixToTime(doc.CreatedAt),
			UpdatedAt:       unixToTime(doc.UpdatedAt),
		})
	}
	return notes, nil
}

// EnsureIndexes creates the listing index.
func (r *CaseNoteRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "client_id", Value: 1}, {Key: "created_at", Value: -1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
