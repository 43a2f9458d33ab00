package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/casewise/case-management-api/internal/core/domain"
	"github.com/casewise/case-management-api/internal/core/ports"
)

const clientsCollection = "clients"

type ClientRepository struct {
	coll *mongo.Collection
}

func NewClientRepository(db *mongo.Database) *ClientRepository {
	return &ClientRepository{coll: db.Collection(clientsCollection)}
}

type mongoClient struct {
	ID                 string `bson:"_id"`
	ClientID           string `bson:"client_id"`
	FirstName          string `bson:"first_name"`
	LastName           string `bson:"last_name"`
	AssignedCaseworker string `bson:"assigned_caseworker"`
	CreatedAt          int64  `bson:"created_at"`
	UpdatedAt          int64  `bson:"updated_at"`
}

// Search applies the ownership restriction before the text filter, counts
// the full match set, and returns one page ordered newest-first.
func (r *ClientRepository) Search(ctx context.Context, q ports.ClientQuery) ([]domain.Client, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if q.CaseworkerID != "" {
		filter["assigned_caseworker"] = q.CaseworkerID
	}
	if q.Text != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(q.Text), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"first_name": re},
			bson.M{"last_name": re},
			bson.M{"client_id": re},
		}
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count clients: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(q.Offset).
		SetLimit(q.Limit)

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find clients: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoClient
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode clients: %w", err)
	}

	clients := make([]domain.Client, 0, len(docs))
	for i := range docs {
		clients = append(clients, *fromMongoClient(&docs[i]))
	}
	return clients, total, nil
}

// FindAssigned resolves a client by id, additionally filtering by
// caseworker when one is given. Missing and not-yours are the same error.
func (r *ClientRepository) FindAssigned(ctx context.Context, id, caseworkerID string) (*domain.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id}
	if caseworkerID != "" {
		filter["assigned_caseworker"] = caseworkerID
	}

	var doc mongoClient
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClientNotFound
		}
		return nil, fmt.Errorf("find client: %w", err)
	}
	return fromMongoClient(&doc), nil
}

func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.coll.InsertOne(ctx, &mongoClient{
		ID:                 client.ID,
		ClientID:           client.ClientID,
		FirstName:          client.FirstName,
		LastName:           client.LastName,
		AssignedCaseworker: client.AssignedCaseworker,
		CreatedAt:          client.CreatedAt.Unix(),
		UpdatedAt:          client.UpdatedAt.Unix(),
	})
	if err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// EnsureIndexes creates the clients indexes: unique human-readable id and
// the ownership lookup path.
func (r *ClientRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "client_id", Value: 1}},
			Options: uniqueIndex(),
		},
		{Keys: bson.D{{Key: "assigned_caseworker", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func fromMongoClient(doc *mongoClient) *domain.Client {
	return &domain.Client{
		ID:                 doc.ID,
		ClientID:           doc.ClientID,
		FirstName:          doc.FirstName,
		LastName:           doc.LastName,
		AssignedCaseworker: doc.AssignedCaseworker,
		CreatedAt:          unixToTime(doc.CreatedAt),
		UpdatedAt:          unixToTime(doc.UpdatedAt),
	}
}
