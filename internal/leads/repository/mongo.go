package repository

import (
	"context"
	"fmt"
	"time"

	"foamparty/pkg/config"
	"foamparty/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "LeadBackups"
)

// leadDocument wraps a lead with the server-side insertion time so listing
// order survives clients with skewed clocks.
type leadDocument struct {
	model.BookingRequest `bson:",inline"`
	StoredAt             time.Time `bson:"stored_at"`
}

type mongoLeadRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoLeadRepository(cfg *config.Config) LeadRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoLeadRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

// withTimeout bounds ctx by timeout without extending an earlier deadline.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoLeadRepository) Append(ctx context.Context, lead model.BookingRequest) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	doc := leadDocument{
		BookingRequest: lead,
		StoredAt:       time.Now().UTC().Truncate(time.Millisecond),
	}
	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert lead backup: %w", err)
	}
	return nil
}

func (r *mongoLeadRepository) List(ctx context.Context, limit int, offset int64) ([]model.BookingRequest, int64, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count lead backups: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "stored_at", Value: 1}, {Key: "_id", Value: 1}}).
		SetSkip(offset).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find lead backups: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []leadDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode lead backups: %w", err)
	}

	leads := make([]model.BookingRequest, 0, len(docs))
	for _, d := range docs {
		leads = append(leads, d.BookingRequest)
	}
	return leads, total, nil
}

func (r *mongoLeadRepository) Ping(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx, 2*time.Second)
	defer cancel()
	return r.collection.Database().Client().Ping(ctx, nil)
}
