package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"health-tracker-backend/models"
)

// RecordRepository is the only write path out of the dialogue core. The
// engine treats returned identifiers as opaque.
type RecordRepository interface {
	Insert(ctx context.Context, record *models.HealthRecord) (string, error)
	ListByUser(ctx context.Context, userID string, limit int64) ([]models.HealthRecord, error)
}

// RecordService persists finalized health records to MongoDB.
type RecordService struct {
	collection *mongo.Collection
	timeout    time.Duration
	logger     zerolog.Logger
}

// NewRecordService builds the Mongo-backed repository over the
// health_records collection.
func NewRecordService(db *mongo.Database, timeout time.Duration, logger zerolog.Logger) *RecordService {
	return &RecordService{
		collection: db.Collection("health_records"),
		timeout:    timeout,
		logger:     logger.With().Str("component", "record_store").Logger(),
	}
}

// Insert stores a finalized record and returns its generated identifier.
// Records are immutable once inserted.
func (s *RecordService) Insert(ctx context.Context, record *models.HealthRecord) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	result, err := s.collection.InsertOne(ctx, record)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("insert %s record: %w", record.RecordType, models.ErrCollaboratorTimeout)
		}
		return "", fmt.Errorf("insert %s record: %w", record.RecordType, err)
	}

	id, ok := result.InsertedID.(interface{ Hex() string })
	if !ok {
		return "", fmt.Errorf("insert %s record: unexpected id type %T", record.RecordType, result.InsertedID)
	}

	s.logger.Info().
		Str("user_id", record.UserID).
		Str("record_type", string(record.RecordType)).
		Str("record_id", id.Hex()).
		Msg("record saved")
	return id.Hex(), nil
}

// ListByUser returns a user's records, newest first.
func (s *RecordService) ListByUser(ctx context.Context, userID string, limit int64) ([]models.HealthRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)

	cursor, err := s.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.HealthRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return records, nil
}
