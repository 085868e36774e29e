package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ruunai/server/internal/domain"
	"ruunai/server/internal/repository"
)

const onboardingCollectionName = "runner_responses"

// mongoOnboardingResponseRepository implements repository.OnboardingResponseRepository
type mongoOnboardingResponseRepository struct {
	collection *mongo.Collection
}

// NewMongoOnboardingResponseRepository creates a new OnboardingResponse repository.
func NewMongoOnboardingResponseRepository(db *mongo.Database) repository.OnboardingResponseRepository {
	return &mongoOnboardingResponseRepository{
		collection: db.Collection(onboardingCollectionName),
	}
}

// Upsert inserts or replaces the runner's single live response row. The
// version counter starts at 1 and increments on every replacement.
func (r *mongoOnboardingResponseRepository) Upsert(ctx context.Context, runnerID primitive.ObjectID, payload domain.OnboardingData) error {
	if runnerID == primitive.NilObjectID {
		return errors.New("runner ID is required for upsert")
	}
	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"payload":   payload,
			"updatedAt": now,
		},
		"$inc": bson.M{"version": 1},
		"$setOnInsert": bson.M{
			"userId":    runnerID,
			"createdAt": now,
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"userId": runnerID}, update, opts)
	return err
}

// GetByRunnerID retrieves the runner's stored answers.
func (r *mongoOnboardingResponseRepository) GetByRunnerID(ctx context.Context, runnerID primitive.ObjectID) (*domain.OnboardingResponse, error) {
	var response domain.OnboardingResponse
	err := r.collection.FindOne(ctx, bson.M{"userId": runnerID}).Decode(&response)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &response, nil
}

// DeleteByRunnerID removes the runner's answers. Missing rows are not an error:
// clearing an already-clear questionnaire is a no-op.
func (r *mongoOnboardingResponseRepository) DeleteByRunnerID(ctx context.Context, runnerID primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"userId": runnerID})
	return err
}

// EnsureOnboardingResponseIndexes creates necessary indexes. Call during startup.
func EnsureOnboardingResponseIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// One live response row per runner.
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
