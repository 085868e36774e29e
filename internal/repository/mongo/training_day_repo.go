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

const trainingDayCollectionName = "training_days"

// mongoTrainingDayRepository implements repository.TrainingDayRepository
type mongoTrainingDayRepository struct {
	collection *mongo.Collection
}

// NewMongoTrainingDayRepository creates a new TrainingDay repository.
func NewMongoTrainingDayRepository(db *mongo.Database) repository.TrainingDayRepository {
	return &mongoTrainingDayRepository{
		collection: db.Collection(trainingDayCollectionName),
	}
}

// CreateMany inserts all of a plan's day rows in one batch. The insert is
// ordered; a failure part-way through is reported so the caller can run its
// compensating plan delete.
func (r *mongoTrainingDayRepository) CreateMany(ctx context.Context, days []domain.TrainingDay) error {
	if len(days) == 0 {
		return nil
	}
	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(days))
	for i := range days {
		if days[i].PlanID == primitive.NilObjectID {
			return errors.New("training day requires planId")
		}
		days[i].ID = primitive.NewObjectID()
		days[i].CreatedAt = now
		docs = append(docs, days[i])
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// GetByPlanID retrieves all days for a plan ordered by day number ascending.
func (r *mongoTrainingDayRepository) GetByPlanID(ctx context.Context, planID primitive.ObjectID) ([]domain.TrainingDay, error) {
	var days []domain.TrainingDay
	findOptions := options.Find().SetSort(bson.D{{Key: "dayNumber", Value: 1}})

	cursor, err := r.collection.Find(ctx, bson.M{"planId": planID}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &days); err != nil {
		return nil, err
	}
	// Empty slice when the plan has no stored days (all rest days).
	return days, nil
}

// DeleteByPlanID removes every day row belonging to a plan.
func (r *mongoTrainingDayRepository) DeleteByPlanID(ctx context.Context, planID primitive.ObjectID) error {
	if planID == primitive.NilObjectID {
		return errors.New("plan ID is required for deletion")
	}
	_, err := r.collection.DeleteMany(ctx, bson.M{"planId": planID})
	return err
}

// EnsureTrainingDayIndexes creates necessary indexes. Call during startup.
func EnsureTrainingDayIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			// Day number uniquely identifies a day within a plan.
			Keys:    bson.D{{Key: "planId", Value: 1}, {Key: "dayNumber", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
