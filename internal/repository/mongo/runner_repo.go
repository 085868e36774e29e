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

const runnerCollectionName = "runners"

// mongoRunnerRepository implements repository.RunnerRepository
type mongoRunnerRepository struct {
	collection *mongo.Collection
}

// NewMongoRunnerRepository creates a new Runner repository.
func NewMongoRunnerRepository(db *mongo.Database) repository.RunnerRepository {
	return &mongoRunnerRepository{
		collection: db.Collection(runnerCollectionName),
	}
}

// Create inserts a new runner account.
func (r *mongoRunnerRepository) Create(ctx context.Context, runner *domain.Runner) (primitive.ObjectID, error) {
	if runner.Email == "" || runner.PasswordHash == "" {
		return primitive.NilObjectID, errors.New("runner requires email and password hash")
	}
	runner.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	runner.CreatedAt = now
	runner.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, runner)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicateKey
		}
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted runner ID")
	}
	return insertedID, nil
}

// GetByEmail retrieves a runner by their unique email.
func (r *mongoRunnerRepository) GetByEmail(ctx context.Context, email string) (*domain.Runner, error) {
	var runner domain.Runner
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&runner)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &runner, nil
}

// GetByID retrieves a runner by ID.
func (r *mongoRunnerRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Runner, error) {
	var runner domain.Runner
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&runner)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &runner, nil
}

// SetOnboardingCompleted flips the runner's onboarding flag.
func (r *mongoRunnerRepository) SetOnboardingCompleted(ctx context.Context, id primitive.ObjectID, completed bool) error {
	update := bson.M{"$set": bson.M{
		"onboardingCompleted": completed,
		"updatedAt":           time.Now().UTC(),
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureRunnerIndexes creates necessary indexes. Call during startup.
func EnsureRunnerIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
