package userRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection     = "users"
	defaultHistoryLimit = 10
)

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	coll         *mongo.Collection
	historyLimit int
}

// NewMongoUserRepo creates the repository over db.users. historyLimit caps
// the stored conversation length; values below 1 fall back to 10.
func NewMongoUserRepo(db *mongo.Database, historyLimit int) (*MongoUserRepo, error) {
	if historyLimit < 1 {
		historyLimit = defaultHistoryLimit
	}
	repo := &MongoUserRepo{coll: db.Collection(usersCollection), historyLimit: historyLimit}
	if err := repo.ensureIndexes(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

// withTimeout bounds a single database round-trip.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoUserRepo) ensureIndexes(ctx context.Context) error {
	ctx, cancel := withTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "userPhone", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
