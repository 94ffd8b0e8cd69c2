// File: database/repository/user/userMongoQueries.go
package userRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"outreach/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// FindByPhone retrieves a user by local phone number.
func (r *MongoUserRepo) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"userPhone": phone}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user with phone %s: %w", phone, err)
	}
	if user.Messages == nil {
		user.Messages = []models.ChatMessage{}
	}
	return &user, nil
}
