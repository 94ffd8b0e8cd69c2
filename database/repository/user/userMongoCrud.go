// File: database/repository/user/userMongoCrud.go
package userRepo

import (
	"context"
	"fmt"
	"time"

	"outreach/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// Create inserts a new user document.
func (r *MongoUserRepo) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Messages == nil {
		user.Messages = []models.ChatMessage{}
	}
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// AppendMessage pushes a message and keeps only the newest historyLimit entries.
func (r *MongoUserRepo) AppendMessage(ctx context.Context, phone, role, content string) error {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	msg := models.ChatMessage{Role: role, Content: content, Timestamp: now}
	update := bson.M{
		"$push": bson.M{
			"messages": bson.M{
				"$each":  []models.ChatMessage{msg},
				"$slice": -r.historyLimit,
			},
		},
		"$set": bson.M{"updatedAt": now},
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"userPhone": phone}, update)
	if err != nil {
		return fmt.Errorf("failed to append message for %s: %w", phone, err)
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SetEmail stores the lead's email address.
func (r *MongoUserRepo) SetEmail(ctx context.Context, phone, email string) error {
	ctx, cancel := withTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"email": email, "updatedAt": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"userPhone": phone}, update)
	if err != nil {
		return fmt.Errorf("failed to set email for %s: %w", phone, err)
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
