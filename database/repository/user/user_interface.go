package userRepo

import (
	"context"
	"errors"

	"outreach/models"
)

// ErrUserNotFound is returned when no user matches the phone number.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines methods for lead data access.
type UserRepository interface {
	// FindByPhone retrieves a user by local phone number ("05XXXXXXXX").
	FindByPhone(ctx context.Context, phone string) (*models.User, error)
	// Create inserts a new user record.
	Create(ctx context.Context, user *models.User) error
	// AppendMessage pushes one entry onto the user's bounded history.
	AppendMessage(ctx context.Context, phone, role, content string) error
	// SetEmail records the address the lead gave for meeting invites.
	SetEmail(ctx context.Context, phone, email string) error
}
