package repository

import (
	"context"

	"github.com/google/uuid"
)

// AuthRepository defines the staff account operations the auth service needs.
type AuthRepository interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (User, error)
}

var _ AuthRepository = (*Repository)(nil)
