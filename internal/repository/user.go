package repository

import (
	"context"

	"blog-platform/internal/domain"
)

// UserRepository defines storage operations for User entities.
//
// Create decides the admin flag itself: the implementation must make
// the duplicate-email check, the is-store-empty check and the insert a
// single atomic step so that exactly one user ever becomes admin.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}
