package repository

import (
	"context"

	"blog-platform/internal/domain"
)

// PostRepository defines storage operations for Post entities.
// Update and Delete enforce ownership: they fail with ErrForbidden
// when ownerID does not match the stored post's owner, and with
// ErrNotFound when the post does not exist.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	Get(ctx context.Context, id string) (*domain.Post, error)
	List(ctx context.Context) ([]domain.Post, error)
	Update(ctx context.Context, id, ownerID string, title, content *string) (*domain.Post, error)
	Delete(ctx context.Context, id, ownerID string) error
}
