package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"blog-platform/internal/domain"
	"blog-platform/internal/repository"
)

// PostService coordinates post level operations backed by the post store.
type PostService interface {
	Create(ctx context.Context, ownerID, title, content string) (*domain.Post, error)
	Get(ctx context.Context, id string) (*domain.Post, error)
	List(ctx context.Context) ([]domain.Post, error)
	Update(ctx context.Context, id, ownerID string, title, content *string) (*domain.Post, error)
	Delete(ctx context.Context, id, ownerID string) error
}

type postService struct {
	posts repository.PostRepository
}

func NewPostService(posts repository.PostRepository) PostService {
	return &postService{posts: posts}
}

func (s *postService) Create(ctx context.Context, ownerID, title, content string) (*domain.Post, error) {
	if ownerID == "" {
		return nil, errors.New("owner id is required")
	}

	post := &domain.Post{
		ID:          uuid.NewString(),
		Title:       title,
		Content:     content,
		PublishedAt: time.Now().UTC(),
		OwnerID:     ownerID,
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *postService) Get(ctx context.Context, id string) (*domain.Post, error) {
	return s.posts.Get(ctx, id)
}

func (s *postService) List(ctx context.Context) ([]domain.Post, error) {
	return s.posts.List(ctx)
}

func (s *postService) Update(ctx context.Context, id, ownerID string, title, content *string) (*domain.Post, error) {
	return s.posts.Update(ctx, id, ownerID, title, content)
}

func (s *postService) Delete(ctx context.Context, id, ownerID string) error {
	return s.posts.Delete(ctx, id, ownerID)
}
