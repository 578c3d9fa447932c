package memory

import (
	"context"
	"sync"

	"blog-platform/internal/domain"
	"blog-platform/internal/repository"
)

// PostRepository keeps posts in a process-local map keyed by post id.
type PostRepository struct {
	mu    sync.RWMutex
	posts map[string]*domain.Post
}

func NewPostRepository() *PostRepository {
	return &PostRepository{
		posts: make(map[string]*domain.Post),
	}
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *post
	r.posts[post.ID] = &stored
	return nil
}

func (r *PostRepository) Get(ctx context.Context, id string) (*domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, ok := r.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *post
	return &copied, nil
}

func (r *PostRepository) List(ctx context.Context) ([]domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	posts := make([]domain.Post, 0, len(r.posts))
	for _, post := range r.posts {
		posts = append(posts, *post)
	}
	return posts, nil
}

// Update overwrites only the fields that are present. The existence
// check, ownership check and write happen under one lock so an update
// racing a delete can never resurrect the post. PublishedAt is never
// touched.
func (r *PostRepository) Update(ctx context.Context, id, ownerID string, title, content *string) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if post.OwnerID != ownerID {
		return nil, repository.ErrForbidden
	}

	if title != nil {
		post.Title = *title
	}
	if content != nil {
		post.Content = *content
	}

	copied := *post
	return &copied, nil
}

func (r *PostRepository) Delete(ctx context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	post, ok := r.posts[id]
	if !ok {
		return repository.ErrNotFound
	}
	if post.OwnerID != ownerID {
		return repository.ErrForbidden
	}

	delete(r.posts, id)
	return nil
}
