package memory

import (
	"context"
	"sync"

	"coinwall/internal/core/domain"
)

// PostRepo implements ports.PostRepository on a mutex-guarded slice.
type PostRepo struct {
	mu    sync.RWMutex
	posts []domain.Post
}

// NewPostRepo creates an empty in-memory post repository.
func NewPostRepo() *PostRepo {
	return &PostRepo{}
}

// Create appends a post in insertion order.
func (r *PostRepo) Create(ctx context.Context, p *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posts = append(r.posts, *p)
	return nil
}

// ListRecent returns the last posts in reverse insertion order.
func (r *PostRepo) ListRecent(ctx context.Context, limit int) ([]domain.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Post, 0, limit)
	for i := len(r.posts) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.posts[i])
	}
	return out, nil
}
