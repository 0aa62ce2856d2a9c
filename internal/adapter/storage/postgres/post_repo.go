package postgres

import (
	"context"
	"fmt"

	"coinwall/internal/core/domain"
)

// PostRepo implements ports.PostRepository.
type PostRepo struct {
	pool Pool
}

// NewPostRepo creates a new PostRepo.
func NewPostRepo(pool Pool) *PostRepo {
	return &PostRepo{pool: pool}
}

// Create appends a wall post.
func (r *PostRepo) Create(ctx context.Context, p *domain.Post) error {
	query := `INSERT INTO wall_posts (id, text, nick, likes, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.pool.Exec(ctx, query, p.ID, p.Text, p.Nick, p.Likes, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

// ListRecent returns posts newest-first, capped at limit.
func (r *PostRepo) ListRecent(ctx context.Context, limit int) ([]domain.Post, error) {
	query := `SELECT id, text, nick, likes, created_at
		FROM wall_posts ORDER BY created_at DESC, id DESC LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]domain.Post, 0, limit)
	for rows.Next() {
		var p domain.Post
		if err := rows.Scan(&p.ID, &p.Text, &p.Nick, &p.Likes, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate posts: %w", err)
	}
	return posts, nil
}
