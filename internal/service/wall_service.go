package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"coinwall/internal/core/domain"
	"coinwall/internal/core/ports"
	"coinwall/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	maxPostTextLen = 500
	maxPostNickLen = 40
)

// WallServiceImpl implements ports.WallService.
type WallServiceImpl struct {
	posts     ports.PostRepository
	cache     ports.FeedCache   // nil disables feed caching
	broadcast ports.Broadcaster // nil disables live notifications
	feedLimit int
	cacheTTL  time.Duration
	log       zerolog.Logger
}

// NewWallService creates a new WallServiceImpl.
func NewWallService(
	posts ports.PostRepository,
	cache ports.FeedCache,
	broadcast ports.Broadcaster,
	feedLimit int,
	cacheTTL time.Duration,
	log zerolog.Logger,
) *WallServiceImpl {
	if feedLimit <= 0 {
		feedLimit = 50
	}
	return &WallServiceImpl{
		posts:     posts,
		cache:     cache,
		broadcast: broadcast,
		feedLimit: feedLimit,
		cacheTTL:  cacheTTL,
		log:       log,
	}
}

// List returns the most recent posts, newest-first, capped at the feed
// limit. The default-sized feed is served from cache when populated;
// cache failures degrade to the store.
func (s *WallServiceImpl) List(ctx context.Context, limit int) ([]domain.Post, error) {
	if limit <= 0 || limit > s.feedLimit {
		limit = s.feedLimit
	}

	cacheable := s.cache != nil && limit == s.feedLimit
	if cacheable {
		if payload, err := s.cache.Get(ctx); err != nil {
			s.log.Warn().Err(err).Msg("feed cache read failed, falling through to store")
		} else if payload != nil {
			var posts []domain.Post
			if err := json.Unmarshal(payload, &posts); err == nil {
				return posts, nil
			}
			s.log.Warn().Msg("feed cache held malformed payload, falling through to store")
		}
	}

	posts, err := s.posts.ListRecent(ctx, limit)
	if err != nil {
		return nil, apperror.ErrStoreFailure(fmt.Errorf("list posts: %w", err))
	}

	if cacheable {
		if payload, err := json.Marshal(posts); err == nil {
			if err := s.cache.Set(ctx, payload, s.cacheTTL); err != nil {
				s.log.Warn().Err(err).Msg("feed cache write failed")
			}
		}
	}

	return posts, nil
}

// Post appends a wall post and notifies live subscribers. The post is
// immutable after creation.
func (s *WallServiceImpl) Post(ctx context.Context, text, nick string) (*domain.Post, error) {
	text = capRunes(strings.TrimSpace(text), maxPostTextLen)
	if text == "" {
		return nil, apperror.ErrEmptyText()
	}

	nick = capRunes(strings.TrimSpace(nick), maxPostNickLen)
	if nick == "" {
		nick = domain.DefaultNick
	}

	p := &domain.Post{
		ID:        uuid.New(),
		Text:      text,
		Nick:      nick,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.posts.Create(ctx, p); err != nil {
		return nil, apperror.ErrStoreFailure(fmt.Errorf("create post: %w", err))
	}

	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.Warn().Err(err).Msg("feed cache invalidation failed")
		}
	}

	if s.broadcast != nil {
		s.broadcast.Publish(domain.WallEvent{Name: domain.EventNewWallPost, Post: *p})
	}

	s.log.Info().
		Str("post_id", p.ID.String()).
		Str("nick", p.Nick).
		Msg("wall post created")

	return p, nil
}
