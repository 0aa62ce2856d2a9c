package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"coinwall/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepo_ListRecent_NewestFirst(t *testing.T) {
	repo := NewPostRepo()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, &domain.Post{
			ID:        uuid.New(),
			Text:      fmt.Sprintf("post %d", i),
			Nick:      "tester",
			CreatedAt: time.Now().UTC(),
		}))
	}

	posts, err := repo.ListRecent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "post 4", posts[0].Text)
	assert.Equal(t, "post 3", posts[1].Text)
	assert.Equal(t, "post 2", posts[2].Text)
}

func TestPostRepo_ListRecent_Empty(t *testing.T) {
	repo := NewPostRepo()

	posts, err := repo.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestPostRepo_ListRecent_LimitLargerThanStore(t *testing.T) {
	repo := NewPostRepo()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &domain.Post{ID: uuid.New(), Text: "only one"}))

	posts, err := repo.ListRecent(ctx, 50)
	require.NoError(t, err)
	assert.Len(t, posts, 1)
}
