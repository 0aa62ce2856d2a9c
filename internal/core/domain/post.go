package domain

import (
	"time"

	"github.com/google/uuid"
)

// DefaultNick is substituted when a wall post carries no nickname.
const DefaultNick = "someone"

// Post is a short anonymous message on the public wall. Immutable after
// creation; the likes counter is reserved for a future endpoint.
type Post struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	Nick      string    `json:"nick"`
	Likes     int64     `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
}

// WallEvent is the payload broadcast to live wall subscribers.
type WallEvent struct {
	Name string `json:"name"`
	Post Post   `json:"post"`
}

// EventNewWallPost names the event emitted for every created post.
const EventNewWallPost = "wall.post.created"
