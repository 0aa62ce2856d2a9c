package handler

import (
	"io"
	"strconv"

	"coinwall/internal/adapter/http/dto"
	"coinwall/internal/adapter/stream"
	"coinwall/internal/core/ports"
	"coinwall/pkg/apperror"
	"coinwall/pkg/response"

	"github.com/gin-gonic/gin"
)

// WallHandler handles the public wall endpoints.
type WallHandler struct {
	wallSvc ports.WallService
	hub     *stream.Hub // nil disables the live stream endpoint
}

// NewWallHandler creates a new WallHandler.
func NewWallHandler(wallSvc ports.WallService, hub *stream.Hub) *WallHandler {
	return &WallHandler{wallSvc: wallSvc, hub: hub}
}

// List handles GET /wall.
func (h *WallHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	posts, err := h.wallSvc.List(c.Request.Context(), limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, posts)
}

// Post handles POST /wall.
func (h *WallHandler) Post(c *gin.Context) {
	var req dto.PostWallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ErrBadPayload(err.Error()))
		return
	}

	p, err := h.wallSvc.Post(c.Request.Context(), req.Text, req.Nick)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, p)
}

// Stream handles GET /wall/stream as server-sent events. Each new wall
// post arrives as one event; a slow consumer misses dropped events
// without any replay.
func (h *WallHandler) Stream(c *gin.Context) {
	if h.hub == nil {
		c.Status(404)
		return
	}

	ch, cancel := h.hub.Subscribe()
	defer cancel()

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case ev, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(ev.Name, ev.Post)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
