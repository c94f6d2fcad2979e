// internal/handlers/stream.go
package handlers

import (
	"context"
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/aurum-jewels/admin-console/internal/refresh"
	"github.com/aurum-jewels/admin-console/internal/utils"
)

const heartbeatInterval = 25 * time.Second

// streamView serves a live view as server-sent events. The first frame is a
// "status" event telling the client whether push updates are active; when
// they are not, the client should fall back to manual refresh. A new
// "status" frame follows whenever that changes. Only the
// newest value is kept if the client reads slower than updates arrive.
func streamView[T any](c *gin.Context, event string, watch func(ctx context.Context, onChange func(T)) (*refresh.Coordinator[T], error)) {
	ctx := c.Request.Context()

	updates := make(chan T, 1)
	push := func(v T) {
		select {
		case <-updates:
		default:
		}
		updates <- v
	}

	coordinator, err := watch(ctx, push)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	defer coordinator.Close()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	live := coordinator.Live()
	c.SSEvent("status", gin.H{"live": live})
	c.Writer.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case v := <-updates:
			c.SSEvent(event, v)
			return true
		case <-heartbeat.C:
			if now := coordinator.Live(); now != live {
				live = now
				c.SSEvent("status", gin.H{"live": live})
			}
			c.SSEvent("ping", gin.H{"live": live, "state": coordinator.State().String()})
			return true
		}
	})
}
