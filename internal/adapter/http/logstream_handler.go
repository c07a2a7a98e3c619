package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"simlok-backend/internal/logstream"
)

const heartbeatInterval = 15 * time.Second

// LogStreamHandler pushes appended application log lines over SSE. The route
// is restricted to super admins by the role middleware.
type LogStreamHandler struct{ stream *logstream.Stream }

func NewLogStreamHandler(stream *logstream.Stream) *LogStreamHandler {
	return &LogStreamHandler{stream: stream}
}

func (h *LogStreamHandler) Stream(c echo.Context) error {
	res := c.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	ctx := c.Request().Context()
	lines := h.stream.Subscribe(ctx)

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if _, err := fmt.Fprintf(res, "data: %s\n\n", line); err != nil {
				return nil
			}
			res.Flush()
		case <-heartbeat.C:
			// Comment frame keeps proxies from closing an idle stream.
			if _, err := fmt.Fprint(res, ": heartbeat\n\n"); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}
