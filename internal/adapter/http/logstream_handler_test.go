package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"simlok-backend/internal/logstream"
)

func TestLogStream_DeliversLinesAsSSE(t *testing.T) {
	stream := logstream.New()
	e := newEcho()
	e.GET("/api/admin/logs/stream", NewLogStreamHandler(stream).Stream, withUser(adminUser()))

	ctx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/api/admin/logs/stream", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	done := make(chan struct{})
	go func() {
		e.ServeHTTP(rec, req)
		close(done)
	}()

	// Wait for the subscriber to attach, then publish and close.
	deadline := time.After(2 * time.Second)
	for stream.Subscribers() == 0 {
		select {
		case <-deadline:
			t.Fatal("subscriber never attached")
		case <-time.After(5 * time.Millisecond):
		}
	}
	stream.Publish("level=info msg=approved submission=abc")
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("handler did not terminate on context cancel")
	}

	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Fatalf("content type: %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "data: level=info msg=approved submission=abc\n\n") {
		t.Fatalf("missing SSE frame in %q", rec.Body.String())
	}
}
