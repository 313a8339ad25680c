package app

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/raysh454/segmentd/internal/testutil"
)

func TestNewApplication_NilConfig(t *testing.T) {
	t.Parallel()
	if _, err := NewApplication(nil, &testutil.DummyLogger{}); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestNewApplication_BadCatalogPath(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	cfg.CatalogPath = filepath.Join(t.TempDir(), "nope.yaml")

	_, err := NewApplication(cfg, &testutil.DummyLogger{})
	if err == nil || !strings.Contains(err.Error(), "loading catalog") {
		t.Fatalf("expected catalog error, got %v", err)
	}
}

func TestApplication_ServeAndShutdown(t *testing.T) {
	t.Parallel()
	logger := &testutil.DummyLogger{}
	cfg := DefaultConfig()
	cfg.MaxConnections = 4

	a, err := NewApplication(cfg, logger)
	if err != nil {
		t.Fatalf("NewApplication: %v", err)
	}
	if got := len(a.Catalog.Segments()); got != 4 {
		t.Fatalf("expected 4 segments, got %d", got)
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/health"
	var resp *http.Response
	deadline := time.Now().Add(2 * time.Second)
	for {
		resp, err = http.Get(url)
		if err == nil || time.Now().After(deadline) {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		cancel()
		t.Fatalf("GET /health: %v", err)
	}
	var body map[string]string
	_ = json.NewDecoder(resp.Body).Decode(&body)
	resp.Body.Close()
	if body["status"] != "healthy" {
		t.Errorf("unexpected health body %v", body)
	}

	ws, _, err := websocket.DefaultDialer.Dial("ws://"+ln.Addr().String()+"/ws/segment/classify", nil)
	if err != nil {
		cancel()
		t.Fatalf("dial websocket: %v", err)
	}
	defer ws.Close()
	if err := ws.WriteMessage(websocket.TextMessage, []byte(`{"demo_mode":"heritage"}`)); err != nil {
		t.Fatalf("write frame: %v", err)
	}
	if _, _, err := ws.ReadMessage(); err != nil {
		t.Fatalf("read frame: %v", err)
	}

	cancel()
	_ = ws.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, _, err := ws.ReadMessage(); !websocket.IsCloseError(err, websocket.CloseGoingAway) {
		t.Errorf("expected websocket session closed on shutdown, got %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}

	if len(logger.Messages("info")) == 0 {
		t.Error("expected lifecycle logs")
	}
}
