package server

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestStatsPublishLatest(t *testing.T) {
	var stats Stats
	stats.Publish(Snapshot{Frame: 42, SelectedID: 3, Materials: []string{"", "sand"}})

	got := stats.Latest()
	if got.Frame != 42 || got.SelectedID != 3 {
		t.Fatalf("Latest = %+v", got)
	}
	if got.Type != "stats" {
		t.Fatalf("Publish should stamp the frame type, got %q", got.Type)
	}
}

func TestWebSocketPushesSnapshot(t *testing.T) {
	var stats Stats
	stats.Publish(Snapshot{Frame: 7, SimTime: 1.5, Materials: []string{"", "sand", "water"}})

	srv := httptest.NewServer(New(&stats, 50*time.Millisecond).Handler())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var snap Snapshot
	if err := conn.ReadJSON(&snap); err != nil {
		t.Fatalf("read: %v", err)
	}
	if snap.Frame != 7 || len(snap.Materials) != 3 {
		t.Fatalf("snapshot = %+v", snap)
	}
}
