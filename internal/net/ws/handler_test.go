package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"boulder-rain/internal/console"
	"boulder-rain/internal/effects"
	"boulder-rain/internal/settings"
	"boulder-rain/internal/world"
	"boulder-rain/logging/lifecycle"
	"boulder-rain/logging/sinks"
)

type fixture struct {
	world   *world.World
	manager *effects.Manager
	store   *settings.Store
	sink    *sinks.MemorySink
	server  *httptest.Server
}

func newFixture(t *testing.T, autoEnable bool) fixture {
	t.Helper()
	ctx := context.Background()
	sink := sinks.NewMemorySink()

	cfg := world.DefaultConfig()
	cfg.CreatureCount = 0
	w := world.New(cfg, world.Deps{Publisher: sink})
	manager := effects.NewManager(effects.ManagerConfig{World: w, Publisher: sink})
	store := settings.Open(ctx, filepath.Join(t.TempDir(), "settings.json"), settings.Deps{})
	if autoEnable {
		if _, err := store.Update(ctx, func(s *settings.Settings) { s.AutoEnableOnJoin = true }); err != nil {
			t.Fatalf("update settings: %v", err)
		}
	}

	handler := NewHandler(HandlerConfig{
		World:           w,
		Effects:         manager,
		Console:         console.New(manager, store),
		Settings:        store,
		Publisher:       sink,
		AutoEnableDelay: 20 * time.Millisecond,
	})
	srv := httptest.NewServer(http.HandlerFunc(handler.Handle))
	t.Cleanup(srv.Close)

	return fixture{world: w, manager: manager, store: store, sink: sink, server: srv}
}

func dial(t *testing.T, serverURL, id string) *websocket.Conn {
	t.Helper()
	parsed, err := url.Parse(serverURL)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	parsed.Scheme = "ws"
	if id != "" {
		parsed.RawQuery = url.Values{"id": {id}}.Encode()
	}
	conn, resp, err := websocket.DefaultDialer.Dial(parsed.String(), nil)
	if resp != nil {
		resp.Body.Close()
	}
	if err != nil {
		t.Fatalf("failed to open websocket connection: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) map[string]any {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, payload, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var frame map[string]any
	if err := json.Unmarshal(payload, &frame); err != nil {
		t.Fatalf("decode frame %s: %v", payload, err)
	}
	return frame
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestConsoleCommandRoundTrip(t *testing.T) {
	f := newFixture(t, false)
	conn := dial(t, f.server.URL, "alice")

	if welcome := readFrame(t, conn); welcome["type"] != "welcome" || welcome["owner"] != "alice" {
		t.Fatalf("unexpected welcome %v", welcome)
	}

	if err := conn.WriteJSON(map[string]any{"type": "console", "cmd": "/rm start"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	ack := readFrame(t, conn)
	if ack["type"] != "console_ack" || ack["status"] != "ok" || ack["effectId"] != float64(1) {
		t.Fatalf("unexpected ack %v", ack)
	}
	if id, _ := ack["commandId"].(string); id == "" {
		t.Fatalf("expected a command id on the ack")
	}
	if got := len(f.manager.Effects("alice")); got != 1 {
		t.Fatalf("expected one running effect, got %d", got)
	}

	conn.WriteJSON(map[string]any{"type": "console", "cmd": "set damage nope"})
	if nack := readFrame(t, conn); nack["status"] != "error" || nack["reason"] == "" {
		t.Fatalf("expected error ack, got %v", nack)
	}
}

func TestAutoEnableAfterJoin(t *testing.T) {
	f := newFixture(t, true)
	conn := dial(t, f.server.URL, "bob")
	readFrame(t, conn)

	notice := readFrame(t, conn)
	if notice["type"] != "notice" || !strings.Contains(notice["text"].(string), "enabled automatically") {
		t.Fatalf("unexpected notice %v", notice)
	}
	if got := len(f.manager.Effects("bob")); got != 1 {
		t.Fatalf("expected auto enabled effect, got %d", got)
	}
	if got := len(f.sink.EventsOfType(lifecycle.EventAutoEnabled)); got != 1 {
		t.Fatalf("expected one auto enable event, got %d", got)
	}
}

func TestAutoEnableSkipsOwnersWithRunningRain(t *testing.T) {
	f := newFixture(t, true)
	conn := dial(t, f.server.URL, "carol")
	readFrame(t, conn)

	conn.WriteJSON(map[string]any{"type": "console", "cmd": "start"})
	readFrame(t, conn)

	time.Sleep(100 * time.Millisecond)
	if got := len(f.manager.Effects("carol")); got != 1 {
		t.Fatalf("auto enable must not add a second rain, got %d", got)
	}
}

func TestDisconnectLeavesWorld(t *testing.T) {
	f := newFixture(t, false)
	conn := dial(t, f.server.URL, "dave")
	readFrame(t, conn)
	if !f.world.IsOwnerValid("dave") {
		t.Fatalf("expected dave to be in the world")
	}

	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	conn.Close()

	waitFor(t, "dave to leave", func() bool { return !f.world.IsOwnerValid("dave") })
	waitFor(t, "leave event", func() bool { return len(f.sink.EventsOfType(lifecycle.EventOwnerLeft)) == 1 })
}

func TestDuplicateOwnerIsRejected(t *testing.T) {
	f := newFixture(t, false)
	first := dial(t, f.server.URL, "carol")
	readFrame(t, first)
	f.manager.Start(context.Background(), "carol", effects.DefaultProjectileConfig())

	second := dial(t, f.server.URL, "carol")
	second.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := second.ReadMessage()
	if !websocket.IsCloseError(err, websocket.ClosePolicyViolation) {
		t.Fatalf("expected policy violation close for duplicate owner, got %v", err)
	}
	second.Close()

	time.Sleep(50 * time.Millisecond)
	if !f.world.IsOwnerValid("carol") {
		t.Fatalf("closing the duplicate session must not evict the first one")
	}
	if got := len(f.manager.Effects("carol")); got != 1 {
		t.Fatalf("expected the running rain to survive, got %d", got)
	}

	first.WriteJSON(map[string]any{"type": "console", "cmd": "list"})
	if ack := readFrame(t, first); ack["type"] != "console_ack" || ack["status"] != "ok" {
		t.Fatalf("first session must stay usable, got %v", ack)
	}
}

func TestGuestIDWhenNoneGiven(t *testing.T) {
	f := newFixture(t, false)
	conn := dial(t, f.server.URL, "")
	welcome := readFrame(t, conn)
	owner, _ := welcome["owner"].(string)
	if !strings.HasPrefix(owner, "guest-") {
		t.Fatalf("expected guest owner id, got %q", owner)
	}
	if !f.world.IsOwnerValid(effects.OwnerID(owner)) {
		t.Fatalf("guest must join the world")
	}
}

func TestHeartbeatEchoesClientTime(t *testing.T) {
	f := newFixture(t, false)
	conn := dial(t, f.server.URL, "erin")
	readFrame(t, conn)

	conn.WriteJSON(map[string]any{"type": "heartbeat", "sentAt": 1234})
	frame := readFrame(t, conn)
	if frame["type"] != "heartbeat" || frame["clientTime"] != float64(1234) {
		t.Fatalf("unexpected heartbeat %v", frame)
	}
}
