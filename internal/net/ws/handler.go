package ws

import (
	"context"
	"fmt"
	nethttp "net/http"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"boulder-rain/internal/console"
	"boulder-rain/internal/effects"
	"boulder-rain/internal/net/proto"
	"boulder-rain/internal/settings"
	"boulder-rain/internal/telemetry"
	"boulder-rain/internal/world"
	"boulder-rain/logging"
	"boulder-rain/logging/lifecycle"
)

// DefaultAutoEnableDelay gives a joining owner time to finish loading before
// a rain starts on its behalf.
const DefaultAutoEnableDelay = 2 * time.Second

// World is the part of the sandbox the handler needs.
type World interface {
	JoinPlayer(ctx context.Context, owner effects.OwnerID) (world.Player, error)
	LeavePlayer(ctx context.Context, owner effects.OwnerID, reason string) bool
	MovePlayer(owner effects.OwnerID, position mgl64.Vec2) bool
	IsOwnerValid(owner effects.OwnerID) bool
	CurrentTick() uint64
}

// Effects is the part of the effect manager used for auto-enable.
type Effects interface {
	Start(ctx context.Context, owner effects.OwnerID, cfg effects.ProjectileConfig) (effects.EffectID, error)
	Effects(owner effects.OwnerID) []effects.Snapshot
}

// Console executes command lines.
type Console interface {
	Execute(ctx context.Context, owner effects.OwnerID, args []string) console.Reply
	Forget(owner effects.OwnerID)
}

// Settings exposes the settings in effect.
type Settings interface {
	Current() settings.Settings
}

type HandlerConfig struct {
	World     World
	Effects   Effects
	Console   Console
	Settings  Settings
	Logger    telemetry.Logger
	Publisher logging.Publisher
	// AutoEnableDelay overrides DefaultAutoEnableDelay when positive.
	AutoEnableDelay time.Duration
}

type Handler struct {
	world     World
	effects   Effects
	console   Console
	settings  Settings
	logger    telemetry.Logger
	publisher logging.Publisher
	delay     time.Duration
	upgrader  websocket.Upgrader
}

func NewHandler(cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = telemetry.WrapLogger(nil)
	}
	publisher := cfg.Publisher
	if publisher == nil {
		publisher = logging.NopPublisher()
	}
	delay := cfg.AutoEnableDelay
	if delay <= 0 {
		delay = DefaultAutoEnableDelay
	}

	return &Handler{
		world:     cfg.World,
		effects:   cfg.Effects,
		console:   cfg.Console,
		settings:  cfg.Settings,
		logger:    logger,
		publisher: publisher,
		delay:     delay,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *nethttp.Request) bool {
				return true
			},
		},
	}
}

// session serialises writes; gorilla connections allow one writer at a time.
type session struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *session) write(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// Handle upgrades the request, joins the owner named by ?id= (or a fresh
// guest id) and serves console commands until the connection closes.
func (h *Handler) Handle(w nethttp.ResponseWriter, r *nethttp.Request) {
	owner := effects.OwnerID(r.URL.Query().Get("id"))
	if owner == "" {
		owner = effects.OwnerID("guest-" + uuid.NewString())
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("upgrade failed for %s: %v", owner, err)
		return
	}
	defer conn.Close()

	ctx := context.WithoutCancel(r.Context())
	player, err := h.world.JoinPlayer(ctx, owner)
	if err != nil {
		h.logger.Printf("rejecting connection for %s: %v", owner, err)
		message := websocket.FormatCloseMessage(websocket.ClosePolicyViolation, err.Error())
		conn.WriteMessage(websocket.CloseMessage, message)
		return
	}
	defer func() {
		h.world.LeavePlayer(ctx, owner, "disconnect")
		h.console.Forget(owner)
	}()

	sess := &session{conn: conn}
	welcome, err := proto.EncodeWelcome(proto.Welcome{
		Owner:  string(owner),
		SpawnX: player.Position.X(),
		SpawnY: player.Position.Y(),
		Tick:   h.world.CurrentTick(),
	})
	if err != nil || sess.write(welcome) != nil {
		return
	}

	if h.settings != nil && h.settings.Current().AutoEnableOnJoin {
		timer := time.AfterFunc(h.delay, func() {
			h.autoEnable(ctx, owner, sess)
		})
		defer timer.Stop()
	}

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return
		}
		msg, err := proto.DecodeClientMessage(payload)
		if err != nil {
			h.logger.Printf("discarding malformed message from %s: %v", owner, err)
			continue
		}
		if !h.dispatch(ctx, owner, sess, msg) {
			return
		}
	}
}

// dispatch handles one client frame and reports whether the connection is
// still writable.
func (h *Handler) dispatch(ctx context.Context, owner effects.OwnerID, sess *session, msg proto.ClientMessage) bool {
	var (
		data []byte
		err  error
	)
	switch msg.Type {
	case proto.TypeConsole:
		commandID := uuid.NewString()
		reply := h.console.Execute(logging.WithCommandID(ctx, commandID), owner, console.Parse(msg.Cmd))
		ack := proto.NewConsoleAck(msg.Cmd)
		ack.Status = proto.StatusOK
		if !reply.OK {
			ack.Status = proto.StatusError
		}
		ack.Reason = reply.Error
		ack.Lines = reply.Lines
		ack.EffectID = reply.EffectID
		ack.CommandID = commandID
		data, err = proto.EncodeConsoleAck(ack)
	case proto.TypeHeartbeat:
		data, err = proto.EncodeHeartbeat(time.Now().UnixMilli(), msg.SentAt)
	case proto.TypeMove:
		h.world.MovePlayer(owner, mgl64.Vec2{msg.X, msg.Y})
		return true
	default:
		h.logger.Printf("ignoring message type %q from %s", msg.Type, owner)
		return true
	}
	if err != nil {
		h.logger.Printf("failed to encode response for %s: %v", owner, err)
		return true
	}
	return sess.write(data) == nil
}

// autoEnable starts a rain with the default config if the owner is still
// connected and has none running.
func (h *Handler) autoEnable(ctx context.Context, owner effects.OwnerID, sess *session) {
	if !h.world.IsOwnerValid(owner) || len(h.effects.Effects(owner)) > 0 {
		return
	}
	id, err := h.effects.Start(ctx, owner, h.settings.Current().DefaultProjectile)
	if err != nil {
		h.logger.Printf("auto enable for %s: %v", owner, err)
		return
	}
	lifecycle.AutoEnabled(ctx, h.publisher, h.world.CurrentTick(), logging.EntityRef{ID: string(owner), Kind: logging.EntityKindOwner}, lifecycle.AutoEnabledPayload{
		EffectID: uint64(id),
	})
	if data, err := proto.EncodeNotice(fmt.Sprintf("rain %d enabled automatically", id)); err == nil {
		sess.write(data)
	}
}
