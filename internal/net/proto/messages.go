package proto

import (
	"encoding/json"
	"fmt"
)

// Version is the protocol version stamped on every server frame.
const Version = 1

// Server message type identifiers.
const (
	typeWelcome    = "welcome"
	typeConsoleAck = "console_ack"
	typeHeartbeat  = "heartbeat"
	typeNotice     = "notice"
)

// Client message type identifiers.
const (
	TypeConsole   = "console"
	TypeHeartbeat = "heartbeat"
	TypeMove      = "move"
)

// Console ack statuses.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// ClientMessage is any frame a client may send.
type ClientMessage struct {
	Ver    int     `json:"ver,omitempty"`
	Type   string  `json:"type"`
	Cmd    string  `json:"cmd,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	SentAt int64   `json:"sentAt,omitempty"`
}

// DecodeClientMessage parses a client frame. Frames without a type are rejected.
func DecodeClientMessage(data []byte) (ClientMessage, error) {
	var msg ClientMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return ClientMessage{}, fmt.Errorf("decode client message: %w", err)
	}
	if msg.Type == "" {
		return ClientMessage{}, fmt.Errorf("decode client message: missing type")
	}
	return msg, nil
}

// Welcome is sent once after the owner joined the world.
type Welcome struct {
	Owner  string
	SpawnX float64
	SpawnY float64
	Tick   uint64
}

func EncodeWelcome(msg Welcome) ([]byte, error) {
	frame := struct {
		Ver    int     `json:"ver"`
		Type   string  `json:"type"`
		Owner  string  `json:"owner"`
		SpawnX float64 `json:"spawnX"`
		SpawnY float64 `json:"spawnY"`
		Tick   uint64  `json:"tick"`
	}{
		Ver:    Version,
		Type:   typeWelcome,
		Owner:  msg.Owner,
		SpawnX: msg.SpawnX,
		SpawnY: msg.SpawnY,
		Tick:   msg.Tick,
	}
	return json.Marshal(frame)
}

// ConsoleAck captures the outcome of a console command.
type ConsoleAck struct {
	Cmd       string
	Status    string
	Reason    string
	Lines     []string
	EffectID  uint64
	CommandID string
}

// NewConsoleAck constructs a baseline acknowledgement for the given command.
func NewConsoleAck(cmd string) ConsoleAck {
	return ConsoleAck{Cmd: cmd}
}

// EncodeConsoleAck renders a console command acknowledgement payload.
func EncodeConsoleAck(msg ConsoleAck) ([]byte, error) {
	frame := struct {
		Ver       int      `json:"ver"`
		Type      string   `json:"type"`
		Cmd       string   `json:"cmd"`
		Status    string   `json:"status"`
		Reason    string   `json:"reason,omitempty"`
		Lines     []string `json:"lines,omitempty"`
		EffectID  uint64   `json:"effectId,omitempty"`
		CommandID string   `json:"commandId,omitempty"`
	}{
		Ver:       Version,
		Type:      typeConsoleAck,
		Cmd:       msg.Cmd,
		Status:    msg.Status,
		Reason:    msg.Reason,
		Lines:     msg.Lines,
		EffectID:  msg.EffectID,
		CommandID: msg.CommandID,
	}
	return json.Marshal(frame)
}

// EncodeHeartbeat echoes the client's send time alongside the server time.
func EncodeHeartbeat(serverTime, clientTime int64) ([]byte, error) {
	frame := struct {
		Ver        int    `json:"ver"`
		Type       string `json:"type"`
		ServerTime int64  `json:"serverTime"`
		ClientTime int64  `json:"clientTime"`
	}{
		Ver:        Version,
		Type:       typeHeartbeat,
		ServerTime: serverTime,
		ClientTime: clientTime,
	}
	return json.Marshal(frame)
}

// EncodeNotice renders an unsolicited server message.
func EncodeNotice(text string) ([]byte, error) {
	frame := struct {
		Ver  int    `json:"ver"`
		Type string `json:"type"`
		Text string `json:"text"`
	}{
		Ver:  Version,
		Type: typeNotice,
		Text: text,
	}
	return json.Marshal(frame)
}
