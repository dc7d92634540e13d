package net

import (
	"encoding/json"
	nethttp "net/http"
	"time"

	"boulder-rain/internal/telemetry"
)

type HTTPHandlerConfig struct {
	// WebSocket serves /ws. The route is omitted when nil.
	WebSocket nethttp.Handler
	// Diagnostics returns the state reported by /diagnostics.
	Diagnostics func() any
	TickRate    int
	Logger      telemetry.Logger
}

func NewHTTPHandler(cfg HTTPHandlerConfig) nethttp.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = telemetry.WrapLogger(nil)
	}

	mux := nethttp.NewServeMux()

	mux.HandleFunc("/health", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok"))
	})

	mux.HandleFunc("/diagnostics", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		if r.Method != nethttp.MethodGet {
			httpError(w, "method not allowed", nethttp.StatusMethodNotAllowed)
			return
		}
		var state any
		if cfg.Diagnostics != nil {
			state = cfg.Diagnostics()
		}
		payload := struct {
			Status     string `json:"status"`
			ServerTime int64  `json:"serverTime"`
			TickRate   int    `json:"tickRate"`
			State      any    `json:"state,omitempty"`
		}{
			Status:     "ok",
			ServerTime: time.Now().UnixMilli(),
			TickRate:   cfg.TickRate,
			State:      state,
		}

		data, err := json.Marshal(payload)
		if err != nil {
			logger.Printf("diagnostics encode failed: %v", err)
			httpError(w, "failed to encode", nethttp.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
	})

	if cfg.WebSocket != nil {
		mux.Handle("/ws", cfg.WebSocket)
	}

	return mux
}

func httpError(w nethttp.ResponseWriter, message string, status int) {
	nethttp.Error(w, message, status)
}
