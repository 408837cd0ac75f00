package main

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	maxCommandMessage = 4096
	joinQRSize        = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true // Non-browser clients don't send Origin
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return u.Host == r.Host
	},
}

// wsConn carries one snapshot per binary message and one command frame per inbound message
type wsConn struct {
	conn *websocket.Conn
	ip   string
}

func newWSConn(conn *websocket.Conn, ip string) *wsConn {
	conn.SetReadLimit(maxCommandMessage)
	return &wsConn{conn: conn, ip: ip}
}

func (w *wsConn) WriteState(state []byte) error {
	_ = w.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return w.conn.WriteMessage(websocket.BinaryMessage, state)
}

func (w *wsConn) ReadCommand() ([]byte, error) {
	_, msg, err := w.conn.ReadMessage()
	if err != nil {
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return nil, net.ErrClosed
		}
		return nil, err
	}
	return msg, nil
}

func (w *wsConn) Refuse(reason string) {
	msg := websocket.FormatCloseMessage(websocket.CloseTryAgainLater, reason)
	_ = w.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
	w.conn.Close()
}

func (w *wsConn) Close() error {
	return w.conn.Close()
}

func (w *wsConn) RemoteIP() string {
	return w.ip
}

func extractIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type healthResponse struct {
	Players     int    `json:"players"`
	Subscribers int    `json:"subscribers"`
	Tick        uint64 `json:"tick"`
}

// SetupRoutes configures HTTP routes. tickets may be nil to admit without a ticket.
func SetupRoutes(ctx context.Context, hub *Hub, broadcaster *Broadcaster, tickets *Tickets, logger *log.Logger) *http.ServeMux {
	logger = logger.With("component", "gateway")
	mux := http.NewServeMux()

	// WebSocket endpoint
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		pilot := ""
		if tickets != nil {
			name, err := tickets.Validate(r.URL.Query().Get("ticket"))
			if err != nil {
				logger.Debug("ticket rejected", "ip", extractIP(r), "err", err)
				http.Error(w, "invalid ticket", http.StatusUnauthorized)
				return
			}
			pilot = name
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("upgrade error", "err", err)
			return
		}
		id, err := hub.Admit(ctx, newWSConn(conn, extractIP(r)))
		if err != nil {
			return
		}
		if pilot != "" {
			logger.Info("pilot admitted", "pilot", pilot, "player", id)
		}
	})

	mux.HandleFunc("/scores", func(w http.ResponseWriter, r *http.Request) {
		state, ok := latestState(broadcaster)
		if !ok {
			writeJSON(w, []ScoreEntry{})
			return
		}
		writeJSON(w, Scoreboard(state))
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		resp := healthResponse{Players: hub.PlayerCount(), Subscribers: broadcaster.Subscribers()}
		if state, ok := latestState(broadcaster); ok {
			resp.Tick = state.Tick
		}
		writeJSON(w, resp)
	})

	mux.HandleFunc("/join.png", func(w http.ResponseWriter, r *http.Request) {
		target := "ws://" + r.Host + "/ws"
		png, err := qrcode.Encode(target, qrcode.Medium, joinQRSize)
		if err != nil {
			logger.Error("qr encode failed", "err", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "no-cache")
		w.Write(png)
	})

	return mux
}

func latestState(b *Broadcaster) (StateMsg, bool) {
	data := b.Latest()
	if data == nil {
		return StateMsg{}, false
	}
	state, err := DecodeSnapshot(data)
	if err != nil {
		return StateMsg{}, false
	}
	return state, true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	json.NewEncoder(w).Encode(v)
}

// ServeHTTP runs srv until ctx is cancelled, then shuts it down gracefully
func ServeHTTP(ctx context.Context, srv *http.Server, logger *log.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
