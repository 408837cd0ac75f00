package main

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"
)

// maxTrackedIPs bounds the limiter table; it is reset when exceeded
const maxTrackedIPs = 4096

var (
	ErrServerFull   = errors.New("server full")
	ErrRateLimited  = errors.New("rate limited")
	ErrShuttingDown = errors.New("shutting down")
)

// HubConfig holds admission settings
type HubConfig struct {
	MaxPlayers int
	AdmitRate  rate.Limit // per-IP connection attempts per second; rate.Inf disables
	AdmitBurst int
}

type slot struct {
	conn PlayerConn
	done chan struct{}
}

// Hub admits connections, hands out player ids and runs one handler per client
type Hub struct {
	cfg    HubConfig
	queue  *CommandQueue
	bus    *Bus
	logger *log.Logger

	mu     sync.Mutex
	slots  map[uint8]*slot
	closed bool

	limitMu  sync.Mutex
	limiters map[string]*rate.Limiter

	wg sync.WaitGroup
}

// NewHub creates a hub feeding queue and reading snapshots from bus
func NewHub(cfg HubConfig, queue *CommandQueue, bus *Bus, logger *log.Logger) *Hub {
	if cfg.MaxPlayers <= 0 {
		cfg.MaxPlayers = DefaultMaxPlayers
	}
	if cfg.MaxPlayers > MaxPlayerLimit {
		cfg.MaxPlayers = MaxPlayerLimit
	}
	if cfg.AdmitRate == 0 {
		cfg.AdmitRate = rate.Inf
	}
	return &Hub{
		cfg:      cfg,
		queue:    queue,
		bus:      bus,
		logger:   logger.With("component", "hub"),
		slots:    make(map[uint8]*slot),
		limiters: make(map[string]*rate.Limiter),
	}
}

// Admit runs the admission state machine for a fresh connection. On success
// the connection belongs to a new handler; on failure it has been refused and closed.
func (h *Hub) Admit(ctx context.Context, conn PlayerConn) (uint8, error) {
	ip := conn.RemoteIP()
	if !h.allow(ip) {
		h.logger.Warn("rate limit exceeded", "ip", ip)
		conn.Refuse(NoticeRateLimited)
		return 0, ErrRateLimited
	}

	id, done, err := h.claim(conn)
	if err != nil {
		reason := NoticeServerFull
		if errors.Is(err, ErrShuttingDown) {
			reason = NoticeShuttingDown
		}
		h.logger.Warn("connection refused", "ip", ip, "reason", reason)
		conn.Refuse(reason)
		return 0, err
	}

	sub := h.bus.Subscribe()
	client := NewClient(id, conn, h.queue, sub, h.logger)
	go func() {
		defer h.wg.Done()
		defer close(done)
		defer h.bus.Unsubscribe(sub)
		client.Run(ctx)
	}()
	return id, nil
}

// claim purges finished handlers and takes the lowest free id. The handler
// is counted in h.wg under h.mu so Shutdown never races a late admission.
func (h *Hub) claim(conn PlayerConn) (uint8, chan struct{}, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return 0, nil, ErrShuttingDown
	}
	h.purge()
	if len(h.slots) >= h.cfg.MaxPlayers {
		return 0, nil, ErrServerFull
	}
	for i := 1; i <= h.cfg.MaxPlayers; i++ {
		id := uint8(i)
		if _, taken := h.slots[id]; taken {
			continue
		}
		done := make(chan struct{})
		h.slots[id] = &slot{conn: conn, done: done}
		h.wg.Add(1)
		return id, done, nil
	}
	return 0, nil, ErrServerFull
}

// purge drops slots whose handler has exited. Callers hold h.mu.
func (h *Hub) purge() {
	for id, s := range h.slots {
		select {
		case <-s.done:
			delete(h.slots, id)
		default:
		}
	}
}

func (h *Hub) allow(ip string) bool {
	if h.cfg.AdmitRate == rate.Inf {
		return true
	}
	h.limitMu.Lock()
	defer h.limitMu.Unlock()
	l, ok := h.limiters[ip]
	if !ok {
		if len(h.limiters) >= maxTrackedIPs {
			h.limiters = make(map[string]*rate.Limiter)
		}
		l = rate.NewLimiter(h.cfg.AdmitRate, h.cfg.AdmitBurst)
		h.limiters[ip] = l
	}
	return l.Allow()
}

// PlayerCount returns the number of live handlers
func (h *Hub) PlayerCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.purge()
	return len(h.slots)
}

// Shutdown refuses further admissions, closes every live connection and
// waits for the handlers to exit
func (h *Hub) Shutdown() {
	h.mu.Lock()
	h.closed = true
	for _, s := range h.slots {
		s.conn.Close()
	}
	h.mu.Unlock()
	h.wg.Wait()
}
