package main

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

const (
	DefaultTickInterval  = 10 * time.Millisecond
	DefaultStateInterval = 33 * time.Millisecond
)

// World guards the single Space. Only the simulation loop writes to it and
// only the broadcaster reads it; nobody keeps a reference outside of a callback.
type World struct {
	mu    sync.RWMutex
	space *Space
}

// NewWorld takes ownership of space
func NewWorld(space *Space) *World {
	return &World{space: space}
}

// Mutate runs fn with exclusive access
func (w *World) Mutate(fn func(*Space)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fn(w.space)
}

// View runs fn with shared read access
func (w *World) View(fn func(*Space)) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	fn(w.space)
}

// Game runs the simulation loop over a World
type Game struct {
	world    *World
	queue    *CommandQueue
	interval time.Duration
	logger   *log.Logger
}

// NewGame creates a simulation loop ticking every interval
func NewGame(world *World, queue *CommandQueue, interval time.Duration, logger *log.Logger) *Game {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &Game{
		world:    world,
		queue:    queue,
		interval: interval,
		logger:   logger.With("component", "game"),
	}
}

// Run ticks until ctx is cancelled
func (g *Game) Run(ctx context.Context) error {
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	g.logger.Info("simulation started", "tick", g.interval)
	for {
		select {
		case <-ticker.C:
			g.step()
		case <-ctx.Done():
			g.logger.Info("simulation stopped")
			return nil
		}
	}
}

// step drains queued commands and advances the world as one atomic unit
func (g *Game) step() {
	dt := g.interval.Seconds()
	g.world.Mutate(func(s *Space) {
		n := g.queue.Drain(func(cmd Command) {
			ApplyCommand(s, cmd)
		})
		s.Update(dt)
		if n > 0 {
			g.logger.Debug("tick", "n", s.Tick(), "commands", n, "backlog", g.queue.Len())
		}
	})
}
