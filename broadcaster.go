package main

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

// Broadcaster samples the world on its own clock and publishes snapshots
type Broadcaster struct {
	world    *World
	bus      *Bus
	interval time.Duration
	logger   *log.Logger

	latest atomic.Pointer[[]byte] // last published snapshot, for HTTP readers
}

// NewBroadcaster creates a broadcaster publishing every interval
func NewBroadcaster(world *World, bus *Bus, interval time.Duration, logger *log.Logger) *Broadcaster {
	if interval <= 0 {
		interval = DefaultStateInterval
	}
	return &Broadcaster{
		world:    world,
		bus:      bus,
		interval: interval,
		logger:   logger.With("component", "broadcaster"),
	}
}

// Run publishes until ctx is cancelled
func (b *Broadcaster) Run(ctx context.Context) error {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			b.broadcast()
		case <-ctx.Done():
			return nil
		}
	}
}

func (b *Broadcaster) broadcast() {
	var (
		state []byte
		err   error
	)
	b.world.View(func(s *Space) {
		state, err = s.Snapshot()
	})
	if err != nil {
		b.logger.Error("snapshot error", "err", err)
		return
	}
	b.latest.Store(&state)
	b.bus.Publish(state)
}

// Subscribers returns the number of connections waiting for snapshots
func (b *Broadcaster) Subscribers() int {
	return b.bus.Subscribers()
}

// Latest returns the most recently published snapshot, or nil before the first
func (b *Broadcaster) Latest() []byte {
	if p := b.latest.Load(); p != nil {
		return *p
	}
	return nil
}
