package main

import (
	"context"
	"sync"
)

// Bus fans snapshots out to subscribers. Each subscriber holds at most one
// unread value: a publish replaces whatever it has not read yet.
type Bus struct {
	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

// Subscription is one consumer's view of the bus
type Subscription struct {
	ch chan []byte
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{subs: make(map[*Subscription]struct{})}
}

// Subscribe registers a consumer. It only sees values published afterwards.
func (b *Bus) Subscribe() *Subscription {
	sub := &Subscription{ch: make(chan []byte, 1)}
	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()
	return sub
}

// Unsubscribe removes a consumer
func (b *Bus) Unsubscribe(sub *Subscription) {
	b.mu.Lock()
	delete(b.subs, sub)
	b.mu.Unlock()
}

// Subscribers returns the number of registered consumers
func (b *Bus) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Publish hands data to every subscriber without blocking.
// It must only be called from a single producer.
func (b *Bus) Publish(data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for sub := range b.subs {
		sub.offer(data)
	}
}

func (s *Subscription) offer(data []byte) {
	for {
		select {
		case s.ch <- data:
			return
		default:
		}
		// Drop the stale value; the consumer may have taken it meanwhile
		select {
		case <-s.ch:
		default:
		}
	}
}

// Next blocks until an unread value is available and returns the newest one
func (s *Subscription) Next(ctx context.Context) ([]byte, error) {
	select {
	case data := <-s.ch:
		return data, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
