package main

import "context"

const commandQueueSize = 1024

// CommandQueue carries commands from every client handler to the simulation loop
type CommandQueue struct {
	ch chan Command
}

// NewCommandQueue creates a queue holding up to size pending commands
func NewCommandQueue(size int) *CommandQueue {
	if size <= 0 {
		size = commandQueueSize
	}
	return &CommandQueue{ch: make(chan Command, size)}
}

// Push enqueues a command. When the queue is full only the caller waits.
func (q *CommandQueue) Push(ctx context.Context, cmd Command) error {
	select {
	case q.ch <- cmd:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Drain applies the commands pending at call time in arrival order.
// Commands pushed meanwhile wait for the next call.
func (q *CommandQueue) Drain(fn func(Command)) int {
	pending := len(q.ch)
	for i := 0; i < pending; i++ {
		fn(<-q.ch)
	}
	return pending
}

// Len returns the number of pending commands
func (q *CommandQueue) Len() int {
	return len(q.ch)
}
