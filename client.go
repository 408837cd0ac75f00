package main

import (
	"context"
	"errors"
	"io"
	"net"
	"time"

	"github.com/charmbracelet/log"
)

const writeWait = 10 * time.Second

// PlayerConn is one player's transport: snapshots out, command frames in
type PlayerConn interface {
	// WriteState sends one snapshot
	WriteState(state []byte) error
	// ReadCommand blocks until one complete command frame arrives
	ReadCommand() ([]byte, error)
	// Refuse tells the peer why it is being turned away and closes the connection
	Refuse(reason string)
	Close() error
	RemoteIP() string
}

// Client is the handler bound to one admitted connection
type Client struct {
	id     uint8
	conn   PlayerConn
	queue  *CommandQueue
	sub    *Subscription
	logger *log.Logger
}

// NewClient creates a handler for player id
func NewClient(id uint8, conn PlayerConn, queue *CommandQueue, sub *Subscription, logger *log.Logger) *Client {
	return &Client{
		id:     id,
		conn:   conn,
		queue:  queue,
		sub:    sub,
		logger: logger.With("player", id, "conn", GenerateTag()),
	}
}

// Run spawns the player's ship, then alternates between sending the newest
// snapshot and reading one command, until the connection fails.
func (c *Client) Run(ctx context.Context) {
	c.logger.Info("player joined", "ip", c.conn.RemoteIP())
	defer c.teardown(ctx)

	if err := c.queue.Push(ctx, SpawnCommand(c.id)); err != nil {
		return
	}
	for {
		state, err := c.sub.Next(ctx)
		if err != nil {
			return
		}
		if err := c.conn.WriteState(state); err != nil {
			c.logIOError("write", err)
			return
		}
		frame, err := c.conn.ReadCommand()
		if err != nil {
			c.logIOError("read", err)
			return
		}
		if err := c.queue.Push(ctx, InputCommand(c.id, frame)); err != nil {
			return
		}
	}
}

func (c *Client) teardown(ctx context.Context) {
	c.conn.Close()
	if err := c.queue.Push(ctx, RemoveCommand(c.id)); err != nil {
		c.logger.Debug("remove not queued", "err", err)
	}
	c.logger.Info("player left")
}

func (c *Client) logIOError(op string, err error) {
	if errors.Is(err, io.EOF) || errors.Is(err, net.ErrClosed) {
		c.logger.Debug("connection closed", "op", op)
		return
	}
	c.logger.Warn("connection error", "op", op, "err", err)
}
