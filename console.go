package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	clog "github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/logging"
)

const (
	consoleRefresh = time.Second
	clearScreen    = "\x1b[H\x1b[2J"
)

// Console is a read-only SSH scoreboard fed from the snapshot bus
type Console struct {
	bus    *Bus
	logger *clog.Logger
	srv    *ssh.Server
}

// NewConsole creates an SSH console listening on addr
func NewConsole(addr, hostKeyPath string, bus *Bus, logger *clog.Logger) (*Console, error) {
	c := &Console{bus: bus, logger: logger.With("component", "console")}
	opts := []ssh.Option{
		wish.WithAddress(addr),
		wish.WithMiddleware(
			c.middleware,
			logging.MiddlewareWithLogger(c.logger),
		),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}
	srv, err := wish.NewServer(opts...)
	if err != nil {
		return nil, fmt.Errorf("ssh server: %w", err)
	}
	c.srv = srv
	return c, nil
}

// Run serves sessions until ctx is cancelled
func (c *Console) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		c.logger.Info("ssh listening", "addr", c.srv.Addr)
		errCh <- c.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, ssh.ErrServerClosed) || errors.Is(err, net.ErrClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return c.srv.Shutdown(shutdownCtx)
	}
}

func (c *Console) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		sub := c.bus.Subscribe()
		defer c.bus.Unsubscribe(sub)
		if err := c.watch(sess.Context(), sess, sub); err != nil {
			c.logger.Debug("session ended", "user", sess.User(), "err", err)
		}
		next(sess)
	}
}

// watch redraws the scoreboard from the newest snapshot at most once per refresh
func (c *Console) watch(ctx context.Context, sess ssh.Session, sub *Subscription) error {
	ticker := time.NewTicker(consoleRefresh)
	defer ticker.Stop()
	for {
		data, err := sub.Next(ctx)
		if err != nil {
			return err
		}
		state, err := DecodeSnapshot(data)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprint(sess, clearScreen); err != nil {
			return err
		}
		if err := WriteScoreboard(sess, state); err != nil {
			return err
		}
		select {
		case <-ticker.C:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
