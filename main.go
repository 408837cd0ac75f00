package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := LoadDotEnv(".env"); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if len(os.Args) > 1 && os.Args[1] == "ticket" {
		if err := runTicket(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	cfg, err := ParseConfig(os.Args[0], os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := NewLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
	logger.Info("shut down")
}

func run(ctx context.Context, cfg Config, logger *log.Logger) error {
	space, err := LoadMap(cfg.MapPath)
	if err != nil {
		return err
	}
	logger.Info("map loaded", "path", cfg.MapPath, "size", space.Size(), "boundary", space.boundary)

	ln, err := net.Listen("tcp", cfg.TCPAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.TCPAddr, err)
	}

	var console *Console
	world := NewWorld(space)
	queue := NewCommandQueue(0)
	bus := NewBus()
	game := NewGame(world, queue, cfg.Tick, logger)
	broadcaster := NewBroadcaster(world, bus, cfg.State, logger)
	hub := NewHub(cfg.HubConfig(), queue, bus, logger)
	if cfg.SSHAddr != "" {
		console, err = NewConsole(cfg.SSHAddr, cfg.SSHKeyPath, bus, logger)
		if err != nil {
			ln.Close()
			return err
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return game.Run(ctx) })
	g.Go(func() error { return broadcaster.Run(ctx) })
	g.Go(func() error { return ServeTCP(ctx, ln, hub, logger) })
	if cfg.HTTPAddr != "" {
		srv := &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           SetupRoutes(ctx, hub, broadcaster, NewTickets(cfg.TicketSecret), logger),
			ReadHeaderTimeout: 10 * time.Second,
		}
		g.Go(func() error { return ServeHTTP(ctx, srv, logger.With("component", "gateway")) })
	}
	if console != nil {
		g.Go(func() error { return console.Run(ctx) })
	}

	err = g.Wait()
	hub.Shutdown()
	return err
}

// runTicket prints a signed join ticket for the WebSocket gateway
func runTicket(args []string) error {
	fs := flag.NewFlagSet("ticket", flag.ContinueOnError)
	name := fs.String("name", "", "Pilot name")
	ttl := fs.Duration("ttl", defaultTicketTTL, "Ticket lifetime")
	secret := fs.String("ticket-secret", GetEnv("SPACE_TICKET_SECRET", ""), "HMAC secret for join tickets")
	if err := fs.Parse(args); err != nil {
		return err
	}
	tickets := NewTickets(*secret)
	if tickets == nil {
		return errors.New("ticket secret is required")
	}
	token, err := tickets.Issue(*name, *ttl)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
