package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/miniplay/internal/core"
	"github.com/vovakirdan/miniplay/internal/platform/tui"
	"github.com/vovakirdan/miniplay/internal/platform/web"
	"github.com/vovakirdan/miniplay/internal/score"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH and HTTP servers",
	Long: `Start an SSH server that hosts the catalog menu and an HTTP server that
exposes the catalog, records, profile and websocket play sessions.

Each SSH connection gets its own session; the SSH user name is the player
name. All sessions share one score database.

Pass an empty address to disable a server.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.miniplay/host_key

Examples:
  miniplay serve                          # SSH on :23234, HTTP on :8080
  miniplay serve --ssh :2222 --http ""    # SSH only on port 2222
  miniplay serve --host-key ./host_key    # Use specific host key

Users can connect with:
  ssh localhost -p 23234
  websocat ws://localhost:8080/ws/play/snake`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	if flagSSHAddr == "" && flagHTTPAddr == "" {
		return fmt.Errorf("both --ssh and --http are empty; nothing to serve")
	}
	if err := applyConfig(""); err != nil {
		return err
	}

	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}
	svc := services(store, logger)
	if svc.Book == nil {
		// Without a database SSH and HTTP players still share records in memory.
		svc.Book = score.NewBook(score.NewMemoryKV(), nil, logger.WithPrefix("score"))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	if flagSSHAddr != "" {
		cfg := tui.DefaultSSHServerConfig()
		cfg.Address = flagSSHAddr
		cfg.HostKeyPath = flagHostKey
		cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
		cfg.TickRate = flagFPS
		cfg.Seed = flagSeed

		sshServer, err := tui.NewSSHServer(cfg, svc)
		if err != nil {
			return fmt.Errorf("creating SSH server: %w", err)
		}
		g.Go(func() error { return sshServer.ListenAndServe(ctx) })
	}

	if flagHTTPAddr != "" {
		rt := core.DefaultConfig()
		rt.TickRate = flagFPS
		rt.Seed = flagSeed

		opts := web.Options{Book: svc.Book, KV: svc.KV, Logger: logger, Runtime: rt}
		if store != nil {
			opts.History = store
		}
		httpServer := web.NewServer(opts)
		g.Go(func() error { return httpServer.ListenAndServe(ctx, flagHTTPAddr) })
	}

	logger.Info("miniplay serving", "ssh", flagSSHAddr, "http", flagHTTPAddr)
	fmt.Println("Press Ctrl+C to stop")

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	logger.Info("miniplay stopped")
	return nil
}
