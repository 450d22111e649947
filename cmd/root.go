package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"outlay/internal/api"
	"outlay/internal/auth"
	"outlay/internal/cache"
	"outlay/internal/config"
	"outlay/internal/store"

	"github.com/spf13/cobra"
)

var (
	flagServer  string
	flagTimeout int
	flagNoCache bool
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "outlay",
	Short: "Expense Tracker CLI",
	Long:  "Track your expenses: list, add, edit, and see where the money goes.",
	RunE:  runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagServer, "server", "s", "", "Backend base URL (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagTimeout, "timeout", 0, "Request timeout in seconds")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip the local snapshot cache")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress log output")
}

// deps bundles everything a command needs to talk to the backend.
type deps struct {
	cfg     config.Config
	session *auth.Session
	client  *api.Client
	auth    *auth.Manager
	store   *store.Store
	snap    *cache.Snapshot // nil with --no-cache or open failure
}

func (d *deps) Close() {
	if d.snap != nil {
		_ = d.snap.Close()
	}
}

// buildDeps wires config, session, client, and store for a command run.
func buildDeps() (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagServer != "" {
		cfg.Server.BaseURL = flagServer
	}

	session := auth.NewSession(cfg.Session.Token, config.SaveToken)
	client := api.NewClient(cfg.Server.BaseURL, session)
	switch {
	case flagTimeout > 0:
		client.SetTimeout(time.Duration(flagTimeout) * time.Second)
	case cfg.Server.TimeoutSec > 0:
		client.SetTimeout(time.Duration(cfg.Server.TimeoutSec) * time.Second)
	}

	var snap *cache.Snapshot
	if !flagNoCache {
		snap, err = cache.Open(cache.DefaultPath())
		if err != nil {
			// Cache is an optimization; run without it
			if !flagQuiet {
				fmt.Fprintf(os.Stderr, "  Snapshot cache unavailable: %v\n", err)
			}
			snap = nil
		}
	}

	var snapshotter store.Snapshotter
	if snap != nil {
		snapshotter = snap
	}

	return &deps{
		cfg:     cfg,
		session: session,
		client:  client,
		auth:    auth.NewManager(client, session),
		store:   store.New(client, snapshotter, newLogger(flagQuiet)),
		snap:    snap,
	}, nil
}

func newLogger(quiet bool) *slog.Logger {
	if quiet {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}

// requireAuth fails fast with a hint when no session token is present.
func requireAuth(d *deps) error {
	if !d.session.Authenticated() {
		return fmt.Errorf("not logged in, run `outlay login` first")
	}
	return nil
}
