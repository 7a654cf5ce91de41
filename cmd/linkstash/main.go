// ABOUTME: Entry point for the linkstash bot
// ABOUTME: Loads config, wires store/registry/engine, and runs the Telegram front-end

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	"github.com/linkstash/linkstash/internal/category"
	"github.com/linkstash/linkstash/internal/config"
	"github.com/linkstash/linkstash/internal/engine"
	"github.com/linkstash/linkstash/internal/fetch"
	"github.com/linkstash/linkstash/internal/session"
	"github.com/linkstash/linkstash/internal/store"
	"github.com/linkstash/linkstash/internal/telegram"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
 _ _       _        _            _
| (_)_ __ | | _____| |_ __ _ ___| |__
| | | '_ \| |/ / __| __/ _' / __| '_ \
| | | | | |   <\__ \ || (_| \__ \ | | |
|_|_|_| |_|_|\_\___/\__\__,_|___/_| |_|
`

// getConfigPath returns the path to the linkstash config file.
// Priority: LINKSTASH_CONFIG env var > XDG_CONFIG_HOME/linkstash/linkstash.yaml > ~/.config/linkstash/linkstash.yaml
func getConfigPath() string {
	if envPath := os.Getenv("LINKSTASH_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "linkstash.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "linkstash", "linkstash.yaml")
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil && err != context.Canceled {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// A .env next to the binary is convenient in development; its absence
	// is not an error.
	_ = godotenv.Load()

	cyan := color.New(color.FgCyan)
	cyan.Print(banner)
	gray := color.New(color.FgHiBlack)
	gray.Printf("    version: %s\n\n", version)

	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := setupLogger(cfg.Logging)
	slog.SetDefault(logger)

	st, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	defaults := make([]store.Category, len(cfg.Categories.Defaults))
	for i, cat := range cfg.Categories.Defaults {
		defaults[i] = store.Category{Name: cat.Name, Color: cat.Color}
	}

	registry := category.NewRegistry(st, defaults, logger)
	fetcher := fetch.New(cfg.Fetch.PageTimeout, cfg.Fetch.ResourceTimeout, logger)
	eng := engine.New(st, registry, session.NewStore(), fetcher, logger)

	frontend, err := telegram.New(cfg.Telegram.Token, cfg.Telegram.Debug, eng, logger)
	if err != nil {
		return fmt.Errorf("starting front-end: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Printf("  ➜ database: %s\n", cfg.Database.Path)
	green.Printf("  ➜ default categories: %d\n\n", len(defaults))

	return frontend.Run(ctx)
}

func setupLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
