package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	"github.com/tinytelemetry/hackboard/internal/countdown"
	"github.com/tinytelemetry/hackboard/internal/datasource"
	"github.com/tinytelemetry/hackboard/internal/logging"
	"github.com/tinytelemetry/hackboard/internal/session"
	"github.com/tinytelemetry/hackboard/internal/storage"
	"github.com/tinytelemetry/hackboard/internal/tui"
)

var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
	goVersion = "unknown"
)

func main() {
	var configPath string
	var dataSource string
	var showVersion bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/hackboard/config.yml)")
	flag.StringVar(&dataSource, "data", "", "data source: an http(s) URL, a file path or \"builtin\"")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.Parse()

	if showVersion {
		fmt.Printf("Hackboard TUI - Countdown Board\n")
		fmt.Printf("  Version:    %s\n", version)
		fmt.Printf("  Commit:     %s\n", commit)
		fmt.Printf("  Built:      %s\n", buildTime)
		fmt.Printf("  Go version: %s\n", goVersion)
		return
	}

	cfg, err := loadCLIConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if dataSource != "" {
		cfg.DataSource = dataSource
	}

	if err := runTUI(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runTUI(cfg cliConfig) error {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logFile, err := logging.File(cfg.LogFile, level)
	if err != nil {
		return err
	}
	defer logFile.Close()

	loader, err := datasource.New(cfg.DataSource, cfg.FetchTimeout)
	if err != nil {
		return err
	}

	// Without a usable store the board still runs, with a fresh deadline
	// each start.
	var store storage.Store
	if s, err := storage.Open(storage.Config{
		Backend: cfg.StorageBackend,
		Dir:     cfg.StateDir,
	}); err != nil {
		log.Warn().Err(err).Str("backend", cfg.StorageBackend).Msg("deadline storage unavailable")
	} else {
		store = s
	}

	engine := countdown.NewEngine(store, countdown.WithKey(cfg.DeadlineKey))
	sess := session.New(loader, engine)

	keys := tui.DefaultKeyMap()
	board := tui.NewBoard(tui.BoardConfig{
		Session:      sess,
		TickInterval: cfg.TickInterval,
		FetchTimeout: cfg.FetchTimeout,
		Keys:         keys,
	})
	app := tui.NewApp(board, tui.NewAbout(sess, keys, version))
	defer app.Close()

	log.Info().
		Str("version", version).
		Str("source", cfg.DataSource).
		Str("storage", cfg.StorageBackend).
		Str("config", cfg.ConfigPath).
		Msg("hackboard-tui starting")

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		if strings.Contains(err.Error(), "TTY") || strings.Contains(err.Error(), "/dev/tty") {
			return fmt.Errorf("TUI requires a real terminal")
		}
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
