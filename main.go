package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"reelshare/internal/catalog"
	"reelshare/internal/config"
	"reelshare/internal/eventbus"
	"reelshare/internal/logging"
	"reelshare/internal/session"
	"reelshare/internal/ui"
)

// uiEvents are the domain events the TUI renders
var uiEvents = []eventbus.EventType{
	eventbus.EventMoviesLoaded,
	eventbus.EventMovieDetailLoaded,
	eventbus.EventMovieAdded,
	eventbus.EventRegistered,
	eventbus.EventSessionChanged,
	eventbus.EventError,
}

func main() {
	var configPath, apiURL string
	flag.StringVar(&configPath, "config", "", "Path to config.toml (default: user config dir)")
	flag.StringVar(&configPath, "c", "", "Path to config.toml (shorthand)")
	flag.StringVar(&apiURL, "api", "", "API base URL, overrides client.api_url")
	flag.Parse()

	if err := run(configPath, apiURL); err != nil {
		fmt.Fprintf(os.Stderr, "reelshare: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, apiURL string) error {
	bus := eventbus.New()
	defer bus.Close()

	bus.Subscribe(eventbus.EventConfigLoaded, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ConfigLoadedEvent); ok {
			logging.Debug().Str("path", event.Path).Msg("Config loaded")
		}
	})

	configSvc := config.NewConfigServiceWithBus(configPath, bus)
	cfg, err := configSvc.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if apiURL != "" {
		cfg.Client.APIURL = apiURL
	}

	// The terminal belongs to the UI, so logs go to a file or nowhere
	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Log.Level
	logCfg.Format = cfg.Log.Format
	if cfg.Log.File != "" {
		closer, err := logging.InitFile(logCfg, cfg.Log.File)
		if err != nil {
			return err
		}
		defer closer.Close()
	} else {
		logCfg.Output = io.Discard
		logging.Init(logCfg)
	}

	if err := cfg.ValidateClient(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	client := catalog.NewClient(cfg.Client.APIURL, cfg.ClientTimeout())
	sessions := session.NewStore(session.PathBeside(configSvc.Path()))
	catalogSvc := catalog.NewService(ctx, bus, client, sessions)
	defer catalogSvc.Close()

	logging.Info().Str("api", client.BaseURL()).Msg("Starting UI")
	model := ui.NewModel(bus, cfg, catalogSvc.CurrentUser())
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	model.SetProgram(p)

	// Forward events to the program without ever blocking the bus
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			logging.Warn().Str("event", string(e.Type())).Msg("Event channel full, dropping event")
		}
	}
	for _, et := range uiEvents {
		bus.Subscribe(et, forward)
	}
	go func() {
		for {
			select {
			case e := <-eventChan:
				p.Send(ui.EventMsg{Event: e})
			case <-ctx.Done():
				return
			}
		}
	}()

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		logging.Err(err).Msg("Error running program")
		return fmt.Errorf("running program: %w", err)
	}
	logging.Info().Msg("UI exited normally")
	return nil
}
