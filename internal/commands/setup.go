package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diogo/aicms/internal/api"
	"github.com/diogo/aicms/internal/config"
	"github.com/diogo/aicms/internal/logging"
	"github.com/diogo/aicms/internal/render"
	"github.com/diogo/aicms/internal/transcript"
	"github.com/diogo/aicms/internal/tui"
)

// storeOpenTimeout bounds opening a transcript backend
const storeOpenTimeout = 5 * time.Second

// loadConfig loads the config file and applies the global flags.
// A broken config file is reported on stderr and the defaults are used.
func loadConfig() (config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v (using defaults)\n", err)
	}

	if baseURLFlag != "" {
		cfg.BaseURL = baseURLFlag
	}
	if verboseFlag {
		cfg.Verbose = true
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newClient returns the injected client, or one built from cfg.
// The returned func releases it.
func newClient(deps *Dependencies, cfg config.Config, logger *zap.Logger) (api.ClientInterface, func(), error) {
	if deps.Client != nil {
		return deps.Client, func() {}, nil
	}

	client, err := api.NewClient(
		api.WithBaseURL(cfg.BaseURL),
		api.WithTimeout(cfg.Timeout()),
		api.WithLogger(logger),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, client.Close, nil
}

// openSession resolves the session id and opens its transcript store.
// fresh is true when the id was generated for this run.
func openSession(deps *Dependencies, cfg config.Config) (store transcript.Store, fresh bool, err error) {
	id, fresh, err := transcript.ResolveSessionID(sessionFlag)
	if err != nil {
		return nil, false, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeOpenTimeout)
	defer cancel()

	store, err = deps.OpenStore(ctx, cfg, id)
	if err != nil {
		return nil, false, fmt.Errorf("failed to open session %s: %w", id, err)
	}
	return store, fresh, nil
}

// runApp starts the TUI on route
func runApp(cmd *cobra.Command, deps *Dependencies, route tui.Route) error {
	deps = deps.withDefaults()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger := logging.NewOrNop(cfg)
	defer func() { _ = logger.Sync() }()

	client, closeClient, err := newClient(deps, cfg, logger)
	if err != nil {
		return err
	}
	defer closeClient()

	store, fresh, err := openSession(deps, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if cfg.TUITheme != "" && !render.SetTUITheme(cfg.TUITheme) {
		logger.Warn("unknown tui theme, using default", zap.String("theme", cfg.TUITheme))
	}
	tui.UpdateTheme()

	logger.Info("starting",
		zap.String("route", string(route)),
		zap.String("session", store.SessionID()),
		zap.Bool("new_session", fresh),
		zap.String("base_url", cfg.BaseURL))

	err = deps.TUI.RunApp(tui.AppOptions{
		Client:          client,
		Store:           store,
		Logger:          logger,
		RenderOptions:   render.OptionsFromConfig(cfg.Markdown),
		CopyToClipboard: cfg.CopyToClipboard,
		Route:           route,
	})
	if err != nil {
		return err
	}

	// the memory backend keeps nothing to resume
	if fresh && cfg.Transcript.Backend != config.BackendMemory {
		fmt.Fprintf(deps.Out, "Session %s. Resume it with: aicms --session %s\n", store.SessionID(), store.SessionID())
	}
	return nil
}
