package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/diogo/aicms/internal/config"
	"github.com/diogo/aicms/internal/devserver"
	"github.com/diogo/aicms/internal/logging"
)

var (
	serveAddr string
	serveDB   string
)

// NewServeCmd creates the serve command
func NewServeCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local development server",
		Long: `Run a local server implementing the chat and content endpoints,
backed by a sqlite database. Point the client at it with:

  aicms serve --addr :8000
  aicms --base-url http://localhost:8000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&serveAddr, "addr", ":8000", "Listen address")
	cmd.Flags().StringVar(&serveDB, "db", "", "sqlite database path (default ~/.aicms/devserver.db)")
	return cmd
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	dbPath := serveDB
	if dbPath == "" {
		dir, err := config.EnsureConfigDir()
		if err != nil {
			return err
		}
		dbPath = filepath.Join(dir, "devserver.db")
	}

	logger, err := logging.NewConsole(verboseFlag)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	db, err := devserver.OpenDB(dbPath)
	if err != nil {
		return err
	}

	if !verboseFlag {
		gin.SetMode(gin.ReleaseMode)
	}
	router := devserver.NewRouter(&devserver.Handler{
		Repo:      devserver.NewRepo(db),
		Responder: devserver.EchoResponder{},
		Logger:    logger,
	})

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("database", zap.String("path", dbPath))
	if err := devserver.Serve(ctx, serveAddr, router, logger); err != nil {
		return fmt.Errorf("dev server: %w", err)
	}
	return nil
}
