package commands

import (
	"context"
	"io"
	"os"

	"github.com/diogo/aicms/internal/api"
	"github.com/diogo/aicms/internal/config"
	"github.com/diogo/aicms/internal/transcript"
	"github.com/diogo/aicms/internal/tui"
)

// TUIInterface defines the methods required from the TUI package.
type TUIInterface interface {
	RunApp(opts tui.AppOptions) error
}

// Dependencies holds the external dependencies for the commands.
// This allows for dependency injection and easier testing.
type Dependencies struct {
	// Client is the CMS API client. When nil a client is built from the config.
	Client api.ClientInterface

	// TUI is the terminal user interface.
	TUI TUIInterface

	// OpenStore opens the transcript store of a session.
	OpenStore func(ctx context.Context, cfg config.Config, sessionID string) (transcript.Store, error)

	// ListSessions enumerates stored sessions.
	ListSessions func(ctx context.Context, cfg config.Config) ([]transcript.SessionInfo, error)

	// Out receives command output.
	Out io.Writer
}

// DefaultTUI is the production implementation of TUIInterface.
type DefaultTUI struct{}

func (d *DefaultTUI) RunApp(opts tui.AppOptions) error {
	return tui.RunApp(opts)
}

// NewDependencies creates a new Dependencies struct with default implementations.
func NewDependencies() *Dependencies {
	return &Dependencies{
		TUI:          &DefaultTUI{},
		OpenStore:    transcript.Open,
		ListSessions: transcript.ListSessions,
		Out:          os.Stdout,
	}
}

// withDefaults fills the unset fields of deps
func (d *Dependencies) withDefaults() *Dependencies {
	out := NewDependencies()
	if d == nil {
		return out
	}
	if d.Client != nil {
		out.Client = d.Client
	}
	if d.TUI != nil {
		out.TUI = d.TUI
	}
	if d.OpenStore != nil {
		out.OpenStore = d.OpenStore
	}
	if d.ListSessions != nil {
		out.ListSessions = d.ListSessions
	}
	if d.Out != nil {
		out.Out = d.Out
	}
	return out
}
