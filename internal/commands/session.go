package commands

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/diogo/aicms/internal/models"
	"github.com/diogo/aicms/internal/transcript"
)

// NewSessionCmd creates the session command and its subcommands
func NewSessionCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect stored chat sessions",
		Long: `Inspect the chat transcripts stored per session.

The session is chosen with --session or $AICMS_SESSION.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the transcript of the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSessionShow(deps.withDefaults())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete the transcript of the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSessionClear(deps.withDefaults())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSessionList(deps.withDefaults())
		},
	})

	return cmd
}

// requireSession opens the store of an explicitly selected session
func requireSession(deps *Dependencies) (transcript.Store, error) {
	_, fresh, err := transcript.ResolveSessionID(sessionFlag)
	if err != nil {
		return nil, err
	}
	if fresh {
		return nil, fmt.Errorf("no session selected (use --session or $%s)", transcript.SessionEnv)
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	store, _, err := openSession(deps, cfg)
	return store, err
}

func runSessionShow(deps *Dependencies) error {
	store, err := requireSession(deps)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), storeOpenTimeout)
	defer cancel()

	msgs, err := store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load session %s: %w", store.SessionID(), err)
	}
	if len(msgs) == 0 {
		fmt.Fprintf(deps.Out, "Session %s is empty.\n", store.SessionID())
		return nil
	}

	for _, m := range msgs {
		who := "AI"
		if m.Sender == models.SenderUser {
			who = "You"
		}
		at := time.UnixMilli(m.ID).Format("2006-01-02 15:04")
		fmt.Fprintf(deps.Out, "[%s] %s:\n%s\n\n", at, who, m.Text)
	}
	return nil
}

func runSessionClear(deps *Dependencies) error {
	store, err := requireSession(deps)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), storeOpenTimeout)
	defer cancel()

	if err := store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session %s: %w", store.SessionID(), err)
	}
	fmt.Fprintf(deps.Out, "Session %s cleared.\n", store.SessionID())
	return nil
}

func runSessionList(deps *Dependencies) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeOpenTimeout)
	defer cancel()

	sessions, err := deps.ListSessions(ctx, cfg)
	if errors.Is(err, transcript.ErrListUnsupported) {
		fmt.Fprintf(deps.Out, "The %s backend does not keep sessions between runs.\n", cfg.Transcript.Backend)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Fprintln(deps.Out, "No stored sessions.")
		return nil
	}

	w := tabwriter.NewWriter(deps.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SESSION\tMESSAGES\tUPDATED")
	for _, s := range sessions {
		updated := "-"
		if !s.UpdatedAt.IsZero() {
			updated = s.UpdatedAt.Local().Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", s.ID, s.Messages, updated)
	}
	return w.Flush()
}
