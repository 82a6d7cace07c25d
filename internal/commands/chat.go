package commands

import (
	"github.com/spf13/cobra"

	"github.com/diogo/aicms/internal/tui"
)

// NewChatCmd creates the chat command
func NewChatCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Open the chat view",
		Long: `Open the chat with the AI assistant.

The conversation is stored under the session id, so running
'aicms chat --session <id>' again restores it.

KEYBOARD SHORTCUTS:
  Enter       Send message
  Alt+Enter   New line
  Ctrl+Y      Copy the last reply
  F2          Go to the content grid
  Esc         Quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd, deps, tui.RouteChat)
		},
	}
}
