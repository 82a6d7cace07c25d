// Package commands provides CLI commands for aicms.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/diogo/aicms/internal/tui"
)

var (
	// Global flags
	baseURLFlag string
	sessionFlag string
	verboseFlag bool

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// NewRootCmd creates the aicms command tree
func NewRootCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aicms",
		Short: "Terminal client for the AI CMS",
		Long: `aicms is a terminal client for the AI CMS: a chat with the AI assistant
and a content manager for the CMS items, behind one navigation shell.

Examples:
  aicms                                Open the chat
  aicms content                        Open the content grid
  aicms content list                   Print the content items
  aicms content create -t Title -x Body
  aicms --session work                 Resume the "work" chat session
  aicms serve                          Run a local development server`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if v, _ := cmd.Flags().GetBool("version"); v {
				fmt.Fprintf(cmd.OutOrStdout(), "aicms %s (built %s)\n", Version, BuildTime)
				return nil
			}
			return runApp(cmd, deps, tui.RouteChat)
		},
	}

	cmd.PersistentFlags().StringVar(&baseURLFlag, "base-url", "", "API origin (overrides config and AICMS_BASE_URL)")
	cmd.PersistentFlags().StringVarP(&sessionFlag, "session", "s", "", "Chat session id (default: $AICMS_SESSION or a new session)")
	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Write debug logs")
	cmd.Flags().Bool("version", false, "Show version and exit")

	cmd.AddCommand(NewChatCmd(deps))
	cmd.AddCommand(NewContentCmd(deps))
	cmd.AddCommand(NewSessionCmd(deps))
	cmd.AddCommand(NewConfigCmd(deps))
	cmd.AddCommand(NewServeCmd(deps))

	return cmd
}

// rootCmd represents the base command
var rootCmd = NewRootCmd(nil)

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, tui.FormatError(err))
		os.Exit(1)
	}
}
