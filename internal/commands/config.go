package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diogo/aicms/internal/config"
	"github.com/diogo/aicms/internal/render"
)

// NewConfigCmd creates a new config command
func NewConfigCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration file path and the effective settings,
after environment variables and flags are applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(deps.withDefaults())
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(deps.withDefaults())
		},
	})

	return cmd
}

func runConfigShow(deps *Dependencies) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// never print the redis password
	if cfg.Transcript.RedisPassword != "" {
		cfg.Transcript.RedisPassword = "********"
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Out, "Config file: %s\n\n%s\n\n", path, data)
	fmt.Fprintf(deps.Out, "Transcript backends: %s\n", strings.Join(config.AvailableBackends(), ", "))
	fmt.Fprintf(deps.Out, "TUI themes: %s\n", strings.Join(render.TUIThemeNames(), ", "))
	return nil
}

func runConfigInit(deps *Dependencies) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}

	cfg, loadErr := config.LoadConfig()
	if loadErr != nil {
		return fmt.Errorf("refusing to overwrite %s: %w", path, loadErr)
	}
	if err := config.SaveConfig(cfg); err != nil {
		return err
	}
	fmt.Fprintf(deps.Out, "Wrote %s\n", path)
	return nil
}
