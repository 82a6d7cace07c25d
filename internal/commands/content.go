package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/diogo/aicms/internal/api"
	"github.com/diogo/aicms/internal/logging"
	"github.com/diogo/aicms/internal/models"
	"github.com/diogo/aicms/internal/tui"
)

var (
	contentTitle string
	contentText  string
)

// NewContentCmd creates the content command and its subcommands
func NewContentCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Manage CMS content",
		Long: `Manage the CMS content items.

INTERACTIVE MODE (default):
  Run 'aicms content' to open the content grid where you can:
  - Browse the items
  - Read an item in full
  - Create, edit and delete items

KEYBOARD SHORTCUTS (interactive mode):
  ←↑↓→     Move between cards
  Enter    Read the selected item
  n        Create a new item
  e        Edit the selected item
  d        Delete the selected item
  r        Reload
  F1       Go to the chat
  Esc      Quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApp(cmd, deps, tui.RouteContent)
		},
	}

	cmd.AddCommand(NewContentListCmd(deps))
	cmd.AddCommand(NewContentCreateCmd(deps))
	cmd.AddCommand(NewContentUpdateCmd(deps))
	cmd.AddCommand(NewContentDeleteCmd(deps))

	return cmd
}

// NewContentListCmd creates the content list command
func NewContentListCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print all content items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(deps, func(d *Dependencies, client api.ClientInterface) error {
				return runContentList(d, client)
			})
		},
	}
}

// NewContentCreateCmd creates the content create command
func NewContentCreateCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a content item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(deps, func(d *Dependencies, client api.ClientInterface) error {
				return runContentCreate(d, client, models.ContentInput{Title: contentTitle, Text: contentText})
			})
		},
	}

	cmd.Flags().StringVarP(&contentTitle, "title", "t", "", "Title (required)")
	cmd.Flags().StringVarP(&contentText, "text", "x", "", "Text (required)")
	return cmd
}

// NewContentUpdateCmd creates the content update command
func NewContentUpdateCmd(deps *Dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a content item",
		Long: `Update the title and/or text of a content item.
Fields not given keep their current value.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseContentID(args[0])
			if err != nil {
				return err
			}
			patch := contentPatch{}
			if cmd.Flags().Changed("title") {
				patch.title = &contentTitle
			}
			if cmd.Flags().Changed("text") {
				patch.text = &contentText
			}
			return withClient(deps, func(d *Dependencies, client api.ClientInterface) error {
				return runContentUpdate(d, client, id, patch)
			})
		},
	}

	cmd.Flags().StringVarP(&contentTitle, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&contentText, "text", "x", "", "New text")
	return cmd
}

// NewContentDeleteCmd creates the content delete command
func NewContentDeleteCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a content item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseContentID(args[0])
			if err != nil {
				return err
			}
			return withClient(deps, func(d *Dependencies, client api.ClientInterface) error {
				return runContentDelete(d, client, id)
			})
		},
	}
}

// withClient runs fn with the configured client and releases it afterwards
func withClient(deps *Dependencies, fn func(*Dependencies, api.ClientInterface) error) error {
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

	return fn(deps, client)
}

func parseContentID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid content id %q", s)
	}
	return id, nil
}

func runContentList(deps *Dependencies, client api.ClientInterface) error {
	spin := startSpinner("Fetching content")
	cards, err := client.ListContent(context.Background())
	if err != nil {
		spin.stopWithError()
		return fmt.Errorf("failed to list content: %w", err)
	}
	spin.stopWithSuccess(fmt.Sprintf("%d items", len(cards)))

	if len(cards) == 0 {
		fmt.Fprintln(deps.Out, "No content yet.")
		return nil
	}

	textWidth := getTerminalWidth() - 40
	if textWidth < 20 {
		textWidth = 20
	}

	w := tabwriter.NewWriter(deps.Out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tTEXT")
	for _, c := range cards {
		text := strings.Join(strings.Fields(c.Text), " ")
		fmt.Fprintf(w, "%d\t%s\t%s\n", c.ID, truncate(c.Title, 30), truncate(text, textWidth))
	}
	return w.Flush()
}

func runContentCreate(deps *Dependencies, client api.ClientInterface, in models.ContentInput) error {
	card, err := client.CreateContent(context.Background(), in)
	if err != nil {
		return fmt.Errorf("failed to create content: %w", err)
	}
	if card.ID != 0 {
		fmt.Fprintf(deps.Out, "Content created successfully (id %d)\n", card.ID)
	} else {
		fmt.Fprintln(deps.Out, "Content created successfully")
	}
	return nil
}

// contentPatch holds the fields given on the command line
type contentPatch struct {
	title *string
	text  *string
}

func runContentUpdate(deps *Dependencies, client api.ClientInterface, id int64, patch contentPatch) error {
	if patch.title == nil && patch.text == nil {
		return fmt.Errorf("nothing to update (use --title and/or --text)")
	}

	// the endpoint takes both fields, so missing ones come from the current item
	var in models.ContentInput
	if patch.title == nil || patch.text == nil {
		current, err := findContent(client, id)
		if err != nil {
			return err
		}
		in = current.Input()
	}
	if patch.title != nil {
		in.Title = *patch.title
	}
	if patch.text != nil {
		in.Text = *patch.text
	}

	if _, err := client.UpdateContent(context.Background(), id, in); err != nil {
		return fmt.Errorf("failed to update content %d: %w", id, err)
	}
	fmt.Fprintf(deps.Out, "Content updated successfully (id %d)\n", id)
	return nil
}

func runContentDelete(deps *Dependencies, client api.ClientInterface, id int64) error {
	if err := client.DeleteContent(context.Background(), id); err != nil {
		return fmt.Errorf("failed to delete content %d: %w", id, err)
	}
	fmt.Fprintf(deps.Out, "Content deleted successfully (id %d)\n", id)
	return nil
}

// findContent returns the item with id from the full list
func findContent(client api.ClientInterface, id int64) (models.ContentCard, error) {
	cards, err := client.ListContent(context.Background())
	if err != nil {
		return models.ContentCard{}, fmt.Errorf("failed to list content: %w", err)
	}
	for _, c := range cards {
		if c.ID == id {
			return c, nil
		}
	}
	return models.ContentCard{}, fmt.Errorf("content %d not found", id)
}
