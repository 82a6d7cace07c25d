// Package tui provides the terminal user interface for aicms.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/aicms/internal/errors"
	"github.com/diogo/aicms/internal/render"
)

// Color variables (updated from theme)
var (
	colorSurface lipgloss.Color
	colorBorder  lipgloss.Color

	colorPrimary   lipgloss.Color
	colorSecondary lipgloss.Color
	colorAccent    lipgloss.Color
	colorSuccess   lipgloss.Color
	colorWarning   lipgloss.Color
	colorError     lipgloss.Color

	colorText    lipgloss.Color
	colorTextDim lipgloss.Color
)

// Style variables (rebuilt when theme changes)
var (
	// Navigation header
	headerStyle     lipgloss.Style
	brandStyle      lipgloss.Style
	navLinkStyle    lipgloss.Style
	navActiveStyle  lipgloss.Style
	navKeyStyle     lipgloss.Style
	menuToggleStyle lipgloss.Style
	menuPanelStyle  lipgloss.Style

	hintStyle lipgloss.Style

	// Chat
	messagesAreaStyle lipgloss.Style
	userBubbleStyle   lipgloss.Style
	userLabelStyle    lipgloss.Style
	botBubbleStyle    lipgloss.Style
	botLabelStyle     lipgloss.Style
	inputPanelStyle   lipgloss.Style
	inputLabelStyle   lipgloss.Style
	loadingStyle      lipgloss.Style

	// Welcome / empty states
	welcomeTitleStyle lipgloss.Style
	welcomeTextStyle  lipgloss.Style
	welcomeIconStyle  lipgloss.Style

	// Content grid
	cardStyle         lipgloss.Style
	cardSelectedStyle lipgloss.Style
	cardTitleStyle    lipgloss.Style
	cardTextStyle     lipgloss.Style
	cardMoreStyle     lipgloss.Style

	// Modals and forms
	modalStyle          lipgloss.Style
	modalTitleStyle     lipgloss.Style
	formLabelStyle      lipgloss.Style
	formLabelFocusStyle lipgloss.Style
	dangerStyle         lipgloss.Style

	// Toasts
	toastInfoStyle    lipgloss.Style
	toastSuccessStyle lipgloss.Style
	toastErrorStyle   lipgloss.Style

	// Status bar styles
	statusBarStyle  lipgloss.Style
	statusKeyStyle  lipgloss.Style
	statusDescStyle lipgloss.Style

	errorStyle lipgloss.Style
)

// init loads the default theme on package initialization
func init() {
	UpdateTheme()
}

// UpdateTheme refreshes all styles based on the current TUI theme
func UpdateTheme() {
	theme := render.GetTUITheme()

	colorSurface = theme.Surface
	colorBorder = theme.Border
	colorPrimary = theme.Primary
	colorSecondary = theme.Secondary
	colorAccent = theme.Accent
	colorSuccess = theme.Success
	colorWarning = theme.Warning
	colorError = theme.Error
	colorText = theme.Text
	colorTextDim = theme.TextDim

	rebuildStyles()
}

// rebuildStyles creates all lipgloss styles with current color values
func rebuildStyles() {
	headerStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 2)

	brandStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	navLinkStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	navActiveStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Underline(true)

	navKeyStyle = lipgloss.NewStyle().
		Foreground(colorBorder)

	menuToggleStyle = lipgloss.NewStyle().
		Foreground(colorText).
		Bold(true)

	menuPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorBorder).
		BorderTop(false).
		Padding(0, 2)

	hintStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Italic(true)

	messagesAreaStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	userBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorSecondary).
		Foreground(colorText).
		Padding(0, 1)

	userLabelStyle = lipgloss.NewStyle().
		Foreground(colorSecondary).
		Bold(true)

	botBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Foreground(colorText).
		Padding(0, 1)

	botLabelStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	inputPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	inputLabelStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	loadingStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	welcomeTitleStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	welcomeTextStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	welcomeIconStyle = lipgloss.NewStyle().
		Foreground(colorAccent)

	cardStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	cardSelectedStyle = cardStyle.
		BorderForeground(colorAccent)

	cardTitleStyle = lipgloss.NewStyle().
		Foreground(colorText).
		Bold(true)

	cardTextStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	cardMoreStyle = lipgloss.NewStyle().
		Foreground(colorSecondary)

	modalStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(colorPrimary).
		Background(colorSurface).
		Padding(1, 2)

	modalTitleStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		MarginBottom(1)

	formLabelStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	formLabelFocusStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	dangerStyle = lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true)

	toastBase := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		Padding(0, 1)

	toastInfoStyle = toastBase.
		BorderForeground(colorPrimary).
		Foreground(colorText)

	toastSuccessStyle = toastBase.
		BorderForeground(colorSuccess).
		Foreground(colorSuccess)

	toastErrorStyle = toastBase.
		BorderForeground(colorError).
		Foreground(colorError)

	statusBarStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	statusKeyStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Bold(true)

	statusDescStyle = lipgloss.NewStyle().
		Foreground(colorBorder)

	errorStyle = lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true)
}

// shortcut is one key hint in a status bar
type shortcut struct {
	key  string
	desc string
}

// renderStatusBar renders a centered line of key hints
func renderStatusBar(width int, shortcuts []shortcut) string {
	items := make([]string, 0, len(shortcuts))
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}
	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}

// FormatError returns a styled error message with additional context
// extracted from the structured error types.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	var sb strings.Builder
	sb.WriteString(errorStyle.Render(fmt.Sprintf("✗ %v", err)))

	if status := errors.GetHTTPStatus(err); status > 0 {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  HTTP Status: %d", status)))
	}

	if endpoint := errors.GetEndpoint(err); endpoint != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Endpoint: %s", endpoint)))
	}

	if hint := errorHint(err); hint != "" {
		sb.WriteString(dimStyle.Render("\n  Hint: " + hint))
	}

	return sb.String()
}

// errorHint suggests a next step for the error's kind
func errorHint(err error) string {
	switch errors.KindOf(err) {
	case errors.KindTimeout:
		return "Request timed out. Try again or raise timeout_seconds"
	case errors.KindNetwork:
		return "Check your connection and the configured base_url"
	case errors.KindServer:
		if status := errors.GetHTTPStatus(err); status == 404 {
			return "The item may have been removed elsewhere. Press r to reload"
		}
		return "The server rejected the request. Try again later"
	case errors.KindParse:
		return "The server sent an unexpected response"
	default:
		return ""
	}
}

// toastText returns the one-line notification text for err
func toastText(err error) string {
	switch errors.KindOf(err) {
	case errors.KindServer:
		return fmt.Sprintf("Request failed (%d)", errors.GetHTTPStatus(err))
	case errors.KindTimeout:
		return "Request timed out"
	case errors.KindNetwork:
		return "Network error: server unreachable"
	case errors.KindParse:
		return "Unexpected response from server"
	default:
		return err.Error()
	}
}

// PrintError prints a styled error message.
func PrintError(err error) {
	if err == nil {
		return
	}
	fmt.Println(FormatError(err))
}
