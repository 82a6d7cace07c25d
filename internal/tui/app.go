package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/diogo/aicms/internal/api"
	"github.com/diogo/aicms/internal/render"
	"github.com/diogo/aicms/internal/transcript"
)

// Route is a path of the navigation shell
type Route string

const (
	RouteChat    Route = "/"
	RouteContent Route = "/content"
)

// ParseRoute accepts a route path or its short name
func ParseRoute(s string) (Route, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "/", "chat":
		return RouteChat, nil
	case "/content", "content", "cms":
		return RouteContent, nil
	default:
		return "", fmt.Errorf("unknown route %q (want / or /content)", s)
	}
}

// Brand and navigation link labels
const (
	brandLabel   = "AI CMS"
	chatLabel    = "Chat with Ai"
	contentLabel = "Go to Cms"
)

// AppOptions configures the shell and the views it mounts
type AppOptions struct {
	Client          api.ClientInterface
	Store           transcript.Store
	Logger          *zap.Logger
	RenderOptions   render.Options
	CopyToClipboard bool
	Route           Route
}

// AppModel is the navigation shell: a header with links to both views, exactly
// one mounted view and the notification layer
type AppModel struct {
	opts AppOptions

	route   Route
	chat    ChatModel
	content ContentModel
	toasts  Toasts

	// mounts counts remounts; each mounted view is stamped with the current count
	mounts int

	// menuOpen shows the collapsed links on narrow terminals
	menuOpen bool

	width  int
	height int
	ready  bool
}

// NewAppModel creates the shell with the configured route mounted
func NewAppModel(opts AppOptions) AppModel {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Route == "" {
		opts.Route = RouteChat
	}

	m := AppModel{opts: opts}
	m.route = opts.Route
	m.remount()
	return m
}

// Init initializes the mounted view
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(tea.SetWindowTitle(brandLabel), m.viewInit())
}

// remount replaces the view for the current route with a fresh instance
func (m *AppModel) remount() {
	m.mounts++
	switch m.route {
	case RouteContent:
		m.content = NewContentModel(m.opts.Client, m.opts.Logger)
		m.content.mount = m.mounts
	default:
		m.chat = NewChatModel(m.opts.Client, m.opts.Store, ChatOptions{
			Logger:          m.opts.Logger,
			RenderOptions:   m.opts.RenderOptions,
			CopyToClipboard: m.opts.CopyToClipboard,
		})
		m.chat.mount = m.mounts
	}
}

func (m AppModel) viewInit() tea.Cmd {
	if m.route == RouteContent {
		return m.content.Init()
	}
	return m.chat.Init()
}

// navigate mounts the view for route. Navigating to the current route is a no-op.
func (m AppModel) navigate(route Route) (AppModel, tea.Cmd) {
	if route == m.route {
		return m, nil
	}
	m.opts.Logger.Debug("navigate", zap.String("from", string(m.route)), zap.String("to", string(route)))

	m.route = route
	m.remount()
	m = m.resizeView()
	return m, m.viewInit()
}

// Update handles messages and updates the model
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		if !m.narrow() {
			m.menuOpen = false
		}
		return m.resizeView(), nil

	case ToastMsg:
		cmd := m.toasts.Push(msg.Kind, msg.Message)
		return m.resizeView(), cmd

	case toastExpiredMsg:
		m.toasts.Dismiss(msg.id)
		return m.resizeView(), nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "f1":
			return m.navigate(RouteChat)
		case "f2":
			return m.navigate(RouteContent)
		case "ctrl+g":
			if m.narrow() {
				m.menuOpen = !m.menuOpen
				return m.resizeView(), nil
			}
			return m, nil
		}
	}

	if m.foreign(msg) {
		m.opts.Logger.Debug("discarding result for unmounted view", zap.String("type", fmt.Sprintf("%T", msg)))
		return m, nil
	}
	return m.updateView(msg)
}

// foreign reports whether msg belongs to the view that is not mounted
func (m AppModel) foreign(msg tea.Msg) bool {
	switch msg.(type) {
	case transcriptLoadedMsg, chatReplyMsg:
		return m.route != RouteChat
	case reloadContentMsg, contentLoadedMsg, contentCreatedMsg, contentUpdatedMsg, contentDeletedMsg:
		return m.route != RouteContent
	}
	return false
}

func (m AppModel) updateView(msg tea.Msg) (AppModel, tea.Cmd) {
	var cmd tea.Cmd
	if m.route == RouteContent {
		m.content, cmd = m.content.Update(msg)
	} else {
		m.chat, cmd = m.chat.Update(msg)
	}
	return m, cmd
}

// resizeView gives the mounted view the space left by the header and toasts
func (m AppModel) resizeView() AppModel {
	if !m.ready {
		return m
	}
	used := lipgloss.Height(m.renderHeader())
	if m.toasts.Len() > 0 {
		used += lipgloss.Height(m.toasts.View(m.width))
	}
	h := m.height - used
	if h < 1 {
		h = 1
	}

	size := tea.WindowSizeMsg{Width: m.width, Height: h}
	if m.route == RouteContent {
		m.content, _ = m.content.Update(size)
	} else {
		m.chat, _ = m.chat.Update(size)
	}
	return m
}

func (m AppModel) narrow() bool {
	return m.width < wideBreakpoint
}

// renderHeader renders the brand, the links and, when open, the collapsed menu
func (m AppModel) renderHeader() string {
	width := m.width - 2
	if width < 10 {
		width = 10
	}
	brand := brandStyle.Render(brandLabel)

	link := func(label, key string, route Route) string {
		style := navLinkStyle
		if m.route == route {
			style = navActiveStyle
		}
		return style.Render(label) + navKeyStyle.Render(" "+key)
	}

	if !m.narrow() {
		links := link(chatLabel, "f1", RouteChat) + "    " + link(contentLabel, "f2", RouteContent)
		gap := width - 4 - lipgloss.Width(brand) - lipgloss.Width(links)
		if gap < 1 {
			gap = 1
		}
		return headerStyle.Width(width).Render(brand + strings.Repeat(" ", gap) + links)
	}

	toggle := menuToggleStyle.Render("☰") + navKeyStyle.Render(" ctrl+g")
	gap := width - 4 - lipgloss.Width(brand) - lipgloss.Width(toggle)
	if gap < 1 {
		gap = 1
	}
	header := headerStyle.Width(width).Render(brand + strings.Repeat(" ", gap) + toggle)
	if !m.menuOpen {
		return header
	}
	menu := menuPanelStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left,
		link(chatLabel, "f1", RouteChat),
		link(contentLabel, "f2", RouteContent),
	))
	return lipgloss.JoinVertical(lipgloss.Left, header, menu)
}

// View renders the shell
func (m AppModel) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	sections := []string{m.renderHeader()}
	if m.toasts.Len() > 0 {
		sections = append(sections, m.toasts.View(m.width))
	}
	if m.route == RouteContent {
		sections = append(sections, m.content.View())
	} else {
		sections = append(sections, m.chat.View())
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Route returns the mounted route
func (m AppModel) Route() Route { return m.route }

// MenuOpen reports whether the collapsed menu is shown
func (m AppModel) MenuOpen() bool { return m.menuOpen }

// Toasts returns the notification layer
func (m AppModel) Toasts() Toasts { return m.toasts }

// Chat returns the chat view; only meaningful while RouteChat is mounted
func (m AppModel) Chat() ChatModel { return m.chat }

// Content returns the content view; only meaningful while RouteContent is mounted
func (m AppModel) Content() ContentModel { return m.content }

// RunApp starts the TUI
func RunApp(opts AppOptions) error {
	p := tea.NewProgram(
		NewAppModel(opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
