package tui

import (
	"context"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/diogo/aicms/internal/api"
	"github.com/diogo/aicms/internal/models"
	"github.com/diogo/aicms/internal/render"
	"github.com/diogo/aicms/internal/transcript"
)

// storeTimeout bounds a single transcript load or save
const storeTimeout = 3 * time.Second

// Message types for the chat view. mount is the instance that issued the command.
type (
	transcriptLoadedMsg struct {
		mount    int
		messages []models.ChatMessage
		err      error
	}
	chatReplyMsg struct {
		mount int
		text  string
		err   error
	}
)

// ChatModel is the chat view: a transcript of user and bot messages and an input box
type ChatModel struct {
	client     api.ClientInterface
	store      transcript.Store
	logger     *zap.Logger
	renderOpts render.Options

	// copyFn writes to the system clipboard
	copyFn   func(string) error
	autoCopy bool

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// mount is set by AppModel on every remount; results of another mount are dropped
	mount int

	// State
	messages []models.ChatMessage
	loaded   bool
	busy     bool
	ready    bool

	width  int
	height int
}

// ChatOptions configures a ChatModel
type ChatOptions struct {
	Logger          *zap.Logger
	RenderOptions   render.Options
	CopyToClipboard bool
}

// NewChatModel creates a chat view backed by client and store
func NewChatModel(client api.ClientInterface, store transcript.Store, opts ChatOptions) ChatModel {
	ta := textarea.New()
	ta.Placeholder = "Ask me anything..."
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.KeyMap.InsertNewline.SetKeys("alt+enter", "ctrl+j")
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	renderOpts := opts.RenderOptions
	if renderOpts.Style == "" {
		renderOpts = render.DefaultOptions()
	}

	return ChatModel{
		client:     client,
		store:      store,
		logger:     logger,
		renderOpts: renderOpts,
		copyFn:     clipboard.WriteAll,
		autoCopy:   opts.CopyToClipboard,
		textarea:   ta,
		spinner:    s,
		messages:   []models.ChatMessage{},
	}
}

// Init loads the stored transcript
func (m ChatModel) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.loadTranscript())
}

func (m ChatModel) loadTranscript() tea.Cmd {
	store, mount := m.store, m.mount
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		msgs, err := store.Load(ctx)
		return transcriptLoadedMsg{mount: mount, messages: msgs, err: err}
	}
}

// Update handles messages and updates the model
func (m ChatModel) Update(msg tea.Msg) (ChatModel, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)

	case transcriptLoadedMsg:
		if msg.mount != m.mount {
			return m, nil
		}
		m.loaded = true
		if msg.err != nil {
			m.logger.Warn("transcript load failed", zap.String("session", m.store.SessionID()), zap.Error(msg.err))
			cmds = append(cmds, notify(ToastError, "Could not restore the chat history"))
		}
		m.messages = msg.messages
		if m.messages == nil {
			m.messages = []models.ChatMessage{}
		}
		m.refreshViewport()

	case chatReplyMsg:
		// only a loaded transcript of this mount may be appended to and saved
		if msg.mount != m.mount || !m.loaded {
			m.logger.Debug("dropping chat reply of another mount", zap.Int("mount", msg.mount))
			return m, nil
		}
		m.busy = false
		if msg.err != nil {
			m.logger.Warn("chat request failed", zap.Error(msg.err))
			return m, notify(ToastError, toastText(msg.err))
		}
		m.messages = append(m.messages, models.NewChatMessage(msg.text, models.SenderBot, m.messages))
		cmds = append(cmds, m.persist())
		if m.autoCopy {
			cmds = append(cmds, m.copyLastReply(false))
		}
		m.refreshViewport()

	case spinner.TickMsg:
		if m.busy {
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, tea.Quit

		case "enter":
			return m.submit()

		case "ctrl+y":
			return m, m.copyLastReply(true)
		}

		if !m.busy {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit sends the input as a user message. Blank input is ignored entirely,
// as is input typed before the transcript finished loading.
func (m ChatModel) submit() (ChatModel, tea.Cmd) {
	if m.busy || !m.loaded {
		return m, nil
	}
	text := m.textarea.Value()
	if strings.TrimSpace(text) == "" {
		return m, nil
	}

	m.messages = append(m.messages, models.NewChatMessage(text, models.SenderUser, m.messages))
	saveCmd := m.persist()
	m.textarea.Reset()
	m.busy = true
	m.refreshViewport()

	return m, tea.Batch(saveCmd, m.sendMessage(text), m.spinner.Tick)
}

// sendMessage creates a command to send the text to the chat endpoint
func (m ChatModel) sendMessage(text string) tea.Cmd {
	client, mount := m.client, m.mount
	return func() tea.Msg {
		reply, err := client.SendChat(context.Background(), text)
		return chatReplyMsg{mount: mount, text: reply, err: err}
	}
}

// persist saves the whole transcript. It runs synchronously so saves keep
// their order; a failure is reported as a notification.
func (m ChatModel) persist() tea.Cmd {
	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()

	if err := m.store.Save(ctx, m.messages); err != nil {
		m.logger.Warn("transcript save failed", zap.String("session", m.store.SessionID()), zap.Error(err))
		return notify(ToastError, "Could not save the chat history")
	}
	return nil
}

// copyLastReply copies the latest bot message; announce raises a toast on success
func (m ChatModel) copyLastReply(announce bool) tea.Cmd {
	var last *models.ChatMessage
	for i := len(m.messages) - 1; i >= 0; i-- {
		if m.messages[i].Sender == models.SenderBot {
			last = &m.messages[i]
			break
		}
	}
	if last == nil {
		if announce {
			return notify(ToastInfo, "Nothing to copy yet")
		}
		return nil
	}

	if err := m.copyFn(last.Text); err != nil {
		m.logger.Debug("clipboard write failed", zap.Error(err))
		return notify(ToastError, "Clipboard unavailable")
	}
	if announce {
		return notify(ToastSuccess, "Reply copied to clipboard")
	}
	return nil
}

func (m *ChatModel) resize(width, height int) {
	m.width = width
	m.height = height

	inputHeight := 6  // Input panel with border
	statusHeight := 1 // Status bar
	padding := 2      // Messages panel border

	vpHeight := height - inputHeight - statusHeight - padding
	if vpHeight < 3 {
		vpHeight = 3
	}
	contentWidth := width - 4

	if !m.ready {
		m.viewport = viewport.New(contentWidth, vpHeight)
		m.ready = true
	} else {
		m.viewport.Width = contentWidth
		m.viewport.Height = vpHeight
	}
	m.textarea.SetWidth(contentWidth - 4)
	m.refreshViewport()
}

// refreshViewport re-renders the transcript into the viewport
func (m *ChatModel) refreshViewport() {
	if !m.ready {
		return
	}

	bubbleWidth := m.viewport.Width * 3 / 4
	if bubbleWidth < 20 {
		bubbleWidth = m.viewport.Width
	}

	var content strings.Builder
	for i, msg := range m.messages {
		if i > 0 {
			content.WriteString("\n")
		}

		if msg.IsUser() {
			label := userLabelStyle.Render("You")
			bubble := userBubbleStyle.MaxWidth(bubbleWidth).Render(wrapText(msg.Text, bubbleWidth-4))
			block := lipgloss.JoinVertical(lipgloss.Right, label, bubble)
			content.WriteString(lipgloss.PlaceHorizontal(m.viewport.Width, lipgloss.Right, block))
		} else {
			label := botLabelStyle.Render("✦ AI")
			rendered := render.MarkdownOrPlain(msg.Text, m.renderOpts.WithWidth(bubbleWidth-4))
			bubble := botBubbleStyle.MaxWidth(bubbleWidth).Render(rendered)
			content.WriteString(lipgloss.JoinVertical(lipgloss.Left, label, bubble))
		}
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
	m.viewport.GotoBottom()
}

// View renders the chat view
func (m ChatModel) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	contentWidth := m.width - 4

	var messagesContent string
	switch {
	case !m.loaded:
		messagesContent = loadingStyle.Render("Restoring conversation...")
	case len(m.messages) == 0:
		messagesContent = m.renderWelcome()
	default:
		messagesContent = m.viewport.View()
	}

	messagesPanel := messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messagesContent)

	var inputContent string
	if m.busy {
		inputContent = m.spinner.View() + loadingStyle.Render(" Sending...")
	} else {
		inputContent = lipgloss.JoinVertical(lipgloss.Left,
			inputLabelStyle.Render("Message"),
			m.textarea.View(),
		)
	}
	inputPanel := inputPanelStyle.Width(contentWidth).Render(inputContent)

	statusBar := renderStatusBar(contentWidth, []shortcut{
		{"Enter", "Send"},
		{"Alt+Enter", "Newline"},
		{"Ctrl+Y", "Copy reply"},
		{"Esc", "Quit"},
	})

	return lipgloss.JoinVertical(lipgloss.Left, messagesPanel, inputPanel, statusBar)
}

// renderWelcome renders the empty-state greeting
func (m ChatModel) renderWelcome() string {
	width := m.viewport.Width

	content := lipgloss.JoinVertical(lipgloss.Center,
		welcomeIconStyle.Render("✦"),
		"",
		welcomeTitleStyle.Render("Hello, I'm an AI"),
		welcomeTextStyle.Render("You can ask me anything you want."),
	)

	topPadding := (m.viewport.Height - lipgloss.Height(content)) / 2
	if topPadding < 0 {
		topPadding = 0
	}
	return strings.Repeat("\n", topPadding) + lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}

// Messages returns a copy of the transcript shown by the view
func (m ChatModel) Messages() []models.ChatMessage {
	out := make([]models.ChatMessage, len(m.messages))
	copy(out, m.messages)
	return out
}

// Busy reports whether a chat request is in flight
func (m ChatModel) Busy() bool {
	return m.busy
}

// Input returns the current input text
func (m ChatModel) Input() string {
	return m.textarea.Value()
}

// SetInput replaces the input text
func (m *ChatModel) SetInput(text string) {
	m.textarea.SetValue(text)
}
