package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/diogo/aicms/internal/api"
	apierrors "github.com/diogo/aicms/internal/errors"
	"github.com/diogo/aicms/internal/models"
)

// contentModal is the modal workflow open over the grid. Only one can be open.
type contentModal int

const (
	modalNone contentModal = iota
	modalRead
	modalEdit
	modalDelete
	modalCreate
)

func (m contentModal) String() string {
	switch m {
	case modalRead:
		return "read"
	case modalEdit:
		return "edit"
	case modalDelete:
		return "delete"
	case modalCreate:
		return "create"
	default:
		return "none"
	}
}

// Form field indices
const (
	fieldTitle = iota
	fieldText
	fieldCount
)

// Grid layout
const (
	wideColumns      = 3
	narrowColumns    = 1
	wideBreakpoint   = 80
	cardTextLines    = 3
	cardHeight       = cardTextLines + 4 // title, "Read more..", two border rows
	maxTitleLength   = 200
	maxContentLength = 10000
)

// Notification texts
const (
	msgCreated = "Content created successfully"
	msgUpdated = "Content updated successfully"
	msgDeleted = "Content deleted successfully"
)

// Message types for the content view. mount is the instance that issued the command.
type (
	contentLoadedMsg struct {
		mount int
		seq   int
		cards []models.ContentCard
		err   error
	}
	contentCreatedMsg struct {
		mount int
		card  models.ContentCard
		err   error
	}
	contentUpdatedMsg struct {
		mount int
		id    int64
		input models.ContentInput
		err   error
	}
	contentDeletedMsg struct {
		mount int
		id    int64
		err   error
	}
)

// ContentModel is the content grid view with its read, edit, delete and create workflows
type ContentModel struct {
	client api.ClientInterface
	logger *zap.Logger

	// mount is set by AppModel on every remount; results of another mount are dropped
	mount int

	// Data
	cards    []models.ContentCard
	status   models.FetchStatus
	fetchErr error
	fetchSeq int

	// Navigation
	cursor int
	modal  contentModal
	target models.ContentCard

	// Form inputs for create/edit
	titleInput textinput.Model
	textArea   textarea.Model
	formFocus  int

	// busy disables submission while a mutation is in flight
	busy    bool
	spinner spinner.Model

	width  int
	height int
	ready  bool
}

// NewContentModel creates the content grid view
func NewContentModel(client api.ClientInterface, logger *zap.Logger) ContentModel {
	ti := textinput.New()
	ti.Placeholder = "Title"
	ti.CharLimit = maxTitleLength
	ti.Width = 50

	ta := textarea.New()
	ta.Placeholder = "Text"
	ta.CharLimit = maxContentLength
	ta.ShowLineNumbers = false
	ta.SetWidth(50)
	ta.SetHeight(6)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = loadingStyle

	if logger == nil {
		logger = zap.NewNop()
	}

	return ContentModel{
		client:     client,
		logger:     logger,
		cards:      []models.ContentCard{},
		status:     models.FetchIdle,
		titleInput: ti,
		textArea:   ta,
		spinner:    s,
	}
}

// Init starts the initial fetch
func (m ContentModel) Init() tea.Cmd {
	return func() tea.Msg { return reloadContentMsg{} }
}

// reloadContentMsg asks the view to fetch the collection again
type reloadContentMsg struct{}

// fetch marks the view loading and returns the list command.
// Results of older fetches are discarded by sequence number.
func (m *ContentModel) fetch() tea.Cmd {
	m.fetchSeq++
	m.status = models.FetchLoading
	seq, mount := m.fetchSeq, m.mount
	client := m.client
	return tea.Batch(func() tea.Msg {
		cards, err := client.ListContent(context.Background())
		return contentLoadedMsg{mount: mount, seq: seq, cards: cards, err: err}
	}, m.spinner.Tick)
}

// Update handles messages and updates the model
func (m ContentModel) Update(msg tea.Msg) (ContentModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeForm()
		return m, nil

	case reloadContentMsg:
		return m, m.fetch()

	case contentLoadedMsg:
		if msg.mount != m.mount || msg.seq != m.fetchSeq {
			return m, nil
		}
		if msg.err != nil {
			m.status = models.FetchFailed
			m.fetchErr = msg.err
			m.logger.Warn("content fetch failed", zap.Error(msg.err))
			return m, notify(ToastError, toastText(msg.err))
		}
		m.cards = msg.cards
		if m.cards == nil {
			m.cards = []models.ContentCard{}
		}
		m.fetchErr = nil
		m.status = models.StatusForCount(len(m.cards))
		m.clampCursor()
		return m, nil

	case contentCreatedMsg:
		if msg.mount != m.mount {
			return m, nil
		}
		m.busy = false
		if msg.err != nil {
			m.logger.Warn("content create failed", zap.Error(msg.err))
			return m, notify(ToastError, toastText(msg.err))
		}
		if m.modal == modalCreate {
			m.closeModal()
		}
		// the list is re-fetched to pick up the server-assigned id
		return m, tea.Batch(notify(ToastSuccess, msgCreated), m.fetch())

	case contentUpdatedMsg:
		if msg.mount != m.mount {
			return m, nil
		}
		m.busy = false
		if msg.err != nil {
			m.logger.Warn("content update failed", zap.Int64("id", msg.id), zap.Error(msg.err))
			return m, notify(ToastError, toastText(msg.err))
		}
		for i := range m.cards {
			if m.cards[i].ID == msg.id {
				m.cards[i] = m.cards[i].Apply(msg.input)
				break
			}
		}
		if m.modal == modalEdit && m.target.ID == msg.id {
			m.closeModal()
		}
		return m, notify(ToastSuccess, msgUpdated)

	case contentDeletedMsg:
		if msg.mount != m.mount {
			return m, nil
		}
		m.busy = false
		if msg.err != nil {
			m.logger.Warn("content delete failed", zap.Int64("id", msg.id), zap.Error(msg.err))
			return m, notify(ToastError, toastText(msg.err))
		}
		m.cards = removeCard(m.cards, msg.id)
		if m.status.Loaded() {
			m.status = models.StatusForCount(len(m.cards))
		}
		m.clampCursor()
		if m.target.ID == msg.id {
			m.closeModal()
		}
		return m, notify(ToastSuccess, msgDeleted)

	case spinner.TickMsg:
		if m.busy || m.status == models.FetchLoading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		switch m.modal {
		case modalRead:
			return m.updateRead(msg)
		case modalEdit, modalCreate:
			return m.updateForm(msg)
		case modalDelete:
			return m.updateDelete(msg)
		default:
			return m.updateGrid(msg)
		}
	}

	return m, nil
}

// updateGrid handles keys while no modal is open
func (m ContentModel) updateGrid(msg tea.KeyMsg) (ContentModel, tea.Cmd) {
	cols := m.columns()

	switch msg.String() {
	case "esc", "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor-cols >= 0 {
			m.cursor -= cols
		}
	case "down", "j":
		if m.cursor+cols < len(m.cards) {
			m.cursor += cols
		}
	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right", "l":
		if m.cursor < len(m.cards)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		if len(m.cards) > 0 {
			m.cursor = len(m.cards) - 1
		}
	case "r":
		return m, m.fetch()
	case "n":
		return m.openForm(modalCreate, models.ContentCard{})
	case "enter":
		if card, ok := m.selected(); ok {
			m.modal = modalRead
			m.target = card
		}
	case "e":
		if card, ok := m.selected(); ok {
			return m.openForm(modalEdit, card)
		}
	case "d":
		if card, ok := m.selected(); ok {
			m.modal = modalDelete
			m.target = card
		}
	}
	return m, nil
}

// updateRead handles keys in the read-only detail modal
func (m ContentModel) updateRead(msg tea.KeyMsg) (ContentModel, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "q":
		m.closeModal()
	case "e":
		return m.openForm(modalEdit, m.target)
	case "d":
		m.modal = modalDelete
	}
	return m, nil
}

// updateDelete handles keys in the delete confirmation modal
func (m ContentModel) updateDelete(msg tea.KeyMsg) (ContentModel, tea.Cmd) {
	switch msg.String() {
	case "esc", "n":
		if !m.busy {
			m.closeModal()
		}
	case "y", "enter":
		if m.busy {
			return m, nil
		}
		m.busy = true
		id := m.target.ID
		client := m.client
		mount := m.mount
		return m, tea.Batch(func() tea.Msg {
			return contentDeletedMsg{mount: mount, id: id, err: client.DeleteContent(context.Background(), id)}
		}, m.spinner.Tick)
	}
	return m, nil
}

// updateForm handles keys in the create and edit forms
func (m ContentModel) updateForm(msg tea.KeyMsg) (ContentModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if !m.busy {
			m.closeModal()
		}
		return m, nil
	case "tab", "shift+tab":
		m.setFormFocus((m.formFocus + 1) % fieldCount)
		return m, textinput.Blink
	case "enter":
		if m.formFocus == fieldTitle {
			m.setFormFocus(fieldText)
			return m, textarea.Blink
		}
	case "ctrl+s":
		return m.submitForm()
	}

	if m.busy {
		return m, nil
	}

	var cmd tea.Cmd
	if m.formFocus == fieldTitle {
		m.titleInput, cmd = m.titleInput.Update(msg)
	} else {
		m.textArea, cmd = m.textArea.Update(msg)
	}
	return m, cmd
}

// submitForm validates the form and sends the create or update request
func (m ContentModel) submitForm() (ContentModel, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	in := models.ContentInput{Title: m.titleInput.Value(), Text: m.textArea.Value()}
	if field := in.MissingField(); field != "" {
		err := apierrors.NewRequiredFieldError(field)
		m.logger.Debug("content form rejected", zap.Error(err))
		if field == "title" {
			m.setFormFocus(fieldTitle)
		} else {
			m.setFormFocus(fieldText)
		}
		return m, notify(ToastError, requiredFieldText(field))
	}

	m.busy = true
	client, mount := m.client, m.mount

	if m.modal == modalCreate {
		return m, tea.Batch(func() tea.Msg {
			card, err := client.CreateContent(context.Background(), in)
			return contentCreatedMsg{mount: mount, card: card, err: err}
		}, m.spinner.Tick)
	}

	id := m.target.ID
	return m, tea.Batch(func() tea.Msg {
		_, err := client.UpdateContent(context.Background(), id, in)
		return contentUpdatedMsg{mount: mount, id: id, input: in, err: err}
	}, m.spinner.Tick)
}

func requiredFieldText(field string) string {
	if field == "" {
		return ""
	}
	return strings.ToUpper(field[:1]) + field[1:] + " is required"
}

// openForm opens the create or edit modal, pre-filled from card
func (m ContentModel) openForm(modal contentModal, card models.ContentCard) (ContentModel, tea.Cmd) {
	m.modal = modal
	m.target = card
	m.titleInput.SetValue(card.Title)
	m.textArea.SetValue(card.Text)
	m.setFormFocus(fieldTitle)
	return m, textinput.Blink
}

func (m *ContentModel) setFormFocus(field int) {
	m.formFocus = field
	if field == fieldTitle {
		m.titleInput.Focus()
		m.textArea.Blur()
	} else {
		m.titleInput.Blur()
		m.textArea.Focus()
	}
}

func (m *ContentModel) closeModal() {
	m.modal = modalNone
	m.target = models.ContentCard{}
	m.titleInput.Blur()
	m.textArea.Blur()
}

func (m *ContentModel) resizeForm() {
	w := m.modalWidth() - 8
	if w < 20 {
		w = 20
	}
	m.titleInput.Width = w
	m.textArea.SetWidth(w)
}

func (m ContentModel) selected() (models.ContentCard, bool) {
	if m.cursor < 0 || m.cursor >= len(m.cards) {
		return models.ContentCard{}, false
	}
	return m.cards[m.cursor], true
}

func (m *ContentModel) clampCursor() {
	if m.cursor >= len(m.cards) {
		m.cursor = len(m.cards) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// removeCard returns cards without the entry matching id
func removeCard(cards []models.ContentCard, id int64) []models.ContentCard {
	out := make([]models.ContentCard, 0, len(cards))
	for _, c := range cards {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}

func (m ContentModel) columns() int {
	if m.width >= wideBreakpoint {
		return wideColumns
	}
	return narrowColumns
}

func (m ContentModel) modalWidth() int {
	w := m.width - 8
	if w > 80 {
		w = 80
	}
	if w < 24 {
		w = 24
	}
	return w
}

// View renders the content view
func (m ContentModel) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	contentWidth := m.width - 4
	bodyHeight := m.height - 2 // title line and status bar

	title := lipgloss.JoinHorizontal(lipgloss.Center,
		brandStyle.Render("Content"),
		hintStyle.Render(fmt.Sprintf("  %d items", len(m.cards))),
	)
	if m.status == models.FetchLoading && len(m.cards) > 0 {
		title += "  " + m.spinner.View()
	}

	var body string
	switch m.modal {
	case modalRead:
		body = m.renderRead()
	case modalEdit, modalCreate:
		body = m.renderForm()
	case modalDelete:
		body = m.renderDelete()
	default:
		body = m.renderGrid(contentWidth, bodyHeight)
	}
	if m.modal != modalNone {
		body = lipgloss.Place(contentWidth, bodyHeight, lipgloss.Center, lipgloss.Center, body)
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, body, m.renderStatusBar(contentWidth))
}

// renderGrid renders the cards, or the empty, loading or failed state
func (m ContentModel) renderGrid(width, height int) string {
	if len(m.cards) == 0 {
		var msg string
		switch m.status {
		case models.FetchLoadedEmpty:
			msg = lipgloss.JoinVertical(lipgloss.Center,
				welcomeTitleStyle.Render("No content yet"),
				welcomeTextStyle.Render("Press n to create the first item."),
			)
		case models.FetchFailed:
			msg = lipgloss.JoinVertical(lipgloss.Center,
				errorStyle.Render("Could not load content"),
				welcomeTextStyle.Render(toastText(m.fetchErr)),
				welcomeTextStyle.Render("Press r to retry."),
			)
		default:
			msg = m.spinner.View() + loadingStyle.Render(" Loading content...")
		}
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
	}

	cols := m.columns()
	gap := 1
	cardWidth := (width - gap*(cols-1)) / cols
	if cardWidth < 16 {
		cardWidth = 16
	}

	visibleRows := height / cardHeight
	if visibleRows < 1 {
		visibleRows = 1
	}
	cursorRow := m.cursor / cols
	firstRow := 0
	if cursorRow >= visibleRows {
		firstRow = cursorRow - visibleRows + 1
	}

	var rows []string
	for row := firstRow; row < firstRow+visibleRows; row++ {
		start := row * cols
		if start >= len(m.cards) {
			break
		}
		end := start + cols
		if end > len(m.cards) {
			end = len(m.cards)
		}

		var cells []string
		for i := start; i < end; i++ {
			if i > start {
				cells = append(cells, strings.Repeat(" ", gap))
			}
			cells = append(cells, renderCard(m.cards[i], cardWidth, i == m.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderCard renders a card with its title and a clamped excerpt
func renderCard(card models.ContentCard, width int, selected bool) string {
	inner := width - 4 // border and padding
	if inner < 8 {
		inner = 8
	}

	lines := []string{cardTitleStyle.Render(truncate(card.Title, inner))}
	for _, l := range clampLines(card.Text, inner, cardTextLines) {
		lines = append(lines, cardTextStyle.Render(l))
	}
	lines = append(lines, cardMoreStyle.Render("Read more.."))

	style := cardStyle
	if selected {
		style = cardSelectedStyle
	}
	return style.Width(width - 2).Render(strings.Join(lines, "\n"))
}

func (m ContentModel) renderRead() string {
	w := m.modalWidth()
	content := lipgloss.JoinVertical(lipgloss.Left,
		modalTitleStyle.Render(wrapText(m.target.Title, w-6)),
		lipgloss.NewStyle().Foreground(colorText).Render(wrapText(m.target.Text, w-6)),
		"",
		hintStyle.Render("esc close • e edit • d delete"),
	)
	return modalStyle.Width(w).Render(content)
}

func (m ContentModel) renderForm() string {
	heading := "Edit content"
	if m.modal == modalCreate {
		heading = "Create content"
	}

	titleLabel, textLabel := formLabelStyle, formLabelStyle
	if m.formFocus == fieldTitle {
		titleLabel = formLabelFocusStyle
	} else {
		textLabel = formLabelFocusStyle
	}

	action := "ctrl+s save"
	if m.busy {
		action = m.spinner.View() + " saving..."
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		modalTitleStyle.Render(heading),
		titleLabel.Render("Title *"),
		m.titleInput.View(),
		"",
		textLabel.Render("Text *"),
		m.textArea.View(),
		"",
		hintStyle.Render(action+" • tab next field • esc cancel"),
	)
	return modalStyle.Width(m.modalWidth()).Render(content)
}

func (m ContentModel) renderDelete() string {
	action := "y delete • n cancel"
	if m.busy {
		action = m.spinner.View() + " deleting..."
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		dangerStyle.Render("Delete content"),
		"",
		wrapText(fmt.Sprintf("Are you sure you want to delete %s?", m.target.Title), m.modalWidth()-6),
		"",
		hintStyle.Render(action),
	)
	return modalStyle.Width(m.modalWidth()).Render(content)
}

func (m ContentModel) renderStatusBar(width int) string {
	var shortcuts []shortcut
	switch m.modal {
	case modalNone:
		shortcuts = []shortcut{
			{"←↑↓→", "Move"},
			{"Enter", "Read"},
			{"n", "New"},
			{"e", "Edit"},
			{"d", "Delete"},
			{"r", "Reload"},
		}
	case modalEdit, modalCreate:
		shortcuts = []shortcut{{"Ctrl+S", "Save"}, {"Tab", "Next field"}, {"Esc", "Cancel"}}
	case modalDelete:
		shortcuts = []shortcut{{"y", "Confirm"}, {"n", "Cancel"}}
	case modalRead:
		shortcuts = []shortcut{{"Esc", "Close"}, {"e", "Edit"}, {"d", "Delete"}}
	}
	return renderStatusBar(width, shortcuts)
}

// Cards returns a copy of the local list
func (m ContentModel) Cards() []models.ContentCard {
	out := make([]models.ContentCard, len(m.cards))
	copy(out, m.cards)
	return out
}

// Status returns the fetch status of the list
func (m ContentModel) Status() models.FetchStatus {
	return m.status
}

// Busy reports whether a mutation is in flight
func (m ContentModel) Busy() bool {
	return m.busy
}
