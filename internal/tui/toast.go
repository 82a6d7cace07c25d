package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// ToastKind is the kind of a notification
type ToastKind int

const (
	ToastInfo ToastKind = iota
	ToastSuccess
	ToastError
)

func (k ToastKind) String() string {
	switch k {
	case ToastSuccess:
		return "success"
	case ToastError:
		return "error"
	default:
		return "info"
	}
}

// Auto-dismiss durations. Errors stay longer so they can be read.
const (
	DefaultToastDuration = 4 * time.Second
	ErrorToastDuration   = 8 * time.Second
)

// MaxVisibleToasts caps the stack; the oldest toast is dropped first
const MaxVisibleToasts = 3

// maxToastWidth caps the rendered width of a single toast
const maxToastWidth = 48

// Toast is a single notification
type Toast struct {
	ID       int
	Kind     ToastKind
	Message  string
	Duration time.Duration
}

// ToastMsg asks the shell to show a notification. Views return it from commands.
type ToastMsg struct {
	Kind    ToastKind
	Message string
}

// toastExpiredMsg dismisses the toast with the given id
type toastExpiredMsg struct {
	id int
}

// notify returns a command raising a notification
func notify(kind ToastKind, message string) tea.Cmd {
	return func() tea.Msg {
		return ToastMsg{Kind: kind, Message: message}
	}
}

// Toasts is the notification layer: a short stack of auto-dismissed messages, newest last
type Toasts struct {
	items  []Toast
	nextID int
}

// Push adds a toast and returns the command that dismisses it later
func (t *Toasts) Push(kind ToastKind, message string) tea.Cmd {
	t.nextID++
	toast := Toast{ID: t.nextID, Kind: kind, Message: message, Duration: DefaultToastDuration}
	if kind == ToastError {
		toast.Duration = ErrorToastDuration
	}

	t.items = append(t.items, toast)
	if len(t.items) > MaxVisibleToasts {
		t.items = t.items[len(t.items)-MaxVisibleToasts:]
	}

	id := toast.ID
	return tea.Tick(toast.Duration, func(time.Time) tea.Msg {
		return toastExpiredMsg{id: id}
	})
}

// Dismiss removes the toast with the given id, if still shown
func (t *Toasts) Dismiss(id int) {
	for i, toast := range t.items {
		if toast.ID == id {
			t.items = append(t.items[:i:i], t.items[i+1:]...)
			return
		}
	}
}

// Items returns the visible toasts, oldest first
func (t Toasts) Items() []Toast {
	out := make([]Toast, len(t.items))
	copy(out, t.items)
	return out
}

// Len returns the number of visible toasts
func (t Toasts) Len() int {
	return len(t.items)
}

// View renders the stack right-aligned within width
func (t Toasts) View(width int) string {
	if len(t.items) == 0 {
		return ""
	}

	inner := maxToastWidth
	if width-4 < inner {
		inner = width - 4
	}
	if inner < 10 {
		inner = 10
	}

	rendered := make([]string, 0, len(t.items))
	for _, toast := range t.items {
		style := toastInfoStyle
		icon := "•"
		switch toast.Kind {
		case ToastSuccess:
			style, icon = toastSuccessStyle, "✓"
		case ToastError:
			style, icon = toastErrorStyle, "✗"
		}
		text := runewidth.Truncate(icon+" "+toast.Message, inner, "…")
		rendered = append(rendered, style.Render(text))
	}

	stack := lipgloss.JoinVertical(lipgloss.Right, rendered...)
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, stack)
}
