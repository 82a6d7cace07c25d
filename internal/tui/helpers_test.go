package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/diogo/aicms/internal/models"
)

// cmdTimeout drops commands that wait on a timer, such as ticks and cursor blinks
const cmdTimeout = 50 * time.Millisecond

// drain runs cmd and every command it batches, returning the messages produced
// before the timeout
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-ch:
	case <-time.After(cmdTimeout):
		return nil
	}

	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// relevant reports whether msg is produced by this package's views rather than
// by a widget (spinner frames, cursor blinks)
func relevant(msg tea.Msg) bool {
	switch msg.(type) {
	case transcriptLoadedMsg, chatReplyMsg,
		reloadContentMsg, contentLoadedMsg, contentCreatedMsg, contentUpdatedMsg, contentDeletedMsg,
		ToastMsg, toastExpiredMsg, tea.QuitMsg:
		return true
	}
	return false
}

// loop feeds the messages produced by cmd back into update until no more are produced.
// Toast and quit messages are returned instead of being fed back.
func loop[M any](m M, update func(M, tea.Msg) (M, tea.Cmd), cmd tea.Cmd) (M, []tea.Msg) {
	var emitted []tea.Msg
	queue := drain(cmd)

	for i := 0; len(queue) > 0 && i < 100; i++ {
		msg := queue[0]
		queue = queue[1:]
		if !relevant(msg) {
			continue
		}
		switch msg.(type) {
		case ToastMsg, tea.QuitMsg, toastExpiredMsg:
			emitted = append(emitted, msg)
			continue
		}

		var next tea.Cmd
		m, next = update(m, msg)
		queue = append(queue, drain(next)...)
	}
	return m, emitted
}

func runChat(m ChatModel, cmd tea.Cmd) (ChatModel, []tea.Msg) {
	return loop(m, func(m ChatModel, msg tea.Msg) (ChatModel, tea.Cmd) { return m.Update(msg) }, cmd)
}

func runContent(m ContentModel, cmd tea.Cmd) (ContentModel, []tea.Msg) {
	return loop(m, func(m ContentModel, msg tea.Msg) (ContentModel, tea.Cmd) { return m.Update(msg) }, cmd)
}

// toasts returns the notifications among msgs
func toasts(msgs []tea.Msg) []ToastMsg {
	var out []ToastMsg
	for _, msg := range msgs {
		if t, ok := msg.(ToastMsg); ok {
			out = append(out, t)
		}
	}
	return out
}

func hasQuit(msgs []tea.Msg) bool {
	for _, msg := range msgs {
		if _, ok := msg.(tea.QuitMsg); ok {
			return true
		}
	}
	return false
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "ctrl+g":
		return tea.KeyMsg{Type: tea.KeyCtrlG}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+y":
		return tea.KeyMsg{Type: tea.KeyCtrlY}
	case "f1":
		return tea.KeyMsg{Type: tea.KeyF1}
	case "f2":
		return tea.KeyMsg{Type: tea.KeyF2}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// faultyStore is a transcript store whose operations fail on demand
type faultyStore struct {
	messages []models.ChatMessage
	loadErr  error
	saveErr  error
	saves    int
}

var errStoreDown = errors.New("store unavailable")

func (s *faultyStore) Load(ctx context.Context) ([]models.ChatMessage, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.messages, nil
}

func (s *faultyStore) Save(ctx context.Context, msgs []models.ChatMessage) error {
	s.saves++
	if s.saveErr != nil {
		return s.saveErr
	}
	s.messages = append([]models.ChatMessage(nil), msgs...)
	return nil
}

func (s *faultyStore) Clear(ctx context.Context) error {
	s.messages = nil
	return nil
}

func (s *faultyStore) SessionID() string { return "faulty" }

func (s *faultyStore) Close() error { return nil }
