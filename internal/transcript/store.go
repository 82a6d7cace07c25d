// Package transcript persists the chat transcript of a session.
//
// A session is identified by an opaque id. Every backend stores the whole
// message list under that id and overwrites it on each save.
package transcript

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/diogo/aicms/internal/models"
)

// SessionEnv names the environment variable that selects the session id
const SessionEnv = "AICMS_SESSION"

var (
	// ErrInvalidSessionID is returned for ids that are unsafe as file names or keys
	ErrInvalidSessionID = errors.New("invalid session id")
	// ErrCorrupt is returned when a stored transcript cannot be decoded
	ErrCorrupt = errors.New("stored transcript is corrupt")
	// ErrListUnsupported is returned by backends that cannot enumerate sessions
	ErrListUnsupported = errors.New("backend cannot list sessions")
)

// Store holds the transcript of one session
type Store interface {
	// Load returns the stored messages in order; a session never saved yields an empty list
	Load(ctx context.Context) ([]models.ChatMessage, error)
	// Save replaces the stored list with msgs
	Save(ctx context.Context, msgs []models.ChatMessage) error
	// Clear removes the session's transcript
	Clear(ctx context.Context) error
	SessionID() string
	Close() error
}

// SessionInfo describes a stored session
type SessionInfo struct {
	ID        string    `json:"id"`
	Messages  int       `json:"messages"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_-]{0,127}$`)

// ValidSessionID reports whether id may be used as a session id
func ValidSessionID(id string) bool {
	return sessionIDPattern.MatchString(id)
}

// NewSessionID generates a fresh session id
func NewSessionID() string {
	return uuid.NewString()
}

// ResolveSessionID picks the session id from the flag value, then the
// environment, then a fresh id. fresh reports whether a new id was generated.
func ResolveSessionID(flagValue string) (id string, fresh bool, err error) {
	id = flagValue
	if id == "" {
		id = os.Getenv(SessionEnv)
	}
	if id == "" {
		return NewSessionID(), true, nil
	}
	if !ValidSessionID(id) {
		return "", false, fmt.Errorf("%w: %q", ErrInvalidSessionID, id)
	}
	return id, false, nil
}

// checkMessages rejects decoded transcripts holding messages of unknown senders
func checkMessages(where string, msgs []models.ChatMessage) error {
	for i, m := range msgs {
		if !m.Sender.Valid() {
			return fmt.Errorf("%w: %s: message %d has sender %q", ErrCorrupt, where, i, m.Sender)
		}
	}
	return nil
}

// copyMessages returns a copy that never aliases the caller's slice and is never nil
func copyMessages(msgs []models.ChatMessage) []models.ChatMessage {
	out := make([]models.ChatMessage, len(msgs))
	copy(out, msgs)
	return out
}

// MemoryStore keeps the transcript for the lifetime of the process
type MemoryStore struct {
	id   string
	msgs []models.ChatMessage
	mu   sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore(sessionID string) *MemoryStore {
	return &MemoryStore{id: sessionID}
}

func (s *MemoryStore) Load(ctx context.Context) ([]models.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyMessages(s.msgs), nil
}

func (s *MemoryStore) Save(ctx context.Context, msgs []models.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = copyMessages(msgs)
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = nil
	return nil
}

func (s *MemoryStore) SessionID() string { return s.id }

func (s *MemoryStore) Close() error { return nil }
