package transcript

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/diogo/aicms/internal/models"
)

// fileDocument is the on-disk shape of a session file
type fileDocument struct {
	SessionID string               `json:"session_id"`
	UpdatedAt time.Time            `json:"updated_at"`
	Messages  []models.ChatMessage `json:"messages"`
}

// FileStore keeps one JSON file per session in a directory
type FileStore struct {
	dir string
	id  string
	mu  sync.RWMutex
}

// NewFileStore opens the session file store in dir, removing sessions
// untouched for longer than maxAge. A zero maxAge disables pruning.
func NewFileStore(dir, sessionID string, maxAge time.Duration) (*FileStore, error) {
	if !ValidSessionID(sessionID) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSessionID, sessionID)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create sessions directory: %w", err)
	}

	if maxAge > 0 {
		if _, err := PruneDir(dir, maxAge, time.Now()); err != nil {
			return nil, err
		}
	}

	return &FileStore{dir: dir, id: sessionID}, nil
}

func (s *FileStore) path() string {
	return sessionPath(s.dir, s.id)
}

func sessionPath(dir, id string) string {
	return filepath.Join(dir, id+".json")
}

func (s *FileStore) Load(ctx context.Context) ([]models.ChatMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, err := readDocument(s.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []models.ChatMessage{}, nil
		}
		return []models.ChatMessage{}, err
	}
	if err := checkMessages(filepath.Base(s.path()), doc.Messages); err != nil {
		return []models.ChatMessage{}, err
	}
	return copyMessages(doc.Messages), nil
}

func (s *FileStore) Save(ctx context.Context, msgs []models.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := fileDocument{
		SessionID: s.id,
		UpdatedAt: time.Now().UTC(),
		Messages:  copyMessages(msgs),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal transcript: %w", err)
	}

	return writeFileAtomic(s.path(), data)
}

func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove transcript: %w", err)
	}
	return nil
}

func (s *FileStore) SessionID() string { return s.id }

func (s *FileStore) Close() error { return nil }

// Dir returns the directory holding the session files
func (s *FileStore) Dir() string { return s.dir }

func readDocument(path string) (*fileDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, filepath.Base(path), err)
	}
	return &doc, nil
}

// writeFileAtomic writes data to a temp file and renames it over path,
// so readers never observe a partially written transcript
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".transcript-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write transcript: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to chmod transcript: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close transcript: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace transcript: %w", err)
	}
	return nil
}

// PruneDir removes session files last modified before now-maxAge and
// returns the ids it removed
func PruneDir(dir string, maxAge time.Duration, now time.Time) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read sessions directory: %w", err)
	}

	cutoff := now.Add(-maxAge)
	var removed []string
	for _, entry := range entries {
		id, ok := sessionIDFromName(entry)
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err == nil {
			removed = append(removed, id)
		}
	}
	return removed, nil
}

// ListDir returns the sessions stored in dir, most recently updated first.
// Corrupt files are skipped.
func ListDir(dir string) ([]SessionInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []SessionInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read sessions directory: %w", err)
	}

	sessions := []SessionInfo{}
	for _, entry := range entries {
		id, ok := sessionIDFromName(entry)
		if !ok {
			continue
		}
		doc, err := readDocument(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue // Skip corrupted files
		}
		sessions = append(sessions, SessionInfo{ID: id, Messages: len(doc.Messages), UpdatedAt: doc.UpdatedAt})
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})
	return sessions, nil
}

func sessionIDFromName(entry os.DirEntry) (string, bool) {
	name := entry.Name()
	if entry.IsDir() || filepath.Ext(name) != ".json" {
		return "", false
	}
	id := strings.TrimSuffix(name, ".json")
	return id, ValidSessionID(id)
}
