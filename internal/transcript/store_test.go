package transcript

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diogo/aicms/internal/config"
	"github.com/diogo/aicms/internal/models"
)

func sampleTranscript() []models.ChatMessage {
	return []models.ChatMessage{
		{ID: 1700000000000, Text: "Hello", Sender: models.SenderUser},
		{ID: 1700000000001, Text: "Hi! **How** can I help?", Sender: models.SenderBot},
		{ID: 1700000000500, Text: "unicode ✓ and \"quotes\"\nnewline", Sender: models.SenderUser},
	}
}

// storeContract runs the behaviour every backend shares
func storeContract(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	msgs, err := store.Load(ctx)
	require.NoError(t, err)
	assert.NotNil(t, msgs)
	assert.Empty(t, msgs, "a session never saved loads as empty")

	want := sampleTranscript()
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got, "round trip must be lossless")

	got[0].Text = "mutated"
	again, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Hello", again[0].Text, "loaded slices must not alias stored state")

	require.NoError(t, store.Save(ctx, want[:1]))
	got, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1, "save overwrites the whole list")

	require.NoError(t, store.Clear(ctx))
	got, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, store.Clear(ctx), "clearing twice is fine")
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore("mem-1")
	assert.Equal(t, "mem-1", store.SessionID())
	storeContract(t, store)
	assert.NoError(t, store.Close())
}

func TestMemoryStore_SaveDoesNotAlias(t *testing.T) {
	store := NewMemoryStore("mem")
	msgs := sampleTranscript()
	require.NoError(t, store.Save(context.Background(), msgs))

	msgs[0].Text = "changed after save"
	got, _ := store.Load(context.Background())
	assert.Equal(t, "Hello", got[0].Text)
}

func TestResolveSessionID(t *testing.T) {
	t.Setenv(SessionEnv, "")

	id, fresh, err := ResolveSessionID("")
	require.NoError(t, err)
	assert.True(t, fresh)
	assert.True(t, ValidSessionID(id))

	id, fresh, err = ResolveSessionID("work")
	require.NoError(t, err)
	assert.False(t, fresh)
	assert.Equal(t, "work", id)

	t.Setenv(SessionEnv, "from-env")
	id, _, err = ResolveSessionID("")
	require.NoError(t, err)
	assert.Equal(t, "from-env", id)

	id, _, err = ResolveSessionID("flag-wins")
	require.NoError(t, err)
	assert.Equal(t, "flag-wins", id)

	_, _, err = ResolveSessionID("../etc/passwd")
	assert.ErrorIs(t, err, ErrInvalidSessionID)
}

func TestNewSessionID_Unique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewSessionID()
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestValidSessionID(t *testing.T) {
	valid := []string{"a", "abc-123", "550e8400-e29b-41d4-a716-446655440000", "work_notes"}
	invalid := []string{"", "-lead", "has space", "a/b", "..", "x.json"}

	for _, id := range valid {
		assert.True(t, ValidSessionID(id), id)
	}
	for _, id := range invalid {
		assert.False(t, ValidSessionID(id), id)
	}
}

func TestOpen(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	ctx := context.Background()

	cfg := config.DefaultConfig()
	cfg.Transcript.Backend = config.BackendMemory
	store, err := Open(ctx, cfg, "s1")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)

	cfg.Transcript.Backend = config.BackendFile
	store, err = Open(ctx, cfg, "s1")
	require.NoError(t, err)
	require.IsType(t, &FileStore{}, store)
	assert.Equal(t, filepath.Join(home, ".aicms", "sessions"), store.(*FileStore).Dir())

	cfg.Transcript.Backend = "tape"
	_, err = Open(ctx, cfg, "s1")
	assert.Error(t, err)
}

func TestListSessions_File(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	ctx := context.Background()
	cfg := config.DefaultConfig()

	sessions, err := ListSessions(ctx, cfg)
	require.NoError(t, err)
	assert.Empty(t, sessions)

	store, err := Open(ctx, cfg, "listed")
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, sampleTranscript()))

	sessions, err = ListSessions(ctx, cfg)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "listed", sessions[0].ID)
	assert.Equal(t, 3, sessions[0].Messages)

	cfg.Transcript.Backend = config.BackendMemory
	_, err = ListSessions(ctx, cfg)
	assert.ErrorIs(t, err, ErrListUnsupported)
}

func TestFileStore(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), "file-1", time.Hour)
	require.NoError(t, err)
	storeContract(t, store)
}

func TestFileStore_Permissions(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sessions")
	store, err := NewFileStore(dir, "perm", 0)
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), sampleTranscript()))

	info, err := os.Stat(filepath.Join(dir, "perm.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files left behind")
}

func TestFileStore_SessionsAreIsolated(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	a, err := NewFileStore(dir, "a", 0)
	require.NoError(t, err)
	b, err := NewFileStore(dir, "b", 0)
	require.NoError(t, err)

	require.NoError(t, a.Save(ctx, sampleTranscript()))

	got, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileStore_Corrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{oops"), 0o600))

	store, err := NewFileStore(dir, "bad", 0)
	require.NoError(t, err)

	msgs, err := store.Load(context.Background())
	assert.ErrorIs(t, err, ErrCorrupt)
	assert.NotNil(t, msgs)
	assert.Empty(t, msgs)
}

func TestFileStore_UnknownSender(t *testing.T) {
	dir := t.TempDir()
	doc := `{"session_id":"odd","messages":[{"id":1,"text":"hi","sender":"assistant"}]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "odd.json"), []byte(doc), 0o600))

	store, err := NewFileStore(dir, "odd", 0)
	require.NoError(t, err)

	msgs, err := store.Load(context.Background())
	assert.ErrorIs(t, err, ErrCorrupt)
	assert.Empty(t, msgs)
}

func TestFileStore_InvalidUTF8RoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir(), "bytes", 0)
	require.NoError(t, err)
	ctx := context.Background()

	want := []models.ChatMessage{models.NewChatMessage("bad \xff\xfe bytes", models.SenderBot, nil)}
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFileStore_InvalidID(t *testing.T) {
	_, err := NewFileStore(t.TempDir(), "../escape", 0)
	assert.ErrorIs(t, err, ErrInvalidSessionID)
}

func TestPruneDir(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	old, err := NewFileStore(dir, "old", 0)
	require.NoError(t, err)
	require.NoError(t, old.Save(ctx, sampleTranscript()))
	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "old.json"), past, past))

	recent, err := NewFileStore(dir, "recent", 0)
	require.NoError(t, err)
	require.NoError(t, recent.Save(ctx, sampleTranscript()))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("keep"), 0o600))
	require.NoError(t, os.Chtimes(filepath.Join(dir, "notes.txt"), past, past))

	removed, err := PruneDir(dir, 24*time.Hour, time.Now())
	require.NoError(t, err)
	assert.Equal(t, []string{"old"}, removed)

	assert.FileExists(t, filepath.Join(dir, "recent.json"))
	assert.FileExists(t, filepath.Join(dir, "notes.txt"))
	assert.NoFileExists(t, filepath.Join(dir, "old.json"))
}

func TestNewFileStore_PrunesExpiredSessions(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "stale.json")
	require.NoError(t, os.WriteFile(stale, []byte(`{"messages":[]}`), 0o600))
	past := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(stale, past, past))

	_, err := NewFileStore(dir, "current", time.Hour)
	require.NoError(t, err)
	assert.NoFileExists(t, stale)
}

func TestListDir_Order(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	for _, id := range []string{"first", "second"} {
		store, err := NewFileStore(dir, id, 0)
		require.NoError(t, err)
		require.NoError(t, store.Save(ctx, sampleTranscript()[:1]))
		time.Sleep(10 * time.Millisecond)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("nope"), 0o600))

	sessions, err := ListDir(dir)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "second", sessions[0].ID)
	assert.Equal(t, "first", sessions[1].ID)
}
