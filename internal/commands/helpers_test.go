package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/diogo/aicms/internal/api"
	"github.com/diogo/aicms/internal/config"
	"github.com/diogo/aicms/internal/transcript"
	"github.com/diogo/aicms/internal/tui"
)

// fakeTUI records the options the app would be started with
type fakeTUI struct {
	calls []tui.AppOptions
	err   error
}

func (f *fakeTUI) RunApp(opts tui.AppOptions) error {
	f.calls = append(f.calls, opts)
	return f.err
}

// testEnv isolates a command run from the user's home and environment
type testEnv struct {
	deps   *Dependencies
	client *api.MockClient
	tui    *fakeTUI
	out    *bytes.Buffer
	stores map[string]*transcript.MemoryStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	for _, k := range []string{"AICMS_BASE_URL", "AICMS_TIMEOUT_SECONDS", "AICMS_TRANSCRIPT_BACKEND", "AICMS_REDIS_ADDR", "AICMS_REDIS_PASSWORD", "AICMS_REDIS_DB", transcript.SessionEnv} {
		t.Setenv(k, "")
	}

	env := &testEnv{
		client: &api.MockClient{},
		tui:    &fakeTUI{},
		out:    &bytes.Buffer{},
		stores: map[string]*transcript.MemoryStore{},
	}
	env.deps = &Dependencies{
		Client: env.client,
		TUI:    env.tui,
		Out:    env.out,
		OpenStore: func(ctx context.Context, cfg config.Config, id string) (transcript.Store, error) {
			return env.store(id), nil
		},
		ListSessions: func(ctx context.Context, cfg config.Config) ([]transcript.SessionInfo, error) {
			var out []transcript.SessionInfo
			for id, s := range env.stores {
				msgs, _ := s.Load(ctx)
				out = append(out, transcript.SessionInfo{ID: id, Messages: len(msgs)})
			}
			return out, nil
		},
	}
	return env
}

func (e *testEnv) store(id string) *transcript.MemoryStore {
	s, ok := e.stores[id]
	if !ok {
		s = transcript.NewMemoryStore(id)
		e.stores[id] = s
	}
	return s
}

// run executes the command tree with args
func (e *testEnv) run(args ...string) error {
	if args == nil {
		// cobra reads os.Args when given nil
		args = []string{}
	}
	cmd := NewRootCmd(e.deps)
	cmd.SetArgs(args)
	cmd.SetOut(e.out)
	cmd.SetErr(e.out)
	return cmd.Execute()
}
