package transcript

import (
	"context"
	"fmt"

	"github.com/diogo/aicms/internal/config"
)

// Open returns the store for sessionID on the backend selected by cfg
func Open(ctx context.Context, cfg config.Config, sessionID string) (Store, error) {
	tc := cfg.Transcript
	switch tc.Backend {
	case config.BackendMemory:
		return NewMemoryStore(sessionID), nil
	case config.BackendRedis:
		return NewRedisStore(ctx, RedisOptions{
			Addr:     tc.RedisAddr,
			Password: tc.RedisPassword,
			DB:       tc.RedisDB,
			TTL:      tc.TTL(),
		}, sessionID)
	case config.BackendFile, "":
		dir, err := config.GetSessionsDir()
		if err != nil {
			return nil, err
		}
		return NewFileStore(dir, sessionID, tc.TTL())
	default:
		return nil, fmt.Errorf("unknown transcript backend %q", tc.Backend)
	}
}

// ListSessions enumerates stored sessions on the configured backend
func ListSessions(ctx context.Context, cfg config.Config) ([]SessionInfo, error) {
	switch cfg.Transcript.Backend {
	case config.BackendFile, "":
		dir, err := config.GetSessionsDir()
		if err != nil {
			return nil, err
		}
		return ListDir(dir)
	case config.BackendRedis:
		// the id only satisfies the constructor; ListSessions ignores it
		store, err := Open(ctx, cfg, "list")
		if err != nil {
			return nil, err
		}
		defer func() { _ = store.Close() }()
		return store.(*RedisStore).ListSessions(ctx)
	default:
		return nil, fmt.Errorf("%w: %s", ErrListUnsupported, cfg.Transcript.Backend)
	}
}
