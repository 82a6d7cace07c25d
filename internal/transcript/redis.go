package transcript

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/diogo/aicms/internal/models"
)

// KeyPrefix namespaces transcript keys in redis
const KeyPrefix = "aicms:transcript:"

// redisCmdable is the subset of the go-redis client used by RedisStore
type redisCmdable interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
}

// RedisStore keeps the transcript under one redis key whose TTL is refreshed on every save
type RedisStore struct {
	rdb    redisCmdable
	id     string
	ttl    time.Duration
	closer func() error
}

// RedisOptions configures the redis connection
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedisStore connects to redis and checks the connection with PING
func NewRedisStore(ctx context.Context, opts RedisOptions, sessionID string) (*RedisStore, error) {
	if !ValidSessionID(sessionID) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSessionID, sessionID)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", opts.Addr, err)
	}

	store := newRedisStore(rdb, sessionID, opts.TTL)
	store.closer = rdb.Close
	return store, nil
}

func newRedisStore(rdb redisCmdable, sessionID string, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, id: sessionID, ttl: ttl}
}

func redisKey(id string) string {
	return KeyPrefix + id
}

func (s *RedisStore) Load(ctx context.Context) ([]models.ChatMessage, error) {
	data, err := s.rdb.Get(ctx, redisKey(s.id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []models.ChatMessage{}, nil
		}
		return []models.ChatMessage{}, fmt.Errorf("failed to load transcript: %w", err)
	}

	var msgs []models.ChatMessage
	if err := json.Unmarshal(data, &msgs); err != nil {
		return []models.ChatMessage{}, fmt.Errorf("%w: %s: %v", ErrCorrupt, redisKey(s.id), err)
	}
	if err := checkMessages(redisKey(s.id), msgs); err != nil {
		return []models.ChatMessage{}, err
	}
	return copyMessages(msgs), nil
}

func (s *RedisStore) Save(ctx context.Context, msgs []models.ChatMessage) error {
	data, err := json.Marshal(copyMessages(msgs))
	if err != nil {
		return fmt.Errorf("failed to marshal transcript: %w", err)
	}
	if err := s.rdb.Set(ctx, redisKey(s.id), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save transcript: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.rdb.Del(ctx, redisKey(s.id)).Err(); err != nil {
		return fmt.Errorf("failed to clear transcript: %w", err)
	}
	return nil
}

func (s *RedisStore) SessionID() string { return s.id }

func (s *RedisStore) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}

// ListSessions scans the transcript keys and reports each session's message count
func (s *RedisStore) ListSessions(ctx context.Context) ([]SessionInfo, error) {
	var (
		cursor   uint64
		sessions = []SessionInfo{}
	)
	for {
		keys, next, err := s.rdb.Scan(ctx, cursor, KeyPrefix+"*", 100).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to scan sessions: %w", err)
		}
		for _, key := range keys {
			info := SessionInfo{ID: strings.TrimPrefix(key, KeyPrefix)}
			if data, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
				var msgs []models.ChatMessage
				if json.Unmarshal(data, &msgs) == nil {
					info.Messages = len(msgs)
				}
			}
			sessions = append(sessions, info)
		}
		if next == 0 {
			break
		}
		cursor = next
	}
	return sessions, nil
}
