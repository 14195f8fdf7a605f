package redis

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/99minutos/backoffice/internal/core/ports"
)

// ContextStorage keeps per-browser-context values in Redis.
// Key format: backoffice:ctx:<context_id>:<key>
// Every write restarts the TTL of the key written. The session middleware
// rewrites the user on each authenticated request, so a session expires TTL
// after its last request.
type ContextStorage struct {
	client *redis.Client
	ttl    time.Duration
}

// NewContextStorage creates a ContextStorage wrapping the given Redis client.
func NewContextStorage(client *redis.Client, ttl time.Duration) *ContextStorage {
	return &ContextStorage{client: client, ttl: ttl}
}

func (s *ContextStorage) Get(ctx context.Context, contextID, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, s.key(contextID, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ports.ErrStorageMiss
	}
	if err != nil {
		return nil, fmt.Errorf("context storage get: %w", err)
	}
	return val, nil
}

func (s *ContextStorage) Set(ctx context.Context, contextID, key string, value []byte) error {
	if err := s.client.Set(ctx, s.key(contextID, key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("context storage set: %w", err)
	}
	return nil
}

func (s *ContextStorage) Delete(ctx context.Context, contextID, key string) error {
	if err := s.client.Del(ctx, s.key(contextID, key)).Err(); err != nil {
		return fmt.Errorf("context storage delete: %w", err)
	}
	return nil
}

// readinessContext is never a browser context: those are uuids.
const readinessContext = "readiness"

// Check writes a value, reads it back and deletes it. A Redis that answers
// pings but refuses writes fails here.
func (s *ContextStorage) Check(ctx context.Context) error {
	want := []byte(strconv.FormatInt(time.Now().UnixNano(), 10))
	if err := s.Set(ctx, readinessContext, "check", want); err != nil {
		return err
	}
	got, err := s.Get(ctx, readinessContext, "check")
	if err != nil {
		return err
	}
	if !bytes.Equal(got, want) {
		return fmt.Errorf("context storage check: read back %q, wrote %q", got, want)
	}
	return s.Delete(ctx, readinessContext, "check")
}

func (s *ContextStorage) key(contextID, key string) string {
	return fmt.Sprintf("backoffice:ctx:%s:%s", contextID, key)
}
