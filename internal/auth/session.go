package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "session:"
	sessionTTL       = 24 * time.Hour
)

// Store maps opaque session tokens to user IDs.
type Store interface {
	Create(ctx context.Context, userID int64) (string, error)
	// GetUserID reports false for unknown, expired or unreadable sessions.
	GetUserID(ctx context.Context, id string) (int64, bool)
	Delete(ctx context.Context, id string) error
}

// RedisStore manages sessions in Redis.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore returns a new Redis-backed session store.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = sessionTTL
	}
	return &RedisStore{rdb: rdb, ttl: ttl}
}

// Create stores a new session for userID and returns its ID.
func (s *RedisStore) Create(ctx context.Context, userID int64) (string, error) {
	id, err := newSessionID()
	if err != nil {
		return "", err
	}
	if err := s.rdb.Set(ctx, sessionKeyPrefix+id, userID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("redis set session: %w", err)
	}
	return id, nil
}

func (s *RedisStore) GetUserID(ctx context.Context, id string) (int64, bool) {
	if id == "" {
		return 0, false
	}
	v, err := s.rdb.Get(ctx, sessionKeyPrefix+id).Result()
	if err != nil {
		return 0, false
	}
	userID, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return userID, true
}

// Delete removes a session by ID. Deleting an unknown session is not an error.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, sessionKeyPrefix+id).Err()
}

type memSession struct {
	userID    int64
	expiresAt time.Time
}

// MemoryStore keeps sessions in process memory. Sessions do not survive a restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memSession
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore returns an empty process-local session store.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = sessionTTL
	}
	return &MemoryStore{sessions: make(map[string]memSession), ttl: ttl, now: time.Now}
}

func (s *MemoryStore) Create(ctx context.Context, userID int64) (string, error) {
	id, err := newSessionID()
	if err != nil {
		return "", err
	}
	s.mu.Lock()
	s.sessions[id] = memSession{userID: userID, expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()
	return id, nil
}

func (s *MemoryStore) GetUserID(ctx context.Context, id string) (int64, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return 0, false
	}
	if !s.now().Before(sess.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return 0, false
	}
	return sess.userID, true
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}

func newSessionID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand: %w", err)
	}
	return hex.EncodeToString(b), nil
}
