// ejournal/internal/cache/cache.go

// Package cache holds the per-user auth snapshot in Redis. It is an injected
// service, not a package-level client: handlers receive it from the server
// and a nil-Redis deployment degrades to plain database reads.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// UserData is everything the middleware needs to authorize a request
// without touching the database.
type UserData struct {
	UserID     uint     `json:"user_id"`
	Login      string   `json:"login"`
	ActiveRole string   `json:"active_role"`
	SchoolID   *uint    `json:"school_id,omitempty"`
	ClassID    *uint    `json:"class_id,omitempty"`
	Roles      []string `json:"roles"`
}

// Service wraps the Redis client. A nil receiver or nil client is valid and
// means "no cache".
type Service struct {
	rdb *redis.Client
	ttl time.Duration
}

// New builds the service. rdb may be nil.
func New(rdb *redis.Client) *Service {
	return &Service{rdb: rdb, ttl: 10 * time.Minute}
}

func userKey(userID uint) string {
	return fmt.Sprintf("user:%d:data", userID)
}

// GetUser loads the cached snapshot. Miss (or disabled cache) returns ok=false.
func (s *Service) GetUser(ctx context.Context, userID uint) (*UserData, bool) {
	if s == nil || s.rdb == nil {
		return nil, false
	}
	raw, err := s.rdb.Get(ctx, userKey(userID)).Result()
	if err != nil {
		if err != redis.Nil {
			slog.Error("Redis GET command failed", "error", err, "user_id", userID)
		}
		return nil, false
	}
	var data UserData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		slog.Warn("Failed to unmarshal cached user data", "user_id", userID)
		return nil, false
	}
	return &data, true
}

// SetUser stores the snapshot with the service TTL. Failures are logged and
// swallowed: the cache is an optimization, never a correctness dependency.
func (s *Service) SetUser(ctx context.Context, data *UserData) {
	if s == nil || s.rdb == nil {
		return
	}
	raw, err := json.Marshal(data)
	if err != nil {
		slog.Error("Failed to marshal user data for caching", "error", err, "user_id", data.UserID)
		return
	}
	if err := s.rdb.Set(ctx, userKey(data.UserID), raw, s.ttl).Err(); err != nil {
		slog.Error("Failed to SET user data to cache", "error", err, "user_id", data.UserID)
	}
}

// InvalidateUser drops the snapshot after a role change; the next request
// rebuilds it from the database.
func (s *Service) InvalidateUser(ctx context.Context, userID uint) {
	if s == nil || s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, userKey(userID)).Err(); err != nil {
		slog.Warn("Failed to invalidate cache for user", "error", err, "user_id", userID)
	}
}
