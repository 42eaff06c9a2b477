package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "session:"

// RedisStore keeps sessions as JSON values whose key TTL tracks ExpiresAt.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisStore(client redis.UniversalClient, prefix string) *RedisStore {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(token string) string { return s.prefix + token }

func (s *RedisStore) write(ctx context.Context, sess *Session, mustExist bool) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return ErrSessionExpired
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session: marshal: %w", err)
	}
	if !mustExist {
		return s.client.Set(ctx, s.key(sess.Token), data, ttl).Err()
	}
	ok, err := s.client.SetXX(ctx, s.key(sess.Token), data, ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrSessionNotFound
	}
	return nil
}

func (s *RedisStore) Create(ctx context.Context, sess *Session) error {
	if sess == nil || sess.Token == "" {
		return ErrInvalidSession
	}
	return s.write(ctx, sess, false)
}

func (s *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	data, err := s.client.Get(ctx, s.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, errors.Join(ErrInvalidSession, err)
	}
	if sess.IsExpired() {
		return nil, ErrSessionNotFound
	}
	return &sess, nil
}

func (s *RedisStore) Update(ctx context.Context, sess *Session) error {
	return s.write(ctx, sess, true)
}

func (s *RedisStore) UpdateActivity(ctx context.Context, token string, at time.Time) error {
	sess, err := s.Get(ctx, token)
	if err != nil {
		return err
	}
	sess.LastActivityAt = at
	return s.write(ctx, sess, true)
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, s.key(token)).Err()
}
