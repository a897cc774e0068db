// Package rediscache fronts the token store with Redis so session checks on
// hot paths skip the database.
package rediscache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"

	"github.com/hongminglow/atithi-inn/internal/logging"
	"github.com/hongminglow/atithi-inn/internal/models"
	"github.com/hongminglow/atithi-inn/internal/storage"
)

var _ storage.TokenStore = (*TokenStore)(nil)

// NewClient connects to Redis and verifies the connection.
func NewClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return client, nil
}

// TokenStore is a read-through cache over another TokenStore. The wrapped
// store stays authoritative: cache failures are logged and fall through.
type TokenStore struct {
	next storage.TokenStore
	rdb  *redis.Client
	log  logging.Logger
	now  func() time.Time
}

func NewTokenStore(next storage.TokenStore, rdb *redis.Client, log logging.Logger) *TokenStore {
	return &TokenStore{next: next, rdb: rdb, log: log, now: time.Now}
}

// subjectKey holds the subject's current token record.
func subjectKey(subjectID string) string {
	return "session:subject:" + subjectID
}

// tokenKey maps a token digest back to its subject so DeleteToken can find
// the subject entry.
func tokenKey(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return "session:token:" + hex.EncodeToString(sum[:])
}

func (s *TokenStore) ReplaceToken(ctx context.Context, t models.Token) error {
	if err := s.next.ReplaceToken(ctx, t); err != nil {
		return err
	}
	if prev, ok := s.cached(ctx, t.SubjectID); ok {
		if err := s.rdb.Del(ctx, tokenKey(prev.Token)).Err(); err != nil {
			s.log.Warn(ctx, "evict cached token", "subject_id", t.SubjectID, "error", err)
		}
	}
	s.store(ctx, t)
	return nil
}

func (s *TokenStore) FindToken(ctx context.Context, raw, subjectID string, now time.Time) (models.Token, error) {
	if t, ok := s.cached(ctx, subjectID); ok && t.Token == raw && t.Active(now) {
		return t, nil
	}
	t, err := s.next.FindToken(ctx, raw, subjectID, now)
	if err != nil {
		return models.Token{}, err
	}
	s.store(ctx, t)
	return t, nil
}

func (s *TokenStore) DeleteToken(ctx context.Context, raw string) error {
	if err := s.next.DeleteToken(ctx, raw); err != nil {
		return err
	}
	key := tokenKey(raw)
	subjectID, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn(ctx, "lookup cached token", "error", err)
		}
		// The digest entry can expire or be evicted before the subject entry.
		subjectID = tokenSubject(raw)
	}
	keys := []string{key}
	if subjectID != "" {
		if t, ok := s.cached(ctx, subjectID); ok && t.Token == raw {
			keys = append(keys, subjectKey(subjectID))
		}
	}
	if err := s.rdb.Del(ctx, keys...).Err(); err != nil {
		s.log.Warn(ctx, "evict cached token", "subject_id", subjectID, "error", err)
	}
	return nil
}

// tokenSubject reads the sub claim without verifying the signature. It only
// picks the subject entry to inspect; that entry is dropped only when it
// holds raw.
func tokenSubject(raw string) string {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return ""
	}
	return claims.Subject
}

func (s *TokenStore) cached(ctx context.Context, subjectID string) (models.Token, bool) {
	raw, err := s.rdb.Get(ctx, subjectKey(subjectID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn(ctx, "read cached session", "subject_id", subjectID, "error", err)
		}
		return models.Token{}, false
	}
	var t models.Token
	if err := json.Unmarshal(raw, &t); err != nil {
		s.log.Warn(ctx, "decode cached session", "subject_id", subjectID, "error", err)
		return models.Token{}, false
	}
	return t, true
}

func (s *TokenStore) store(ctx context.Context, t models.Token) {
	ttl := t.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return
	}
	payload, err := json.Marshal(t)
	if err != nil {
		s.log.Warn(ctx, "encode session", "subject_id", t.SubjectID, "error", err)
		return
	}
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, subjectKey(t.SubjectID), payload, ttl)
		pipe.Set(ctx, tokenKey(t.Token), t.SubjectID, ttl)
		return nil
	})
	if err != nil {
		s.log.Warn(ctx, "cache session", "subject_id", t.SubjectID, "error", err)
	}
}
