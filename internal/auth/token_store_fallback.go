package auth

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// FallbackTokenStore keeps a local copy of the credential so token reads
// survive Redis outages. Redis remains the source of truth while healthy;
// the local copy is replicated back once Redis recovers.
type FallbackTokenStore struct {
	redisStore  *RedisTokenStore
	mu          sync.RWMutex
	cached      *Credential
	healthCheck func() bool
	logger      *zap.Logger
}

// NewFallbackTokenStore creates a token store with Redis and local fallback.
func NewFallbackTokenStore(client redis.UniversalClient, prefix string, healthCheck func() bool, logger *zap.Logger) *FallbackTokenStore {
	return &FallbackTokenStore{
		redisStore:  NewRedisTokenStore(client, prefix),
		healthCheck: healthCheck,
		logger:      logger,
	}
}

// Save stores the credential locally and, when Redis is healthy, remotely.
func (s *FallbackTokenStore) Save(ctx context.Context, cred *Credential) error {
	copied := *cred
	s.mu.Lock()
	s.cached = &copied
	s.mu.Unlock()

	if s.healthCheck() {
		if err := s.redisStore.Save(ctx, cred); err != nil {
			s.logger.Warn("failed to save credential to redis, keeping local copy", zap.Error(err))
		}
	}

	return nil
}

// Get retrieves the credential, trying Redis first and falling back to the
// local copy.
func (s *FallbackTokenStore) Get(ctx context.Context) (*Credential, error) {
	if s.healthCheck() {
		cred, err := s.redisStore.Get(ctx)
		if err == nil {
			copied := *cred
			s.mu.Lock()
			s.cached = &copied
			s.mu.Unlock()
			return cred, nil
		}
		if err != ErrNoCredential {
			s.logger.Warn("failed to get credential from redis, trying local copy", zap.Error(err))
		}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cached == nil {
		return nil, ErrNoCredential
	}
	copied := *s.cached
	return &copied, nil
}

// UpdateAccess mutates the access token and expiry on both copies.
func (s *FallbackTokenStore) UpdateAccess(ctx context.Context, accessToken string, expiresAt time.Time) error {
	s.mu.Lock()
	if s.cached != nil {
		s.cached.AccessToken = accessToken
		s.cached.ExpiresAt = expiresAt
	}
	s.mu.Unlock()

	if s.healthCheck() {
		if err := s.redisStore.UpdateAccess(ctx, accessToken, expiresAt); err != nil {
			s.logger.Warn("failed to update credential in redis, keeping local copy", zap.Error(err))
		}
	}

	return nil
}

// Delete removes the credential from both stores.
func (s *FallbackTokenStore) Delete(ctx context.Context) error {
	s.mu.Lock()
	s.cached = nil
	s.mu.Unlock()

	if s.healthCheck() {
		if err := s.redisStore.Delete(ctx); err != nil {
			s.logger.Warn("failed to delete credential from redis", zap.Error(err))
		}
	}

	return nil
}

// StartReplicationRoutine begins background sync of the local copy back to
// Redis, so a credential obtained during an outage is not lost on restart.
func (s *FallbackTokenStore) StartReplicationRoutine(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if !s.healthCheck() {
					continue
				}

				s.mu.RLock()
				var cred *Credential
				if s.cached != nil {
					copied := *s.cached
					cred = &copied
				}
				s.mu.RUnlock()

				if cred == nil {
					continue
				}
				if err := s.redisStore.Save(ctx, cred); err != nil {
					s.logger.Warn("credential replication to redis failed", zap.Error(err))
				}
			}
		}
	}()
}
