package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisTokenStore persists the single Zoho credential in Redis.
type RedisTokenStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisTokenStore creates a new Redis-backed token store.
func NewRedisTokenStore(client redis.UniversalClient, prefix string) *RedisTokenStore {
	return &RedisTokenStore{
		client: client,
		prefix: prefix,
	}
}

func (s *RedisTokenStore) key() string {
	return fmt.Sprintf("%s:zoho:credential", s.prefix)
}

// Save replaces any previously stored credential. A Redis SET is a single
// atomic write, so the old credential is superseded, never half-written.
// No TTL: the refresh token outlives the access token by months.
func (s *RedisTokenStore) Save(ctx context.Context, cred *Credential) error {
	data, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("failed to marshal credential: %w", err)
	}

	if err := s.client.Set(ctx, s.key(), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}

	return nil
}

// Get retrieves the stored credential.
func (s *RedisTokenStore) Get(ctx context.Context) (*Credential, error) {
	data, err := s.client.Get(ctx, s.key()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrNoCredential
		}
		return nil, fmt.Errorf("failed to get credential: %w", err)
	}

	var cred Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return nil, fmt.Errorf("failed to unmarshal credential: %w", err)
	}

	return &cred, nil
}

// UpdateAccess rewrites the stored credential with a new access token and
// expiry, keeping the refresh token as is.
func (s *RedisTokenStore) UpdateAccess(ctx context.Context, accessToken string, expiresAt time.Time) error {
	cred, err := s.Get(ctx)
	if err != nil {
		return err
	}

	cred.AccessToken = accessToken
	cred.ExpiresAt = expiresAt
	return s.Save(ctx, cred)
}

// Delete removes the stored credential.
func (s *RedisTokenStore) Delete(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key()).Err(); err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}

	return nil
}
