package state

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/lumeahq/lumea/internal/tenant/domain"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const redisKeyPrefix = "lumea:tenant:"

type redisStore struct {
	client   *redis.Client
	defaults []domain.Organization
	log      *zap.Logger
}

// NewRedisStore builds a redis-backed Store.
func NewRedisStore(client *redis.Client, defaults []domain.Organization, log *zap.Logger) Store {
	return &redisStore{
		client:   client,
		defaults: defaults,
		log:      log.Named("tenant.state.redis"),
	}
}

func (s *redisStore) LoadTenants(ctx context.Context) ([]domain.Organization, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+KeyKnownTenants).Result()
	if errors.Is(err, redis.Nil) {
		return normalizeAll(cloneDefaults(s.defaults)), nil
	}
	if err != nil {
		return nil, err
	}

	var tenants []domain.Organization
	if err := json.Unmarshal([]byte(raw), &tenants); err != nil {
		s.log.Warn("corrupt known tenants payload, falling back to defaults", zap.Error(err))
		return normalizeAll(cloneDefaults(s.defaults)), nil
	}
	return normalizeAll(tenants), nil
}

func (s *redisStore) SaveTenants(ctx context.Context, tenants []domain.Organization) error {
	payload, err := json.Marshal(tenants)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, redisKeyPrefix+KeyKnownTenants, string(payload), 0).Err()
}

func (s *redisStore) LoadActiveTenantID(ctx context.Context) (string, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+KeyActiveTenantID).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return raw, nil
}

func (s *redisStore) SaveActiveTenantID(ctx context.Context, id string) error {
	return s.client.Set(ctx, redisKeyPrefix+KeyActiveTenantID, id, 0).Err()
}
