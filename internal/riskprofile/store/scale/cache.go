package scale

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"riskgate/internal/riskprofile/models"
	id "riskgate/pkg/domain"
)

const cacheKey = "riskgate:scales"

// CachedStore is a read-through cache over a backing scale store. The scale
// table is read on every profile creation but changes only on
// reconfiguration, so a short TTL removes it from the hot path.
//
// Cache failures degrade to the backing store; they never fail a read.
type CachedStore struct {
	backing Store
	client  redis.Cmdable
	ttl     time.Duration
	logger  *slog.Logger
}

// Store is the read surface CachedStore decorates.
type Store interface {
	List(ctx context.Context) ([]*models.Scale, error)
	FindByID(ctx context.Context, scaleID id.ScaleID) (*models.Scale, error)
}

// NewCached wraps backing with a Redis read-through cache.
func NewCached(backing Store, client redis.Cmdable, ttl time.Duration, logger *slog.Logger) *CachedStore {
	return &CachedStore{backing: backing, client: client, ttl: ttl, logger: logger}
}

func (s *CachedStore) List(ctx context.Context) ([]*models.Scale, error) {
	raw, err := s.client.Get(ctx, cacheKey).Bytes()
	if err == nil {
		var scales []*models.Scale
		if err := json.Unmarshal(raw, &scales); err == nil {
			return scales, nil
		}
		// Corrupt entry: fall through to the backing store and rewrite.
	} else if err != redis.Nil {
		s.logger.WarnContext(ctx, "scale cache read failed", "error", err.Error())
	}

	scales, err := s.backing.List(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(scales); err == nil {
		if err := s.client.Set(ctx, cacheKey, raw, s.ttl).Err(); err != nil {
			s.logger.WarnContext(ctx, "scale cache write failed", "error", err.Error())
		}
	}
	return scales, nil
}

// FindByID serves single-band lookups from the cached table when possible.
func (s *CachedStore) FindByID(ctx context.Context, scaleID id.ScaleID) (*models.Scale, error) {
	scales, err := s.List(ctx)
	if err != nil {
		return s.backing.FindByID(ctx, scaleID)
	}
	for _, scale := range scales {
		if scale.ID == scaleID {
			return scale, nil
		}
	}
	return s.backing.FindByID(ctx, scaleID)
}

// Invalidate drops the cached table. Call after reseeding scales.
func (s *CachedStore) Invalidate(ctx context.Context) error {
	return s.client.Del(ctx, cacheKey).Err()
}
