//go:build integration

package scale_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"riskgate/internal/riskprofile/models"
	"riskgate/internal/riskprofile/store/scale"
	id "riskgate/pkg/domain"
	"riskgate/pkg/platform/sentinel"
	"riskgate/pkg/testutil/containers"
)

type CachedStoreSuite struct {
	suite.Suite
	redis   *containers.RedisContainer
	backing *scale.InMemory
	cached  *scale.CachedStore
}

func TestCachedStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(CachedStoreSuite))
}

func (s *CachedStoreSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
}

func (s *CachedStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))

	s.backing = scale.NewInMemory()
	s.backing.Put(&models.Scale{ID: 1, Description: "Low", MinValue: 0, MaxValue: 20})
	s.backing.Put(&models.Scale{ID: 2, Description: "Medium", MinValue: 21, MaxValue: 50})
	s.cached = scale.NewCached(s.backing, s.redis.Client, time.Minute, slog.Default())
}

func (s *CachedStoreSuite) TestReadThrough() {
	ctx := context.Background()

	scales, err := s.cached.List(ctx)
	s.Require().NoError(err)
	s.Len(scales, 2)

	// A band added behind the cache stays invisible until invalidation.
	s.backing.Put(&models.Scale{ID: 3, Description: "High", MinValue: 51, MaxValue: 100})

	scales, err = s.cached.List(ctx)
	s.Require().NoError(err)
	s.Len(scales, 2, "served from cache")

	s.Require().NoError(s.cached.Invalidate(ctx))

	scales, err = s.cached.List(ctx)
	s.Require().NoError(err)
	s.Len(scales, 3, "refilled from the backing store")
}

func (s *CachedStoreSuite) TestFindByID() {
	ctx := context.Background()

	scale2, err := s.cached.FindByID(ctx, 2)
	s.Require().NoError(err)
	s.Equal(id.ScaleID(2), scale2.ID)
	s.Equal("Medium", scale2.Description)

	_, err = s.cached.FindByID(ctx, 99)
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *CachedStoreSuite) TestCorruptEntryFallsBack() {
	ctx := context.Background()

	s.Require().NoError(s.redis.Client.Set(ctx, "riskgate:scales", "not json", time.Minute).Err())

	scales, err := s.cached.List(ctx)
	s.Require().NoError(err)
	s.Len(scales, 2, "corrupt cache entry degrades to the backing store")
}
