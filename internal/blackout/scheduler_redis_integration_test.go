//go:build integration

package blackout_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"haven/internal/blackout"
	id "haven/pkg/domain"
	"haven/pkg/testutil/containers"
)

type RedisSchedulerSuite struct {
	suite.Suite
	redis     *containers.RedisContainer
	scheduler *blackout.RedisScheduler
}

func TestRedisSchedulerSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisSchedulerSuite))
}

func (s *RedisSchedulerSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.scheduler = blackout.NewRedisScheduler(s.redis.Client)
}

func (s *RedisSchedulerSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisSchedulerSuite) TestStartBlackout_OpensWindow() {
	ctx := context.Background()
	s.Require().NoError(s.scheduler.StartBlackout(ctx, id.SignalID("sig-001"), 48*time.Hour))

	active, err := s.scheduler.IsBlackedOut(ctx, id.SignalID("sig-001"))
	s.Require().NoError(err)
	s.True(active)

	endsAt, err := s.scheduler.BlackoutEndsAt(ctx, id.SignalID("sig-001"))
	s.Require().NoError(err)
	s.WithinDuration(time.Now().UTC().Add(48*time.Hour), endsAt, time.Minute)
}

func (s *RedisSchedulerSuite) TestWindowExpires() {
	ctx := context.Background()
	s.Require().NoError(s.scheduler.StartBlackout(ctx, id.SignalID("sig-001"), time.Second))

	time.Sleep(1500 * time.Millisecond)

	active, err := s.scheduler.IsBlackedOut(ctx, id.SignalID("sig-001"))
	s.Require().NoError(err)
	s.False(active)
}

func (s *RedisSchedulerSuite) TestUnknownSignalNotBlackedOut() {
	active, err := s.scheduler.IsBlackedOut(context.Background(), id.SignalID("missing"))
	s.Require().NoError(err)
	s.False(active)
}

func (s *RedisSchedulerSuite) TestWindowsAreIndependent() {
	ctx := context.Background()
	s.Require().NoError(s.scheduler.StartBlackout(ctx, id.SignalID("sig-001"), 48*time.Hour))

	active, err := s.scheduler.IsBlackedOut(ctx, id.SignalID("sig-002"))
	s.Require().NoError(err)
	s.False(active)
}
