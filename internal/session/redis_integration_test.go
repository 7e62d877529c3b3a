//go:build integration

package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"contactbook/internal/session"
	"contactbook/internal/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *session.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = session.NewRedisStore(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestInitAndTakeFlash() {
	ctx := context.Background()
	id := uuid.New()

	err := s.store.Init(ctx, session.Session{
		ID:        id,
		Browser:   "Firefox 140",
		CreatedAt: time.Now(),
	}, time.Minute)
	s.Require().NoError(err)

	msg, err := s.store.TakeFlash(ctx, id)
	s.Require().NoError(err)
	s.Empty(msg, "fresh session has no pending flash")

	s.Require().NoError(s.store.SetFlash(ctx, id, "Data contact berhasil ditambahkan!", time.Minute))

	msg, err = s.store.TakeFlash(ctx, id)
	s.Require().NoError(err)
	s.Equal("Data contact berhasil ditambahkan!", msg)

	msg, err = s.store.TakeFlash(ctx, id)
	s.Require().NoError(err)
	s.Empty(msg, "GETDEL drains the slot")
}

func (s *RedisStoreSuite) TestSetFlashReplacesSlot() {
	ctx := context.Background()
	id := uuid.New()

	s.Require().NoError(s.store.SetFlash(ctx, id, "first", time.Minute))
	s.Require().NoError(s.store.SetFlash(ctx, id, "second", time.Minute))

	msg, err := s.store.TakeFlash(ctx, id)
	s.Require().NoError(err)
	s.Equal("second", msg)
}

func (s *RedisStoreSuite) TestFlashExpires() {
	ctx := context.Background()
	id := uuid.New()

	s.Require().NoError(s.store.SetFlash(ctx, id, "hello", time.Second))

	time.Sleep(1500 * time.Millisecond)

	msg, err := s.store.TakeFlash(ctx, id)
	s.Require().NoError(err)
	s.Empty(msg, "redis TTL drops the slot")
}

func (s *RedisStoreSuite) TestFlashIsPerSession() {
	ctx := context.Background()
	a, b := uuid.New(), uuid.New()

	s.Require().NoError(s.store.SetFlash(ctx, a, "for a", time.Minute))

	msg, err := s.store.TakeFlash(ctx, b)
	s.Require().NoError(err)
	s.Empty(msg)

	msg, err = s.store.TakeFlash(ctx, a)
	s.Require().NoError(err)
	s.Equal("for a", msg)
}
