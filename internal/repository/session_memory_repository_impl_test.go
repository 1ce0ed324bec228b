package repository

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"mediforge/internal/domain/entity"
	domainRepo "mediforge/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestMemoryRepo(t *testing.T, ttl, navTimeout time.Duration) (*memorySessionRepository, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC)}
	repo := newMemorySessionRepository(ttl, navTimeout, quietLogger(), time.Hour, clock.Now)
	t.Cleanup(func() { _ = repo.Close() })
	return repo, clock
}

func TestMemorySessionRepository_CreateAndFind(t *testing.T) {
	repo, _ := newTestMemoryRepo(t, time.Hour, 10*time.Second)
	ctx := context.Background()

	id := uuid.New()
	require.NoError(t, repo.Create(ctx, entity.NewViewSession(id, "provider")))

	got, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "provider", got.SelectedSegment)
	assert.Equal(t, entity.NavigationIdle, got.Navigation)

	missing, err := repo.FindByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemorySessionRepository_UpdateSegment(t *testing.T) {
	repo, _ := newTestMemoryRepo(t, time.Hour, 10*time.Second)
	ctx := context.Background()

	id := uuid.New()
	require.NoError(t, repo.Create(ctx, entity.NewViewSession(id, "provider")))
	require.NoError(t, repo.UpdateSegment(ctx, id, "pharmacy"))

	got, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "pharmacy", got.SelectedSegment)

	assert.ErrorIs(t, repo.UpdateSegment(ctx, uuid.New(), "payer"), domainRepo.ErrSessionNotFound)
}

func TestMemorySessionRepository_BeginNavigationOnce(t *testing.T) {
	repo, clock := newTestMemoryRepo(t, time.Hour, 10*time.Second)
	ctx := context.Background()

	id := uuid.New()
	require.NoError(t, repo.Create(ctx, entity.NewViewSession(id, "provider")))

	won, err := repo.BeginNavigation(ctx, id, clock.Now())
	require.NoError(t, err)
	assert.True(t, won)

	won, err = repo.BeginNavigation(ctx, id, clock.Now())
	require.NoError(t, err)
	assert.False(t, won, "second claim must not succeed while navigating")

	got, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.NavigationNavigating, got.Navigation)
}

func TestMemorySessionRepository_ConcurrentBeginNavigation(t *testing.T) {
	repo, clock := newTestMemoryRepo(t, time.Hour, 10*time.Second)
	ctx := context.Background()

	id := uuid.New()
	require.NoError(t, repo.Create(ctx, entity.NewViewSession(id, "provider")))

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if won, err := repo.BeginNavigation(ctx, id, clock.Now()); err == nil && won {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
}

func TestMemorySessionRepository_NavigationClaimExpires(t *testing.T) {
	repo, clock := newTestMemoryRepo(t, time.Hour, 10*time.Second)
	ctx := context.Background()

	id := uuid.New()
	require.NoError(t, repo.Create(ctx, entity.NewViewSession(id, "provider")))

	won, err := repo.BeginNavigation(ctx, id, clock.Now())
	require.NoError(t, err)
	require.True(t, won)

	clock.Advance(11 * time.Second)

	got, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, entity.NavigationIdle, got.Navigation)

	won, err = repo.BeginNavigation(ctx, id, clock.Now())
	require.NoError(t, err)
	assert.True(t, won)
}

func TestMemorySessionRepository_ResetNavigation(t *testing.T) {
	repo, clock := newTestMemoryRepo(t, time.Hour, 10*time.Second)
	ctx := context.Background()

	id := uuid.New()
	require.NoError(t, repo.Create(ctx, entity.NewViewSession(id, "provider")))

	_, err := repo.BeginNavigation(ctx, id, clock.Now())
	require.NoError(t, err)
	require.NoError(t, repo.ResetNavigation(ctx, id))

	won, err := repo.BeginNavigation(ctx, id, clock.Now())
	require.NoError(t, err)
	assert.True(t, won)

	assert.ErrorIs(t, repo.ResetNavigation(ctx, uuid.New()), domainRepo.ErrSessionNotFound)
	_, err = repo.BeginNavigation(ctx, uuid.New(), clock.Now())
	assert.ErrorIs(t, err, domainRepo.ErrSessionNotFound)
}

func TestMemorySessionRepository_EvictsExpiredSessions(t *testing.T) {
	repo, clock := newTestMemoryRepo(t, time.Minute, 10*time.Second)
	ctx := context.Background()

	stale := uuid.New()
	fresh := uuid.New()
	require.NoError(t, repo.Create(ctx, entity.NewViewSession(stale, "provider")))
	clock.Advance(50 * time.Second)
	require.NoError(t, repo.Create(ctx, entity.NewViewSession(fresh, "payer")))
	clock.Advance(20 * time.Second)

	assert.Equal(t, 1, repo.evictExpired())

	got, err := repo.FindByID(ctx, fresh)
	require.NoError(t, err)
	assert.NotNil(t, got)

	got, err = repo.FindByID(ctx, stale)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemorySessionRepository_CloseIsIdempotent(t *testing.T) {
	repo, _ := newTestMemoryRepo(t, time.Hour, time.Second)

	assert.NoError(t, repo.Close())
	assert.NoError(t, repo.Close())
}
