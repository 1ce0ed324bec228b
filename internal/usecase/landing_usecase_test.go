package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"mediforge/config"
	"mediforge/internal/delivery/dto"
	"mediforge/internal/domain/entity"
	repoImpl "mediforge/internal/repository"
	"mediforge/pkg/validator"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "MediForge", Version: "1.0.0", Env: "test"},
		Navigation: config.NavigationConfig{
			GeneratorPath: "/generator",
			SourceURL:     "https://github.com/TrueV1sion/mediforge",
			Timeout:       10 * time.Second,
		},
	}
}

type landingFixture struct {
	usecase LandingUsecase
	audit   *MockAuditService
}

func newLandingFixture(t *testing.T, navTimeout time.Duration) landingFixture {
	t.Helper()

	catalog, err := repoImpl.NewEmbeddedCatalogRepository(validator.NewValidator())
	require.NoError(t, err)

	sessions := repoImpl.NewMemorySessionRepository(time.Hour, navTimeout, quietLogger())
	t.Cleanup(func() { _ = sessions.Close() })

	audit := &MockAuditService{}
	cfg := testConfig()
	cfg.Navigation.Timeout = navTimeout

	return landingFixture{
		usecase: NewLandingUsecase(cfg, quietLogger(), catalog, sessions, audit),
		audit:   audit,
	}
}

func (f landingFixture) newSession(t *testing.T) uuid.UUID {
	t.Helper()
	session, created, err := f.usecase.ResolveSession(context.Background(), uuid.Nil)
	require.NoError(t, err)
	require.True(t, created)
	return session.ID
}

func TestLandingUsecase_ResolveSession(t *testing.T) {
	f := newLandingFixture(t, 10*time.Second)
	ctx := context.Background()

	session, created, err := f.usecase.ResolveSession(ctx, uuid.Nil)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "provider", session.SelectedSegment)
	assert.Equal(t, entity.NavigationIdle, session.Navigation)

	again, created, err := f.usecase.ResolveSession(ctx, session.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, session.ID, again.ID)

	unknown, created, err := f.usecase.ResolveSession(ctx, uuid.New())
	require.NoError(t, err)
	assert.True(t, created, "unknown ids get a fresh session")
	assert.NotEqual(t, session.ID, unknown.ID)
}

func TestLandingUsecase_SelectSegment(t *testing.T) {
	tests := []struct {
		segment string
	}{
		{segment: "provider"},
		{segment: "payer"},
		{segment: "pharmacy"},
		{segment: "laboratory"},
	}

	for _, tt := range tests {
		t.Run(tt.segment, func(t *testing.T) {
			f := newLandingFixture(t, 10*time.Second)
			ctx := context.Background()
			id := f.newSession(t)

			resp, err := f.usecase.SelectSegment(ctx, id, &dto.SelectSegmentRequest{SegmentID: tt.segment})
			require.NoError(t, err)
			assert.Equal(t, tt.segment, resp.SelectedSegment)

			page, err := f.usecase.GetLandingPage(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, tt.segment, page.SelectedSegment)
			assert.True(t, f.audit.Has(entity.AuditActionSegmentSelect))
		})
	}
}

func TestLandingUsecase_SelectUnknownSegmentKeepsSelection(t *testing.T) {
	f := newLandingFixture(t, 10*time.Second)
	ctx := context.Background()
	id := f.newSession(t)

	_, err := f.usecase.SelectSegment(ctx, id, &dto.SelectSegmentRequest{SegmentID: "pharmacy"})
	require.NoError(t, err)

	_, err = f.usecase.SelectSegment(ctx, id, &dto.SelectSegmentRequest{SegmentID: "dentistry"})
	assert.ErrorIs(t, err, ErrSegmentNotFound)

	session, err := f.usecase.GetSession(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "pharmacy", session.SelectedSegment)
	assert.True(t, f.audit.Has(entity.AuditActionSegmentReject))
}

func TestLandingUsecase_SessionNotFound(t *testing.T) {
	f := newLandingFixture(t, 10*time.Second)
	ctx := context.Background()
	missing := uuid.New()

	_, err := f.usecase.GetSession(ctx, missing)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = f.usecase.SelectSegment(ctx, missing, &dto.SelectSegmentRequest{SegmentID: "payer"})
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = f.usecase.BeginNavigation(ctx, missing)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = f.usecase.ResetNavigation(ctx, missing)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestLandingUsecase_DoubleNavigationDispatchesOnce(t *testing.T) {
	f := newLandingFixture(t, 10*time.Second)
	ctx := context.Background()
	id := f.newSession(t)

	first, err := f.usecase.BeginNavigation(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "/generator", first.Target)
	assert.Equal(t, string(entity.NavigationNavigating), first.Navigation)

	_, err = f.usecase.BeginNavigation(ctx, id)
	assert.ErrorIs(t, err, ErrNavigationInProgress)

	page, err := f.usecase.GetLandingPage(ctx, id)
	require.NoError(t, err)
	assert.True(t, page.Navigating)
	assert.Equal(t, 1, f.audit.Count(entity.AuditActionNavigationBegin))
	assert.Equal(t, 1, f.audit.Count(entity.AuditActionNavigationBlocked))
}

func TestLandingUsecase_ConcurrentNavigation(t *testing.T) {
	f := newLandingFixture(t, 10*time.Second)
	ctx := context.Background()
	id := f.newSession(t)

	var wins, blocked int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.usecase.BeginNavigation(ctx, id)
			switch err {
			case nil:
				atomic.AddInt32(&wins, 1)
			case ErrNavigationInProgress:
				atomic.AddInt32(&blocked, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins)
	assert.Equal(t, int32(15), blocked)
}

func TestLandingUsecase_ResetNavigation(t *testing.T) {
	f := newLandingFixture(t, 10*time.Second)
	ctx := context.Background()
	id := f.newSession(t)

	_, err := f.usecase.BeginNavigation(ctx, id)
	require.NoError(t, err)

	resp, err := f.usecase.ResetNavigation(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, string(entity.NavigationIdle), resp.Navigation)

	_, err = f.usecase.BeginNavigation(ctx, id)
	assert.NoError(t, err, "a reset session can navigate again")
}

func TestLandingUsecase_NavigationClaimExpires(t *testing.T) {
	f := newLandingFixture(t, 20*time.Millisecond)
	ctx := context.Background()
	id := f.newSession(t)

	_, err := f.usecase.BeginNavigation(ctx, id)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		_, err := f.usecase.BeginNavigation(ctx, id)
		return err == nil
	}, time.Second, 10*time.Millisecond)
}

func TestLandingUsecase_GetLandingPage(t *testing.T) {
	f := newLandingFixture(t, 10*time.Second)
	id := f.newSession(t)

	page, err := f.usecase.GetLandingPage(context.Background(), id)
	require.NoError(t, err)

	assert.Contains(t, page.Title, "MediForge")
	assert.Len(t, page.Segments, 4)
	assert.Len(t, page.ComplianceFeatures, 4)
	assert.Len(t, page.FeatureCards, 3)
	assert.Equal(t, "provider", page.SelectedSegment)
	assert.False(t, page.Navigating)
	assert.Equal(t, "/generator", page.GeneratorPath)
	assert.NotEmpty(t, page.FooterColumns)
}

func TestLandingUsecase_ExpiredClaimReportsIdle(t *testing.T) {
	catalog, err := repoImpl.NewEmbeddedCatalogRepository(validator.NewValidator())
	require.NoError(t, err)

	startedAt := time.Now().Add(-time.Minute)
	sessions := &MockSessionRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.ViewSession, error) {
			return &entity.ViewSession{
				ID:                  id,
				SelectedSegment:     "pharmacy",
				Navigation:          entity.NavigationNavigating,
				NavigationStartedAt: startedAt,
			}, nil
		},
	}
	uc := NewLandingUsecase(testConfig(), quietLogger(), catalog, sessions, &MockAuditService{})
	id := uuid.New()

	page, err := uc.GetLandingPage(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, page.Navigating)
	assert.Equal(t, "pharmacy", page.SelectedSegment)

	session, err := uc.GetSession(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, string(entity.NavigationIdle), session.Navigation)
}

func TestLandingUsecase_LiveClaimReportsNavigating(t *testing.T) {
	catalog, err := repoImpl.NewEmbeddedCatalogRepository(validator.NewValidator())
	require.NoError(t, err)

	sessions := &MockSessionRepository{
		FindByIDFunc: func(ctx context.Context, id uuid.UUID) (*entity.ViewSession, error) {
			return &entity.ViewSession{
				ID:                  id,
				SelectedSegment:     "provider",
				Navigation:          entity.NavigationNavigating,
				NavigationStartedAt: time.Now(),
			}, nil
		},
	}
	uc := NewLandingUsecase(testConfig(), quietLogger(), catalog, sessions, &MockAuditService{})

	page, err := uc.GetLandingPage(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.True(t, page.Navigating)
}
