package repository

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"mediforge/internal/domain/entity"
	domainRepo "mediforge/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const sessionCleanupInterval = time.Minute

type memorySession struct {
	session  entity.ViewSession
	lastUsed time.Time
}

// memorySessionRepository keeps view sessions in process memory. A
// background goroutine evicts sessions unused for longer than ttl.
type memorySessionRepository struct {
	mu         sync.Mutex
	sessions   map[uuid.UUID]*memorySession
	ttl        time.Duration
	navTimeout time.Duration
	now        func() time.Time
	log        *logrus.Logger

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// NewMemorySessionRepository starts the eviction loop. Call Close during
// shutdown.
func NewMemorySessionRepository(ttl, navTimeout time.Duration, log *logrus.Logger) domainRepo.SessionRepository {
	return newMemorySessionRepository(ttl, navTimeout, log, sessionCleanupInterval, time.Now)
}

func newMemorySessionRepository(ttl, navTimeout time.Duration, log *logrus.Logger, cleanupEvery time.Duration, now func() time.Time) *memorySessionRepository {
	r := &memorySessionRepository{
		sessions:   make(map[uuid.UUID]*memorySession),
		ttl:        ttl,
		navTimeout: navTimeout,
		now:        now,
		log:        log,
		stopChan:   make(chan struct{}),
	}

	r.wg.Add(1)
	go r.cleanupLoop(cleanupEvery)

	return r
}

func (r *memorySessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ViewSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.lookup(id)
	if !ok {
		return nil, nil
	}
	session := rec.session
	session.Navigation = session.EffectiveNavigation(r.now(), r.navTimeout)
	if session.Navigation == entity.NavigationIdle {
		session.NavigationStartedAt = time.Time{}
	}
	return &session, nil
}

func (r *memorySessionRepository) Create(ctx context.Context, session *entity.ViewSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.ID] = &memorySession{session: *session, lastUsed: r.now()}
	return nil
}

func (r *memorySessionRepository) UpdateSegment(ctx context.Context, id uuid.UUID, segmentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.lookup(id)
	if !ok {
		return domainRepo.ErrSessionNotFound
	}
	rec.session.SelectedSegment = segmentID
	return nil
}

func (r *memorySessionRepository) BeginNavigation(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.lookup(id)
	if !ok {
		return false, domainRepo.ErrSessionNotFound
	}
	return rec.session.BeginNavigation(now, r.navTimeout), nil
}

func (r *memorySessionRepository) ResetNavigation(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.lookup(id)
	if !ok {
		return domainRepo.ErrSessionNotFound
	}
	rec.session.ResetNavigation()
	return nil
}

// Close stops the eviction loop. Safe to call multiple times.
func (r *memorySessionRepository) Close() error {
	if r.stopped.CompareAndSwap(false, true) {
		close(r.stopChan)
		r.wg.Wait()
		r.log.Info("Memory session repository stopped")
	}
	return nil
}

// lookup must be called with mu held. It refreshes lastUsed on hit.
func (r *memorySessionRepository) lookup(id uuid.UUID) (*memorySession, bool) {
	rec, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	now := r.now()
	if r.expired(rec, now) {
		delete(r.sessions, id)
		return nil, false
	}
	rec.lastUsed = now
	return rec, true
}

func (r *memorySessionRepository) expired(rec *memorySession, now time.Time) bool {
	return r.ttl > 0 && now.Sub(rec.lastUsed) > r.ttl
}

func (r *memorySessionRepository) cleanupLoop(every time.Duration) {
	defer r.wg.Done()

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-r.stopChan:
			r.log.Debug("Session cleanup goroutine stopping")
			return
		case <-ticker.C:
			r.evictExpired()
		}
	}
}

func (r *memorySessionRepository) evictExpired() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	var evicted int
	for id, rec := range r.sessions {
		if r.expired(rec, now) {
			delete(r.sessions, id)
			evicted++
		}
	}

	if evicted > 0 {
		r.log.Debugf("Evicted %d expired view sessions", evicted)
	}
	return evicted
}
