package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"mediforge/internal/domain/entity"
	domainRepo "mediforge/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	RedisSessionKeyPrefix = "view_session:"
	redisSegmentField     = "segment"
)

// beginNavigationScript claims the navigation key of a session only if it
// is not already held. The claim expires on its own after ARGV[2] ms so a
// navigation that never completes cannot block the trigger forever.
//
// Returns -1 when the session does not exist, 1 when the claim was taken
// and 0 when a navigation is already in progress.
var beginNavigationScript = redis.NewScript(`
	if redis.call('EXISTS', KEYS[1]) == 0 then
		return -1
	end
	local ok
	if tonumber(ARGV[2]) > 0 then
		ok = redis.call('SET', KEYS[2], ARGV[1], 'NX', 'PX', ARGV[2])
	else
		ok = redis.call('SET', KEYS[2], ARGV[1], 'NX')
	end
	redis.call('PEXPIRE', KEYS[1], ARGV[3])
	if ok then
		return 1
	end
	return 0
`)

type redisSessionRepository struct {
	client     *redis.Client
	ttl        time.Duration
	navTimeout time.Duration
	log        *logrus.Logger
}

func NewRedisSessionRepository(client *redis.Client, ttl, navTimeout time.Duration, log *logrus.Logger) domainRepo.SessionRepository {
	return &redisSessionRepository{
		client:     client,
		ttl:        ttl,
		navTimeout: navTimeout,
		log:        log,
	}
}

func (r *redisSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ViewSession, error) {
	sessionKey, navKey := r.keys(id)

	pipe := r.client.Pipeline()
	segmentCmd := pipe.HGet(ctx, sessionKey, redisSegmentField)
	navCmd := pipe.Get(ctx, navKey)
	pipe.PExpire(ctx, sessionKey, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}

	segment, err := segmentCmd.Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", id, err)
	}

	session := &entity.ViewSession{
		ID:              id,
		SelectedSegment: segment,
		Navigation:      entity.NavigationIdle,
	}

	startedMs, err := navCmd.Int64()
	switch {
	case errors.Is(err, redis.Nil):
	case err != nil:
		return nil, fmt.Errorf("load navigation state %s: %w", id, err)
	default:
		session.Navigation = entity.NavigationNavigating
		session.NavigationStartedAt = time.UnixMilli(startedMs)
	}

	return session, nil
}

func (r *redisSessionRepository) Create(ctx context.Context, session *entity.ViewSession) error {
	sessionKey, navKey := r.keys(session.ID)

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, sessionKey, redisSegmentField, session.SelectedSegment)
	pipe.PExpire(ctx, sessionKey, r.ttl)
	pipe.Del(ctx, navKey)
	if _, err := pipe.Exec(ctx); err != nil {
		r.log.Warnf("Failed to create view session %s: %+v", session.ID, err)
		return fmt.Errorf("create session %s: %w", session.ID, err)
	}
	return nil
}

func (r *redisSessionRepository) UpdateSegment(ctx context.Context, id uuid.UUID, segmentID string) error {
	sessionKey, _ := r.keys(id)

	exists, err := r.client.Exists(ctx, sessionKey).Result()
	if err != nil {
		return fmt.Errorf("check session %s: %w", id, err)
	}
	if exists == 0 {
		return domainRepo.ErrSessionNotFound
	}

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, sessionKey, redisSegmentField, segmentID)
	pipe.PExpire(ctx, sessionKey, r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		r.log.Warnf("Failed to update segment for session %s: %+v", id, err)
		return fmt.Errorf("update segment %s: %w", id, err)
	}
	return nil
}

func (r *redisSessionRepository) BeginNavigation(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	sessionKey, navKey := r.keys(id)

	result, err := beginNavigationScript.Run(ctx, r.client,
		[]string{sessionKey, navKey},
		strconv.FormatInt(now.UnixMilli(), 10),
		strconv.FormatInt(r.navTimeout.Milliseconds(), 10),
		strconv.FormatInt(r.ttl.Milliseconds(), 10),
	).Int()
	if err != nil {
		r.log.Warnf("Failed Lua script BeginNavigation for session %s: %+v", id, err)
		return false, fmt.Errorf("lua begin_navigation for session %s: %w", id, err)
	}

	switch result {
	case -1:
		return false, domainRepo.ErrSessionNotFound
	case 1:
		return true, nil
	default:
		return false, nil
	}
}

func (r *redisSessionRepository) ResetNavigation(ctx context.Context, id uuid.UUID) error {
	sessionKey, navKey := r.keys(id)

	exists, err := r.client.Exists(ctx, sessionKey).Result()
	if err != nil {
		return fmt.Errorf("check session %s: %w", id, err)
	}
	if exists == 0 {
		return domainRepo.ErrSessionNotFound
	}

	if err := r.client.Del(ctx, navKey).Err(); err != nil {
		r.log.Warnf("Failed to reset navigation for session %s: %+v", id, err)
		return fmt.Errorf("reset navigation %s: %w", id, err)
	}
	return nil
}

// Close is a no-op; the client is owned and closed by the application.
func (r *redisSessionRepository) Close() error {
	return nil
}

func (r *redisSessionRepository) keys(id uuid.UUID) (string, string) {
	sessionKey := RedisSessionKeyPrefix + id.String()
	return sessionKey, sessionKey + ":nav"
}
