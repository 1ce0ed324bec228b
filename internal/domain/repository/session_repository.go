package repository

import (
	"context"
	"errors"
	"time"

	"mediforge/internal/domain/entity"

	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("view session not found")

type SessionRepository interface {
	// FindByID returns nil, nil when the session does not exist or expired.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ViewSession, error)
	Create(ctx context.Context, session *entity.ViewSession) error
	UpdateSegment(ctx context.Context, id uuid.UUID, segmentID string) error
	// BeginNavigation atomically performs Idle -> Navigating and reports
	// whether this call won the transition.
	BeginNavigation(ctx context.Context, id uuid.UUID, now time.Time) (bool, error)
	ResetNavigation(ctx context.Context, id uuid.UUID) error
	Close() error
}
