package usecase

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"mediforge/internal/domain/entity"
	"mediforge/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Compile-time check to ensure MockPatientRepository implements PatientRepository
var _ repository.PatientRepository = (*MockPatientRepository)(nil)

// MockPatientRepository is a func-field mock of PatientRepository.
type MockPatientRepository struct {
	FindAllFunc      func(ctx context.Context) ([]entity.Patient, error)
	FindAllCallCount int32
}

func (m *MockPatientRepository) FindAll(ctx context.Context) ([]entity.Patient, error) {
	atomic.AddInt32(&m.FindAllCallCount, 1)
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockPatientRepository) Calls() int32 {
	return atomic.LoadInt32(&m.FindAllCallCount)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// MockAuditService records audit actions in call order.
type MockAuditService struct {
	mu      sync.Mutex
	Actions []string
	Events  []entity.AuditEvent
}

func (m *MockAuditService) Record(ctx context.Context, event entity.AuditEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Actions = append(m.Actions, event.Action)
	m.Events = append(m.Events, event)
}

func (m *MockAuditService) LogUpdate(ctx context.Context, sessionID string, action string, entityName string, entityID string, oldValue, newValue interface{}) {
	m.Record(ctx, entity.AuditEvent{
		Action:    action,
		SessionID: sessionID,
		Entity:    entityName,
		EntityID:  entityID,
		OldValue:  oldValue,
		NewValue:  newValue,
	})
}

func (m *MockAuditService) LogEvent(ctx context.Context, sessionID string, action string, entityName string, entityID string) {
	m.LogUpdate(ctx, sessionID, action, entityName, entityID, nil, nil)
}

func (m *MockAuditService) Has(action string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.Actions {
		if a == action {
			return true
		}
	}
	return false
}

func (m *MockAuditService) Count(action string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int
	for _, a := range m.Actions {
		if a == action {
			n++
		}
	}
	return n
}

var _ repository.SessionRepository = (*MockSessionRepository)(nil)

// MockSessionRepository returns stored sessions as-is, without expiring
// navigation claims.
type MockSessionRepository struct {
	FindByIDFunc func(ctx context.Context, id uuid.UUID) (*entity.ViewSession, error)
}

func (m *MockSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ViewSession, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *MockSessionRepository) Create(ctx context.Context, session *entity.ViewSession) error {
	return nil
}

func (m *MockSessionRepository) UpdateSegment(ctx context.Context, id uuid.UUID, segmentID string) error {
	return nil
}

func (m *MockSessionRepository) BeginNavigation(ctx context.Context, id uuid.UUID, now time.Time) (bool, error) {
	return false, nil
}

func (m *MockSessionRepository) ResetNavigation(ctx context.Context, id uuid.UUID) error {
	return nil
}

func (m *MockSessionRepository) Close() error {
	return nil
}
