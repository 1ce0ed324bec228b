package service

import (
	"context"
	"time"

	"mediforge/internal/domain/entity"

	"github.com/sirupsen/logrus"
)

// AuditService records view state changes as structured log entries.
type AuditService interface {
	Record(ctx context.Context, event entity.AuditEvent)
	LogUpdate(ctx context.Context, sessionID string, action string, entityName string, entityID string, oldValue, newValue interface{})
	LogEvent(ctx context.Context, sessionID string, action string, entityName string, entityID string)
}

type auditService struct {
	log *logrus.Logger
	now func() time.Time
}

func NewAuditService(log *logrus.Logger) AuditService {
	return &auditService{
		log: log,
		now: time.Now,
	}
}

// Record writes a single audit entry
func (s *auditService) Record(ctx context.Context, event entity.AuditEvent) {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = s.now()
	}

	fields := logrus.Fields{
		"audit":      true,
		"action":     event.Action,
		"session_id": event.SessionID,
		"entity":     event.Entity,
		"entity_id":  event.EntityID,
		"created_at": event.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	if event.OldValue != nil {
		fields["old_value"] = event.OldValue
	}
	if event.NewValue != nil {
		fields["new_value"] = event.NewValue
	}

	s.log.WithContext(ctx).WithFields(fields).Info("audit")
}

// LogUpdate logs a state change with old and new values
func (s *auditService) LogUpdate(ctx context.Context, sessionID string, action string, entityName string, entityID string, oldValue, newValue interface{}) {
	s.Record(ctx, entity.AuditEvent{
		Action:    action,
		SessionID: sessionID,
		Entity:    entityName,
		EntityID:  entityID,
		OldValue:  oldValue,
		NewValue:  newValue,
	})
}

// LogEvent logs an action without a value change
func (s *auditService) LogEvent(ctx context.Context, sessionID string, action string, entityName string, entityID string) {
	s.Record(ctx, entity.AuditEvent{
		Action:    action,
		SessionID: sessionID,
		Entity:    entityName,
		EntityID:  entityID,
	})
}
