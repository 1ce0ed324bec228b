package entity

import (
	"time"
)

// AuditEvent is a structured record of a view state change.
type AuditEvent struct {
	Action    string
	SessionID string
	Entity    string
	EntityID  string
	OldValue  interface{}
	NewValue  interface{}
	CreatedAt time.Time
}

// Common audit actions
const (
	AuditActionSegmentSelect      = "segment.select"
	AuditActionSegmentReject      = "segment.reject"
	AuditActionNavigationBegin    = "navigation.begin"
	AuditActionNavigationBlocked  = "navigation.blocked"
	AuditActionNavigationReset    = "navigation.reset"
	AuditActionPatientListMount   = "patient_list.mount"
	AuditActionPatientListLoaded  = "patient_list.populated"
	AuditActionPatientListFailed  = "patient_list.failed"
	AuditActionPatientListUnmount = "patient_list.unmount"
)
