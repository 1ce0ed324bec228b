package entity

import (
	"time"

	"github.com/google/uuid"
)

// NavigationState is the state of a landing view's navigation trigger.
type NavigationState string

const (
	NavigationIdle       NavigationState = "idle"
	NavigationNavigating NavigationState = "navigating"
)

// ViewSession holds the local state of one browser's landing view.
type ViewSession struct {
	ID                  uuid.UUID       `json:"id"`
	SelectedSegment     string          `json:"selected_segment"`
	Navigation          NavigationState `json:"navigation"`
	NavigationStartedAt time.Time       `json:"navigation_started_at,omitempty"`
}

// NewViewSession returns an idle session with the given default selection.
func NewViewSession(id uuid.UUID, defaultSegment string) *ViewSession {
	return &ViewSession{
		ID:              id,
		SelectedSegment: defaultSegment,
		Navigation:      NavigationIdle,
	}
}

// CanBeginNavigation reports whether Idle -> Navigating is allowed at now.
// A claim older than timeout no longer blocks, so a failed navigation
// cannot leave the trigger stuck.
func (s *ViewSession) CanBeginNavigation(now time.Time, timeout time.Duration) bool {
	if s.Navigation != NavigationNavigating {
		return true
	}
	return timeout > 0 && !now.Before(s.NavigationStartedAt.Add(timeout))
}

// BeginNavigation performs Idle -> Navigating. It returns false and leaves
// the session untouched when the precondition does not hold.
func (s *ViewSession) BeginNavigation(now time.Time, timeout time.Duration) bool {
	if !s.CanBeginNavigation(now, timeout) {
		return false
	}
	s.Navigation = NavigationNavigating
	s.NavigationStartedAt = now
	return true
}

// ResetNavigation returns the trigger to Idle.
func (s *ViewSession) ResetNavigation() {
	s.Navigation = NavigationIdle
	s.NavigationStartedAt = time.Time{}
}

// EffectiveNavigation reports the navigation state at now, treating an
// expired claim as Idle.
func (s *ViewSession) EffectiveNavigation(now time.Time, timeout time.Duration) NavigationState {
	if s.Navigation == NavigationNavigating && s.CanBeginNavigation(now, timeout) {
		return NavigationIdle
	}
	return s.Navigation
}
