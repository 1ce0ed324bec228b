package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

type SelectSegmentRequest struct {
	SegmentID string `json:"segment_id" validate:"required,max=64"`
}

// Response DTOs

type SessionResponse struct {
	ID              uuid.UUID `json:"id"`
	SelectedSegment string    `json:"selected_segment"`
	Navigation      string    `json:"navigation"`
}

type NavigationResponse struct {
	Target     string `json:"target"`
	Navigation string `json:"navigation"`
}
