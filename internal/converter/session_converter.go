package converter

import (
	"mediforge/internal/delivery/dto"
	"mediforge/internal/domain/entity"
)

func SessionToResponse(s *entity.ViewSession) *dto.SessionResponse {
	if s == nil {
		return nil
	}

	return &dto.SessionResponse{
		ID:              s.ID,
		SelectedSegment: s.SelectedSegment,
		Navigation:      string(s.Navigation),
	}
}
