package converter

import (
	"mediforge/internal/delivery/dto"
	"mediforge/internal/domain/entity"
)

func SegmentToResponse(s *entity.Segment) *dto.SegmentResponse {
	if s == nil {
		return nil
	}

	return &dto.SegmentResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Features:    s.Features,
		Icon:        s.Icon,
		Color:       s.Color,
	}
}

func SegmentsToResponses(segments []entity.Segment) []dto.SegmentResponse {
	responses := make([]dto.SegmentResponse, 0, len(segments))
	for i := range segments {
		responses = append(responses, *SegmentToResponse(&segments[i]))
	}
	return responses
}

func ComplianceFeaturesToResponses(features []entity.ComplianceFeature) []dto.ComplianceFeatureResponse {
	responses := make([]dto.ComplianceFeatureResponse, 0, len(features))
	for _, f := range features {
		responses = append(responses, dto.ComplianceFeatureResponse{
			Name:        f.Name,
			Icon:        f.Icon,
			Description: f.Description,
		})
	}
	return responses
}

func TemplatesToResponses(templates []entity.AppTemplate) []dto.TemplateResponse {
	responses := make([]dto.TemplateResponse, 0, len(templates))
	for _, t := range templates {
		responses = append(responses, dto.TemplateResponse{
			ID:          t.ID,
			Name:        t.Name,
			Segment:     t.Segment,
			Description: t.Description,
			Features:    t.Features,
			Compliance:  t.Compliance,
		})
	}
	return responses
}
