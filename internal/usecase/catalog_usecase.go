package usecase

import (
	"context"
	"time"

	"mediforge/config"
	"mediforge/internal/converter"
	"mediforge/internal/delivery/dto"
	"mediforge/internal/domain/repository"
)

type CatalogUsecase interface {
	GetAllSegments(ctx context.Context) []dto.SegmentResponse
	GetSegment(ctx context.Context, id string) (*dto.SegmentResponse, error)
	GetComplianceFeatures(ctx context.Context) []dto.ComplianceFeatureResponse
	GetTemplates(ctx context.Context, filter dto.TemplateFilter) (*dto.TemplateListResponse, error)
	GetInfo(ctx context.Context) *dto.InfoResponse
	GetHealth(ctx context.Context) *dto.HealthResponse
}

type catalogUsecase struct {
	cfg         *config.Config
	catalogRepo repository.CatalogRepository
	now         func() time.Time
}

func NewCatalogUsecase(cfg *config.Config, catalogRepo repository.CatalogRepository) CatalogUsecase {
	return &catalogUsecase{
		cfg:         cfg,
		catalogRepo: catalogRepo,
		now:         time.Now,
	}
}

func (u *catalogUsecase) GetAllSegments(ctx context.Context) []dto.SegmentResponse {
	return converter.SegmentsToResponses(u.catalogRepo.Segments())
}

func (u *catalogUsecase) GetSegment(ctx context.Context, id string) (*dto.SegmentResponse, error) {
	segment, ok := u.catalogRepo.FindSegment(id)
	if !ok {
		return nil, ErrSegmentNotFound
	}
	return converter.SegmentToResponse(segment), nil
}

func (u *catalogUsecase) GetComplianceFeatures(ctx context.Context) []dto.ComplianceFeatureResponse {
	return converter.ComplianceFeaturesToResponses(u.catalogRepo.ComplianceFeatures())
}

// GetTemplates lists starter templates, optionally narrowed to one segment.
func (u *catalogUsecase) GetTemplates(ctx context.Context, filter dto.TemplateFilter) (*dto.TemplateListResponse, error) {
	templates := u.catalogRepo.Templates()

	if filter.Segment != "" {
		if _, ok := u.catalogRepo.FindSegment(filter.Segment); !ok {
			return nil, ErrSegmentNotFound
		}
		filtered := templates[:0]
		for _, t := range templates {
			if t.Segment == filter.Segment {
				filtered = append(filtered, t)
			}
		}
		templates = filtered
	}

	responses := converter.TemplatesToResponses(templates)
	return &dto.TemplateListResponse{
		Templates: responses,
		Total:     len(responses),
	}, nil
}

func (u *catalogUsecase) GetInfo(ctx context.Context) *dto.InfoResponse {
	segments := u.catalogRepo.Segments()
	ids := make([]string, 0, len(segments))
	for _, s := range segments {
		ids = append(ids, s.ID)
	}

	return &dto.InfoResponse{
		Name:          u.cfg.App.Name,
		Description:   "AI-Powered Healthcare Application Generator",
		Version:       u.cfg.App.Version,
		Health:        "/api/v1/health",
		Segments:      ids,
		Compliance:    u.catalogRepo.Compliance(),
		GeneratorPath: u.cfg.Navigation.GeneratorPath,
		SourceURL:     u.cfg.Navigation.SourceURL,
	}
}

func (u *catalogUsecase) GetHealth(ctx context.Context) *dto.HealthResponse {
	return &dto.HealthResponse{
		Status:    "healthy",
		Service:   u.cfg.App.Name,
		Version:   u.cfg.App.Version,
		Timestamp: u.now().UTC().Format(time.RFC3339),
		Compliance: dto.HealthCompliance{
			HIPAA:        true,
			GDPR:         false,
			AuditEnabled: true,
		},
	}
}
