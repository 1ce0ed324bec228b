package usecase

import (
	"context"
	"time"

	"mediforge/config"
	"mediforge/internal/converter"
	"mediforge/internal/delivery/dto"
	"mediforge/internal/domain/entity"
	"mediforge/internal/domain/repository"
	"mediforge/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type LandingUsecase interface {
	// ResolveSession returns the session for id, creating a fresh one when
	// id is unknown or expired. created reports whether a new id was issued.
	ResolveSession(ctx context.Context, id uuid.UUID) (session *entity.ViewSession, created bool, err error)
	GetSession(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error)
	SelectSegment(ctx context.Context, id uuid.UUID, req *dto.SelectSegmentRequest) (*dto.SessionResponse, error)
	BeginNavigation(ctx context.Context, id uuid.UUID) (*dto.NavigationResponse, error)
	ResetNavigation(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error)
	GetLandingPage(ctx context.Context, id uuid.UUID) (*dto.LandingPageData, error)
}

type landingUsecase struct {
	cfg          *config.Config
	log          *logrus.Logger
	catalogRepo  repository.CatalogRepository
	sessionRepo  repository.SessionRepository
	auditService service.AuditService
	now          func() time.Time
}

func NewLandingUsecase(
	cfg *config.Config,
	log *logrus.Logger,
	catalogRepo repository.CatalogRepository,
	sessionRepo repository.SessionRepository,
	auditService service.AuditService,
) LandingUsecase {
	return &landingUsecase{
		cfg:          cfg,
		log:          log,
		catalogRepo:  catalogRepo,
		sessionRepo:  sessionRepo,
		auditService: auditService,
		now:          time.Now,
	}
}

func (u *landingUsecase) ResolveSession(ctx context.Context, id uuid.UUID) (*entity.ViewSession, bool, error) {
	if id != uuid.Nil {
		session, err := u.sessionRepo.FindByID(ctx, id)
		if err != nil {
			u.log.Warnf("Failed to find view session: %+v", err)
			return nil, false, err
		}
		if session != nil {
			return session, false, nil
		}
	}

	session := entity.NewViewSession(uuid.New(), u.catalogRepo.DefaultSegmentID())
	if err := u.sessionRepo.Create(ctx, session); err != nil {
		u.log.Warnf("Failed to create view session: %+v", err)
		return nil, false, err
	}
	return session, true, nil
}

func (u *landingUsecase) GetSession(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error) {
	session, err := u.findSession(ctx, id)
	if err != nil {
		return nil, err
	}
	return converter.SessionToResponse(session), nil
}

// SelectSegment replaces the selected tab. Ids outside the catalog are
// rejected and the previous selection is kept.
func (u *landingUsecase) SelectSegment(ctx context.Context, id uuid.UUID, req *dto.SelectSegmentRequest) (*dto.SessionResponse, error) {
	session, err := u.findSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, ok := u.catalogRepo.FindSegment(req.SegmentID); !ok {
		u.auditService.LogUpdate(ctx, id.String(), entity.AuditActionSegmentReject, "view_session", id.String(), session.SelectedSegment, req.SegmentID)
		return nil, ErrSegmentNotFound
	}

	oldValue := session.SelectedSegment
	if err := u.sessionRepo.UpdateSegment(ctx, id, req.SegmentID); err != nil {
		u.log.Warnf("Failed to update selected segment: %+v", err)
		return nil, err
	}
	session.SelectedSegment = req.SegmentID

	u.auditService.LogUpdate(ctx, id.String(), entity.AuditActionSegmentSelect, "view_session", id.String(), oldValue, req.SegmentID)

	return converter.SessionToResponse(session), nil
}

// BeginNavigation performs Idle -> Navigating and returns the target to
// navigate to. A concurrent or repeated call gets ErrNavigationInProgress.
func (u *landingUsecase) BeginNavigation(ctx context.Context, id uuid.UUID) (*dto.NavigationResponse, error) {
	won, err := u.sessionRepo.BeginNavigation(ctx, id, u.now())
	if err != nil {
		u.log.Warnf("Failed to begin navigation: %+v", err)
		return nil, err
	}
	if !won {
		u.auditService.LogEvent(ctx, id.String(), entity.AuditActionNavigationBlocked, "view_session", id.String())
		return nil, ErrNavigationInProgress
	}

	u.auditService.LogUpdate(ctx, id.String(), entity.AuditActionNavigationBegin, "view_session", id.String(),
		string(entity.NavigationIdle), string(entity.NavigationNavigating))

	return &dto.NavigationResponse{
		Target:     u.cfg.Navigation.GeneratorPath,
		Navigation: string(entity.NavigationNavigating),
	}, nil
}

// ResetNavigation is called by a client whose navigation failed.
func (u *landingUsecase) ResetNavigation(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error) {
	if err := u.sessionRepo.ResetNavigation(ctx, id); err != nil {
		u.log.Warnf("Failed to reset navigation: %+v", err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, id.String(), entity.AuditActionNavigationReset, "view_session", id.String(),
		string(entity.NavigationNavigating), string(entity.NavigationIdle))

	return u.GetSession(ctx, id)
}

func (u *landingUsecase) GetLandingPage(ctx context.Context, id uuid.UUID) (*dto.LandingPageData, error) {
	session, err := u.findSession(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.LandingPageData{
		Title:              "MediForge - AI-Powered Healthcare Application Generator",
		Description:        "Generate HIPAA-compliant healthcare applications with AI. Support for EHR, telemedicine, pharmacy, laboratory, and payer systems.",
		Keywords:           "healthcare, medical software, HIPAA, FHIR, EHR, telemedicine, AI, code generation",
		Segments:           u.catalogRepo.Segments(),
		SelectedSegment:    session.SelectedSegment,
		Navigating:         session.Navigation == entity.NavigationNavigating,
		ComplianceFeatures: u.catalogRepo.ComplianceFeatures(),
		FeatureCards:       u.catalogRepo.FeatureCards(),
		HeaderLinks:        u.catalogRepo.HeaderLinks(),
		FooterColumns:      u.catalogRepo.FooterColumns(),
		GeneratorPath:      u.cfg.Navigation.GeneratorPath,
		SourceURL:          u.cfg.Navigation.SourceURL,
	}, nil
}

func (u *landingUsecase) findSession(ctx context.Context, id uuid.UUID) (*entity.ViewSession, error) {
	session, err := u.sessionRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find view session: %+v", err)
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	session.Navigation = session.EffectiveNavigation(u.now(), u.cfg.Navigation.Timeout)
	return session, nil
}
