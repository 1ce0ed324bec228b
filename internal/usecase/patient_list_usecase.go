package usecase

import (
	"context"
	"time"

	"mediforge/internal/converter"
	"mediforge/internal/delivery/dto"
	"mediforge/internal/domain/entity"
	"mediforge/internal/domain/repository"
	"mediforge/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type PatientListUsecase interface {
	ListPatients(ctx context.Context) (*dto.PatientListResponse, error)
	// Mount creates the loader for a new list view. The caller starts it
	// and must Close it when the view goes away.
	Mount(ctx context.Context, viewID uuid.UUID, notify func(entity.PatientListSnapshot)) *PatientListLoader
	Unmount(ctx context.Context, viewID uuid.UUID, loader *PatientListLoader)
	ToResponse(snapshot entity.PatientListSnapshot) *dto.PatientListResponse
}

type patientListUsecase struct {
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	auditService service.AuditService
	loadDelay    time.Duration
	now          func() time.Time
}

func NewPatientListUsecase(
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
	loadDelay time.Duration,
	now func() time.Time,
) PatientListUsecase {
	if now == nil {
		now = time.Now
	}
	return &patientListUsecase{
		log:          log,
		patientRepo:  patientRepo,
		auditService: auditService,
		loadDelay:    loadDelay,
		now:          now,
	}
}

func (u *patientListUsecase) ListPatients(ctx context.Context) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find all patients: %+v", err)
		return nil, err
	}

	return converter.SnapshotToResponse(entity.PatientListSnapshot{
		State:    entity.ListPopulated,
		Patients: patients,
	}, u.now()), nil
}

func (u *patientListUsecase) Mount(ctx context.Context, viewID uuid.UUID, notify func(entity.PatientListSnapshot)) *PatientListLoader {
	id := viewID.String()
	u.auditService.LogEvent(ctx, id, entity.AuditActionPatientListMount, "patient_list", id)

	return NewPatientListLoader(u.patientRepo, u.loadDelay, u.log, func(snapshot entity.PatientListSnapshot) {
		switch snapshot.State {
		case entity.ListPopulated:
			u.auditService.LogUpdate(ctx, id, entity.AuditActionPatientListLoaded, "patient_list", id, string(entity.ListLoading), len(snapshot.Patients))
		case entity.ListFailed:
			u.auditService.LogEvent(ctx, id, entity.AuditActionPatientListFailed, "patient_list", id)
		}
		if notify != nil {
			notify(snapshot)
		}
	})
}

func (u *patientListUsecase) Unmount(ctx context.Context, viewID uuid.UUID, loader *PatientListLoader) {
	loader.Close()
	id := viewID.String()
	u.auditService.LogUpdate(ctx, id, entity.AuditActionPatientListUnmount, "patient_list", id, nil, string(loader.State()))
}

func (u *patientListUsecase) ToResponse(snapshot entity.PatientListSnapshot) *dto.PatientListResponse {
	return converter.SnapshotToResponse(snapshot, u.now())
}
