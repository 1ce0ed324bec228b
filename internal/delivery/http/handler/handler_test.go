package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mediforge/config"
	"mediforge/internal/delivery/http/middleware"
	"mediforge/internal/domain/entity"
	domainRepo "mediforge/internal/domain/repository"
	repoImpl "mediforge/internal/repository"
	"mediforge/internal/service"
	"mediforge/internal/usecase"
	"mediforge/pkg/validator"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	cfg       *config.Config
	landing   usecase.LandingUsecase
	catalog   usecase.CatalogUsecase
	patients  usecase.PatientListUsecase
	validator *validator.CustomValidator
	auditHook *test.Hook
	log       *logrus.Logger
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestEnv(t *testing.T, patientRepo domainRepo.PatientRepository, loadDelay time.Duration) *testEnv {
	t.Helper()

	cfg := &config.Config{
		App: config.AppConfig{Name: "MediForge", Version: "1.0.0", Env: "test"},
		Navigation: config.NavigationConfig{
			GeneratorPath: "/generator",
			SourceURL:     "https://github.com/TrueV1sion/mediforge",
			Timeout:       10 * time.Second,
		},
	}

	v := validator.NewValidator()
	catalogRepo, err := repoImpl.NewEmbeddedCatalogRepository(v)
	require.NoError(t, err)

	sessions := repoImpl.NewMemorySessionRepository(time.Hour, cfg.Navigation.Timeout, quietLogger())
	t.Cleanup(func() { _ = sessions.Close() })

	auditLog, hook := test.NewNullLogger()
	audit := service.NewAuditService(auditLog)

	if patientRepo == nil {
		patientRepo = repoImpl.NewFixturePatientRepository()
	}

	return &testEnv{
		cfg:       cfg,
		landing:   usecase.NewLandingUsecase(cfg, quietLogger(), catalogRepo, sessions, audit),
		catalog:   usecase.NewCatalogUsecase(cfg, catalogRepo),
		patients:  usecase.NewPatientListUsecase(quietLogger(), patientRepo, audit, loadDelay, nil),
		validator: v,
		auditHook: hook,
		log:       quietLogger(),
	}
}

// newSession starts a view session and returns a request carrying it.
func (e *testEnv) newSession(t *testing.T) uuid.UUID {
	t.Helper()
	session, _, err := e.landing.ResolveSession(context.Background(), uuid.Nil)
	require.NoError(t, err)
	return session.ID
}

func withSession(r *http.Request, id uuid.UUID) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), middleware.SessionIDKey, id))
}

func (e *testEnv) audited(action string) bool {
	for _, entry := range e.auditHook.AllEntries() {
		if entry.Data["action"] == action {
			return true
		}
	}
	return false
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	if data != nil && len(env.Data) > 0 {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

// Compile-time check to ensure MockPatientRepository implements PatientRepository
var _ domainRepo.PatientRepository = (*MockPatientRepository)(nil)

type MockPatientRepository struct {
	FindAllFunc func(ctx context.Context) ([]entity.Patient, error)
	calls       chan struct{}
}

func newMockPatientRepository(fn func(ctx context.Context) ([]entity.Patient, error)) *MockPatientRepository {
	return &MockPatientRepository{FindAllFunc: fn, calls: make(chan struct{}, 16)}
}

func (m *MockPatientRepository) FindAll(ctx context.Context) ([]entity.Patient, error) {
	m.calls <- struct{}{}
	return m.FindAllFunc(ctx)
}

func newUnknownID() uuid.UUID {
	return uuid.New()
}
