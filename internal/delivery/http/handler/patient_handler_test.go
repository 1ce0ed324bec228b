package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"mediforge/internal/delivery/dto"
	"mediforge/internal/domain/entity"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialLive(t *testing.T, h *PatientHandler) (*websocket.Conn, context.Context) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(h.Live))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+PatientSocketPath, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.CloseNow() })
	return conn, ctx
}

func TestPatientHandler_Page(t *testing.T) {
	env := newTestEnv(t, nil, 0)
	h := NewPatientHandler(env.patients, nil, env.log)

	rec := httptest.NewRecorder()
	h.Page(rec, httptest.NewRequest(http.MethodGet, "/patients", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), `data-state="loading"`)
	assert.Contains(t, rec.Body.String(), `data-socket="/ws/patients"`)
}

func TestPatientHandler_ListPatients(t *testing.T) {
	env := newTestEnv(t, nil, 0)
	h := NewPatientHandler(env.patients, nil, env.log)

	rec := httptest.NewRecorder()
	h.ListPatients(rec, httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var list dto.PatientListResponse
	decodeEnvelope(t, rec, &list)
	assert.Equal(t, "populated", list.State)
	assert.Equal(t, 3, list.Total)
	assert.Equal(t, "MRN001234", list.Patients[0].MRN)
}

func TestPatientHandler_ListPatients_Error(t *testing.T) {
	repo := newMockPatientRepository(func(ctx context.Context) ([]entity.Patient, error) {
		return nil, errors.New("source unavailable")
	})
	env := newTestEnv(t, repo, 0)
	h := NewPatientHandler(env.patients, nil, env.log)

	rec := httptest.NewRecorder()
	h.ListPatients(rec, httptest.NewRequest(http.MethodGet, "/api/v1/patients", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestPatientHandler_Live_LoadingThenPopulated(t *testing.T) {
	env := newTestEnv(t, nil, 20*time.Millisecond)
	h := NewPatientHandler(env.patients, nil, env.log)
	conn, ctx := dialLive(t, h)

	var loading dto.PatientListMessage
	require.NoError(t, wsjson.Read(ctx, conn, &loading))
	assert.Equal(t, MessageLoading, loading.Type)
	assert.Contains(t, loading.HTML, `data-state="loading"`)
	assert.Equal(t, "loading", loading.Data.State)
	assert.Empty(t, loading.Data.Patients)

	var populated dto.PatientListMessage
	require.NoError(t, wsjson.Read(ctx, conn, &populated))
	assert.Equal(t, MessagePopulated, populated.Type)
	assert.Equal(t, loading.ViewID, populated.ViewID)
	assert.Equal(t, 3, populated.Data.Total)
	assert.Contains(t, populated.HTML, "Showing 3 patients")
	assert.Contains(t, populated.HTML, "John Doe")

	readCtx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
	defer cancel()
	var extra dto.PatientListMessage
	assert.Error(t, wsjson.Read(readCtx, conn, &extra), "no transition after populated")
}

func TestPatientHandler_Live_Failed(t *testing.T) {
	repo := newMockPatientRepository(func(ctx context.Context) ([]entity.Patient, error) {
		return nil, errors.New("source unavailable")
	})
	env := newTestEnv(t, repo, time.Millisecond)
	h := NewPatientHandler(env.patients, nil, env.log)
	conn, ctx := dialLive(t, h)

	var loading, failed dto.PatientListMessage
	require.NoError(t, wsjson.Read(ctx, conn, &loading))
	require.NoError(t, wsjson.Read(ctx, conn, &failed))

	assert.Equal(t, MessageFailed, failed.Type)
	assert.Equal(t, patientListFailedMessage, failed.Message)
	assert.Contains(t, failed.HTML, `data-state="failed"`)
}

func TestPatientHandler_Live_TeardownDuringLoading(t *testing.T) {
	repo := newMockPatientRepository(func(ctx context.Context) ([]entity.Patient, error) {
		return []entity.Patient{{ID: "1"}}, nil
	})
	env := newTestEnv(t, repo, 300*time.Millisecond)
	h := NewPatientHandler(env.patients, nil, env.log)
	conn, ctx := dialLive(t, h)

	var loading dto.PatientListMessage
	require.NoError(t, wsjson.Read(ctx, conn, &loading))
	require.Equal(t, MessageLoading, loading.Type)

	_ = conn.Close(websocket.StatusNormalClosure, "navigated away")

	require.Eventually(t, func() bool {
		return env.audited(entity.AuditActionPatientListUnmount)
	}, 2*time.Second, 10*time.Millisecond)

	time.Sleep(500 * time.Millisecond)
	select {
	case <-repo.calls:
		t.Fatal("patient source queried after the view was torn down")
	default:
	}
	assert.False(t, env.audited(entity.AuditActionPatientListLoaded))
}
