package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mediforge/internal/delivery/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionHandler_GetSession(t *testing.T) {
	env := newTestEnv(t, nil, 0)
	h := NewSessionHandler(env.landing, env.validator)
	id := env.newSession(t)

	rec := httptest.NewRecorder()
	h.GetSession(rec, withSession(httptest.NewRequest(http.MethodGet, "/api/v1/session", nil), id))

	require.Equal(t, http.StatusOK, rec.Code)
	var session dto.SessionResponse
	resp := decodeEnvelope(t, rec, &session)
	assert.True(t, resp.Success)
	assert.Equal(t, id, session.ID)
	assert.Equal(t, "provider", session.SelectedSegment)
	assert.Equal(t, "idle", session.Navigation)
}

func TestSessionHandler_SelectSegment(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "catalog segment", body: `{"segment_id":"payer"}`, wantStatus: http.StatusOK},
		{name: "unknown segment", body: `{"segment_id":"dentistry"}`, wantStatus: http.StatusNotFound},
		{name: "missing segment", body: `{}`, wantStatus: http.StatusBadRequest},
		{name: "malformed body", body: `{`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, nil, 0)
			h := NewSessionHandler(env.landing, env.validator)
			id := env.newSession(t)

			req := httptest.NewRequest(http.MethodPut, "/api/v1/session/segment", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.SelectSegment(rec, withSession(req, id))

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestSessionHandler_SelectSegment_RejectionKeepsSelection(t *testing.T) {
	env := newTestEnv(t, nil, 0)
	h := NewSessionHandler(env.landing, env.validator)
	id := env.newSession(t)

	put := func(body string) int {
		rec := httptest.NewRecorder()
		h.SelectSegment(rec, withSession(httptest.NewRequest(http.MethodPut, "/api/v1/session/segment", strings.NewReader(body)), id))
		return rec.Code
	}

	require.Equal(t, http.StatusOK, put(`{"segment_id":"pharmacy"}`))
	require.Equal(t, http.StatusNotFound, put(`{"segment_id":"radiology"}`))

	rec := httptest.NewRecorder()
	h.GetSession(rec, withSession(httptest.NewRequest(http.MethodGet, "/api/v1/session", nil), id))
	var session dto.SessionResponse
	decodeEnvelope(t, rec, &session)
	assert.Equal(t, "pharmacy", session.SelectedSegment)
}

func TestSessionHandler_Navigation(t *testing.T) {
	env := newTestEnv(t, nil, 0)
	h := NewSessionHandler(env.landing, env.validator)
	id := env.newSession(t)

	begin := func() *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		h.BeginNavigation(rec, withSession(httptest.NewRequest(http.MethodPost, "/api/v1/session/navigation", nil), id))
		return rec
	}

	first := begin()
	require.Equal(t, http.StatusOK, first.Code)
	var nav dto.NavigationResponse
	decodeEnvelope(t, first, &nav)
	assert.Equal(t, "/generator", nav.Target)
	assert.Equal(t, "navigating", nav.Navigation)

	second := begin()
	assert.Equal(t, http.StatusConflict, second.Code)

	reset := httptest.NewRecorder()
	h.ResetNavigation(reset, withSession(httptest.NewRequest(http.MethodDelete, "/api/v1/session/navigation", nil), id))
	require.Equal(t, http.StatusOK, reset.Code)
	var session dto.SessionResponse
	decodeEnvelope(t, reset, &session)
	assert.Equal(t, "idle", session.Navigation)

	assert.Equal(t, http.StatusOK, begin().Code)
}

func TestSessionHandler_UnknownSession(t *testing.T) {
	env := newTestEnv(t, nil, 0)
	h := NewSessionHandler(env.landing, env.validator)

	rec := httptest.NewRecorder()
	h.GetSession(rec, withSession(httptest.NewRequest(http.MethodGet, "/api/v1/session", nil), newUnknownID()))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
