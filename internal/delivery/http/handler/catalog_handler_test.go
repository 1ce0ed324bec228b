package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"mediforge/internal/delivery/dto"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogHandler_Health(t *testing.T) {
	env := newTestEnv(t, nil, 0)
	h := NewCatalogHandler(env.catalog, env.validator)

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var health dto.HealthResponse
	decodeEnvelope(t, rec, &health)
	assert.Equal(t, "healthy", health.Status)
	assert.True(t, health.Compliance.HIPAA)
}

func TestCatalogHandler_Info(t *testing.T) {
	env := newTestEnv(t, nil, 0)
	h := NewCatalogHandler(env.catalog, env.validator)

	rec := httptest.NewRecorder()
	h.Info(rec, httptest.NewRequest(http.MethodGet, "/api/v1/info", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var info dto.InfoResponse
	decodeEnvelope(t, rec, &info)
	assert.Equal(t, "MediForge", info.Name)
	assert.Equal(t, []string{"provider", "payer", "pharmacy", "laboratory"}, info.Segments)
}

func TestCatalogHandler_GetSegment(t *testing.T) {
	env := newTestEnv(t, nil, 0)
	h := NewCatalogHandler(env.catalog, env.validator)

	router := mux.NewRouter()
	router.HandleFunc("/api/v1/segments", h.GetAllSegments)
	router.HandleFunc("/api/v1/segments/{id}", h.GetSegment)

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"list", "/api/v1/segments", http.StatusOK},
		{"known", "/api/v1/segments/pharmacy", http.StatusOK},
		{"unknown", "/api/v1/segments/dentistry", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/segments/pharmacy", nil))
	var segment dto.SegmentResponse
	decodeEnvelope(t, rec, &segment)
	assert.Equal(t, "Pharmacy", segment.Name)
	assert.Contains(t, segment.Features, "Drug Interactions")
}

func TestCatalogHandler_GetTemplates(t *testing.T) {
	env := newTestEnv(t, nil, 0)
	h := NewCatalogHandler(env.catalog, env.validator)

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantTotal  int
	}{
		{"all", "", http.StatusOK, 5},
		{"payer", "?segment=payer", http.StatusOK, 1},
		{"unknown segment", "?segment=dentistry", http.StatusNotFound, 0},
		{"too long", "?segment=" + strings.Repeat("a", 65), http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.GetTemplates(rec, httptest.NewRequest(http.MethodGet, "/api/v1/templates"+tt.query, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				var list dto.TemplateListResponse
				decodeEnvelope(t, rec, &list)
				assert.Equal(t, tt.wantTotal, list.Total)
			}
		})
	}
}

func TestCatalogHandler_ComplianceFeatures(t *testing.T) {
	env := newTestEnv(t, nil, 0)
	h := NewCatalogHandler(env.catalog, env.validator)

	rec := httptest.NewRecorder()
	h.GetComplianceFeatures(rec, httptest.NewRequest(http.MethodGet, "/api/v1/compliance-features", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var features []dto.ComplianceFeatureResponse
	decodeEnvelope(t, rec, &features)
	assert.Len(t, features, 4)
}
