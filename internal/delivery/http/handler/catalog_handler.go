package handler

import (
	"errors"
	"net/http"

	"mediforge/internal/delivery/dto"
	"mediforge/internal/usecase"
	"mediforge/pkg/response"
	"mediforge/pkg/validator"

	"github.com/gorilla/mux"
)

type CatalogHandler struct {
	catalogUsecase usecase.CatalogUsecase
	validator      *validator.CustomValidator
}

func NewCatalogHandler(catalogUsecase usecase.CatalogUsecase, validator *validator.CustomValidator) *CatalogHandler {
	return &CatalogHandler{
		catalogUsecase: catalogUsecase,
		validator:      validator,
	}
}

func (h *CatalogHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Service is healthy", h.catalogUsecase.GetHealth(r.Context()))
}

func (h *CatalogHandler) Info(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Service info retrieved successfully", h.catalogUsecase.GetInfo(r.Context()))
}

func (h *CatalogHandler) GetAllSegments(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Segments retrieved successfully", h.catalogUsecase.GetAllSegments(r.Context()))
}

func (h *CatalogHandler) GetSegment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	segment, err := h.catalogUsecase.GetSegment(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrSegmentNotFound) {
			response.NotFound(w, "Segment not found")
			return
		}
		response.InternalServerError(w, "Failed to get segment")
		return
	}

	response.Success(w, http.StatusOK, "Segment retrieved successfully", segment)
}

func (h *CatalogHandler) GetComplianceFeatures(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Compliance features retrieved successfully", h.catalogUsecase.GetComplianceFeatures(r.Context()))
}

func (h *CatalogHandler) GetTemplates(w http.ResponseWriter, r *http.Request) {
	filter := dto.TemplateFilter{Segment: r.URL.Query().Get("segment")}
	if err := h.validator.Validate(&filter); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	templates, err := h.catalogUsecase.GetTemplates(r.Context(), filter)
	if err != nil {
		if errors.Is(err, usecase.ErrSegmentNotFound) {
			response.NotFound(w, "Segment not found")
			return
		}
		response.InternalServerError(w, "Failed to get templates")
		return
	}

	response.Success(w, http.StatusOK, "Templates retrieved successfully", templates)
}
