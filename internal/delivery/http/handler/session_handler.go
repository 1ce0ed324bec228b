package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"mediforge/internal/delivery/dto"
	"mediforge/internal/delivery/http/middleware"
	"mediforge/internal/usecase"
	"mediforge/pkg/response"
	"mediforge/pkg/validator"
)

type SessionHandler struct {
	landingUsecase usecase.LandingUsecase
	validator      *validator.CustomValidator
}

func NewSessionHandler(landingUsecase usecase.LandingUsecase, validator *validator.CustomValidator) *SessionHandler {
	return &SessionHandler{
		landingUsecase: landingUsecase,
		validator:      validator,
	}
}

func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionIDFromContext(r.Context())
	if !ok {
		response.InternalServerError(w, "View session missing")
		return
	}

	session, err := h.landingUsecase.GetSession(r.Context(), sessionID)
	if err != nil {
		h.writeError(w, err, "Failed to get session")
		return
	}

	response.Success(w, http.StatusOK, "Session retrieved successfully", session)
}

func (h *SessionHandler) SelectSegment(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionIDFromContext(r.Context())
	if !ok {
		response.InternalServerError(w, "View session missing")
		return
	}

	var req dto.SelectSegmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	session, err := h.landingUsecase.SelectSegment(r.Context(), sessionID, &req)
	if err != nil {
		h.writeError(w, err, "Failed to select segment")
		return
	}

	response.Success(w, http.StatusOK, "Segment selected successfully", session)
}

func (h *SessionHandler) BeginNavigation(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionIDFromContext(r.Context())
	if !ok {
		response.InternalServerError(w, "View session missing")
		return
	}

	nav, err := h.landingUsecase.BeginNavigation(r.Context(), sessionID)
	if err != nil {
		h.writeError(w, err, "Failed to begin navigation")
		return
	}

	response.Success(w, http.StatusOK, "Navigation started", nav)
}

func (h *SessionHandler) ResetNavigation(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionIDFromContext(r.Context())
	if !ok {
		response.InternalServerError(w, "View session missing")
		return
	}

	session, err := h.landingUsecase.ResetNavigation(r.Context(), sessionID)
	if err != nil {
		h.writeError(w, err, "Failed to reset navigation")
		return
	}

	response.Success(w, http.StatusOK, "Navigation reset", session)
}

func (h *SessionHandler) writeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, usecase.ErrSegmentNotFound):
		response.NotFound(w, "Segment not found")
	case errors.Is(err, usecase.ErrSessionNotFound):
		response.NotFound(w, "View session not found")
	case errors.Is(err, usecase.ErrNavigationInProgress):
		response.Conflict(w, "Navigation already in progress")
	default:
		response.InternalServerError(w, fallback)
	}
}
