package handler

import (
	"bytes"
	"errors"
	"net/http"

	"mediforge/internal/delivery/dto"
	"mediforge/internal/delivery/http/middleware"
	"mediforge/internal/delivery/http/view"
	"mediforge/internal/usecase"
	"mediforge/pkg/response"
	"mediforge/pkg/validator"

	"github.com/sirupsen/logrus"
)

const navigationInProgressNotice = "The generator is already starting. Please wait."

type LandingHandler struct {
	landingUsecase usecase.LandingUsecase
	validator      *validator.CustomValidator
	log            *logrus.Logger
}

func NewLandingHandler(landingUsecase usecase.LandingUsecase, validator *validator.CustomValidator, log *logrus.Logger) *LandingHandler {
	return &LandingHandler{
		landingUsecase: landingUsecase,
		validator:      validator,
		log:            log,
	}
}

func (h *LandingHandler) Index(w http.ResponseWriter, r *http.Request) {
	h.renderLanding(w, r, http.StatusOK, "")
}

// SelectSegment handles the tab form. Unknown ids leave the selection as
// it was and the page is shown again.
func (h *LandingHandler) SelectSegment(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionIDFromContext(r.Context())
	if !ok {
		response.InternalServerError(w, "View session missing")
		return
	}

	if err := r.ParseForm(); err != nil {
		response.BadRequest(w, "Invalid form body")
		return
	}

	req := dto.SelectSegmentRequest{SegmentID: r.PostFormValue("segment")}
	if err := h.validator.Validate(&req); err != nil {
		h.log.Debugf("Ignoring invalid segment form: %s", h.validator.Summary(err))
		http.Redirect(w, r, "/#segments", http.StatusSeeOther)
		return
	}

	if _, err := h.landingUsecase.SelectSegment(r.Context(), sessionID, &req); err != nil {
		if !errors.Is(err, usecase.ErrSegmentNotFound) {
			response.InternalServerError(w, "Failed to select segment")
			return
		}
	}

	http.Redirect(w, r, "/#segments", http.StatusSeeOther)
}

// Navigate dispatches the single guarded navigation to the generator.
func (h *LandingHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionIDFromContext(r.Context())
	if !ok {
		response.InternalServerError(w, "View session missing")
		return
	}

	nav, err := h.landingUsecase.BeginNavigation(r.Context(), sessionID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNavigationInProgress):
			h.renderLanding(w, r, http.StatusConflict, navigationInProgressNotice)
		case errors.Is(err, usecase.ErrSessionNotFound):
			http.Redirect(w, r, "/", http.StatusSeeOther)
		default:
			response.InternalServerError(w, "Failed to start navigation")
		}
		return
	}

	http.Redirect(w, r, nav.Target, http.StatusSeeOther)
}

func (h *LandingHandler) renderLanding(w http.ResponseWriter, r *http.Request, status int, notice string) {
	sessionID, ok := middleware.GetSessionIDFromContext(r.Context())
	if !ok {
		response.InternalServerError(w, "View session missing")
		return
	}

	page, err := h.landingUsecase.GetLandingPage(r.Context(), sessionID)
	if err != nil {
		response.InternalServerError(w, "Failed to load landing page")
		return
	}
	page.Notice = notice

	var buf bytes.Buffer
	if err := view.Landing(page).Render(r.Context(), &buf); err != nil {
		h.log.Warnf("Failed to render landing page: %+v", err)
		response.InternalServerError(w, "Failed to render landing page")
		return
	}

	if err := response.HTML(w, status, buf.Bytes()); err != nil {
		h.log.Warnf("Failed to write landing page: %+v", err)
	}
}
