package handler

import (
	"context"
	"net/http"
	"net/url"

	"mediforge/internal/delivery/dto"
	"mediforge/internal/delivery/http/view"
	"mediforge/internal/domain/entity"
	"mediforge/internal/usecase"
	"mediforge/pkg/response"

	"github.com/a-h/templ"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	PatientSocketPath        = "/ws/patients"
	patientListFailedMessage = "Failed to load patients"
)

// Message types pushed over the live patient list socket
const (
	MessageLoading   = "loading"
	MessagePopulated = "populated"
	MessageFailed    = "failed"
)

type PatientHandler struct {
	patientUsecase usecase.PatientListUsecase
	originPatterns []string
	log            *logrus.Logger
}

// NewPatientHandler accepts socket upgrades from allowedOrigins in addition
// to same-origin pages.
func NewPatientHandler(patientUsecase usecase.PatientListUsecase, allowedOrigins []string, log *logrus.Logger) *PatientHandler {
	var patterns []string
	for _, origin := range allowedOrigins {
		if u, err := url.Parse(origin); err == nil && u.Host != "" {
			patterns = append(patterns, u.Host)
		}
	}
	return &PatientHandler{
		patientUsecase: patientUsecase,
		originPatterns: patterns,
		log:            log,
	}
}

func (h *PatientHandler) Page(w http.ResponseWriter, r *http.Request) {
	templ.Handler(view.PatientListPage(&dto.PatientListPageData{
		Title:     "Patient List | MediForge",
		SocketURL: PatientSocketPath,
	})).ServeHTTP(w, r)
}

func (h *PatientHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.patientUsecase.ListPatients(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}

// Live runs one patient list view for the lifetime of the socket. The
// view mounts on connect and is torn down when the client goes away.
func (h *PatientHandler) Live(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		h.log.Warnf("Failed to accept patient list socket: %+v", err)
		return
	}
	defer conn.CloseNow()

	ctx := conn.CloseRead(r.Context())
	viewID := uuid.New()

	// Buffered for the loading and the terminal snapshot so notify never
	// blocks while the loader holds its lock.
	updates := make(chan entity.PatientListSnapshot, 2)
	loader := h.patientUsecase.Mount(ctx, viewID, func(s entity.PatientListSnapshot) {
		updates <- s
	})
	defer h.patientUsecase.Unmount(context.WithoutCancel(ctx), viewID, loader)

	loader.Start(ctx)

	for {
		select {
		case <-ctx.Done():
			h.log.Debugf("Patient list view %s closed", viewID)
			return
		case snapshot := <-updates:
			msg, err := h.message(ctx, viewID, snapshot)
			if err != nil {
				h.log.Warnf("Failed to render patient list: %+v", err)
				conn.Close(websocket.StatusInternalError, "render failed")
				return
			}
			if err := wsjson.Write(ctx, conn, msg); err != nil {
				h.log.Debugf("Patient list view %s write failed: %v", viewID, err)
				return
			}
		}
	}
}

func (h *PatientHandler) message(ctx context.Context, viewID uuid.UUID, snapshot entity.PatientListSnapshot) (*dto.PatientListMessage, error) {
	data := h.patientUsecase.ToResponse(snapshot)
	msg := &dto.PatientListMessage{
		ViewID: viewID.String(),
		Data:   data,
	}

	var component templ.Component
	switch snapshot.State {
	case entity.ListPopulated:
		msg.Type = MessagePopulated
		component = view.PatientList(data)
	case entity.ListFailed:
		msg.Type = MessageFailed
		msg.Message = patientListFailedMessage
		component = view.PatientListFailed(patientListFailedMessage)
	default:
		msg.Type = MessageLoading
		component = view.PatientListLoading()
	}

	html, err := view.Render(ctx, component)
	if err != nil {
		return nil, err
	}
	msg.HTML = html
	return msg, nil
}
