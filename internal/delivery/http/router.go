package http

import (
	"net/http"
	"strings"

	"mediforge/internal/delivery/http/handler"
	"mediforge/internal/delivery/http/middleware"
	"mediforge/pkg/response"

	"github.com/gorilla/mux"
)

const apiPrefix = "/api/v1"

type Router struct {
	router             *mux.Router
	landingHandler     *handler.LandingHandler
	sessionHandler     *handler.SessionHandler
	catalogHandler     *handler.CatalogHandler
	patientHandler     *handler.PatientHandler
	sessionMiddleware  *middleware.SessionMiddleware
	corsMiddleware     *middleware.CORSMiddleware
	loggingMiddleware  *middleware.LoggingMiddleware
	recoveryMiddleware *middleware.RecoveryMiddleware
}

func NewRouter(
	landingHandler *handler.LandingHandler,
	sessionHandler *handler.SessionHandler,
	catalogHandler *handler.CatalogHandler,
	patientHandler *handler.PatientHandler,
	sessionMiddleware *middleware.SessionMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
	recoveryMiddleware *middleware.RecoveryMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		landingHandler:     landingHandler,
		sessionHandler:     sessionHandler,
		catalogHandler:     catalogHandler,
		patientHandler:     patientHandler,
		sessionMiddleware:  sessionMiddleware,
		corsMiddleware:     corsMiddleware,
		loggingMiddleware:  loggingMiddleware,
		recoveryMiddleware: recoveryMiddleware,
	}
}

func (r *Router) Setup() http.Handler {
	// Landing page (view session bound)
	pages := r.router.NewRoute().Subrouter()
	pages.Use(r.sessionMiddleware.Attach)
	pages.HandleFunc("/", r.landingHandler.Index).Methods(http.MethodGet)
	pages.HandleFunc("/segments", r.landingHandler.SelectSegment).Methods(http.MethodPost)
	pages.HandleFunc("/navigate", r.landingHandler.Navigate).Methods(http.MethodPost)

	// Patient list view
	r.router.HandleFunc("/patients", r.patientHandler.Page).Methods(http.MethodGet)
	r.router.HandleFunc(handler.PatientSocketPath, r.patientHandler.Live).Methods(http.MethodGet)

	// API versioning. Subrouters carry no matchers of their own: a
	// PathPrefix matcher is copied into every child route and clears a
	// method mismatch recorded by an earlier sibling, turning 405s into 404s.
	api := r.router.NewRoute().Subrouter()

	api.HandleFunc(apiPrefix+"/health", r.catalogHandler.Health).Methods(http.MethodGet)
	api.HandleFunc(apiPrefix+"/info", r.catalogHandler.Info).Methods(http.MethodGet)

	// Catalog
	api.HandleFunc(apiPrefix+"/segments", r.catalogHandler.GetAllSegments).Methods(http.MethodGet)
	api.HandleFunc(apiPrefix+"/segments/{id}", r.catalogHandler.GetSegment).Methods(http.MethodGet)
	api.HandleFunc(apiPrefix+"/compliance-features", r.catalogHandler.GetComplianceFeatures).Methods(http.MethodGet)
	api.HandleFunc(apiPrefix+"/templates", r.catalogHandler.GetTemplates).Methods(http.MethodGet)

	api.HandleFunc(apiPrefix+"/patients", r.patientHandler.ListPatients).Methods(http.MethodGet)

	// View session
	session := r.router.NewRoute().Subrouter()
	session.Use(r.sessionMiddleware.Attach)
	session.HandleFunc(apiPrefix+"/session", r.sessionHandler.GetSession).Methods(http.MethodGet)
	session.HandleFunc(apiPrefix+"/session/segment", r.sessionHandler.SelectSegment).Methods(http.MethodPut)
	session.HandleFunc(apiPrefix+"/session/navigation", r.sessionHandler.BeginNavigation).Methods(http.MethodPost)
	session.HandleFunc(apiPrefix+"/session/navigation", r.sessionHandler.ResetNavigation).Methods(http.MethodDelete)

	r.router.NotFoundHandler = http.HandlerFunc(notFound)
	r.router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	// Logging is outermost so recovered panics are logged as 500s with
	// their request id.
	var h http.Handler = r.router
	h = r.corsMiddleware.Handle(h)
	h = middleware.SecurityHeaders(h)
	h = r.recoveryMiddleware.Handle(h)
	h = r.loggingMiddleware.Handle(h)
	return h
}

func notFound(w http.ResponseWriter, req *http.Request) {
	if strings.HasPrefix(req.URL.Path, apiPrefix+"/") {
		response.NotFound(w, "Route not found")
		return
	}
	http.NotFound(w, req)
}

func methodNotAllowed(w http.ResponseWriter, req *http.Request) {
	response.MethodNotAllowed(w)
}
