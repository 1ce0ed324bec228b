package middleware

import (
	"context"
	"net/http"

	"mediforge/internal/usecase"
	"mediforge/pkg/response"
	"mediforge/pkg/token"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type contextKey string

const (
	SessionIDKey contextKey = "session_id"
	RequestIDKey contextKey = "request_id"
)

type SessionMiddleware struct {
	tokenService   *token.SessionTokenService
	landingUsecase usecase.LandingUsecase
	cookieName     string
	secureCookie   bool
	log            *logrus.Logger
}

func NewSessionMiddleware(
	tokenService *token.SessionTokenService,
	landingUsecase usecase.LandingUsecase,
	cookieName string,
	secureCookie bool,
	log *logrus.Logger,
) *SessionMiddleware {
	return &SessionMiddleware{
		tokenService:   tokenService,
		landingUsecase: landingUsecase,
		cookieName:     cookieName,
		secureCookie:   secureCookie,
		log:            log,
	}
}

// Attach resolves the caller's view session from the signed cookie,
// starting a new session when the cookie is missing, invalid or stale.
func (m *SessionMiddleware) Attach(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.Nil
		if cookie, err := r.Cookie(m.cookieName); err == nil {
			if parsed, err := m.tokenService.Parse(cookie.Value); err == nil {
				id = parsed
			} else {
				m.log.Debugf("Ignoring invalid session cookie: %v", err)
			}
		}

		session, created, err := m.landingUsecase.ResolveSession(r.Context(), id)
		if err != nil {
			response.InternalServerError(w, "Failed to resolve view session")
			return
		}

		if created {
			signed, err := m.tokenService.Issue(session.ID)
			if err != nil {
				m.log.Warnf("Failed to issue session token: %+v", err)
				response.InternalServerError(w, "Failed to issue view session")
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     m.cookieName,
				Value:    signed,
				Path:     "/",
				MaxAge:   int(m.tokenService.Expiry().Seconds()),
				HttpOnly: true,
				Secure:   m.secureCookie,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), SessionIDKey, session.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSessionIDFromContext extracts the view session ID from context
func GetSessionIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(SessionIDKey).(uuid.UUID)
	return id, ok
}

// GetRequestIDFromContext extracts the request ID from context
func GetRequestIDFromContext(ctx context.Context) string {
	rid, _ := ctx.Value(RequestIDKey).(string)
	return rid
}
