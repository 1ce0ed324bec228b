package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const sessionTokenType = "view_session"

var ErrInvalidToken = errors.New("invalid session token")

type Claims struct {
	SessionID uuid.UUID `json:"session_id"`
	TokenType string    `json:"token_type"`
	jwt.RegisteredClaims
}

// SessionTokenService signs the view session id carried in the session
// cookie so clients cannot forge or guess other sessions.
type SessionTokenService struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

func NewSessionTokenService(secret string, expiry time.Duration) *SessionTokenService {
	return &SessionTokenService{
		secret: []byte(secret),
		expiry: expiry,
		now:    time.Now,
	}
}

func (s *SessionTokenService) Issue(sessionID uuid.UUID) (string, error) {
	now := s.now()
	claims := Claims{
		SessionID: sessionID,
		TokenType: sessionTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse validates tokenString and returns the session id it carries.
func (s *SessionTokenService) Parse(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return uuid.Nil, errors.Join(ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.TokenType != sessionTokenType || claims.SessionID == uuid.Nil {
		return uuid.Nil, ErrInvalidToken
	}

	return claims.SessionID, nil
}

func (s *SessionTokenService) Expiry() time.Duration {
	return s.expiry
}
