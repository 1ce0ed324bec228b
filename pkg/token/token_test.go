package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionToken_RoundTrip(t *testing.T) {
	svc := NewSessionTokenService("secret", time.Hour)
	id := uuid.New()

	signed, err := svc.Issue(id)
	require.NoError(t, err)

	got, err := svc.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestSessionToken_Rejects(t *testing.T) {
	svc := NewSessionTokenService("secret", time.Hour)
	other := NewSessionTokenService("other-secret", time.Hour)

	foreign, err := other.Issue(uuid.New())
	require.NoError(t, err)

	expiredSvc := NewSessionTokenService("secret", time.Hour)
	expiredSvc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, err := expiredSvc.Issue(uuid.New())
	require.NoError(t, err)

	wrongType, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		SessionID: uuid.New(),
		TokenType: "access",
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"wrong secret", foreign},
		{"expired", expired},
		{"wrong type", wrongType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Parse(tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
