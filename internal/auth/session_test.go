package auth

import (
	"context"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/inspection-service/internal/config"
)

func testManager(secret string) *SessionManager {
	return NewSessionManager(nil, config.SessionConfig{
		Secret:     secret,
		CookieName: "__session",
		TTLHours:   168,
	})
}

func TestSessionConfigDefaults(t *testing.T) {
	m := testManager("s3cr3t")
	assert.Equal(t, "__session", m.CookieName())
	assert.Equal(t, 168*time.Hour, m.TTL())
}

func TestResolveRejectsGarbageCookie(t *testing.T) {
	m := testManager("s3cr3t")

	for _, cookie := range []string{"", "not-a-token", "a.b.c"} {
		_, err := m.Resolve(context.Background(), cookie)
		assert.ErrorIs(t, err, ErrNoSession, "cookie %q", cookie)
	}
}

func TestResolveRejectsForeignSignature(t *testing.T) {
	m := testManager("s3cr3t")

	// envelope signed with a different secret must not resolve
	claims := &sessionClaims{
		SessionID: "sid-123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	_, err = m.Resolve(context.Background(), forged)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestResolveRejectsExpiredEnvelope(t *testing.T) {
	m := testManager("s3cr3t")

	claims := &sessionClaims{
		SessionID: "sid-123",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("s3cr3t"))
	require.NoError(t, err)

	_, err = m.Resolve(context.Background(), expired)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestRevokeIgnoresInvalidCookie(t *testing.T) {
	m := testManager("s3cr3t")
	assert.NoError(t, m.Revoke(context.Background(), "not-a-token"))
}
