package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/inspection-service/internal/config"
)

const sessionKeyPrefix = "session:"

// ErrNoSession indicates the presented cookie does not map to a live
// server-side session.
var ErrNoSession = errors.New("no active session")

// SessionManager issues and resolves opaque session cookies. The cookie
// value is an HS256-signed envelope around a random session id; the user
// identity lives server-side in Redis under that id and expires with the
// cookie.
type SessionManager struct {
	client     *redis.Client
	secret     []byte
	ttl        time.Duration
	cookieName string
	secure     bool
}

// NewSessionManager builds a manager from configuration.
func NewSessionManager(client *redis.Client, cfg config.SessionConfig) *SessionManager {
	return &SessionManager{
		client:     client,
		secret:     []byte(cfg.Secret),
		ttl:        cfg.TTL(),
		cookieName: cfg.CookieName,
		secure:     cfg.SecureCookie,
	}
}

// CookieName returns the configured cookie name.
func (m *SessionManager) CookieName() string {
	return m.cookieName
}

// TTL returns the session lifetime.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Secure reports whether the cookie should carry the Secure attribute.
func (m *SessionManager) Secure() bool {
	return m.secure
}

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// Issue creates a server-side session for the user and returns the signed
// cookie value together with its expiry.
func (m *SessionManager) Issue(ctx context.Context, userID string) (string, time.Time, error) {
	sid := uuid.NewString()
	expiresAt := time.Now().Add(m.ttl)

	if err := m.client.Set(ctx, sessionKeyPrefix+sid, userID, m.ttl).Err(); err != nil {
		return "", time.Time{}, fmt.Errorf("store session: %w", err)
	}

	claims := &sessionClaims{
		SessionID: sid,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Resolve maps a cookie value back to the user id it was issued for.
// Any tampered, expired or revoked session yields ErrNoSession.
func (m *SessionManager) Resolve(ctx context.Context, cookieValue string) (string, error) {
	sid, err := m.parseEnvelope(cookieValue)
	if err != nil {
		return "", ErrNoSession
	}

	userID, err := m.client.Get(ctx, sessionKeyPrefix+sid).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNoSession
		}
		return "", fmt.Errorf("load session: %w", err)
	}
	return userID, nil
}

// Revoke deletes the server-side session; the cookie becomes useless even
// if the client keeps it.
func (m *SessionManager) Revoke(ctx context.Context, cookieValue string) error {
	sid, err := m.parseEnvelope(cookieValue)
	if err != nil {
		return nil
	}
	return m.client.Del(ctx, sessionKeyPrefix+sid).Err()
}

func (m *SessionManager) parseEnvelope(cookieValue string) (string, error) {
	if cookieValue == "" {
		return "", errors.New("empty cookie")
	}
	parsed, err := jwt.ParseWithClaims(cookieValue, &sessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid || claims.SessionID == "" {
		return "", errors.New("invalid session claims")
	}
	return claims.SessionID, nil
}
