package session

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"studymate/internal/domain"
	"studymate/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Manager is the login gate: an explicit session context with init and
// teardown tied to login and logout, checked at the command dispatch
// point so no screen can be reached without it.
//
// The session is a locally issued JWT signed with a per-process random
// key. Nothing is sent to the backend and nothing is persisted: the
// token dies with the process, and the backend contract carries no
// authentication in this version.
type Manager struct {
	secretKey []byte
	ttl       time.Duration

	mu    sync.Mutex
	token string
	email string
}

// Claims are the session token claims.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// NewManager creates a session manager with a fresh random signing key.
func NewManager(ttl time.Duration) (*Manager, error) {
	if ttl <= 0 {
		ttl = time.Hour
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate session key: %w", err)
	}
	return &Manager{secretKey: key, ttl: ttl}, nil
}

// Login validates the credentials locally and opens a session. The
// password is checked for presence only and never retained.
func (m *Manager) Login(email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return domain.NewValidationError("email and password are required")
	}

	now := time.Now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secretKey)
	if err != nil {
		return domain.NewInternalError("failed to open session", err)
	}

	m.mu.Lock()
	m.token = signed
	m.email = email
	m.mu.Unlock()

	logger.Get().Info("session opened", zap.String("email", email))
	return nil
}

// Require returns an UNAUTHORIZED error unless a live, unexpired session
// exists. An expired session is torn down on detection.
func (m *Manager) Require() error {
	m.mu.Lock()
	token := m.token
	m.mu.Unlock()

	if token == "" {
		return domain.NewUnauthorizedError("please log in first")
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secretKey, nil
	})
	if err != nil || !parsed.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			logger.Get().Warn("session expired", zap.String("email", m.Email()))
			m.Logout()
			return domain.NewUnauthorizedError("your session has expired; please log in again")
		}
		return domain.NewUnauthorizedError("please log in first")
	}
	return nil
}

// Active reports whether a live session exists.
func (m *Manager) Active() bool {
	return m.Require() == nil
}

// Email returns the logged-in email, or "" without a session.
func (m *Manager) Email() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.email
}

// Logout tears the session down.
func (m *Manager) Logout() {
	m.mu.Lock()
	m.token = ""
	m.email = ""
	m.mu.Unlock()
}
