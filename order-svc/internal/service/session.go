package service

import (
	"errors"
	"time"

	"tableside/order-svc/internal/domain"

	"github.com/golang-jwt/jwt/v5"
)

type Scope string

const (
	ScopeAdmin    Scope = "admin"
	ScopeSecurity Scope = "security"
)

var scopeRank = map[Scope]int{
	ScopeAdmin:    1,
	ScopeSecurity: 2,
}

// Session is the proof of a PIN check. It is handed explicitly to every
// admin operation; nothing about authentication lives in global state.
type Session struct {
	Token     string    `json:"token"`
	Scope     Scope     `json:"scope"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Require checks that the session is unexpired and covers scope.
// A security session also covers admin operations.
func (s Session) Require(scope Scope, now time.Time) error {
	if s.Token == "" || !now.Before(s.ExpiresAt) {
		return domain.ErrSessionExpired
	}
	if scopeRank[s.Scope] < scopeRank[scope] {
		return domain.ErrForbidden
	}
	return nil
}

type sessionClaims struct {
	Scope Scope `json:"scope"`
	jwt.RegisteredClaims
}

type SessionManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionManager(secret string, ttl time.Duration) *SessionManager {
	return &SessionManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (m *SessionManager) Issue(scope Scope) (Session, error) {
	issued := m.now()
	expires := issued.Add(m.ttl)
	claims := &sessionClaims{
		Scope: scope,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expires),
			IssuedAt:  jwt.NewNumericDate(issued),
			Subject:   string(scope),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return Session{}, err
	}
	return Session{Token: token, Scope: scope, IssuedAt: issued, ExpiresAt: expires}, nil
}

// Parse validates signature and expiry. Every failure is reported as
// ErrSessionExpired so clients simply log in again.
func (m *SessionManager) Parse(token string) (Session, error) {
	if token == "" {
		return Session{}, domain.ErrSessionExpired
	}
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return Session{}, errors.Join(domain.ErrSessionExpired, err)
	}
	if _, ok := scopeRank[claims.Scope]; !ok {
		return Session{}, domain.ErrSessionExpired
	}
	session := Session{Token: token, Scope: claims.Scope, ExpiresAt: claims.ExpiresAt.Time}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}
	return session, nil
}
