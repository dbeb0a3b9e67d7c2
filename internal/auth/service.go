package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/artefact/buzz-dashboard/internal/config"
	"github.com/artefact/buzz-dashboard/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidCredentials = errors.New("Incorrect email or password")
	ErrInvalidToken       = errors.New("invalid or expired session")
)

// Claims is the payload of a session token
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// Session is an authenticated dashboard session
type Session struct {
	ID        string      `json:"id"`
	Token     string      `json:"token"`
	User      models.User `json:"user"`
	ExpiresAt time.Time   `json:"expires_at"`
}

// Service checks the single dashboard login and tracks live sessions
type Service struct {
	email    string
	password string
	name     string
	delay    time.Duration
	ttl      time.Duration
	secret   []byte

	sessions map[string]Session
	onExpire []func(id string)
	now      func() time.Time
	mu       sync.RWMutex
}

// NewService creates an auth service from the login and session configuration
func NewService(cfg *config.Config) *Service {
	return &Service{
		email:    cfg.LoginEmail,
		password: cfg.LoginPassword,
		name:     cfg.LoginName,
		delay:    cfg.LoginDelay,
		ttl:      cfg.SessionTTL,
		secret:   []byte(cfg.JWTSecret),
		sessions: make(map[string]Session),
		now:      time.Now,
	}
}

// Login checks the credentials after the configured delay and opens a session
func (s *Service) Login(ctx context.Context, email, password string) (Session, error) {
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Session{}, ctx.Err()
		case <-timer.C:
		}
	}

	if !strings.EqualFold(strings.TrimSpace(email), s.email) || password != s.password {
		logrus.Warnf("Rejected login for %q", email)
		return Session{}, ErrInvalidCredentials
	}

	now := s.now()
	session := Session{
		ID:        uuid.NewString(),
		User:      models.User{Email: s.email, Name: s.name},
		ExpiresAt: now.Add(s.ttl),
	}

	claims := &Claims{
		Email: session.User.Email,
		Name:  session.User.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Subject:   session.User.Email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return Session{}, err
	}
	session.Token = token

	s.PruneExpired()

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	logrus.Infof("Session %s opened for %s", session.ID, session.User.Email)
	return session, nil
}

// Validate parses a session token and returns its live session
func (s *Service) Validate(token string) (Session, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return Session{}, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return Session{}, ErrInvalidToken
	}

	s.mu.RLock()
	session, ok := s.sessions[claims.ID]
	s.mu.RUnlock()
	if !ok {
		return Session{}, ErrInvalidToken
	}

	return session, nil
}

// Logout revokes a session. Unknown sessions are ignored.
func (s *Service) Logout(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; ok {
		delete(s.sessions, id)
		logrus.Infof("Session %s closed", id)
	}
}

// ActiveSessions returns the number of open sessions
func (s *Service) ActiveSessions() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// OnExpire registers fn to run with the ID of every session dropped by PruneExpired
func (s *Service) OnExpire(fn func(id string)) {
	s.mu.Lock()
	s.onExpire = append(s.onExpire, fn)
	s.mu.Unlock()
}

// PruneExpired drops sessions whose token has expired and returns how many were removed.
// Login calls it before registering a new session.
func (s *Service) PruneExpired() int {
	now := s.now()

	s.mu.Lock()
	var expired []string
	for id, session := range s.sessions {
		if !now.Before(session.ExpiresAt) {
			delete(s.sessions, id)
			expired = append(expired, id)
		}
	}
	hooks := append([]func(string){}, s.onExpire...)
	s.mu.Unlock()

	for _, id := range expired {
		for _, fn := range hooks {
			fn(id)
		}
	}

	if len(expired) > 0 {
		logrus.Infof("Pruned %d expired sessions", len(expired))
	}
	return len(expired)
}
