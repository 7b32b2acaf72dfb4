package client

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MemoryTokenStore holds the bearer credential for the current session.
// A stored JWT whose exp claim has passed is reported as absent so callers
// fall back to the unauthenticated path instead of sending a dead token.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryTokenStore initializes an empty credential store
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

// Set replaces the stored credential
func (s *MemoryTokenStore) Set(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// Clear discards the stored credential
func (s *MemoryTokenStore) Clear() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
}

// Token returns the stored credential, or an empty string when none is held
// or the held JWT has expired
func (s *MemoryTokenStore) Token() string {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()

	if token == "" || expired(token) {
		return ""
	}
	return token
}

func expired(token string) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		// opaque tokens pass through untouched
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
