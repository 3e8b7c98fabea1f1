package invitesdk

import (
	"errors"
	"sync"
)

// ErrNoToken is returned when a Session has no bearer token to send.
var ErrNoToken = errors.New("invitesdk: session has no access token")

// Session is an authenticated view of the invitation service. It is safe
// for concurrent use; the token may be swapped at any time with SetToken.
type Session struct {
	client *SDKClient

	mu          sync.RWMutex
	accessToken string
}

// SetToken replaces the bearer token used by subsequent requests.
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessToken = token
}

// AccessToken returns the current bearer token.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

func (s *Session) token() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.accessToken == "" {
		return "", ErrNoToken
	}
	return s.accessToken, nil
}
