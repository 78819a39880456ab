package session

import (
	"encoding/json"
	"errors"
	"sync"

	storageport "github.com/nahid515023/MyTutor-App-sub002/internal/infrastructure/storage/port"
	auth "github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/application/domain"
	"github.com/nahid515023/MyTutor-App-sub002/internal/pkg/auth/token"
)

// storageKey is where the serialized session lives in durable storage.
const storageKey = "mytutor.session"

// ErrMalformedCredential reports a persisted session that failed validation
// at load time. The store clears it and continues as logged out.
var ErrMalformedCredential = errors.New("session: malformed persisted credential")

// Session is the authenticated identity and authorization attributes of the
// current client. It is owned exclusively by the Store; everything else
// reads copies.
type Session struct {
	UserID   string             `json:"user_id"`
	Name     string             `json:"name"`
	Email    string             `json:"email"`
	Role     auth.Role          `json:"role"`
	Verified bool               `json:"verified"`
	Status   auth.AccountStatus `json:"status"`
	Token    string             `json:"token"`
}

// Store holds the current session and persists it across restarts.
// Single writer (login/logout/refresh flows), many readers.
type Store struct {
	mu      sync.RWMutex
	current *Session
	storage storageport.Storage
}

// NewStore loads any persisted session from storage. A malformed record —
// unparseable JSON or a token that is not structurally a JWT — is removed
// and treated as absent, so a bad persisted credential can never wedge the
// client.
func NewStore(storage storageport.Storage) *Store {
	s := &Store{storage: storage}

	raw, err := storage.Get(storageKey)
	if err != nil {
		return s
	}

	var sess Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil || sess.UserID == "" || !token.WellFormed(sess.Token) {
		_ = storage.Remove(storageKey)
		return s
	}

	s.current = &sess
	return s
}

// SetSession replaces the current session and persists it.
func (s *Store) SetSession(sess Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.storage.Set(storageKey, string(data)); err != nil {
		return err
	}
	s.current = &sess
	return nil
}

// ClearSession drops the current session and removes the persisted copy.
func (s *Store) ClearSession() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	return s.storage.Remove(storageKey)
}

// GetSession returns a copy of the current session, or nil when logged out.
func (s *Store) GetSession() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	cp := *s.current
	return &cp
}
