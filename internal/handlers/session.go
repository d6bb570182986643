package handlers

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"dropin/internal/card"
	"dropin/internal/dom"
	"dropin/internal/hostedfields/sandbox"
	"dropin/internal/model"
)

// Session is one live checkout: a document, a shell model, the card sheet
// and its sandbox hosted fields instance.
type Session struct {
	ID         string
	MerchantID string
	Document   *dom.Document
	Model      *model.Model
	View       *card.View
	Instance   *sandbox.Instance
	CreatedAt  time.Time
}

// SessionStore holds live checkout sessions in memory.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: map[string]*Session{}}
}

// Add registers a session under a fresh id and returns it.
func (s *SessionStore) Add(session *Session) *Session {
	session.ID = uuid.NewString()
	session.CreatedAt = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return session
}

func (s *SessionStore) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	return session, ok
}

func (s *SessionStore) Remove(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	return session, ok
}
