package domain

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"resume-builder/internal/model"
)

var ErrSessionNotFound = errors.New("session not found")

// Session owns one resume for the lifetime of a browser tab.
type Session struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Notice    *Notice   `json:"-"`

	mu   sync.Mutex
	data model.ResumeData
}

func NewSession(data model.ResumeData, noticeDelay time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
		Notice:    NewNotice(noticeDelay),
		data:      data.Clone(),
	}
}

// Data returns a snapshot of the session's resume.
func (s *Session) Data() model.ResumeData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Clone()
}

// Apply runs fn against the current resume and commits its result only when
// fn succeeds. Calls are serialized per session.
func (s *Session) Apply(fn func(model.ResumeData) (model.ResumeData, error)) (model.ResumeData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(s.data.Clone())
	if err != nil {
		return s.data.Clone(), err
	}
	s.data = next.Clone()
	s.UpdatedAt = time.Now()
	return s.data.Clone(), nil
}

// Close stops the session's notice timer.
func (s *Session) Close() {
	s.Notice.Clear()
}
