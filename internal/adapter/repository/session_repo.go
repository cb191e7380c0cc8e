package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
)

// SessionRepo keeps sessions in process memory. Nothing survives a restart.
type SessionRepo struct {
	noticeDelay time.Duration

	mu       sync.RWMutex
	sessions map[uuid.UUID]*domain.Session
}

func NewSessionRepo(noticeDelay time.Duration) *SessionRepo {
	return &SessionRepo{noticeDelay: noticeDelay, sessions: map[uuid.UUID]*domain.Session{}}
}

func (r *SessionRepo) Create(_ context.Context, data model.ResumeData) *domain.Session {
	s := domain.NewSession(data, r.noticeDelay)
	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return s
}

func (r *SessionRepo) Get(_ context.Context, id string) (*domain.Session, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", domain.ErrSessionNotFound, id)
	}
	r.mu.RLock()
	s, ok := r.sessions[uid]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	return s, nil
}

// Update applies fn to the session's resume; see domain.Session.Apply.
func (r *SessionRepo) Update(ctx context.Context, id string, fn func(model.ResumeData) (model.ResumeData, error)) (model.ResumeData, error) {
	s, err := r.Get(ctx, id)
	if err != nil {
		return model.ResumeData{}, err
	}
	return s.Apply(fn)
}

func (r *SessionRepo) Delete(_ context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: %q", domain.ErrSessionNotFound, id)
	}
	r.mu.Lock()
	s, ok := r.sessions[uid]
	delete(r.sessions, uid)
	r.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
	}
	s.Close()
	return nil
}

func (r *SessionRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
