package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"resume-builder/internal/model"
)

// Enhancer rewrites record descriptions through the AI service. At most one
// request per record is in flight; different records proceed independently.
type Enhancer struct {
	store    SessionStore
	rewriter Rewriter
	log      zerolog.Logger

	mu       sync.Mutex
	inFlight map[string]map[string]struct{} // session id -> record ids
}

func NewEnhancer(store SessionStore, rewriter Rewriter, log zerolog.Logger) *Enhancer {
	return &Enhancer{store: store, rewriter: rewriter, log: log, inFlight: map[string]map[string]struct{}{}}
}

// Enhance replaces the description of one record with its rewritten form.
// The current description is read from the session at call time.
func (e *Enhancer) Enhance(ctx context.Context, sessionID, section, itemID string) (model.ResumeData, error) {
	sec, err := model.ParseSection(section)
	if err != nil {
		return model.ResumeData{}, editError("enhance", err)
	}
	if !sec.HasField("description") {
		return model.ResumeData{}, opError("enhance", ErrInvalidInput, "This section has no description to enhance.", nil)
	}
	s, err := e.store.Get(ctx, sessionID)
	if err != nil {
		return model.ResumeData{}, editError("enhance", err)
	}
	original, err := s.Data().ItemField(sec, itemID, "description")
	if err != nil {
		return model.ResumeData{}, editError("enhance", err)
	}
	if strings.TrimSpace(original) == "" {
		return model.ResumeData{}, opError("enhance", ErrInvalidInput, MsgEmptyDescription, nil)
	}

	if !e.acquire(sessionID, itemID) {
		return model.ResumeData{}, opError("enhance", ErrEnhancementInFlight, MsgEnhanceInFlight, nil)
	}
	defer e.release(sessionID, itemID)

	log := e.log.With().Str("session", sessionID).Str("section", section).Str("item", itemID).Logger()
	enhanced, err := e.rewriter.Format(ctx, original)
	if err != nil {
		log.Error().Err(err).Msg("enhancement failed")
		return model.ResumeData{}, opError("enhance", ErrService, MsgEnhanceFailed, err)
	}
	enhanced = strings.TrimSpace(enhanced)
	if enhanced == "" {
		log.Error().Msg("enhancement returned empty text")
		return model.ResumeData{}, opError("enhance", ErrService, MsgEnhanceFailed, errors.New("empty response"))
	}

	out, err := e.store.Update(ctx, sessionID, func(d model.ResumeData) (model.ResumeData, error) {
		return model.UpdateItem(d, sec, itemID, "description", enhanced)
	})
	if err != nil {
		return model.ResumeData{}, editError("enhance", err)
	}
	log.Info().Int("chars", len(enhanced)).Msg("description enhanced")
	return out, nil
}

// InFlight lists the record ids of a session with a pending enhancement.
func (e *Enhancer) InFlight(sessionID string) []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	ids := make([]string, 0, len(e.inFlight[sessionID]))
	for id := range e.inFlight[sessionID] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (e *Enhancer) acquire(sessionID, itemID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	set, ok := e.inFlight[sessionID]
	if !ok {
		set = map[string]struct{}{}
		e.inFlight[sessionID] = set
	}
	if _, busy := set[itemID]; busy {
		return false
	}
	set[itemID] = struct{}{}
	return true
}

func (e *Enhancer) release(sessionID, itemID string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.inFlight[sessionID], itemID)
	if len(e.inFlight[sessionID]) == 0 {
		delete(e.inFlight, sessionID)
	}
}
