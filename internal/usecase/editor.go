package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
)

// Editor applies form edits to a session's resume, one reducer at a time.
type Editor struct {
	store SessionStore
	ids   model.IDGenerator
	log   zerolog.Logger
}

func NewEditor(store SessionStore, ids model.IDGenerator, log zerolog.Logger) *Editor {
	return &Editor{store: store, ids: ids, log: log}
}

// CreateSession starts a session holding the default template.
func (e *Editor) CreateSession(ctx context.Context) *domain.Session {
	s := e.store.Create(ctx, model.Default(e.ids))
	e.log.Info().Str("session", s.ID.String()).Msg("session created")
	return s
}

func (e *Editor) Get(ctx context.Context, sessionID string) (model.ResumeData, error) {
	s, err := e.store.Get(ctx, sessionID)
	if err != nil {
		return model.ResumeData{}, editError("get", err)
	}
	return s.Data(), nil
}

func (e *Editor) EndSession(ctx context.Context, sessionID string) error {
	if err := e.store.Delete(ctx, sessionID); err != nil {
		return editError("end session", err)
	}
	e.log.Info().Str("session", sessionID).Msg("session ended")
	return nil
}

func (e *Editor) UpdatePersonal(ctx context.Context, sessionID, field, value string) (model.ResumeData, error) {
	out, err := e.store.Update(ctx, sessionID, func(d model.ResumeData) (model.ResumeData, error) {
		return model.UpdatePersonal(d, field, value)
	})
	if err != nil {
		return model.ResumeData{}, editError("update personal details", err)
	}
	return out, nil
}

func (e *Editor) UpdateSummary(ctx context.Context, sessionID, value string) (model.ResumeData, error) {
	out, err := e.store.Update(ctx, sessionID, func(d model.ResumeData) (model.ResumeData, error) {
		return model.UpdateSummary(d, value), nil
	})
	if err != nil {
		return model.ResumeData{}, editError("update summary", err)
	}
	return out, nil
}

// AddItem appends an empty record and returns its fresh id.
func (e *Editor) AddItem(ctx context.Context, sessionID, section string) (model.ResumeData, string, error) {
	sec, err := model.ParseSection(section)
	if err != nil {
		return model.ResumeData{}, "", editError("add item", err)
	}
	id := e.ids.NewID()
	out, err := e.store.Update(ctx, sessionID, func(d model.ResumeData) (model.ResumeData, error) {
		return model.AddItem(d, sec, id)
	})
	if err != nil {
		return model.ResumeData{}, "", editError("add item", err)
	}
	return out, id, nil
}

func (e *Editor) UpdateItem(ctx context.Context, sessionID, section, itemID, field, value string) (model.ResumeData, error) {
	sec, err := model.ParseSection(section)
	if err != nil {
		return model.ResumeData{}, editError("update item", err)
	}
	out, err := e.store.Update(ctx, sessionID, func(d model.ResumeData) (model.ResumeData, error) {
		return model.UpdateItem(d, sec, itemID, field, value)
	})
	if err != nil {
		return model.ResumeData{}, editError("update item", err)
	}
	return out, nil
}

func (e *Editor) RemoveItem(ctx context.Context, sessionID, section, itemID string) (model.ResumeData, error) {
	sec, err := model.ParseSection(section)
	if err != nil {
		return model.ResumeData{}, editError("remove item", err)
	}
	out, err := e.store.Update(ctx, sessionID, func(d model.ResumeData) (model.ResumeData, error) {
		return model.RemoveItem(d, sec, itemID)
	})
	if err != nil {
		return model.ResumeData{}, editError("remove item", err)
	}
	return out, nil
}

// SetImage stores a cropped image into the photo or logo field.
func (e *Editor) SetImage(ctx context.Context, sessionID string, kind CropKind, dataURI string) (model.ResumeData, error) {
	out, err := e.store.Update(ctx, sessionID, func(d model.ResumeData) (model.ResumeData, error) {
		return model.UpdatePersonal(d, kind.Field(), dataURI)
	})
	if err != nil {
		return model.ResumeData{}, editError("set image", err)
	}
	return out, nil
}

// Notice returns the session's live transient message.
func (e *Editor) Notice(ctx context.Context, sessionID string) (string, error) {
	s, err := e.store.Get(ctx, sessionID)
	if err != nil {
		return "", editError("notice", err)
	}
	return s.Notice.Current(), nil
}
