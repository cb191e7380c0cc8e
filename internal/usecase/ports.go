package usecase

import (
	"context"

	"resume-builder/internal/domain"
	"resume-builder/internal/model"
)

// SessionStore is the in-memory home of every live session.
type SessionStore interface {
	Create(ctx context.Context, data model.ResumeData) *domain.Session
	Get(ctx context.Context, id string) (*domain.Session, error)
	Update(ctx context.Context, id string, fn func(model.ResumeData) (model.ResumeData, error)) (model.ResumeData, error)
	Delete(ctx context.Context, id string) error
}

// TextExtractor returns the text of each PDF page in order, with the page's
// text items joined by newlines.
type TextExtractor interface {
	Pages(ctx context.Context, pdf []byte) ([]string, error)
}

// Structurer turns resume text into a JSON document matching
// model.ExtractionSchema.
type Structurer interface {
	Format(ctx context.Context, text string) (string, error)
}

// Rewriter returns an enhanced version of a description.
type Rewriter interface {
	Format(ctx context.Context, description string) (string, error)
}

// PreviewRenderer produces the paginated preview HTML.
type PreviewRenderer interface {
	Render(data model.ResumeData) (string, error)
}

// PageCapturer loads preview HTML into a rasterizer.
type PageCapturer interface {
	Open(ctx context.Context, html string) (CaptureSession, error)
}

// CaptureSession exposes the page panels of one loaded document.
type CaptureSession interface {
	PanelCount() int
	// CapturePanel rasterizes panel i (0-based, document order) to PNG at
	// scale times its rendered size, with upload controls hidden.
	CapturePanel(ctx context.Context, i int, scale float64) ([]byte, error)
	Close() error
}

// DocumentAssembler creates output documents of a fixed portrait page size.
type DocumentAssembler interface {
	NewDocument() Document
}

// Document starts with one empty page.
type Document interface {
	AddPage()
	// PlaceFullPageImage stretches a PNG over the whole current page.
	PlaceFullPageImage(png []byte) error
	PageCount() int
	Bytes() ([]byte, error)
}
