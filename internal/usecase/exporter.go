package usecase

import (
	"context"
	"fmt"
	"regexp"

	"github.com/rs/zerolog"

	"resume-builder/internal/model"
)

const DefaultCaptureScale = 2

var whitespaceRe = regexp.MustCompile(`\s`)

// Export is a finished PDF ready for download.
type Export struct {
	Filename string
	PDF      []byte
	Pages    int
}

// Exporter rasterizes the preview panels one by one and assembles them into
// a single multi-page document.
type Exporter struct {
	store     SessionStore
	renderer  PreviewRenderer
	capturer  PageCapturer
	assembler DocumentAssembler
	scale     float64
	log       zerolog.Logger
}

func NewExporter(store SessionStore, renderer PreviewRenderer, capturer PageCapturer, assembler DocumentAssembler, scale float64, log zerolog.Logger) *Exporter {
	if scale <= 0 {
		scale = DefaultCaptureScale
	}
	return &Exporter{store: store, renderer: renderer, capturer: capturer, assembler: assembler, scale: scale, log: log}
}

// ExportFilename derives the download name from the person's name.
func ExportFilename(name string) string {
	return whitespaceRe.ReplaceAllString(name, "_") + "_Resume.pdf"
}

// CheckImages returns the precondition message for placeholder images, or
// "" when both are real.
func CheckImages(pd model.PersonalDetails) string {
	photo, logo := model.IsPlaceholder(pd.Photo), model.IsPlaceholder(pd.Logo)
	switch {
	case photo && logo:
		return MsgMissingBoth
	case photo:
		return MsgMissingPhoto
	case logo:
		return MsgMissingLogo
	}
	return ""
}

// Export builds the PDF for a session. Precondition failures are also posted
// to the session's notice. Any capture failure discards the document.
func (x *Exporter) Export(ctx context.Context, sessionID string) (*Export, error) {
	s, err := x.store.Get(ctx, sessionID)
	if err != nil {
		return nil, editError("export", err)
	}
	data := s.Data()
	if msg := CheckImages(data.PersonalDetails); msg != "" {
		s.Notice.Show(msg)
		return nil, opError("export", ErrExportPrecondition, msg, nil)
	}

	log := x.log.With().Str("session", sessionID).Logger()
	html, err := x.renderer.Render(data)
	if err != nil {
		log.Error().Err(err).Msg("render preview")
		return nil, opError("export", ErrCapture, MsgCaptureFailed, err)
	}

	out, err := x.capture(ctx, html)
	if err != nil {
		log.Error().Err(err).Msg("export failed")
		return nil, err
	}
	out.Filename = ExportFilename(data.PersonalDetails.Name)
	log.Info().Int("pages", out.Pages).Str("file", out.Filename).Msg("resume exported")
	return out, nil
}

// Preview renders the session's current resume as HTML.
func (x *Exporter) Preview(ctx context.Context, sessionID string) (string, error) {
	s, err := x.store.Get(ctx, sessionID)
	if err != nil {
		return "", editError("preview", err)
	}
	return x.renderer.Render(s.Data())
}

func (x *Exporter) capture(ctx context.Context, html string) (*Export, error) {
	cs, err := x.capturer.Open(ctx, html)
	if err != nil {
		return nil, opError("export", ErrCapture, MsgCaptureFailed, err)
	}
	defer cs.Close()

	n := cs.PanelCount()
	if n == 0 {
		return nil, opError("export", ErrCapture, MsgNoPanels, nil)
	}

	doc := x.assembler.NewDocument()
	for i := 0; i < n; i++ {
		png, err := cs.CapturePanel(ctx, i, x.scale)
		if err != nil {
			return nil, opError("export", ErrCapture, MsgCaptureFailed, fmt.Errorf("panel %d: %w", i+1, err))
		}
		if i > 0 {
			doc.AddPage()
		}
		if err := doc.PlaceFullPageImage(png); err != nil {
			return nil, opError("export", ErrCapture, MsgCaptureFailed, fmt.Errorf("place panel %d: %w", i+1, err))
		}
	}

	pdf, err := doc.Bytes()
	if err != nil {
		return nil, opError("export", ErrCapture, MsgCaptureFailed, err)
	}
	return &Export{PDF: pdf, Pages: doc.PageCount()}, nil
}
