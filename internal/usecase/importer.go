package usecase

import (
	"context"
	"fmt"
	"mime"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"resume-builder/internal/model"
	"resume-builder/pkg/ai"
)

const minExtractedChars = 50

var pageMarkerRe = regexp.MustCompile(`--- Page \d+ ---`)

// Importer replaces a session's resume with data structured from an
// uploaded PDF.
type Importer struct {
	store      SessionStore
	extractor  TextExtractor
	structurer Structurer
	ids        model.IDGenerator
	log        zerolog.Logger
}

func NewImporter(store SessionStore, extractor TextExtractor, structurer Structurer, ids model.IDGenerator, log zerolog.Logger) *Importer {
	return &Importer{store: store, extractor: extractor, structurer: structurer, ids: ids, log: log}
}

type importState struct {
	pdf        []byte
	text       string
	raw        string
	extraction *model.Extraction
	activities []model.Activity
}

type importStep struct {
	name string
	run  func(ctx context.Context, st *importState) error
}

func (im *Importer) steps() []importStep {
	return []importStep{
		{"extract", im.extract},
		{"validate", im.validate},
		{"structure", im.structure},
		{"parse", im.parse},
		{"normalize", im.normalize},
		{"standardize", im.standardize},
	}
}

// Import runs the pipeline for one uploaded file. The session is replaced
// only after every step succeeds; on any failure it is left untouched.
func (im *Importer) Import(ctx context.Context, sessionID, contentType string, pdf []byte) (model.ResumeData, error) {
	if !IsPDF(contentType) {
		return model.ResumeData{}, opError("import", ErrInvalidInput, MsgInvalidPDF, nil)
	}
	if _, err := im.store.Get(ctx, sessionID); err != nil {
		return model.ResumeData{}, editError("import", err)
	}

	log := im.log.With().Str("session", sessionID).Logger()
	st := &importState{pdf: pdf}
	for _, step := range im.steps() {
		start := time.Now()
		if err := step.run(ctx, st); err != nil {
			log.Error().Err(err).Str("step", step.name).Msg("import failed")
			return model.ResumeData{}, err
		}
		log.Debug().Str("step", step.name).Dur("took", time.Since(start)).Msg("import step done")
	}

	out, err := im.store.Update(ctx, sessionID, func(prior model.ResumeData) (model.ResumeData, error) {
		merged := st.extraction.Merge(prior)
		merged.Activities = st.activities
		return merged, nil
	})
	if err != nil {
		return model.ResumeData{}, editError("import", err)
	}
	log.Info().Int("chars", len(st.text)).Msg("resume imported")
	return out, nil
}

// IsPDF reports whether a declared content type is application/pdf.
func IsPDF(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	return err == nil && mt == "application/pdf"
}

// JoinPages builds the text blob, each page prefixed by its marker.
func JoinPages(pages []string) string {
	var sb strings.Builder
	for i, p := range pages {
		fmt.Fprintf(&sb, "--- Page %d ---\n%s\n", i+1, p)
	}
	return sb.String()
}

// ContentLength counts the characters left once page markers are removed
// and the text is trimmed.
func ContentLength(text string) int {
	return utf8.RuneCountInString(strings.TrimSpace(pageMarkerRe.ReplaceAllString(text, "")))
}

func (im *Importer) extract(ctx context.Context, st *importState) error {
	pages, err := im.extractor.Pages(ctx, st.pdf)
	if err != nil {
		return opError("import", ErrExtraction, MsgLowText, err)
	}
	st.text = JoinPages(pages)
	return nil
}

func (im *Importer) validate(_ context.Context, st *importState) error {
	if n := ContentLength(st.text); n < minExtractedChars {
		return opError("import", ErrExtraction, MsgLowText, fmt.Errorf("only %d characters of text", n))
	}
	return nil
}

func (im *Importer) structure(ctx context.Context, st *importState) error {
	raw, err := im.structurer.Format(ctx, st.text)
	if err != nil {
		return opError("import", ErrService, msgImportFailedPrefix+err.Error(), err)
	}
	if strings.TrimSpace(raw) == "" {
		return opError("import", ErrService, MsgEmptyAIResponse, nil)
	}
	st.raw = raw
	return nil
}

func (im *Importer) parse(_ context.Context, st *importState) error {
	obj, err := ai.ExtractJSONObject(st.raw)
	if err != nil {
		return opError("import", ErrService, msgImportFailedPrefix+err.Error(), err)
	}
	ex, err := model.DecodeExtraction([]byte(obj))
	if err != nil {
		return opError("import", ErrService, msgImportFailedPrefix+err.Error(), err)
	}
	st.extraction = ex
	return nil
}

func (im *Importer) normalize(_ context.Context, st *importState) error {
	st.extraction.AssignIDs(im.ids)
	return nil
}

func (im *Importer) standardize(_ context.Context, st *importState) error {
	st.activities = StandardizeActivities(st.extraction.Activities, im.ids)
	return nil
}
