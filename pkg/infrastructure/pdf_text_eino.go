package infrastructure

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	einoParser "github.com/cloudwego/eino/components/document/parser"
	"github.com/rs/zerolog"
)

const einoParseTimeout = 30 * time.Second

// EinoExtractor extracts page text through the eino PDF document parser.
type EinoExtractor struct {
	parser *pdf.PDFParser
	log    zerolog.Logger
}

func NewEinoExtractor(ctx context.Context, log zerolog.Logger) (*EinoExtractor, error) {
	p, err := pdf.NewPDFParser(ctx, &pdf.Config{ToPages: true})
	if err != nil {
		return nil, fmt.Errorf("create eino pdf parser: %w", err)
	}
	return &EinoExtractor{parser: p, log: log}, nil
}

func (e *EinoExtractor) Pages(ctx context.Context, data []byte) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, einoParseTimeout)
	defer cancel()

	start := time.Now()
	docs, err := e.parser.Parse(ctx, bytes.NewReader(data),
		einoParser.WithURI("upload.pdf"),
		einoParser.WithExtraMeta(map[string]any{"size": len(data)}),
	)
	if err != nil {
		return nil, fmt.Errorf("eino pdf parser: %w", err)
	}
	pages := make([]string, 0, len(docs))
	for _, d := range docs {
		pages = append(pages, d.Content)
	}
	e.log.Debug().Int("pages", len(pages)).Dur("took", time.Since(start)).Msg("pdf parsed")
	return pages, nil
}
