package infrastructure

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// LedongthucExtractor reads the embedded text layer of a PDF page by page.
// Each page's text items are joined with "\n" in reading order (top row
// first, left to right). Image-only pages yield "".
type LedongthucExtractor struct{}

func NewLedongthucExtractor() *LedongthucExtractor { return &LedongthucExtractor{} }

func (LedongthucExtractor) Pages(ctx context.Context, data []byte) (pages []string, err error) {
	// the parser panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			pages, err = nil, fmt.Errorf("parse pdf: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	n := r.NumPage()
	pages = make([]string, 0, n)
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		rows, err := p.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("read page %d: %w", i, err)
		}
		pages = append(pages, joinItems(rows))
	}
	return pages, nil
}

func joinItems(rows pdf.Rows) string {
	var items []string
	for _, row := range rows {
		for _, t := range row.Content {
			items = append(items, t.S)
		}
	}
	return strings.Join(items, "\n")
}
