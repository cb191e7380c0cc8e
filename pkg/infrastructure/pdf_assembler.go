package infrastructure

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"resume-builder/internal/usecase"
)

// FPDFAssembler builds A4 portrait documents with fpdf.
type FPDFAssembler struct{}

func NewFPDFAssembler() *FPDFAssembler { return &FPDFAssembler{} }

func (FPDFAssembler) NewDocument() usecase.Document {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	return &fpdfDocument{pdf: pdf}
}

type fpdfDocument struct {
	pdf    *fpdf.Fpdf
	images int
}

func (d *fpdfDocument) AddPage() { d.pdf.AddPage() }

// PlaceFullPageImage draws png from the top-left corner stretched to the
// page size.
func (d *fpdfDocument) PlaceFullPageImage(png []byte) error {
	d.images++
	name := fmt.Sprintf("panel-%d", d.images)
	opt := fpdf.ImageOptions{ImageType: "PNG"}
	d.pdf.RegisterImageOptionsReader(name, opt, bytes.NewReader(png))
	w, h := d.pdf.GetPageSize()
	d.pdf.ImageOptions(name, 0, 0, w, h, false, opt, 0, "")
	return d.pdf.Error()
}

func (d *fpdfDocument) PageCount() int { return d.pdf.PageCount() }

func (d *fpdfDocument) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
