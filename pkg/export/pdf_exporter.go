package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders datasets into a basic tabular PDF.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a PDF document with an optional title and table body.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(title), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	widths := columnWidths(data, 190.0)

	pdf.SetFont("Arial", "B", 10)
	for i, header := range data.Headers {
		pdf.CellFormat(widths[i], 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, row := range data.Rows {
		for i, header := range data.Headers {
			pdf.CellFormat(widths[i], 7, row[header], "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// columnWidths splits the printable width proportionally to the longest value
// in each column, so result URLs don't overflow their cells. Each column keeps
// a minimum share to stay legible.
func columnWidths(data Dataset, total float64) []float64 {
	longest := make([]int, len(data.Headers))
	sum := 0
	for i, header := range data.Headers {
		longest[i] = len(header)
		for _, row := range data.Rows {
			if n := len(row[header]); n > longest[i] {
				longest[i] = n
			}
		}
		sum += longest[i]
	}

	minWidth := total / float64(len(data.Headers)) / 2
	widths := make([]float64, len(longest))
	for i, n := range longest {
		w := total * float64(n) / float64(sum)
		if w < minWidth {
			w = minWidth
		}
		widths[i] = w
	}

	// Rescale so the row still fits the page after min-width adjustments.
	var used float64
	for _, w := range widths {
		used += w
	}
	for i := range widths {
		widths[i] *= total / used
	}
	return widths
}
