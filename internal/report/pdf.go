package report

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// WritePDF exports a View as a one-page A4 PDF.
func WritePDF(w io.Writer, v View) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// Core fonts are cp1252; translate the Portuguese labels
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, tr("Sua pegada de carbono"), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("%s kg CO2e por ano (%s kg por mês)", v.Annual, v.Monthly)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	widths := []float64{35, 85, 30, 30}
	pdf.SetFont("Arial", "B", 11)
	pdf.SetFillColor(46, 125, 50)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range Header {
		pdf.CellFormat(widths[i], 8, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for i, r := range v.Rows() {
		if i%2 == 1 {
			pdf.SetFillColor(242, 242, 242)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		pdf.CellFormat(widths[0], 7, tr(r.Section), "1", 0, "L", true, 0, "")
		pdf.CellFormat(widths[1], 7, tr(r.Item), "1", 0, "L", true, 0, "")
		pdf.CellFormat(widths[2], 7, r.Display, "1", 0, "R", true, 0, "")
		pdf.CellFormat(widths[3], 7, tr(r.Unit), "1", 0, "L", true, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "I", 11)
	pdf.CellFormat(0, 8, tr(v.Verdict), "", 1, "L", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}
