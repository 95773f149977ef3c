// Package export renders patient records as a PDF list or a text summary.
package export

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"obstetrics-record-service/internal/domain/entity"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// PatientListColumns are the PDF table headings.
var PatientListColumns = []string{"Name", "Age", "Category", "EGA", "EDD", "Managed For"}

var columnWidths = []float64{45, 12, 25, 35, 22, 43}

// PatientListRow projects one record onto the PDF columns.
func PatientListRow(r *entity.PatientRecord) []string {
	return []string{
		r.Name,
		fmt.Sprint(r.Age),
		r.CategoryLabel(),
		r.EGA,
		r.EDD,
		r.BeingManagedFor,
	}
}

// pdfSafe folds text onto the cp1252 set the core PDF fonts can draw.
// Runes outside it lose their diacritics; anything still unencodable becomes "?".
func pdfSafe(s string) string {
	var b strings.Builder
	for _, r := range s {
		if _, ok := charmap.Windows1252.EncodeRune(r); ok {
			b.WriteRune(r)
			continue
		}
		folded := false
		for _, d := range norm.NFD.String(string(r)) {
			if unicode.Is(unicode.Mn, d) {
				continue
			}
			if _, ok := charmap.Windows1252.EncodeRune(d); ok {
				b.WriteRune(d)
				folded = true
			}
		}
		if !folded {
			b.WriteByte('?')
		}
	}
	return b.String()
}

// WritePatientListPDF writes the records as a one-table A4 document headed with generatedAt.
func WritePatientListPDF(w io.Writer, records []entity.PatientRecord, generatedAt time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Patient List", true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 10, "Patient List as at: "+generatedAt.Format("2006-01-02 15:04:05"))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(41, 128, 185)
	pdf.SetTextColor(255, 255, 255)
	for i, col := range PatientListColumns {
		pdf.CellFormat(columnWidths[i], 8, col, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	for i := range records {
		fill := i%2 == 1
		pdf.SetFillColor(245, 245, 245)
		for j, cell := range PatientListRow(&records[i]) {
			pdf.CellFormat(columnWidths[j], 7, tr(pdfSafe(cell)), "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render patient list: %w", err)
	}
	return pdf.Output(w)
}
