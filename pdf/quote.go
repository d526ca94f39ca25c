// Package pdf renders quotes as downloadable A4 documents.
package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"
)

// QuoteDocument is everything printed on a quote.
type QuoteDocument struct {
	ID              string
	ClientName      string
	ClientEmail     string
	PhotographyType string
	Description     string
	Price           float64
	Date            time.Time // creation date, already in the display time zone
}

const (
	marginLeft   = 20.0
	contentWidth = 170.0
	lineHeight   = 7.0
)

// Filename is the download name of a quote.
func Filename(id string) string {
	return "orcamento-" + id + ".pdf"
}

// Quote renders doc. Streams are left uncompressed so the text can be
// searched in the output bytes.
func Quote(doc QuoteDocument) ([]byte, error) {
	p := gofpdf.New("P", "mm", "A4", "")
	p.SetCompression(false)
	p.SetMargins(marginLeft, 20, marginLeft)
	p.SetAutoPageBreak(true, 25)
	p.SetTitle("Orçamento "+doc.ID, true)
	p.SetCreator("photodesk", true)
	if !doc.Date.IsZero() {
		p.SetCreationDate(doc.Date)
	}
	tr := p.UnicodeTranslatorFromDescriptor("") // cp1252

	p.SetFooterFunc(func() {
		p.SetY(-20)
		p.SetFont("Helvetica", "", 10)
		p.CellFormat(0, 5, tr("Data: "+formatDate(doc.Date)), "", 0, "L", false, 0, "")
	})
	p.AddPage()

	p.SetFont("Helvetica", "B", 20)
	p.CellFormat(0, 10, tr("ORÇAMENTO"), "", 1, "C", false, 0, "")
	p.Ln(8)

	email := doc.ClientEmail
	if email == "" {
		email = "N/A"
	}
	p.SetFont("Helvetica", "", 12)
	p.CellFormat(0, 10, tr("Cliente: "+doc.ClientName), "", 1, "L", false, 0, "")
	p.CellFormat(0, 10, tr("E-mail: "+email), "", 1, "L", false, 0, "")
	p.Ln(6)

	p.SetFont("Helvetica", "B", 14)
	p.CellFormat(0, 10, tr("Detalhes do Serviço"), "", 1, "L", false, 0, "")
	p.SetFont("Helvetica", "", 12)
	p.CellFormat(0, 10, tr("Tipo de Fotografia: "+doc.PhotographyType), "", 1, "L", false, 0, "")
	p.CellFormat(0, 10, tr("Descrição:"), "", 1, "L", false, 0, "")
	p.MultiCell(contentWidth, lineHeight, tr(doc.Description), "", "L", false)
	p.Ln(10)

	p.SetFont("Helvetica", "B", 14)
	p.CellFormat(0, 10, fmt.Sprintf("Valor Total: R$ %.2f", doc.Price), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := p.Output(&buf); err != nil {
		return nil, fmt.Errorf("render quote %s: %w", doc.ID, err)
	}
	return buf.Bytes(), nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02/01/2006")
}
