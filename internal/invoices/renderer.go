package invoices

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	pkgerrors "github.com/candyland-dev/candyland-backend/pkg/errors"
)

// Renderer produces A4 invoice PDFs with a fixed letterhead.
type Renderer struct {
	businessName string
}

// tr maps UTF-8 input onto the cp1252 range the core fonts cover, so the
// Spanish labels and client names come out readable.
type page struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// NewRenderer builds a renderer. An empty business name falls back to the
// default letterhead.
func NewRenderer(businessName string) *Renderer {
	if businessName == "" {
		businessName = "Candyland Confitería"
	}
	return &Renderer{businessName: businessName}
}

// Render produces the PDF bytes for one invoice document.
func (r *Renderer) Render(doc Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Factura %s", doc.Number), true)
	pdf.AddPage()
	p := &page{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	r.header(p, doc)
	r.clientBlock(p, doc)
	r.detailTable(p, doc)
	r.totalBlock(p, doc)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render invoice pdf")
	}
	return buf.Bytes(), nil
}

func (r *Renderer) header(p *page, doc Document) {
	p.pdf.SetFont("Helvetica", "B", 18)
	p.pdf.CellFormat(0, 10, p.tr(r.businessName), "", 1, "C", false, 0, "")
	p.pdf.SetFont("Helvetica", "", 11)
	p.pdf.CellFormat(0, 6, p.tr(doc.Kind), "", 1, "C", false, 0, "")
	p.pdf.Ln(4)

	p.pdf.SetFont("Helvetica", "B", 12)
	p.pdf.CellFormat(0, 7, p.tr(fmt.Sprintf("Factura N° %s", doc.Number)), "", 1, "L", false, 0, "")
	p.pdf.SetFont("Helvetica", "", 10)
	p.pdf.CellFormat(0, 6, fmt.Sprintf("Fecha: %s", doc.IssuedAt.Format("02/01/2006 15:04")), "", 1, "L", false, 0, "")
	p.pdf.CellFormat(0, 6, p.tr(fmt.Sprintf("Estado: %s", doc.Status)), "", 1, "L", false, 0, "")
	p.pdf.Ln(2)
}

func (r *Renderer) clientBlock(p *page, doc Document) {
	p.pdf.SetFont("Helvetica", "B", 11)
	p.pdf.CellFormat(0, 6, "Cliente", "B", 1, "L", false, 0, "")
	p.pdf.SetFont("Helvetica", "", 10)
	p.pdf.CellFormat(0, 6, p.tr(doc.ClientName), "", 1, "L", false, 0, "")
	if doc.CompanyName != "" {
		p.pdf.CellFormat(0, 6, p.tr(doc.CompanyName), "", 1, "L", false, 0, "")
	}
	p.pdf.Ln(4)
}

func (r *Renderer) detailTable(p *page, doc Document) {
	widths := []float64{90, 25, 35, 35}
	headers := []string{"Producto", "Cantidad", "Precio unit.", "Subtotal"}

	p.pdf.SetFont("Helvetica", "B", 10)
	p.pdf.SetFillColor(240, 240, 240)
	for i, h := range headers {
		p.pdf.CellFormat(widths[i], 8, p.tr(h), "1", 0, "C", true, 0, "")
	}
	p.pdf.Ln(-1)

	p.pdf.SetFont("Helvetica", "", 10)
	for _, line := range doc.Lines {
		p.pdf.CellFormat(widths[0], 8, p.tr(line.Description), "1", 0, "L", false, 0, "")
		p.pdf.CellFormat(widths[1], 8, fmt.Sprintf("%d", line.Quantity), "1", 0, "C", false, 0, "")
		p.pdf.CellFormat(widths[2], 8, "$ "+line.UnitPrice.StringFixed(2), "1", 0, "R", false, 0, "")
		p.pdf.CellFormat(widths[3], 8, "$ "+line.SubTotal.StringFixed(2), "1", 0, "R", false, 0, "")
		p.pdf.Ln(-1)
	}
}

func (r *Renderer) totalBlock(p *page, doc Document) {
	p.pdf.Ln(2)
	p.pdf.SetFont("Helvetica", "B", 12)
	p.pdf.CellFormat(150, 9, "Total", "1", 0, "R", false, 0, "")
	p.pdf.CellFormat(35, 9, "$ "+doc.Total.StringFixed(2), "1", 1, "R", false, 0, "")
}
