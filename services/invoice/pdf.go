package invoice

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/go-pdf/fpdf"

	"github.com/MarcGrol/salesbackend/lib/myconfig"
)

const (
	pageMargin = 14.0
	lineHeight = 5.0
	rowHeight  = 8.0
)

var columnWidths = []float64{90, 30, 33, 33}

// renderPDF lays out an invoice on a single letter sized page, the product table grows downwards.
func renderPDF(company myconfig.Company, invoice Invoice) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.SetTitle(fmt.Sprintf("Factura %d", invoice.Number), true)
	pdf.SetCreationDate(invoice.IssuedAt)
	pdf.SetModificationDate(invoice.IssuedAt)
	pdf.SetCatalogSort(true)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// title
	pdf.SetFont("Helvetica", "B", 26)
	pdf.SetTextColor(211, 47, 47)
	pdf.CellFormat(0, 14, "FACTURA", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// issuer left, customer right
	top := pdf.GetY()
	pdf.SetTextColor(128, 128, 128)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(95, lineHeight, tr(company.Name), "", 2, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range []string{company.Address, company.Website, phoneLine(company.Phone)} {
		if line == "" {
			continue
		}
		pdf.CellFormat(95, lineHeight, tr(line), "", 2, "L", false, 0, "")
	}
	issuerBottom := pdf.GetY()

	pdf.SetXY(pageMargin+100, top)
	customerLines := []string{
		fmt.Sprintf("Factura N°: %d", invoice.Number),
		"Fecha: " + invoice.IssuedAt.Format("02/01/2006"),
		"",
		"Facturado a:",
		invoice.Customer.Name,
		"DNI: " + invoice.Customer.DNI,
		"Email: " + invoice.Customer.Email,
	}
	for _, line := range customerLines {
		pdf.SetX(pageMargin + 100)
		pdf.CellFormat(0, lineHeight, tr(line), "", 2, "R", false, 0, "")
	}
	pdf.SetY(max(issuerBottom, pdf.GetY()) + 8)

	// product table
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(211, 47, 47)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetDrawColor(128, 128, 128)
	for i, header := range []string{"Producto", "Cantidad", "P. Unitario", "Subtotal"} {
		pdf.CellFormat(columnWidths[i], rowHeight, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for i, line := range invoice.Lines {
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(211, 211, 211)
		}
		pdf.CellFormat(columnWidths[0], rowHeight, tr(line.ProductName), "1", 0, "L", true, 0, "")
		pdf.CellFormat(columnWidths[1], rowHeight, strconv.Itoa(line.Quantity), "1", 0, "C", true, 0, "")
		pdf.CellFormat(columnWidths[2], rowHeight, formatCents(line.UnitPriceInCents), "1", 0, "R", true, 0, "")
		pdf.CellFormat(columnWidths[3], rowHeight, formatCents(line.UnitPriceInCents*int64(line.Quantity)), "1", 0, "R", true, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(6)

	// totals
	labelWidth := columnWidths[0] + columnWidths[1] + columnWidths[2]
	pdf.CellFormat(labelWidth, rowHeight, "Subtotal:", "", 0, "R", false, 0, "")
	pdf.CellFormat(columnWidths[3], rowHeight, formatCents(invoice.SubtotalInCents), "", 1, "R", false, 0, "")
	pdf.CellFormat(labelWidth, rowHeight, "IVA (16%):", "", 0, "R", false, 0, "")
	pdf.CellFormat(columnWidths[3], rowHeight, formatCents(invoice.VATInCents), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(211, 47, 47)
	pdf.SetFillColor(255, 235, 238)
	pdf.SetDrawColor(211, 47, 47)
	pdf.CellFormat(labelWidth, rowHeight+2, "TOTAL:", "LTB", 0, "R", true, 0, "")
	pdf.CellFormat(columnWidths[3], rowHeight+2, formatCents(invoice.TotalInCents), "RTB", 1, "R", true, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(0, lineHeight, tr("Gracias por su compra. ¡Esperamos verlo pronto!"), "", 1, "L", false, 0, "")

	buf := bytes.Buffer{}
	err := pdf.Output(&buf)
	if err != nil {
		return nil, fmt.Errorf("error rendering invoice %d: %s", invoice.Number, err)
	}

	return buf.Bytes(), nil
}

func phoneLine(phone string) string {
	if phone == "" {
		return ""
	}
	return "Tel: " + phone
}
