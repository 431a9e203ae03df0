package application

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/go-pdf/fpdf"
	"github.com/sebuszqo/PaymentsService/internal/payment/domain"
	"golang.org/x/image/font/sfnt"
)

const (
	receiptTitle      = "Payment Receipt"
	receiptFontFamily = "DejaVuSansCondensed"
	currencySymbol    = "€"
)

//go:embed fonts/DejaVuSansCondensed.ttf
var receiptFontTTF []byte

var parseReceiptFont = sync.OnceValues(func() (*sfnt.Font, error) {
	return sfnt.Parse(receiptFontTTF)
})

type ReceiptRenderer interface {
	Render(payment domain.Payment, artistName string) ([]byte, error)
}

// PDFReceiptRenderer writes a single A4 page with an embedded UTF-8 font.
// Compression is off so the labeled values are searchable in the raw bytes.
type PDFReceiptRenderer struct{}

func NewPDFReceiptRenderer() *PDFReceiptRenderer {
	return &PDFReceiptRenderer{}
}

func (r *PDFReceiptRenderer) Render(payment domain.Payment, artistName string) ([]byte, error) {
	lines := receiptLines(payment, artistName)
	if err := checkGlyphs(append([]string{receiptTitle}, lines...)); err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(false)
	pdf.SetTitle(receiptTitle, true)
	pdf.SetCreator("payments-service", true)
	pdf.AddUTF8FontFromBytes(receiptFontFamily, "", receiptFontTTF)

	pdf.AddPage()
	pdf.SetFont(receiptFontFamily, "", 18)
	pdf.CellFormat(0, 12, receiptTitle, "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont(receiptFontFamily, "", 12)
	for _, line := range lines {
		pdf.CellFormat(0, 8, line, "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering receipt pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// checkGlyphs fails on any rune the embedded font cannot draw, so text is
// never replaced silently. fpdf writes text as UTF-16 without surrogates,
// which rules out runes above the BMP as well.
func checkGlyphs(lines []string) error {
	font, err := parseReceiptFont()
	if err != nil {
		return fmt.Errorf("loading receipt font: %w", err)
	}
	var buf sfnt.Buffer
	for _, line := range lines {
		for _, r := range line {
			if r > 0xFFFF {
				return fmt.Errorf("receipt font cannot render %q (U+%04X)", r, r)
			}
			idx, err := font.GlyphIndex(&buf, r)
			if err != nil || idx == 0 {
				return fmt.Errorf("receipt font cannot render %q (U+%04X)", r, r)
			}
		}
	}
	return nil
}

func receiptLines(payment domain.Payment, artistName string) []string {
	return []string{
		fmt.Sprintf("Payment ID: %d", payment.ID),
		fmt.Sprintf("Artist: %s", artistName),
		fmt.Sprintf("Date: %s", payment.PaymentDate.Format(domain.DateLayout)),
		fmt.Sprintf("Amount: %s%s", currencySymbol, payment.Amount.StringFixed(2)),
		fmt.Sprintf("Payment method: %s", payment.PaymentMethod),
		fmt.Sprintf("Concept: %s", payment.Concept),
	}
}
