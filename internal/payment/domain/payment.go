package domain

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	paymentErrors "github.com/sebuszqo/PaymentsService/internal/payment/errors"
	"github.com/shopspring/decimal"
)

const (
	MaxConceptLength = 100
	// amount_paid is NUMERIC(15,2)
	AmountPrecision = 15
	AmountScale     = 2

	DateLayout = "2006-01-02"

	// Representation bounds checked before any decimal arithmetic; rescaling
	// an exponent like 1e20000000 allocates tens of millions of digits.
	minAmountExponent        = -(AmountScale + 16)
	maxAmountCoefficientBits = 128
)

type PaymentMethod string

const (
	PaymentMethodTransfer   PaymentMethod = "TRANSFER"
	PaymentMethodPayPal     PaymentMethod = "PAYPAL"
	PaymentMethodCreditCard PaymentMethod = "CREDIT_CARD"
	PaymentMethodCash       PaymentMethod = "CASH"
	PaymentMethodOther      PaymentMethod = "OTHER"
)

var paymentMethodDescriptions = map[PaymentMethod]string{
	PaymentMethodTransfer:   "Bank transfer",
	PaymentMethodPayPal:     "PayPal",
	PaymentMethodCreditCard: "Credit card",
	PaymentMethodCash:       "Cash",
	PaymentMethodOther:      "Other",
}

func (m PaymentMethod) IsValid() bool {
	_, ok := paymentMethodDescriptions[m]
	return ok
}

func (m PaymentMethod) Description() string {
	return paymentMethodDescriptions[m]
}

// ParsePaymentMethod is case-insensitive and accepts CARD for CREDIT_CARD.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	method := PaymentMethod(strings.ToUpper(strings.TrimSpace(s)))
	if method == "CARD" {
		method = PaymentMethodCreditCard
	}
	if !method.IsValid() {
		return "", paymentErrors.ErrInvalidPaymentMethod
	}
	return method, nil
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed:
		return true
	}
	return false
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	status := PaymentStatus(strings.ToUpper(strings.TrimSpace(s)))
	if !status.IsValid() {
		return "", paymentErrors.ErrInvalidPaymentStatus
	}
	return status, nil
}

type Payment struct {
	ID            int64
	ArtistID      int64
	Amount        decimal.Decimal
	PaymentDate   time.Time
	Concept       string
	PaymentMethod PaymentMethod
	Status        PaymentStatus
}

func (p *Payment) IsCompleted() bool {
	return p.Status == PaymentStatusCompleted
}

// PaymentFields is the client-supplied shape of a payment. PaymentDate and
// Status are optional; Build fills them from its defaults.
type PaymentFields struct {
	ArtistID      int64
	Concept       string
	PaymentDate   *time.Time
	Amount        decimal.Decimal
	PaymentMethod PaymentMethod
	Status        *PaymentStatus
}

// Build is the only place defaults are applied. Creation passes today and
// PENDING, updates pass the stored date and status.
func (f PaymentFields) Build(defaultDate time.Time, defaultStatus PaymentStatus) (Payment, error) {
	payment := Payment{
		ArtistID:      f.ArtistID,
		Amount:        f.Amount,
		Concept:       strings.TrimSpace(f.Concept),
		PaymentMethod: f.PaymentMethod,
		PaymentDate:   CalendarDate(defaultDate),
		Status:        defaultStatus,
	}
	if f.PaymentDate != nil {
		payment.PaymentDate = CalendarDate(*f.PaymentDate)
	}
	if f.Status != nil {
		payment.Status = *f.Status
	}

	if err := payment.Validate(); err != nil {
		return Payment{}, err
	}
	return payment, nil
}

func (p *Payment) Validate() error {
	var validationErrors = &paymentErrors.ValidationErrors{}

	if p.ArtistID <= 0 {
		validationErrors.Add(paymentErrors.NewValidationError("Artist ID must be a positive number"))
	}
	if p.Amount.IsNegative() {
		validationErrors.Add(paymentErrors.NewValidationError("Amount must not be negative"))
	}
	if err := CheckAmountMagnitude(p.Amount); err != nil {
		validationErrors.Add(err)
	} else if !p.Amount.Equal(p.Amount.Round(AmountScale)) {
		validationErrors.Add(paymentErrors.NewValidationError("Amount must have at most 2 decimal places"))
	}
	if p.Concept == "" {
		validationErrors.Add(paymentErrors.NewValidationError("Concept is required"))
	}
	if utf8.RuneCountInString(p.Concept) > MaxConceptLength {
		validationErrors.Add(paymentErrors.NewValidationError("Concept must be of length less than 100"))
	}
	if !p.PaymentMethod.IsValid() {
		validationErrors.Add(paymentErrors.ErrInvalidPaymentMethod)
	}
	if !p.Status.IsValid() {
		validationErrors.Add(paymentErrors.ErrInvalidPaymentStatus)
	}

	if len(validationErrors.Errors) == 1 {
		return validationErrors.Errors[0]
	}
	return validationErrors.ErrOrNil()
}

// CheckAmountMagnitude rejects amounts with more integer digits than the
// amount column holds, or with a representation too extreme to compute with.
// It only inspects the exponent and coefficient size.
func CheckAmountMagnitude(amount decimal.Decimal) error {
	exp := amount.Exponent()
	if exp < minAmountExponent {
		return paymentErrors.NewValidationError("Amount must have at most 2 decimal places")
	}
	if exp > AmountPrecision || amount.Coefficient().BitLen() > maxAmountCoefficientBits {
		return paymentErrors.NewValidationError("Amount is too large")
	}
	if amount.IsZero() {
		return nil
	}
	if amount.NumDigits()+int(exp) > AmountPrecision-AmountScale {
		return paymentErrors.NewValidationError("Amount is too large")
	}
	return nil
}

// CalendarDate drops the time of day, keeping the year, month and day as seen
// in t's own location.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParsePaymentDate accepts a plain date (2006-01-02) or an RFC 3339 timestamp.
func ParsePaymentDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, paymentErrors.NewValidationError("Invalid payment date format, expected YYYY-MM-DD")
	}
	return CalendarDate(t), nil
}

type PaymentRepository interface {
	Save(ctx context.Context, payment *Payment) error
	FindByID(ctx context.Context, paymentID int64) (*Payment, error)
	Update(ctx context.Context, payment Payment) (int64, error)
	FindAll(ctx context.Context) ([]Payment, error)
	FindByArtist(ctx context.Context, artistID int64) ([]Payment, error)
	FindByArtistOrderedByDateDesc(ctx context.Context, artistID int64) ([]Payment, error)
}
