package application

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sebuszqo/PaymentsService/internal/artist"
	"github.com/sebuszqo/PaymentsService/internal/metrics"
	"github.com/sebuszqo/PaymentsService/internal/payment/domain"
	paymentErrors "github.com/sebuszqo/PaymentsService/internal/payment/errors"
)

// ArtistNameFallback is printed when the artists service has no name for the artist.
const ArtistNameFallback = "Name not found"

type ArtistResolver interface {
	ResolveName(ctx context.Context, artistID int64) artist.Resolution
}

type PaymentFinder interface {
	GetPaymentByID(ctx context.Context, paymentID int64) (*domain.Payment, error)
}

type ReceiptService struct {
	payments PaymentFinder
	resolver ArtistResolver
	renderer ReceiptRenderer
	metrics  *metrics.PaymentMetrics
}

func NewReceiptService(payments PaymentFinder, resolver ArtistResolver, renderer ReceiptRenderer, m *metrics.PaymentMetrics) *ReceiptService {
	return &ReceiptService{
		payments: payments,
		resolver: resolver,
		renderer: renderer,
		metrics:  m,
	}
}

// GenerateReceipt returns paymentErrors.ErrPaymentNotFound,
// paymentErrors.ErrInvalidPaymentState or a *paymentErrors.ProcessingError.
func (s *ReceiptService) GenerateReceipt(ctx context.Context, paymentID int64) ([]byte, error) {
	start := time.Now()
	pdf, err := s.generate(ctx, paymentID)
	s.observe(start, err)
	return pdf, err
}

func (s *ReceiptService) generate(ctx context.Context, paymentID int64) ([]byte, error) {
	payment, err := s.payments.GetPaymentByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, paymentErrors.ErrPaymentNotFound) {
			return nil, err
		}
		return nil, paymentErrors.NewProcessingError("loading payment", err)
	}

	if !payment.IsCompleted() {
		return nil, fmt.Errorf("%w: payment %d is %s", paymentErrors.ErrInvalidPaymentState, payment.ID, payment.Status)
	}

	artistName, err := s.resolveArtistName(ctx, payment)
	if err != nil {
		return nil, err
	}

	pdf, err := s.renderer.Render(*payment, artistName)
	if err != nil {
		return nil, paymentErrors.NewProcessingError("rendering receipt", err)
	}
	return pdf, nil
}

func (s *ReceiptService) resolveArtistName(ctx context.Context, payment *domain.Payment) (string, error) {
	resolution := s.resolver.ResolveName(ctx, payment.ArtistID)
	switch resolution.Outcome {
	case artist.OutcomeResolved:
		return resolution.Name, nil
	case artist.OutcomeNotFound:
		log.Printf("Artist %d has no name upstream, using fallback for payment %d", payment.ArtistID, payment.ID)
		return ArtistNameFallback, nil
	default:
		if resolution.IsTimeout() {
			log.Printf("Artist lookup for payment %d timed out: %v", payment.ID, resolution.Err)
		} else {
			log.Printf("Artist lookup for payment %d failed: %v", payment.ID, resolution.Err)
		}
		return "", paymentErrors.NewProcessingError("resolving artist name", resolution.Err)
	}
}

func (s *ReceiptService) observe(start time.Time, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.ReceiptDuration.Observe(time.Since(start).Seconds())

	result := metrics.ReceiptResultSuccess
	switch {
	case err == nil:
	case errors.Is(err, paymentErrors.ErrPaymentNotFound):
		result = metrics.ReceiptResultNotFound
	case errors.Is(err, paymentErrors.ErrInvalidPaymentState):
		result = metrics.ReceiptResultInvalidState
	default:
		result = metrics.ReceiptResultError
	}
	s.metrics.ReceiptGeneratedTotal.WithLabelValues(result).Inc()
}
