package application

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sebuszqo/PaymentsService/internal/metrics"
	"github.com/sebuszqo/PaymentsService/internal/payment/domain"
	paymentErrors "github.com/sebuszqo/PaymentsService/internal/payment/errors"
)

type PaymentService struct {
	repo    domain.PaymentRepository
	metrics *metrics.PaymentMetrics
	now     func() time.Time
}

func NewPaymentService(repo domain.PaymentRepository, m *metrics.PaymentMetrics) *PaymentService {
	return &PaymentService{repo: repo, metrics: m, now: time.Now}
}

func (s *PaymentService) CreatePayment(ctx context.Context, fields domain.PaymentFields) (*domain.Payment, error) {
	payment, err := fields.Build(s.now(), domain.PaymentStatusPending)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, &payment); err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.PaymentsCreatedTotal.Inc()
	}
	return &payment, nil
}

func (s *PaymentService) GetPaymentByID(ctx context.Context, paymentID int64) (*domain.Payment, error) {
	payment, err := s.repo.FindByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, paymentErrors.ErrPaymentNotFound
		}
		return nil, err
	}
	return payment, nil
}

// UpdatePayment replaces every field of the stored payment. An omitted date
// or status keeps the stored value; any status may follow any other.
func (s *PaymentService) UpdatePayment(ctx context.Context, paymentID int64, fields domain.PaymentFields) (*domain.Payment, error) {
	existing, err := s.GetPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	payment, err := fields.Build(existing.PaymentDate, existing.Status)
	if err != nil {
		return nil, err
	}
	payment.ID = existing.ID

	affected, err := s.repo.Update(ctx, payment)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, paymentErrors.ErrPaymentNotFound
	}
	if s.metrics != nil {
		s.metrics.PaymentsUpdatedTotal.Inc()
	}
	return &payment, nil
}

func (s *PaymentService) GetPaymentsByArtist(ctx context.Context, artistID int64) ([]domain.Payment, error) {
	payments, err := s.repo.FindByArtist(ctx, artistID)
	if err != nil {
		return nil, err
	}
	if payments == nil {
		return []domain.Payment{}, nil
	}
	return payments, nil
}

func (s *PaymentService) GetPaymentsByArtistOrdered(ctx context.Context, artistID int64) ([]domain.Payment, error) {
	payments, err := s.repo.FindByArtistOrderedByDateDesc(ctx, artistID)
	if err != nil {
		return nil, err
	}
	if payments == nil {
		return []domain.Payment{}, nil
	}
	return payments, nil
}

// FilterPayments loads every payment and keeps those matching all criteria set
// on filter.
func (s *PaymentService) FilterPayments(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, error) {
	payments, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return filter.Apply(payments), nil
}
