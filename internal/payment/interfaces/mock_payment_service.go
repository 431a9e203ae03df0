package interfaces

import (
	"context"

	"github.com/sebuszqo/PaymentsService/internal/payment/domain"
)

type MockPaymentService struct {
	Payment  *domain.Payment
	Payments []domain.Payment
	Err      error

	ReceivedFields domain.PaymentFields
	ReceivedFilter domain.PaymentFilter
	ReceivedID     int64
}

func NewMockPaymentService(payment *domain.Payment, payments []domain.Payment, err error) *MockPaymentService {
	return &MockPaymentService{Payment: payment, Payments: payments, Err: err}
}

func (m *MockPaymentService) CreatePayment(_ context.Context, fields domain.PaymentFields) (*domain.Payment, error) {
	m.ReceivedFields = fields
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Payment, nil
}

func (m *MockPaymentService) GetPaymentByID(_ context.Context, paymentID int64) (*domain.Payment, error) {
	m.ReceivedID = paymentID
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Payment, nil
}

func (m *MockPaymentService) UpdatePayment(_ context.Context, paymentID int64, fields domain.PaymentFields) (*domain.Payment, error) {
	m.ReceivedID = paymentID
	m.ReceivedFields = fields
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Payment, nil
}

func (m *MockPaymentService) GetPaymentsByArtist(_ context.Context, artistID int64) ([]domain.Payment, error) {
	m.ReceivedID = artistID
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Payments, nil
}

func (m *MockPaymentService) GetPaymentsByArtistOrdered(ctx context.Context, artistID int64) ([]domain.Payment, error) {
	return m.GetPaymentsByArtist(ctx, artistID)
}

func (m *MockPaymentService) FilterPayments(_ context.Context, filter domain.PaymentFilter) ([]domain.Payment, error) {
	m.ReceivedFilter = filter
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Payments, nil
}
