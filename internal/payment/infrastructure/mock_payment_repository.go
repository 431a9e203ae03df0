package infrastructure

import (
	"context"
	"database/sql"
	"sync"

	"github.com/sebuszqo/PaymentsService/internal/payment/domain"
)

// MockPaymentRepository keeps payments in memory and mirrors the PostgreSQL
// repository: ids start at 1 and a missing payment is sql.ErrNoRows.
type MockPaymentRepository struct {
	mu       sync.Mutex
	Payments []domain.Payment
	nextID   int64
	Err      error
}

func NewMockPaymentRepository(payments ...domain.Payment) *MockPaymentRepository {
	repo := &MockPaymentRepository{}
	for _, p := range payments {
		repo.Payments = append(repo.Payments, p)
		if p.ID > repo.nextID {
			repo.nextID = p.ID
		}
	}
	return repo
}

func (m *MockPaymentRepository) Save(_ context.Context, payment *domain.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.nextID++
	payment.ID = m.nextID
	m.Payments = append(m.Payments, *payment)
	return nil
}

func (m *MockPaymentRepository) FindByID(_ context.Context, paymentID int64) (*domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, p := range m.Payments {
		if p.ID == paymentID {
			found := p
			return &found, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *MockPaymentRepository) Update(_ context.Context, payment domain.Payment) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	for i, p := range m.Payments {
		if p.ID == payment.ID {
			m.Payments[i] = payment
			return 1, nil
		}
	}
	return 0, nil
}

func (m *MockPaymentRepository) FindAll(_ context.Context) ([]domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	all := make([]domain.Payment, len(m.Payments))
	copy(all, m.Payments)
	return all, nil
}

func (m *MockPaymentRepository) FindByArtist(_ context.Context, artistID int64) ([]domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	filtered := []domain.Payment{}
	for _, p := range m.Payments {
		if p.ArtistID == artistID {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

func (m *MockPaymentRepository) FindByArtistOrderedByDateDesc(ctx context.Context, artistID int64) ([]domain.Payment, error) {
	payments, err := m.FindByArtist(ctx, artistID)
	if err != nil {
		return nil, err
	}
	domain.SortByDateDesc(payments)
	return payments, nil
}
