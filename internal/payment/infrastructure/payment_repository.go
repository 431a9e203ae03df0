package infrastructure

import (
	"context"
	"database/sql"

	"github.com/sebuszqo/PaymentsService/internal/payment/domain"
)

const paymentColumns = `id, artist_id, amount_paid, payment_date, concept, payment_method, status`

type PaymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Save(ctx context.Context, payment *domain.Payment) error {
	query := `INSERT INTO payments (artist_id, amount_paid, payment_date, concept, payment_method, status)
              VALUES ($1, $2, $3, $4, $5, $6)
              RETURNING id`
	return r.db.QueryRowContext(ctx, query,
		payment.ArtistID, payment.Amount, payment.PaymentDate, payment.Concept,
		string(payment.PaymentMethod), string(payment.Status),
	).Scan(&payment.ID)
}

// FindByID returns sql.ErrNoRows when the payment does not exist.
func (r *PaymentRepository) FindByID(ctx context.Context, paymentID int64) (*domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`

	var payment domain.Payment
	err := scanPayment(r.db.QueryRowContext(ctx, query, paymentID), &payment)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepository) Update(ctx context.Context, payment domain.Payment) (int64, error) {
	query := `
        UPDATE payments
        SET artist_id = $1, amount_paid = $2, payment_date = $3, concept = $4, payment_method = $5, status = $6
        WHERE id = $7
    `
	result, err := r.db.ExecContext(ctx, query,
		payment.ArtistID, payment.Amount, payment.PaymentDate, payment.Concept,
		string(payment.PaymentMethod), string(payment.Status), payment.ID,
	)
	if err != nil {
		return 0, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return affected, nil
}

func (r *PaymentRepository) FindAll(ctx context.Context) ([]domain.Payment, error) {
	return r.query(ctx, `SELECT `+paymentColumns+` FROM payments ORDER BY id`)
}

func (r *PaymentRepository) FindByArtist(ctx context.Context, artistID int64) ([]domain.Payment, error) {
	return r.query(ctx, `SELECT `+paymentColumns+` FROM payments WHERE artist_id = $1 ORDER BY id`, artistID)
}

func (r *PaymentRepository) FindByArtistOrderedByDateDesc(ctx context.Context, artistID int64) ([]domain.Payment, error) {
	return r.query(ctx, `SELECT `+paymentColumns+` FROM payments WHERE artist_id = $1 ORDER BY payment_date DESC, id ASC`, artistID)
}

func (r *PaymentRepository) query(ctx context.Context, query string, args ...interface{}) ([]domain.Payment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		var payment domain.Payment
		if err := scanPayment(rows, &payment); err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPayment(row rowScanner, payment *domain.Payment) error {
	var method, status string
	if err := row.Scan(&payment.ID, &payment.ArtistID, &payment.Amount, &payment.PaymentDate,
		&payment.Concept, &method, &status); err != nil {
		return err
	}
	payment.PaymentMethod = domain.PaymentMethod(method)
	payment.Status = domain.PaymentStatus(status)
	payment.PaymentDate = domain.CalendarDate(payment.PaymentDate)
	return nil
}
