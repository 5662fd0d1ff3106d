package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/selimhany/airreserve/internal/domain"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) error
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	LatestByReservation(ctx context.Context, reservationID int64) (*domain.Payment, error)
	Complete(ctx context.Context, id int64, at time.Time) (*domain.Payment, bool, error)
	Refund(ctx context.Context, id int64) (*domain.Payment, bool, error)
}

type PGPaymentRepository struct {
	db *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) PaymentRepository {
	return &PGPaymentRepository{db: db}
}

const paymentColumns = `id, reservation_id, amount, method, status, transaction_id, currency, is_refundable, paid_at`

func scanPayment(row pgx.Row, p *domain.Payment) error {
	var paidAt *time.Time
	if err := row.Scan(&p.ID, &p.ReservationID, &p.Amount, &p.Method, &p.Status,
		&p.TransactionID, &p.Currency, &p.Refundable, &paidAt); err != nil {
		return err
	}
	if paidAt != nil {
		p.PaidAt = *paidAt
	}
	return nil
}

func (r *PGPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	payment.Status = domain.PaymentStatusPending
	return r.db.QueryRow(ctx, `INSERT INTO payments (reservation_id, amount, method, status, transaction_id, currency, is_refundable)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		payment.ReservationID, payment.Amount, payment.Method, payment.Status,
		payment.TransactionID, payment.Currency, payment.Refundable).
		Scan(&payment.ID)
}

func (r *PGPaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	row := r.db.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id=$1`, id)
	var p domain.Payment
	if err := scanPayment(row, &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGPaymentRepository) LatestByReservation(ctx context.Context, reservationID int64) (*domain.Payment, error) {
	row := r.db.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE reservation_id=$1 ORDER BY id DESC LIMIT 1`, reservationID)
	var p domain.Payment
	if err := scanPayment(row, &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Complete moves pending to completed; a repeat call loses on the WHERE
// guard and reports ok=false with the current row.
func (r *PGPaymentRepository) Complete(ctx context.Context, id int64, at time.Time) (*domain.Payment, bool, error) {
	row := r.db.QueryRow(ctx, `UPDATE payments SET status=$2, paid_at=$3
		WHERE id=$1 AND status=$4
		RETURNING `+paymentColumns,
		id, domain.PaymentStatusCompleted, at, domain.PaymentStatusPending)
	var p domain.Payment
	if err := scanPayment(row, &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			current, getErr := r.GetByID(ctx, id)
			return current, false, getErr
		}
		return nil, false, err
	}
	return &p, true, nil
}

// Refund succeeds only from completed on refundable payments.
func (r *PGPaymentRepository) Refund(ctx context.Context, id int64) (*domain.Payment, bool, error) {
	row := r.db.QueryRow(ctx, `UPDATE payments SET status=$2
		WHERE id=$1 AND status=$3 AND is_refundable
		RETURNING `+paymentColumns,
		id, domain.PaymentStatusRefunded, domain.PaymentStatusCompleted)
	var p domain.Payment
	if err := scanPayment(row, &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			current, getErr := r.GetByID(ctx, id)
			return current, false, getErr
		}
		return nil, false, err
	}
	return &p, true, nil
}

var _ PaymentRepository = (*PGPaymentRepository)(nil)
