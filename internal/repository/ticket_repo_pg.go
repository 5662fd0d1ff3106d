package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/selimhany/airreserve/internal/domain"
)

type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByNumber(ctx context.Context, ticketNumber int64) (*domain.Ticket, error)
	ListByReservation(ctx context.Context, reservationID int64) ([]domain.Ticket, error)
	Update(ctx context.Context, ticket *domain.Ticket) error
	ApplyPromotion(ctx context.Context, ticketNumber int64, promoID string, now time.Time) (*domain.Ticket, error)
	ExpireActiveBefore(ctx context.Context, deadline time.Time) ([]domain.Ticket, error)
}

type PGTicketRepository struct {
	db *pgxpool.Pool
}

func NewTicketRepository(db *pgxpool.Pool) TicketRepository {
	return &PGTicketRepository{db: db}
}

const ticketColumns = `ticket_number, reservation_id, passenger_id, flight_id, seat_number, class, status, issue_date, expiration_date, base_price, final_price, is_changeable, is_refundable, promo_id`

func scanTicket(row pgx.Row, t *domain.Ticket) error {
	var promoID *string
	var expiration *time.Time
	if err := row.Scan(&t.TicketNumber, &t.ReservationID, &t.PassengerID, &t.FlightID, &t.SeatNumber,
		&t.Class, &t.Status, &t.IssueDate, &expiration, &t.BasePrice, &t.FinalPrice,
		&t.Changeable, &t.Refundable, &promoID); err != nil {
		return err
	}
	if expiration != nil {
		t.ExpirationDate = *expiration
	}
	if promoID != nil {
		t.PromoID = *promoID
	}
	return nil
}

func nullable[T comparable](v T) *T {
	var zero T
	if v == zero {
		return nil
	}
	return &v
}

// Create inserts the ticket and folds its price into the owning
// reservation's running total in one transaction.
func (r *PGTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var expiration *time.Time
	if !ticket.ExpirationDate.IsZero() {
		expiration = &ticket.ExpirationDate
	}
	if err := tx.QueryRow(ctx, `INSERT INTO tickets (reservation_id, passenger_id, flight_id, seat_number, class, status, issue_date, expiration_date, base_price, final_price, is_changeable, is_refundable, promo_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ticket_number`,
		ticket.ReservationID, ticket.PassengerID, ticket.FlightID, ticket.SeatNumber,
		ticket.Class, ticket.Status, ticket.IssueDate, expiration,
		ticket.BasePrice, ticket.FinalPrice, ticket.Changeable, ticket.Refundable,
		nullable(ticket.PromoID)).
		Scan(&ticket.TicketNumber); err != nil {
		return err
	}

	cmd, err := tx.Exec(ctx, `UPDATE reservations SET final_price = final_price + $2 WHERE id=$1`, ticket.ReservationID, ticket.FinalPrice)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	return tx.Commit(ctx)
}

func (r *PGTicketRepository) GetByNumber(ctx context.Context, ticketNumber int64) (*domain.Ticket, error) {
	row := r.db.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE ticket_number=$1`, ticketNumber)
	var t domain.Ticket
	if err := scanTicket(row, &t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *PGTicketRepository) ListByReservation(ctx context.Context, reservationID int64) ([]domain.Ticket, error) {
	rows, err := r.db.Query(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE reservation_id=$1 ORDER BY ticket_number`, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]domain.Ticket, 0)
	for rows.Next() {
		var t domain.Ticket
		if err := scanTicket(rows, &t); err != nil {
			return nil, err
		}
		tickets = append(tickets, t)
	}
	return tickets, rows.Err()
}

func (r *PGTicketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	var expiration *time.Time
	if !ticket.ExpirationDate.IsZero() {
		expiration = &ticket.ExpirationDate
	}
	cmd, err := r.db.Exec(ctx, `UPDATE tickets SET seat_number=$2, status=$3, expiration_date=$4, final_price=$5, promo_id=$6 WHERE ticket_number=$1`,
		ticket.TicketNumber, ticket.SeatNumber, ticket.Status, expiration, ticket.FinalPrice, nullable(ticket.PromoID))
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ApplyPromotion consumes one promotion use and reprices the ticket in a
// single transaction. The usage increment carries the validity check in
// its WHERE clause, so two racing applications can never overrun the
// limit: the loser sees ErrPromotionExhausted and the ticket unchanged.
func (r *PGTicketRepository) ApplyPromotion(ctx context.Context, ticketNumber int64, promoID string, now time.Time) (*domain.Ticket, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var promo domain.Promotion
	row := tx.QueryRow(ctx, `UPDATE promotions SET usage_count = usage_count + 1
		WHERE promo_id=$1 AND usage_count < usage_limit AND start_date <= $2 AND end_date >= $2
		RETURNING `+promotionColumns, promoID, now)
	if err := scanPromotion(row, &promo); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, getErr := getPromotion(ctx, tx, promoID); getErr != nil {
				return nil, getErr
			}
			return nil, ErrPromotionExhausted
		}
		return nil, err
	}

	var ticket domain.Ticket
	row = tx.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE ticket_number=$1 FOR UPDATE`, ticketNumber)
	if err := scanTicket(row, &ticket); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	// Usage was already consumed by the conditional UPDATE above.
	promo.UsageCount--
	if !ticket.ApplyPromotion(&promo, now) {
		return nil, ErrPromotionExhausted
	}

	if _, err := tx.Exec(ctx, `UPDATE tickets SET final_price=$2, promo_id=$3 WHERE ticket_number=$1`,
		ticket.TicketNumber, ticket.FinalPrice, ticket.PromoID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// ExpireActiveBefore is the lazy expiry sweep run from the worker.
func (r *PGTicketRepository) ExpireActiveBefore(ctx context.Context, deadline time.Time) ([]domain.Ticket, error) {
	rows, err := r.db.Query(ctx, `UPDATE tickets SET status=$1
		WHERE status=$2 AND expiration_date IS NOT NULL AND expiration_date <= $3
		RETURNING `+ticketColumns,
		domain.TicketStatusExpired, domain.TicketStatusActive, deadline)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var expired []domain.Ticket
	for rows.Next() {
		var t domain.Ticket
		if err := scanTicket(rows, &t); err != nil {
			return nil, err
		}
		expired = append(expired, t)
	}
	return expired, rows.Err()
}

var _ TicketRepository = (*PGTicketRepository)(nil)
