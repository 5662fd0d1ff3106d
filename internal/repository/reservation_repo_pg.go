package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/selimhany/airreserve/internal/domain"
)

type ReservationRepository interface {
	CreatePending(ctx context.Context, res *domain.Reservation) error
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	Confirm(ctx context.Context, id int64) (*domain.Reservation, bool, error)
	Cancel(ctx context.Context, id int64) (*domain.Reservation, bool, error)
}

type PGReservationRepository struct {
	db *pgxpool.Pool
}

func NewReservationRepository(db *pgxpool.Pool) ReservationRepository {
	return &PGReservationRepository{db: db}
}

const reservationColumns = `id, passenger_id, flight_id, seat_number, status, final_price, created_at`

func scanReservation(row pgx.Row, res *domain.Reservation) error {
	return row.Scan(&res.ID, &res.PassengerID, &res.FlightID, &res.SeatNumber, &res.Status, &res.FinalPrice, &res.CreatedAt)
}

// CreatePending takes the seat and inserts the reservation in one
// transaction, so a racing booking for the same seat loses on the
// conditional seat flip and nothing is half-written.
func (r *PGReservationRepository) CreatePending(ctx context.Context, res *domain.Reservation) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	cmd, err := tx.Exec(ctx, `UPDATE seats SET is_available = false, reserved_at = now()
		WHERE flight_id=$1 AND seat_number=$2 AND is_available`, res.FlightID, res.SeatNumber)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrSeatNotAvailable
	}

	res.Status = domain.ReservationStatusPending
	if err := tx.QueryRow(ctx, `INSERT INTO reservations (passenger_id, flight_id, seat_number, status, final_price)
		VALUES ($1, $2, $3, $4, 0)
		RETURNING id, final_price, created_at`,
		res.PassengerID, res.FlightID, res.SeatNumber, res.Status).
		Scan(&res.ID, &res.FinalPrice, &res.CreatedAt); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *PGReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	row := r.db.QueryRow(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id=$1`, id)
	var res domain.Reservation
	if err := scanReservation(row, &res); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &res, nil
}

// Confirm flips Pending to Confirmed and decrements the flight counter
// in the same transaction. The conditional WHERE clauses make the pair
// of racing confirms resolve to exactly one winner; the loser gets the
// current row back with ok=false.
func (r *PGReservationRepository) Confirm(ctx context.Context, id int64) (*domain.Reservation, bool, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback(ctx)

	var res domain.Reservation
	row := tx.QueryRow(ctx, `UPDATE reservations SET status=$2
		WHERE id=$1 AND status=$3
		RETURNING `+reservationColumns,
		id, domain.ReservationStatusConfirmed, domain.ReservationStatusPending)
	if err := scanReservation(row, &res); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			current, getErr := r.GetByID(ctx, id)
			return current, false, getErr
		}
		return nil, false, err
	}

	cmd, err := tx.Exec(ctx, `UPDATE flights SET available_seats = available_seats - 1, updated_at = now()
		WHERE id=$1 AND available_seats > 0`, res.FlightID)
	if err != nil {
		return nil, false, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, false, ErrNoAvailableSeats
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, err
	}
	return &res, true, nil
}

// Cancel is terminal: it releases the seat, gives the counter back for a
// previously confirmed reservation and leaves canceled rows untouched.
func (r *PGReservationRepository) Cancel(ctx context.Context, id int64) (*domain.Reservation, bool, error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback(ctx)

	var res domain.Reservation
	var wasConfirmed bool
	row := tx.QueryRow(ctx, `UPDATE reservations SET status=$2
		WHERE id=$1 AND status <> $2
		RETURNING `+reservationColumns+`, (SELECT status=$3 FROM reservations prev WHERE prev.id=$1)`,
		id, domain.ReservationStatusCanceled, domain.ReservationStatusConfirmed)
	if err := row.Scan(&res.ID, &res.PassengerID, &res.FlightID, &res.SeatNumber, &res.Status, &res.FinalPrice, &res.CreatedAt, &wasConfirmed); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			current, getErr := r.GetByID(ctx, id)
			return current, false, getErr
		}
		return nil, false, err
	}

	if _, err := tx.Exec(ctx, `UPDATE seats SET is_available = true, reserved_at = NULL
		WHERE flight_id=$1 AND seat_number=$2 AND NOT is_available`, res.FlightID, res.SeatNumber); err != nil {
		return nil, false, err
	}

	if wasConfirmed {
		if _, err := tx.Exec(ctx, `UPDATE flights SET available_seats = available_seats + 1, updated_at = now()
			WHERE id=$1 AND available_seats < total_seats`, res.FlightID); err != nil {
			return nil, false, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, false, err
	}
	return &res, true, nil
}

var _ ReservationRepository = (*PGReservationRepository)(nil)
