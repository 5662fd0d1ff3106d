package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/selimhany/airreserve/internal/domain"
)

type SeatRepository interface {
	ListByFlight(ctx context.Context, flightID int64) ([]domain.Seat, error)
	Get(ctx context.Context, flightID int64, seatNumber string) (*domain.Seat, error)
	Create(ctx context.Context, seat *domain.Seat) error
	Reserve(ctx context.Context, flightID int64, seatNumber string) (bool, error)
	Release(ctx context.Context, flightID int64, seatNumber string) (bool, error)
	CountReserved(ctx context.Context, flightID int64) (int, error)
}

type PGSeatRepository struct {
	db *pgxpool.Pool
}

func NewSeatRepository(db *pgxpool.Pool) SeatRepository {
	return &PGSeatRepository{db: db}
}

const seatColumns = `id, flight_id, seat_number, class_type, seat_type, is_available, reserved_at, features`

func scanSeat(row pgx.Row, s *domain.Seat) error {
	return row.Scan(&s.ID, &s.FlightID, &s.SeatNumber, &s.ClassType, &s.SeatType, &s.Available, &s.ReservedAt, &s.Features)
}

func (r *PGSeatRepository) ListByFlight(ctx context.Context, flightID int64) ([]domain.Seat, error) {
	rows, err := r.db.Query(ctx, `SELECT `+seatColumns+` FROM seats WHERE flight_id=$1 ORDER BY seat_number`, flightID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.Seat, 0)
	for rows.Next() {
		var s domain.Seat
		if err := scanSeat(rows, &s); err != nil {
			return nil, err
		}
		seats = append(seats, s)
	}
	return seats, rows.Err()
}

func (r *PGSeatRepository) Get(ctx context.Context, flightID int64, seatNumber string) (*domain.Seat, error) {
	row := r.db.QueryRow(ctx, `SELECT `+seatColumns+` FROM seats WHERE flight_id=$1 AND seat_number=$2`, flightID, seatNumber)
	var s domain.Seat
	if err := scanSeat(row, &s); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *PGSeatRepository) Create(ctx context.Context, seat *domain.Seat) error {
	return r.db.QueryRow(ctx, `INSERT INTO seats (flight_id, seat_number, class_type, seat_type, is_available, features)
		VALUES ($1, $2, $3, $4, true, $5)
		RETURNING id, is_available`,
		seat.FlightID, seat.SeatNumber, seat.ClassType, seat.SeatType, seat.Features).
		Scan(&seat.ID, &seat.Available)
}

// Reserve flips the availability flag and timestamp together. A false
// return means the seat was already taken, which callers report as a
// no-op, not an error.
func (r *PGSeatRepository) Reserve(ctx context.Context, flightID int64, seatNumber string) (bool, error) {
	cmd, err := r.db.Exec(ctx, `UPDATE seats SET is_available = false, reserved_at = now()
		WHERE flight_id=$1 AND seat_number=$2 AND is_available`, flightID, seatNumber)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *PGSeatRepository) Release(ctx context.Context, flightID int64, seatNumber string) (bool, error) {
	cmd, err := r.db.Exec(ctx, `UPDATE seats SET is_available = true, reserved_at = NULL
		WHERE flight_id=$1 AND seat_number=$2 AND NOT is_available`, flightID, seatNumber)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *PGSeatRepository) CountReserved(ctx context.Context, flightID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM seats WHERE flight_id=$1 AND NOT is_available`, flightID).Scan(&count)
	return count, err
}

var _ SeatRepository = (*PGSeatRepository)(nil)
