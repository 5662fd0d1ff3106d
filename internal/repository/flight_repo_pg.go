package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/selimhany/airreserve/internal/domain"
)

// FlightFilter narrows flight listings; zero values mean no filter.
type FlightFilter struct {
	DepartureCode   string
	DestinationCode string
	DepartureAfter  time.Time
	Limit           int
	Offset          int
}

type FlightRepository interface {
	List(ctx context.Context, filter FlightFilter) ([]domain.Flight, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	GetByNumber(ctx context.Context, flightNumber string) (*domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
	Delete(ctx context.Context, id int64) error
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `id, airline_id, flight_number, departure_code, destination_code, departure_time, arrival_time, total_seats, available_seats, gate, terminal, operating_days, created_at, updated_at`

func scanFlight(row pgx.Row, f *domain.Flight) error {
	return row.Scan(&f.ID, &f.AirlineID, &f.FlightNumber, &f.DepartureCode, &f.DestinationCode,
		&f.DepartureTime, &f.ArrivalTime, &f.TotalSeats, &f.AvailableSeats,
		&f.Gate, &f.Terminal, &f.OperatingDays, &f.CreatedAt, &f.UpdatedAt)
}

func (r *PGFlightRepository) List(ctx context.Context, filter FlightFilter) ([]domain.Flight, error) {
	query := `SELECT ` + flightColumns + ` FROM flights
		WHERE ($1 = '' OR departure_code = $1)
		  AND ($2 = '' OR destination_code = $2)
		  AND ($3::timestamptz IS NULL OR departure_time >= $3)
		ORDER BY departure_time
		LIMIT $4 OFFSET $5`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	var after *time.Time
	if !filter.DepartureAfter.IsZero() {
		after = &filter.DepartureAfter
	}

	rows, err := r.db.Query(ctx, query, filter.DepartureCode, filter.DestinationCode, after, limit, filter.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := scanFlight(rows, &f); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id=$1`, id)
	var f domain.Flight
	if err := scanFlight(row, &f); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *PGFlightRepository) GetByNumber(ctx context.Context, flightNumber string) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE flight_number=$1`, flightNumber)
	var f domain.Flight
	if err := scanFlight(row, &f); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	return r.db.QueryRow(ctx, `INSERT INTO flights (airline_id, flight_number, departure_code, destination_code, departure_time, arrival_time, total_seats, available_seats, gate, terminal, operating_days)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7, $8, $9, $10)
		RETURNING id, available_seats, created_at, updated_at`,
		flight.AirlineID, flight.FlightNumber, flight.DepartureCode, flight.DestinationCode,
		flight.DepartureTime, flight.ArrivalTime, flight.TotalSeats,
		flight.Gate, flight.Terminal, flight.OperatingDays).
		Scan(&flight.ID, &flight.AvailableSeats, &flight.CreatedAt, &flight.UpdatedAt)
}

func (r *PGFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	cmd, err := r.db.Exec(ctx, `UPDATE flights SET departure_time=$2, arrival_time=$3, gate=$4, terminal=$5, operating_days=$6, updated_at=now() WHERE id=$1`,
		flight.ID, flight.DepartureTime, flight.ArrivalTime, flight.Gate, flight.Terminal, flight.OperatingDays)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the flight; seats and reservations go with it through
// the foreign-key cascade.
func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM flights WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var _ FlightRepository = (*PGFlightRepository)(nil)
