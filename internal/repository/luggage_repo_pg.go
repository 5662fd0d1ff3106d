package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/selimhany/airreserve/internal/domain"
)

type LuggageRepository interface {
	Create(ctx context.Context, l *domain.Luggage) error
	GetByID(ctx context.Context, id string) (*domain.Luggage, error)
	ListByPassenger(ctx context.Context, passengerID int64) ([]domain.Luggage, error)
	Update(ctx context.Context, l *domain.Luggage) error
}

type PGLuggageRepository struct {
	db *pgxpool.Pool
}

func NewLuggageRepository(db *pgxpool.Pool) LuggageRepository {
	return &PGLuggageRepository{db: db}
}

const luggageColumns = `id, passenger_id, ticket_number, weight, dimensions, fee, fine, status, is_checked_in, is_fragile, tracking`

func scanLuggage(row pgx.Row, l *domain.Luggage) error {
	var tracking []byte
	if err := row.Scan(&l.ID, &l.PassengerID, &l.TicketNumber, &l.Weight, &l.Dimensions,
		&l.Fee, &l.Fine, &l.Status, &l.CheckedIn, &l.Fragile, &tracking); err != nil {
		return err
	}
	if len(tracking) > 0 {
		return json.Unmarshal(tracking, &l.Tracking)
	}
	return nil
}

func (r *PGLuggageRepository) Create(ctx context.Context, l *domain.Luggage) error {
	tracking, err := json.Marshal(l.Tracking)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO luggage (id, passenger_id, ticket_number, weight, dimensions, fee, fine, status, is_checked_in, is_fragile, tracking)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		l.ID, l.PassengerID, l.TicketNumber, l.Weight, l.Dimensions, l.Fee, l.Fine,
		l.Status, l.CheckedIn, l.Fragile, tracking)
	return err
}

func (r *PGLuggageRepository) GetByID(ctx context.Context, id string) (*domain.Luggage, error) {
	row := r.db.QueryRow(ctx, `SELECT `+luggageColumns+` FROM luggage WHERE id=$1`, id)
	var l domain.Luggage
	if err := scanLuggage(row, &l); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

func (r *PGLuggageRepository) ListByPassenger(ctx context.Context, passengerID int64) ([]domain.Luggage, error) {
	rows, err := r.db.Query(ctx, `SELECT `+luggageColumns+` FROM luggage WHERE passenger_id=$1 ORDER BY id`, passengerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pieces := make([]domain.Luggage, 0)
	for rows.Next() {
		var l domain.Luggage
		if err := scanLuggage(rows, &l); err != nil {
			return nil, err
		}
		pieces = append(pieces, l)
	}
	return pieces, rows.Err()
}

// Update persists status, fees and the full tracking log. The log only
// ever grows, so overwriting it with the in-memory copy is safe under
// the single-writer-per-operation model.
func (r *PGLuggageRepository) Update(ctx context.Context, l *domain.Luggage) error {
	tracking, err := json.Marshal(l.Tracking)
	if err != nil {
		return err
	}
	cmd, err := r.db.Exec(ctx, `UPDATE luggage SET fee=$2, fine=$3, status=$4, is_checked_in=$5, tracking=$6 WHERE id=$1`,
		l.ID, l.Fee, l.Fine, l.Status, l.CheckedIn, tracking)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

var _ LuggageRepository = (*PGLuggageRepository)(nil)
