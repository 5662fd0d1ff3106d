package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/selimhany/airreserve/internal/domain"
)

type PassengerRepository interface {
	Create(ctx context.Context, p *domain.Passenger) error
	GetByID(ctx context.Context, id int64) (*domain.Passenger, error)
	GetByNationalID(ctx context.Context, nationalID string) (*domain.Passenger, error)
	List(ctx context.Context, limit, offset int) ([]domain.Passenger, error)
}

type PGPassengerRepository struct {
	db *pgxpool.Pool
}

func NewPassengerRepository(db *pgxpool.Pool) PassengerRepository {
	return &PGPassengerRepository{db: db}
}

const passengerColumns = `id, name, national_id, email, phone_number, nationality, is_vip, address, date_of_birth, passport_number, frequent_flyer_number, created_at`

func scanPassenger(row pgx.Row, p *domain.Passenger) error {
	return row.Scan(&p.ID, &p.Name, &p.NationalID, &p.Email, &p.PhoneNumber, &p.Nationality,
		&p.VIP, &p.Address, &p.DateOfBirth, &p.PassportNumber, &p.FrequentFlyerNumber, &p.CreatedAt)
}

func (r *PGPassengerRepository) Create(ctx context.Context, p *domain.Passenger) error {
	return r.db.QueryRow(ctx, `INSERT INTO passengers (name, national_id, email, phone_number, nationality, is_vip, address, date_of_birth, passport_number, frequent_flyer_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`,
		p.Name, p.NationalID, p.Email, p.PhoneNumber, p.Nationality, p.VIP, p.Address,
		p.DateOfBirth, p.PassportNumber, p.FrequentFlyerNumber).
		Scan(&p.ID, &p.CreatedAt)
}

func (r *PGPassengerRepository) GetByID(ctx context.Context, id int64) (*domain.Passenger, error) {
	row := r.db.QueryRow(ctx, `SELECT `+passengerColumns+` FROM passengers WHERE id=$1`, id)
	var p domain.Passenger
	if err := scanPassenger(row, &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGPassengerRepository) GetByNationalID(ctx context.Context, nationalID string) (*domain.Passenger, error) {
	row := r.db.QueryRow(ctx, `SELECT `+passengerColumns+` FROM passengers WHERE national_id=$1`, nationalID)
	var p domain.Passenger
	if err := scanPassenger(row, &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGPassengerRepository) List(ctx context.Context, limit, offset int) ([]domain.Passenger, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(ctx, `SELECT `+passengerColumns+` FROM passengers ORDER BY id LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	passengers := make([]domain.Passenger, 0)
	for rows.Next() {
		var p domain.Passenger
		if err := scanPassenger(rows, &p); err != nil {
			return nil, err
		}
		passengers = append(passengers, p)
	}
	return passengers, rows.Err()
}

var _ PassengerRepository = (*PGPassengerRepository)(nil)
