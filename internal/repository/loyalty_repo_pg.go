package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/selimhany/airreserve/internal/domain"
)

type LoyaltyRepository interface {
	Enroll(ctx context.Context, lp *domain.LoyaltyProgram) error
	GetByPassenger(ctx context.Context, passengerID int64) (*domain.LoyaltyProgram, error)
	AddPoints(ctx context.Context, passengerID int64, pts int) (*domain.LoyaltyProgram, error)
	RedeemPoints(ctx context.Context, passengerID int64, pts int) (*domain.LoyaltyProgram, error)
}

type PGLoyaltyRepository struct {
	db *pgxpool.Pool
}

func NewLoyaltyRepository(db *pgxpool.Pool) LoyaltyRepository {
	return &PGLoyaltyRepository{db: db}
}

const loyaltyColumns = `id, passenger_id, program_name, points, tier, points_to_next_tier, start_date, rewards`

func scanLoyalty(row pgx.Row, lp *domain.LoyaltyProgram) error {
	var rewards []byte
	if err := row.Scan(&lp.ID, &lp.PassengerID, &lp.ProgramName, &lp.Points, &lp.Tier,
		&lp.PointsToNextTier, &lp.StartDate, &rewards); err != nil {
		return err
	}
	if len(rewards) > 0 {
		return json.Unmarshal(rewards, &lp.Rewards)
	}
	return nil
}

// Enroll creates the one-to-one membership; the unique passenger_id
// constraint turns a second enrollment into ErrDuplicate.
func (r *PGLoyaltyRepository) Enroll(ctx context.Context, lp *domain.LoyaltyProgram) error {
	rewards, err := json.Marshal(lp.Rewards)
	if err != nil {
		return err
	}
	err = r.db.QueryRow(ctx, `INSERT INTO loyalty_programs (passenger_id, program_name, points, tier, points_to_next_tier, start_date, rewards)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (passenger_id) DO NOTHING
		RETURNING id`,
		lp.PassengerID, lp.ProgramName, lp.Points, lp.Tier, lp.PointsToNextTier, lp.StartDate, rewards).
		Scan(&lp.ID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrDuplicate
	}
	return err
}

func (r *PGLoyaltyRepository) GetByPassenger(ctx context.Context, passengerID int64) (*domain.LoyaltyProgram, error) {
	row := r.db.QueryRow(ctx, `SELECT `+loyaltyColumns+` FROM loyalty_programs WHERE passenger_id=$1`, passengerID)
	var lp domain.LoyaltyProgram
	if err := scanLoyalty(row, &lp); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &lp, nil
}

func (r *PGLoyaltyRepository) AddPoints(ctx context.Context, passengerID int64, pts int) (*domain.LoyaltyProgram, error) {
	row := r.db.QueryRow(ctx, `UPDATE loyalty_programs SET points = points + $2
		WHERE passenger_id=$1
		RETURNING `+loyaltyColumns, passengerID, pts)
	var lp domain.LoyaltyProgram
	if err := scanLoyalty(row, &lp); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &lp, nil
}

// RedeemPoints carries the balance check in the WHERE clause so a
// racing redemption can never drive the balance negative.
func (r *PGLoyaltyRepository) RedeemPoints(ctx context.Context, passengerID int64, pts int) (*domain.LoyaltyProgram, error) {
	row := r.db.QueryRow(ctx, `UPDATE loyalty_programs SET points = points - $2
		WHERE passenger_id=$1 AND points >= $2
		RETURNING `+loyaltyColumns, passengerID, pts)
	var lp domain.LoyaltyProgram
	if err := scanLoyalty(row, &lp); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, getErr := r.GetByPassenger(ctx, passengerID); getErr != nil {
				return nil, getErr
			}
			return nil, domain.ErrInsufficientPoints
		}
		return nil, err
	}
	return &lp, nil
}

var _ LoyaltyRepository = (*PGLoyaltyRepository)(nil)
