package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/selimhany/airreserve/internal/domain"
)

// ClickPoint is one recorded click position, the raw material of the
// heatmap render.
type ClickPoint struct {
	X int
	Y int
}

type InteractionRepository interface {
	Insert(ctx context.Context, in *domain.Interaction) error
	ClickPoints(ctx context.Context) ([]ClickPoint, error)
}

type PGInteractionRepository struct {
	db *pgxpool.Pool
}

func NewInteractionRepository(db *pgxpool.Pool) InteractionRepository {
	return &PGInteractionRepository{db: db}
}

func (r *PGInteractionRepository) Insert(ctx context.Context, in *domain.Interaction) error {
	return r.db.QueryRow(ctx, `INSERT INTO interactions (event, x, y, scroll_top, scroll_height)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		in.Event, in.X, in.Y, in.ScrollTop, in.ScrollHeight).
		Scan(&in.ID, &in.CreatedAt)
}

func (r *PGInteractionRepository) ClickPoints(ctx context.Context) ([]ClickPoint, error) {
	rows, err := r.db.Query(ctx, `SELECT x, y FROM interactions WHERE event=$1`, domain.InteractionClick)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points := make([]ClickPoint, 0)
	for rows.Next() {
		var p ClickPoint
		if err := rows.Scan(&p.X, &p.Y); err != nil {
			return nil, err
		}
		points = append(points, p)
	}
	return points, rows.Err()
}

var _ InteractionRepository = (*PGInteractionRepository)(nil)
