package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/selimhany/airreserve/internal/domain"
)

type PromotionRepository interface {
	Create(ctx context.Context, promo *domain.Promotion) error
	GetByID(ctx context.Context, promoID string) (*domain.Promotion, error)
	Extend(ctx context.Context, promoID string, newEnd time.Time) (*domain.Promotion, error)
}

type PGPromotionRepository struct {
	db *pgxpool.Pool
}

func NewPromotionRepository(db *pgxpool.Pool) PromotionRepository {
	return &PGPromotionRepository{db: db}
}

const promotionColumns = `promo_id, description, kind, discount_percentage, extra_bonus, start_date, end_date, promo_code, min_purchase, max_discount, usage_limit, usage_count`

func scanPromotion(row pgx.Row, p *domain.Promotion) error {
	return row.Scan(&p.PromoID, &p.Description, &p.Kind, &p.DiscountPercentage, &p.ExtraBonus,
		&p.StartDate, &p.EndDate, &p.PromoCode, &p.MinPurchase, &p.MaxDiscount,
		&p.UsageLimit, &p.UsageCount)
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx so lookups can
// run inside a caller's transaction.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func getPromotion(ctx context.Context, q querier, promoID string) (*domain.Promotion, error) {
	row := q.QueryRow(ctx, `SELECT `+promotionColumns+` FROM promotions WHERE promo_id=$1`, promoID)
	var p domain.Promotion
	if err := scanPromotion(row, &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PGPromotionRepository) Create(ctx context.Context, promo *domain.Promotion) error {
	_, err := r.db.Exec(ctx, `INSERT INTO promotions (promo_id, description, kind, discount_percentage, extra_bonus, start_date, end_date, promo_code, min_purchase, max_discount, usage_limit, usage_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 0)`,
		promo.PromoID, promo.Description, promo.Kind, promo.DiscountPercentage, promo.ExtraBonus,
		promo.StartDate, promo.EndDate, promo.PromoCode, promo.MinPurchase, promo.MaxDiscount,
		promo.UsageLimit)
	return err
}

func (r *PGPromotionRepository) GetByID(ctx context.Context, promoID string) (*domain.Promotion, error) {
	return getPromotion(ctx, r.db, promoID)
}

// Extend only ever pushes the end date out, guarded in the WHERE clause.
func (r *PGPromotionRepository) Extend(ctx context.Context, promoID string, newEnd time.Time) (*domain.Promotion, error) {
	row := r.db.QueryRow(ctx, `UPDATE promotions SET end_date=$2
		WHERE promo_id=$1 AND end_date < $2
		RETURNING `+promotionColumns, promoID, newEnd)
	var p domain.Promotion
	if err := scanPromotion(row, &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			if _, getErr := getPromotion(ctx, r.db, promoID); getErr != nil {
				return nil, getErr
			}
			return nil, domain.ErrEndDateNotLater
		}
		return nil, err
	}
	return &p, nil
}

var _ PromotionRepository = (*PGPromotionRepository)(nil)
