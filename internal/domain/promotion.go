package domain

import (
	"errors"
	"time"
)

// PromotionKind selects the discount strategy. The special kind stacks
// an extra bonus percentage on top of the base discount.
type PromotionKind string

const (
	PromotionStandard PromotionKind = "standard"
	PromotionSpecial  PromotionKind = "special"
)

var (
	ErrPromotionInvalid     = errors.New("promotion is not valid or has expired")
	ErrEndDateNotLater      = errors.New("new end date must be after the current end date")
	ErrInvalidPromotionKind = errors.New("promotion kind must be standard or special")
)

type Promotion struct {
	PromoID            string        `json:"promo_id"`
	Description        string        `json:"description"`
	Kind               PromotionKind `json:"kind"`
	DiscountPercentage float64       `json:"discount_percentage"`
	ExtraBonus         float64       `json:"extra_bonus,omitempty"`
	StartDate          time.Time     `json:"start_date"`
	EndDate            time.Time     `json:"end_date"`
	PromoCode          string        `json:"promo_code"`
	MinPurchase        float64       `json:"min_purchase"`
	MaxDiscount        float64       `json:"max_discount"`
	UsageLimit         int           `json:"usage_limit"`
	UsageCount         int           `json:"usage_count"`
}

// Valid reports whether the promotion can still be used: now must lie
// inside the validity window and the usage limit must not be reached.
func (p *Promotion) Valid(now time.Time) bool {
	if now.Before(p.StartDate) || now.After(p.EndDate) {
		return false
	}
	return p.UsageCount < p.UsageLimit
}

func (p *Promotion) percentage() float64 {
	if p.Kind == PromotionSpecial {
		return p.DiscountPercentage + p.ExtraBonus
	}
	return p.DiscountPercentage
}

// Apply discounts a price and consumes one use. The caller must persist
// the usage count in the same transaction as the validity check so two
// racing applications cannot overrun the limit.
func (p *Promotion) Apply(price float64, now time.Time) (float64, error) {
	if !p.Valid(now) {
		return 0, ErrPromotionInvalid
	}
	discounted := price * (1 - p.percentage()/100)
	if discounted > p.MaxDiscount {
		discounted = p.MaxDiscount
	}
	p.UsageCount++
	return discounted, nil
}

// Extend pushes the validity window further out; shrinking is rejected.
func (p *Promotion) Extend(newEnd time.Time) error {
	if !newEnd.After(p.EndDate) {
		return ErrEndDateNotLater
	}
	p.EndDate = newEnd
	return nil
}
