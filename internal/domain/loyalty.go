package domain

import (
	"errors"
	"time"
)

var (
	ErrNonPositivePoints  = errors.New("points must be positive")
	ErrInsufficientPoints = errors.New("not enough points to redeem")
	ErrAlreadyEnrolled    = errors.New("passenger is already enrolled in a loyalty program")
)

type LoyaltyProgram struct {
	ID               int64     `json:"id"`
	PassengerID      int64     `json:"passenger_id"`
	ProgramName      string    `json:"program_name"`
	Points           int       `json:"points"`
	Tier             string    `json:"tier"`
	PointsToNextTier int       `json:"points_to_next_tier"`
	StartDate        time.Time `json:"start_date"`
	Rewards          []string  `json:"rewards,omitempty"`
}

func (lp *LoyaltyProgram) AddPoints(pts int) error {
	if pts <= 0 {
		return ErrNonPositivePoints
	}
	lp.Points += pts
	return nil
}

func (lp *LoyaltyProgram) RedeemPoints(pts int) error {
	if pts <= 0 {
		return ErrNonPositivePoints
	}
	if pts > lp.Points {
		return ErrInsufficientPoints
	}
	lp.Points -= pts
	return nil
}

// TierAdvice reports upgrade eligibility without changing the tier.
type TierAdvice struct {
	Eligible     bool `json:"eligible"`
	PointsNeeded int  `json:"points_needed"`
}

// TierUpgrade is advisory only: tier changes stay an explicit operation
// and never happen as a side effect of a balance check.
func (lp *LoyaltyProgram) TierUpgrade() TierAdvice {
	if lp.Points >= lp.PointsToNextTier {
		return TierAdvice{Eligible: true}
	}
	return TierAdvice{PointsNeeded: lp.PointsToNextTier - lp.Points}
}
