package loyalty

import (
	"context"
	"time"

	"github.com/selimhany/airreserve/internal/domain"
	"github.com/selimhany/airreserve/internal/repository"
)

type LoyaltyUseCase interface {
	Enroll(ctx context.Context, input EnrollInput) (*domain.LoyaltyProgram, error)
	Get(ctx context.Context, passengerID int64) (*domain.LoyaltyProgram, error)
	AddPoints(ctx context.Context, passengerID int64, points int) (*domain.LoyaltyProgram, error)
	RedeemPoints(ctx context.Context, passengerID int64, points int) (*domain.LoyaltyProgram, error)
	TierAdvice(ctx context.Context, passengerID int64) (*domain.LoyaltyProgram, domain.TierAdvice, error)
}

type LoyaltyService struct {
	loyalty    repository.LoyaltyRepository
	passengers repository.PassengerRepository
	now        func() time.Time
}

type EnrollInput struct {
	PassengerID int64  `json:"passenger_id"`
	ProgramName string `json:"program_name"`
}

func NewLoyaltyService(loyalty repository.LoyaltyRepository, passengers repository.PassengerRepository) *LoyaltyService {
	return &LoyaltyService{loyalty: loyalty, passengers: passengers, now: time.Now}
}

// Enroll opens a membership at the base tier. A passenger enrolls at
// most once; a second attempt surfaces ErrAlreadyEnrolled.
func (s *LoyaltyService) Enroll(ctx context.Context, input EnrollInput) (*domain.LoyaltyProgram, error) {
	if _, err := s.passengers.GetByID(ctx, input.PassengerID); err != nil {
		return nil, err
	}

	programName := input.ProgramName
	if programName == "" {
		programName = "SkyMiles"
	}

	membership := &domain.LoyaltyProgram{
		PassengerID:      input.PassengerID,
		ProgramName:      programName,
		Tier:             "Silver",
		PointsToNextTier: 1000,
		StartDate:        s.now(),
	}
	if err := s.loyalty.Enroll(ctx, membership); err != nil {
		if err == repository.ErrDuplicate {
			return nil, domain.ErrAlreadyEnrolled
		}
		return nil, err
	}
	return membership, nil
}

func (s *LoyaltyService) Get(ctx context.Context, passengerID int64) (*domain.LoyaltyProgram, error) {
	return s.loyalty.GetByPassenger(ctx, passengerID)
}

func (s *LoyaltyService) AddPoints(ctx context.Context, passengerID int64, points int) (*domain.LoyaltyProgram, error) {
	if points <= 0 {
		return nil, domain.ErrNonPositivePoints
	}
	return s.loyalty.AddPoints(ctx, passengerID, points)
}

func (s *LoyaltyService) RedeemPoints(ctx context.Context, passengerID int64, points int) (*domain.LoyaltyProgram, error) {
	if points <= 0 {
		return nil, domain.ErrNonPositivePoints
	}
	return s.loyalty.RedeemPoints(ctx, passengerID, points)
}

// TierAdvice reports upgrade eligibility. The tier itself never changes
// here; upgrades are a manual decision.
func (s *LoyaltyService) TierAdvice(ctx context.Context, passengerID int64) (*domain.LoyaltyProgram, domain.TierAdvice, error) {
	membership, err := s.loyalty.GetByPassenger(ctx, passengerID)
	if err != nil {
		return nil, domain.TierAdvice{}, err
	}
	return membership, membership.TierUpgrade(), nil
}

var _ LoyaltyUseCase = (*LoyaltyService)(nil)
