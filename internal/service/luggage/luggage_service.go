package luggage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/selimhany/airreserve/internal/domain"
	"github.com/selimhany/airreserve/internal/repository"
)

type LuggageUseCase interface {
	CheckIn(ctx context.Context, input CheckInInput) (*domain.Luggage, error)
	Get(ctx context.Context, id string) (*domain.Luggage, error)
	ListByPassenger(ctx context.Context, passengerID int64) ([]domain.Luggage, error)
	Approve(ctx context.Context, id string) (*domain.Luggage, error)
}

type LuggageService struct {
	luggage repository.LuggageRepository
	tickets repository.TicketRepository
	now     func() time.Time
}

type CheckInInput struct {
	PassengerID  int64   `json:"passenger_id"`
	TicketNumber int64   `json:"ticket_number"`
	Weight       float64 `json:"weight"`
	Dimensions   string  `json:"dimensions"`
	Fragile      bool    `json:"fragile"`
}

func NewLuggageService(luggage repository.LuggageRepository, tickets repository.TicketRepository) *LuggageService {
	return &LuggageService{luggage: luggage, tickets: tickets, now: time.Now}
}

// CheckIn registers a piece against an active ticket, computes the
// weight band and base fee, and starts the tracking log.
func (s *LuggageService) CheckIn(ctx context.Context, input CheckInInput) (*domain.Luggage, error) {
	if input.Weight <= 0 {
		return nil, errors.New("weight must be positive")
	}

	ticket, err := s.tickets.GetByNumber(ctx, input.TicketNumber)
	if err != nil {
		return nil, err
	}
	if !ticket.Valid(s.now()) {
		return nil, errors.New("ticket is not active")
	}

	piece := &domain.Luggage{
		ID:           uuid.NewString(),
		PassengerID:  input.PassengerID,
		TicketNumber: input.TicketNumber,
		Weight:       input.Weight,
		Dimensions:   input.Dimensions,
		Fragile:      input.Fragile,
		CheckedIn:    true,
	}
	status, fee := piece.WeightStatus()
	piece.Status = status
	piece.Fee = fee
	piece.Track(s.now())

	if err := s.luggage.Create(ctx, piece); err != nil {
		return nil, err
	}
	return piece, nil
}

func (s *LuggageService) Get(ctx context.Context, id string) (*domain.Luggage, error) {
	return s.luggage.GetByID(ctx, id)
}

func (s *LuggageService) ListByPassenger(ctx context.Context, passengerID int64) ([]domain.Luggage, error) {
	return s.luggage.ListByPassenger(ctx, passengerID)
}

// Approve settles a checked-in piece: approved within limits, fined
// flat when past the maximum. The decision lands in the tracking log.
func (s *LuggageService) Approve(ctx context.Context, id string) (*domain.Luggage, error) {
	piece, err := s.luggage.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	piece.UpdateStatus(s.now())
	if err := s.luggage.Update(ctx, piece); err != nil {
		return nil, err
	}
	return piece, nil
}

var _ LuggageUseCase = (*LuggageService)(nil)
