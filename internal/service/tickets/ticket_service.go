package tickets

import (
	"context"
	"errors"
	"time"

	"github.com/selimhany/airreserve/internal/domain"
	"github.com/selimhany/airreserve/internal/repository"
)

type TicketUseCase interface {
	Issue(ctx context.Context, input IssueTicketInput) (*domain.Ticket, error)
	Get(ctx context.Context, ticketNumber int64) (*domain.Ticket, error)
	ListByReservation(ctx context.Context, reservationID int64) ([]domain.Ticket, error)
	Cancel(ctx context.Context, ticketNumber int64) (*domain.Ticket, domain.Outcome, error)
	ChangeSeat(ctx context.Context, ticketNumber int64, newSeat string) (*domain.Ticket, domain.Outcome, error)
	ApplyPromotion(ctx context.Context, ticketNumber int64, promoID string) (*domain.Ticket, error)
	ExpireTickets(ctx context.Context) ([]domain.Ticket, error)
	CreatePromotion(ctx context.Context, promo *domain.Promotion) error
	GetPromotion(ctx context.Context, promoID string) (*domain.Promotion, error)
	ExtendPromotion(ctx context.Context, promoID string, newEnd time.Time) (*domain.Promotion, error)
}

type TicketService struct {
	tickets      repository.TicketRepository
	reservations repository.ReservationRepository
	seats        repository.SeatRepository
	promotions   repository.PromotionRepository
	now          func() time.Time
}

type IssueTicketInput struct {
	ReservationID int64  `json:"reservation_id"`
	SeatNumber    string `json:"seat_number"`
	Class         string `json:"class"`
	Changeable    *bool  `json:"changeable,omitempty"`
	Refundable    *bool  `json:"refundable,omitempty"`
}

func NewTicketService(
	tickets repository.TicketRepository,
	reservations repository.ReservationRepository,
	seats repository.SeatRepository,
	promotions repository.PromotionRepository,
) *TicketService {
	return &TicketService{
		tickets:      tickets,
		reservations: reservations,
		seats:        seats,
		promotions:   promotions,
		now:          time.Now,
	}
}

// Issue creates a ticket against an existing reservation. Passenger and
// flight come from the reservation; the fare class decides the base
// price and the default change/refund policy.
func (s *TicketService) Issue(ctx context.Context, input IssueTicketInput) (*domain.Ticket, error) {
	reservation, err := s.reservations.GetByID(ctx, input.ReservationID)
	if err != nil {
		return nil, err
	}
	if reservation.Status == domain.ReservationStatusCanceled {
		return nil, errors.New("cannot issue a ticket on a cancelled reservation")
	}

	seatNumber := input.SeatNumber
	if seatNumber == "" {
		seatNumber = reservation.SeatNumber
	}

	var opts []domain.TicketOption
	if input.Changeable != nil {
		opts = append(opts, domain.WithChangeable(*input.Changeable))
	}
	if input.Refundable != nil {
		opts = append(opts, domain.WithRefundable(*input.Refundable))
	}

	ticket, err := domain.NewTicket(reservation.ID, reservation.PassengerID, reservation.FlightID, seatNumber, input.Class, s.now(), opts...)
	if err != nil {
		return nil, err
	}
	ticket.Issue()

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (s *TicketService) Get(ctx context.Context, ticketNumber int64) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByNumber(ctx, ticketNumber)
	if err != nil {
		return nil, err
	}
	// Lazy expiry: a read past the expiration date flips the status.
	if !ticket.Valid(s.now()) && ticket.Status == domain.TicketStatusExpired {
		_ = s.tickets.Update(ctx, ticket)
	}
	return ticket, nil
}

func (s *TicketService) ListByReservation(ctx context.Context, reservationID int64) ([]domain.Ticket, error) {
	return s.tickets.ListByReservation(ctx, reservationID)
}

// Cancel applies the fare rules: a refusal is a structured outcome, not
// an error, and leaves the ticket untouched.
func (s *TicketService) Cancel(ctx context.Context, ticketNumber int64) (*domain.Ticket, domain.Outcome, error) {
	ticket, err := s.tickets.GetByNumber(ctx, ticketNumber)
	if err != nil {
		return nil, domain.Outcome{}, err
	}

	outcome := ticket.Cancel()
	if !outcome.Allowed {
		return ticket, outcome, nil
	}
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, domain.Outcome{}, err
	}
	return ticket, outcome, nil
}

func (s *TicketService) ChangeSeat(ctx context.Context, ticketNumber int64, newSeat string) (*domain.Ticket, domain.Outcome, error) {
	ticket, err := s.tickets.GetByNumber(ctx, ticketNumber)
	if err != nil {
		return nil, domain.Outcome{}, err
	}

	oldSeat := ticket.SeatNumber
	outcome := ticket.ChangeSeat(newSeat)
	if !outcome.Allowed {
		return ticket, outcome, nil
	}

	taken, err := s.seats.Reserve(ctx, ticket.FlightID, newSeat)
	if err != nil {
		return nil, domain.Outcome{}, err
	}
	if !taken {
		ticket.SeatNumber = oldSeat
		return ticket, domain.Refused("seat " + newSeat + " is not available"), nil
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		_, _ = s.seats.Release(ctx, ticket.FlightID, newSeat)
		return nil, domain.Outcome{}, err
	}
	_, _ = s.seats.Release(ctx, ticket.FlightID, oldSeat)
	return ticket, outcome, nil
}

// ApplyPromotion is atomic in the repository: the usage count and the
// validity window are checked and consumed in one transaction.
func (s *TicketService) ApplyPromotion(ctx context.Context, ticketNumber int64, promoID string) (*domain.Ticket, error) {
	return s.tickets.ApplyPromotion(ctx, ticketNumber, promoID, s.now())
}

// ExpireTickets sweeps active tickets whose expiration date has passed.
func (s *TicketService) ExpireTickets(ctx context.Context) ([]domain.Ticket, error) {
	return s.tickets.ExpireActiveBefore(ctx, s.now())
}

func (s *TicketService) CreatePromotion(ctx context.Context, promo *domain.Promotion) error {
	switch promo.Kind {
	case "":
		promo.Kind = domain.PromotionStandard
	case domain.PromotionStandard, domain.PromotionSpecial:
	default:
		return domain.ErrInvalidPromotionKind
	}
	if !promo.EndDate.After(promo.StartDate) {
		return domain.ErrEndDateNotLater
	}
	return s.promotions.Create(ctx, promo)
}

func (s *TicketService) GetPromotion(ctx context.Context, promoID string) (*domain.Promotion, error) {
	return s.promotions.GetByID(ctx, promoID)
}

func (s *TicketService) ExtendPromotion(ctx context.Context, promoID string, newEnd time.Time) (*domain.Promotion, error) {
	return s.promotions.Extend(ctx, promoID, newEnd)
}

var _ TicketUseCase = (*TicketService)(nil)
