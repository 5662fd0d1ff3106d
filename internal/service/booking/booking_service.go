package booking

import (
	"context"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/selimhany/airreserve/internal/domain"
	"github.com/selimhany/airreserve/internal/kafka"
	"github.com/selimhany/airreserve/internal/repository"
)

type BookingUseCase interface {
	CreateReservation(ctx context.Context, input CreateReservationInput) (*domain.Reservation, error)
	ConfirmReservation(ctx context.Context, id int64) (*domain.Reservation, error)
	CancelReservation(ctx context.Context, id int64) (*domain.Reservation, error)
	GetReservation(ctx context.Context, id int64) (*domain.Reservation, error)
}

type Cache interface {
	AcquireSeatLock(ctx context.Context, flightID int64, seatNumber string, ttl time.Duration) (bool, error)
	ReleaseSeatLock(ctx context.Context, flightID int64, seatNumber string) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	reservations       repository.ReservationRepository
	flights            repository.FlightRepository
	passengers         repository.PassengerRepository
	payments           repository.PaymentRepository
	cache              Cache
	producer           Producer
	reservationsTopic  string
	notificationsTopic string
	seatLockTTL        time.Duration
	logger             *zap.Logger
}

type CreateReservationInput struct {
	PassengerID int64  `json:"passenger_id"`
	FlightID    int64  `json:"flight_id"`
	SeatNumber  string `json:"seat_number"`
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithLogger(logger *zap.Logger) BookingServiceOption {
	return func(s *BookingService) {
		s.logger = logger
	}
}

func NewBookingService(
	reservations repository.ReservationRepository,
	flights repository.FlightRepository,
	passengers repository.PassengerRepository,
	payments repository.PaymentRepository,
	cache Cache,
	producer Producer,
	reservationsTopic string,
	seatLockTTL time.Duration,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		reservations:      reservations,
		flights:           flights,
		passengers:        passengers,
		payments:          payments,
		cache:             cache,
		producer:          producer,
		reservationsTopic: reservationsTopic,
		seatLockTTL:       seatLockTTL,
		logger:            zap.NewNop(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) CreateReservation(ctx context.Context, input CreateReservationInput) (*domain.Reservation, error) {
	if input.SeatNumber == "" {
		return nil, errors.New("seat number is required")
	}

	if _, err := s.passengers.GetByID(ctx, input.PassengerID); err != nil {
		return nil, err
	}
	flight, err := s.flights.GetByID(ctx, input.FlightID)
	if err != nil {
		return nil, err
	}
	if flight.AvailableSeats <= 0 {
		return nil, repository.ErrNoAvailableSeats
	}

	locked := false
	if s.cache != nil {
		ok, err := s.cache.AcquireSeatLock(ctx, input.FlightID, input.SeatNumber, s.seatLockTTL)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errors.New("seat is held by another booking attempt")
		}
		locked = true
	}

	reservation := &domain.Reservation{
		PassengerID: input.PassengerID,
		FlightID:    input.FlightID,
		SeatNumber:  input.SeatNumber,
	}

	if err := s.reservations.CreatePending(ctx, reservation); err != nil {
		if locked {
			_ = s.cache.ReleaseSeatLock(ctx, input.FlightID, input.SeatNumber)
		}
		return nil, err
	}

	s.publish(ctx, "reservation_created", reservation)
	return reservation, nil
}

func (s *BookingService) ConfirmReservation(ctx context.Context, id int64) (*domain.Reservation, error) {
	reservation, confirmed, err := s.reservations.Confirm(ctx, id)
	if err != nil {
		return nil, err
	}
	if !confirmed {
		// The loser of two racing confirms observes the row already
		// past pending; no event, no lock release.
		return reservation, nil
	}

	s.publish(ctx, "reservation_confirmed", reservation)
	if s.cache != nil {
		_ = s.cache.ReleaseSeatLock(ctx, reservation.FlightID, reservation.SeatNumber)
	}
	return reservation, nil
}

func (s *BookingService) CancelReservation(ctx context.Context, id int64) (*domain.Reservation, error) {
	reservation, cancelled, err := s.reservations.Cancel(ctx, id)
	if err != nil {
		return nil, err
	}
	if !cancelled {
		// Cancelled is terminal; a repeat cancel returns the row as-is.
		return reservation, nil
	}

	// The cancellation is already committed, so refund trouble is
	// reported without undoing it.
	payment, err := s.payments.LatestByReservation(ctx, id)
	switch {
	case err == nil:
		if payment.Refundable && payment.Status == domain.PaymentStatusCompleted {
			if _, _, err := s.payments.Refund(ctx, payment.ID); err != nil {
				s.logger.Error("refund payment on cancel",
					zap.Int64("reservation_id", id), zap.Int64("payment_id", payment.ID), zap.Error(err))
			}
		}
	case !errors.Is(err, repository.ErrNotFound):
		s.logger.Error("look up payment on cancel", zap.Int64("reservation_id", id), zap.Error(err))
	}

	s.publish(ctx, "reservation_cancelled", reservation)
	if s.cache != nil {
		_ = s.cache.ReleaseSeatLock(ctx, reservation.FlightID, reservation.SeatNumber)
	}
	return reservation, nil
}

func (s *BookingService) GetReservation(ctx context.Context, id int64) (*domain.Reservation, error) {
	return s.reservations.GetByID(ctx, id)
}

func (s *BookingService) publish(ctx context.Context, eventType string, reservation *domain.Reservation) {
	if s.producer == nil || s.reservationsTopic == "" {
		return
	}
	event := kafka.ReservationEvent{
		Type:          eventType,
		ReservationID: reservation.ID,
		PassengerID:   reservation.PassengerID,
		FlightID:      reservation.FlightID,
		SeatNumber:    reservation.SeatNumber,
		Status:        string(reservation.Status),
		FinalPrice:    reservation.FinalPrice,
		OccurredAt:    time.Now(),
	}
	// Publishing is fire-and-forget: the reservation state is already
	// committed, so a broker hiccup must not fail the request.
	key := strconv.FormatInt(reservation.ID, 10)
	if err := s.producer.Publish(ctx, s.reservationsTopic, key, event); err != nil {
		s.logger.Warn("publish reservation event", zap.String("type", eventType), zap.Int64("reservation_id", reservation.ID), zap.Error(err))
	}
	if s.notificationsTopic != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, key, event); err != nil {
			s.logger.Warn("publish notification event", zap.String("type", eventType), zap.Int64("reservation_id", reservation.ID), zap.Error(err))
		}
	}
}

var _ BookingUseCase = (*BookingService)(nil)
