package payments

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

type PaymentUseCase interface {
	Create(ctx context.Context, input CreatePaymentInput) (*domain.Payment, error)
	Get(ctx context.Context, id int64) (*domain.Payment, error)
	Complete(ctx context.Context, id int64) (*domain.Payment, domain.Outcome, error)
	Refund(ctx context.Context, id int64) (*domain.Payment, domain.Outcome, error)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type PaymentService struct {
	payments      repository.PaymentRepository
	reservations  repository.ReservationRepository
	producer      Producer
	paymentsTopic string
	now           func() time.Time
	logger        *zap.Logger
}

type PaymentServiceOption func(*PaymentService)

func WithLogger(logger *zap.Logger) PaymentServiceOption {
	return func(s *PaymentService) {
		s.logger = logger
	}
}

type CreatePaymentInput struct {
	ReservationID int64   `json:"reservation_id"`
	Amount        float64 `json:"amount"`
	Method        string  `json:"method"`
	Currency      string  `json:"currency"`
	Refundable    bool    `json:"refundable"`
}

func NewPaymentService(payments repository.PaymentRepository, reservations repository.ReservationRepository, producer Producer, paymentsTopic string, opts ...PaymentServiceOption) *PaymentService {
	service := &PaymentService{
		payments:      payments,
		reservations:  reservations,
		producer:      producer,
		paymentsTopic: paymentsTopic,
		now:           time.Now,
		logger:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// Create opens a pending payment for a reservation. A zero amount
// falls back to the reservation's accumulated final price.
func (s *PaymentService) Create(ctx context.Context, input CreatePaymentInput) (*domain.Payment, error) {
	reservation, err := s.reservations.GetByID(ctx, input.ReservationID)
	if err != nil {
		return nil, err
	}
	if reservation.Status == domain.ReservationStatusCanceled {
		return nil, errors.New("cannot pay for a cancelled reservation")
	}

	amount := input.Amount
	if amount == 0 {
		amount = reservation.FinalPrice
	}
	if amount < 0 {
		return nil, errors.New("amount must not be negative")
	}

	currency := input.Currency
	if currency == "" {
		currency = "USD"
	}

	payment := &domain.Payment{
		ReservationID: input.ReservationID,
		Amount:        amount,
		Method:        input.Method,
		Status:        domain.PaymentStatusPending,
		Currency:      currency,
		Refundable:    input.Refundable,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *PaymentService) Get(ctx context.Context, id int64) (*domain.Payment, error) {
	return s.payments.GetByID(ctx, id)
}

// Complete moves a pending payment to completed. A payment in any
// other state is a refusal, not an error.
func (s *PaymentService) Complete(ctx context.Context, id int64) (*domain.Payment, domain.Outcome, error) {
	payment, completed, err := s.payments.Complete(ctx, id, s.now())
	if err != nil {
		return nil, domain.Outcome{}, err
	}
	if !completed {
		return payment, domain.Refused("payment is not pending"), nil
	}

	s.publish(ctx, "payment_completed", payment)
	return payment, domain.Allowed(), nil
}

// Refund only succeeds on a completed, refundable payment.
func (s *PaymentService) Refund(ctx context.Context, id int64) (*domain.Payment, domain.Outcome, error) {
	payment, refunded, err := s.payments.Refund(ctx, id)
	if err != nil {
		return nil, domain.Outcome{}, err
	}
	if !refunded {
		return payment, domain.Refused("only completed refundable payments can be refunded"), nil
	}

	s.publish(ctx, "payment_refunded", payment)
	return payment, domain.Allowed(), nil
}

func (s *PaymentService) publish(ctx context.Context, eventType string, payment *domain.Payment) {
	if s.producer == nil || s.paymentsTopic == "" {
		return
	}
	event := kafka.PaymentEvent{
		Type:          eventType,
		PaymentID:     payment.ID,
		ReservationID: payment.ReservationID,
		Amount:        payment.Amount,
		Currency:      payment.Currency,
		Status:        string(payment.Status),
		OccurredAt:    s.now(),
	}
	if err := s.producer.Publish(ctx, s.paymentsTopic, strconv.FormatInt(payment.ID, 10), event); err != nil {
		s.logger.Warn("publish payment event", zap.String("type", eventType), zap.Int64("payment_id", payment.ID), zap.Error(err))
	}
}

var _ PaymentUseCase = (*PaymentService)(nil)
