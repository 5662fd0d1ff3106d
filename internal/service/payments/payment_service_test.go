package payments

import (
	"context"
	"testing"
	"time"

	"github.com/selimhany/airreserve/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) LatestByReservation(ctx context.Context, reservationID int64) (*domain.Payment, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Complete(ctx context.Context, id int64, at time.Time) (*domain.Payment, bool, error) {
	args := m.Called(ctx, id, at)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Payment), args.Bool(1), args.Error(2)
}

func (m *MockPaymentRepository) Refund(ctx context.Context, id int64) (*domain.Payment, bool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Payment), args.Bool(1), args.Error(2)
}

type MockReservationRepository struct {
	mock.Mock
}

func (m *MockReservationRepository) CreatePending(ctx context.Context, res *domain.Reservation) error {
	args := m.Called(ctx, res)
	return args.Error(0)
}

func (m *MockReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockReservationRepository) Confirm(ctx context.Context, id int64) (*domain.Reservation, bool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Reservation), args.Bool(1), args.Error(2)
}

func (m *MockReservationRepository) Cancel(ctx context.Context, id int64) (*domain.Reservation, bool, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.Reservation), args.Bool(1), args.Error(2)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func newService(pay *MockPaymentRepository, res *MockReservationRepository, producer *MockProducer, now time.Time) *PaymentService {
	s := NewPaymentService(pay, res, producer, "payments")
	s.now = func() time.Time { return now }
	return s
}

func TestPaymentService_Create_DefaultsAmountFromReservation(t *testing.T) {
	mockPayments := &MockPaymentRepository{}
	mockRes := &MockReservationRepository{}
	mockProducer := &MockProducer{}

	service := newService(mockPayments, mockRes, mockProducer, time.Now())

	ctx := context.Background()
	reservation := &domain.Reservation{ID: 99, Status: domain.ReservationStatusConfirmed, FinalPrice: 2700}

	mockRes.On("GetByID", ctx, int64(99)).Return(reservation, nil).Once()
	mockPayments.On("Create", ctx, mock.AnythingOfType("*domain.Payment")).Return(nil).Once()

	payment, err := service.Create(ctx, CreatePaymentInput{ReservationID: 99, Method: "card", Refundable: true})

	require.NoError(t, err)
	assert.Equal(t, 2700.0, payment.Amount)
	assert.Equal(t, "USD", payment.Currency)
	assert.Equal(t, domain.PaymentStatusPending, payment.Status)
}

func TestPaymentService_Create_CancelledReservation(t *testing.T) {
	mockPayments := &MockPaymentRepository{}
	mockRes := &MockReservationRepository{}
	mockProducer := &MockProducer{}

	service := newService(mockPayments, mockRes, mockProducer, time.Now())

	ctx := context.Background()
	mockRes.On("GetByID", ctx, int64(99)).Return(&domain.Reservation{ID: 99, Status: domain.ReservationStatusCanceled}, nil).Once()

	payment, err := service.Create(ctx, CreatePaymentInput{ReservationID: 99})

	assert.Error(t, err)
	assert.Nil(t, payment)
	mockPayments.AssertNotCalled(t, "Create")
}

func TestPaymentService_Create_NegativeAmount(t *testing.T) {
	mockPayments := &MockPaymentRepository{}
	mockRes := &MockReservationRepository{}
	mockProducer := &MockProducer{}

	service := newService(mockPayments, mockRes, mockProducer, time.Now())

	ctx := context.Background()
	mockRes.On("GetByID", ctx, int64(99)).Return(&domain.Reservation{ID: 99, Status: domain.ReservationStatusConfirmed}, nil).Once()

	payment, err := service.Create(ctx, CreatePaymentInput{ReservationID: 99, Amount: -10})

	assert.Error(t, err)
	assert.Nil(t, payment)
}

func TestPaymentService_Complete_Success(t *testing.T) {
	mockPayments := &MockPaymentRepository{}
	mockRes := &MockReservationRepository{}
	mockProducer := &MockProducer{}

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	service := newService(mockPayments, mockRes, mockProducer, now)

	ctx := context.Background()
	completed := &domain.Payment{ID: 5, ReservationID: 99, Status: domain.PaymentStatusCompleted, Amount: 2700}

	mockPayments.On("Complete", ctx, int64(5), now).Return(completed, true, nil).Once()
	mockProducer.On("Publish", ctx, "payments", "5", mock.Anything).Return(nil).Once()

	payment, outcome, err := service.Complete(ctx, 5)

	require.NoError(t, err)
	assert.True(t, outcome.Allowed)
	assert.Equal(t, domain.PaymentStatusCompleted, payment.Status)
	mockProducer.AssertExpectations(t)
}

func TestPaymentService_Complete_AlreadyCompleted(t *testing.T) {
	mockPayments := &MockPaymentRepository{}
	mockRes := &MockReservationRepository{}
	mockProducer := &MockProducer{}

	now := time.Now()
	service := newService(mockPayments, mockRes, mockProducer, now)

	ctx := context.Background()
	current := &domain.Payment{ID: 5, Status: domain.PaymentStatusCompleted}

	mockPayments.On("Complete", ctx, int64(5), now).Return(current, false, nil).Once()

	payment, outcome, err := service.Complete(ctx, 5)

	require.NoError(t, err)
	assert.False(t, outcome.Allowed)
	assert.Equal(t, current, payment)
	mockProducer.AssertNotCalled(t, "Publish")
}

func TestPaymentService_Refund_Success(t *testing.T) {
	mockPayments := &MockPaymentRepository{}
	mockRes := &MockReservationRepository{}
	mockProducer := &MockProducer{}

	service := newService(mockPayments, mockRes, mockProducer, time.Now())

	ctx := context.Background()
	refunded := &domain.Payment{ID: 5, ReservationID: 99, Status: domain.PaymentStatusRefunded}

	mockPayments.On("Refund", ctx, int64(5)).Return(refunded, true, nil).Once()
	mockProducer.On("Publish", ctx, "payments", "5", mock.Anything).Return(nil).Once()

	payment, outcome, err := service.Refund(ctx, 5)

	require.NoError(t, err)
	assert.True(t, outcome.Allowed)
	assert.Equal(t, domain.PaymentStatusRefunded, payment.Status)
}

func TestPaymentService_Refund_NotRefundable(t *testing.T) {
	mockPayments := &MockPaymentRepository{}
	mockRes := &MockReservationRepository{}
	mockProducer := &MockProducer{}

	service := newService(mockPayments, mockRes, mockProducer, time.Now())

	ctx := context.Background()
	current := &domain.Payment{ID: 5, Status: domain.PaymentStatusCompleted, Refundable: false}

	mockPayments.On("Refund", ctx, int64(5)).Return(current, false, nil).Once()

	_, outcome, err := service.Refund(ctx, 5)

	require.NoError(t, err)
	assert.False(t, outcome.Allowed)
	mockProducer.AssertNotCalled(t, "Publish")
}
