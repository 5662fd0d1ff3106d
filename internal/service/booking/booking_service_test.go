package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/selimhany/airreserve/internal/domain"
	"github.com/selimhany/airreserve/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

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

type MockFlightRepository struct {
	mock.Mock
}

func (m *MockFlightRepository) List(ctx context.Context, filter repository.FlightFilter) ([]domain.Flight, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) GetByNumber(ctx context.Context, flightNumber string) (*domain.Flight, error) {
	args := m.Called(ctx, flightNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Flight), args.Error(1)
}

func (m *MockFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	args := m.Called(ctx, flight)
	return args.Error(0)
}

func (m *MockFlightRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPassengerRepository struct {
	mock.Mock
}

func (m *MockPassengerRepository) Create(ctx context.Context, p *domain.Passenger) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPassengerRepository) GetByID(ctx context.Context, id int64) (*domain.Passenger, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Passenger), args.Error(1)
}

func (m *MockPassengerRepository) GetByNationalID(ctx context.Context, nationalID string) (*domain.Passenger, error) {
	args := m.Called(ctx, nationalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Passenger), args.Error(1)
}

func (m *MockPassengerRepository) List(ctx context.Context, limit, offset int) ([]domain.Passenger, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]domain.Passenger), args.Error(1)
}

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

type MockCache struct {
	mock.Mock
}

func (m *MockCache) AcquireSeatLock(ctx context.Context, flightID int64, seatNumber string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, flightID, seatNumber, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) ReleaseSeatLock(ctx context.Context, flightID int64, seatNumber string) error {
	args := m.Called(ctx, flightID, seatNumber)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) Publish(ctx context.Context, topic, key string, value interface{}) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func newService(res *MockReservationRepository, fl *MockFlightRepository, pa *MockPassengerRepository, pay *MockPaymentRepository, cache *MockCache, producer *MockProducer) *BookingService {
	return &BookingService{
		reservations:      res,
		flights:           fl,
		passengers:        pa,
		payments:          pay,
		cache:             cache,
		producer:          producer,
		reservationsTopic: "reservations",
		seatLockTTL:       time.Minute,
		logger:            zap.NewNop(),
	}
}

func TestBookingService_CreateReservation_Success(t *testing.T) {
	mockRes := &MockReservationRepository{}
	mockFlights := &MockFlightRepository{}
	mockPassengers := &MockPassengerRepository{}
	mockPayments := &MockPaymentRepository{}
	mockCache := &MockCache{}
	mockProducer := &MockProducer{}

	service := newService(mockRes, mockFlights, mockPassengers, mockPayments, mockCache, mockProducer)

	ctx := context.Background()
	input := CreateReservationInput{PassengerID: 7, FlightID: 4, SeatNumber: "12A"}

	mockPassengers.On("GetByID", ctx, int64(7)).Return(&domain.Passenger{ID: 7, Name: "Selim"}, nil).Once()
	mockFlights.On("GetByID", ctx, int64(4)).Return(&domain.Flight{ID: 4, TotalSeats: 150, AvailableSeats: 12}, nil).Once()
	mockCache.On("AcquireSeatLock", ctx, int64(4), "12A", time.Minute).Return(true, nil).Once()
	mockRes.On("CreatePending", ctx, mock.AnythingOfType("*domain.Reservation")).Run(func(args mock.Arguments) {
		r := args.Get(1).(*domain.Reservation)
		r.ID = 99
		r.Status = domain.ReservationStatusPending
	}).Return(nil).Once()
	mockProducer.On("Publish", ctx, "reservations", "99", mock.Anything).Return(nil).Once()

	reservation, err := service.CreateReservation(ctx, input)

	assert.NoError(t, err)
	assert.NotNil(t, reservation)
	assert.Equal(t, domain.ReservationStatusPending, reservation.Status)
	assert.Equal(t, "12A", reservation.SeatNumber)

	mockCache.AssertExpectations(t)
	mockRes.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestBookingService_CreateReservation_MissingSeat(t *testing.T) {
	service := &BookingService{seatLockTTL: time.Minute}

	reservation, err := service.CreateReservation(context.Background(), CreateReservationInput{PassengerID: 7, FlightID: 4})

	assert.Error(t, err)
	assert.Nil(t, reservation)
	assert.Contains(t, err.Error(), "seat number is required")
}

func TestBookingService_CreateReservation_UnknownPassenger(t *testing.T) {
	mockRes := &MockReservationRepository{}
	mockFlights := &MockFlightRepository{}
	mockPassengers := &MockPassengerRepository{}
	mockPayments := &MockPaymentRepository{}
	mockCache := &MockCache{}
	mockProducer := &MockProducer{}

	service := newService(mockRes, mockFlights, mockPassengers, mockPayments, mockCache, mockProducer)

	ctx := context.Background()
	mockPassengers.On("GetByID", ctx, int64(7)).Return(nil, repository.ErrNotFound).Once()

	reservation, err := service.CreateReservation(ctx, CreateReservationInput{PassengerID: 7, FlightID: 4, SeatNumber: "12A"})

	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Nil(t, reservation)
	mockRes.AssertNotCalled(t, "CreatePending")
}

func TestBookingService_CreateReservation_FlightFull(t *testing.T) {
	mockRes := &MockReservationRepository{}
	mockFlights := &MockFlightRepository{}
	mockPassengers := &MockPassengerRepository{}
	mockPayments := &MockPaymentRepository{}
	mockCache := &MockCache{}
	mockProducer := &MockProducer{}

	service := newService(mockRes, mockFlights, mockPassengers, mockPayments, mockCache, mockProducer)

	ctx := context.Background()
	mockPassengers.On("GetByID", ctx, int64(7)).Return(&domain.Passenger{ID: 7}, nil).Once()
	mockFlights.On("GetByID", ctx, int64(4)).Return(&domain.Flight{ID: 4, TotalSeats: 150, AvailableSeats: 0}, nil).Once()

	reservation, err := service.CreateReservation(ctx, CreateReservationInput{PassengerID: 7, FlightID: 4, SeatNumber: "12A"})

	assert.ErrorIs(t, err, repository.ErrNoAvailableSeats)
	assert.Nil(t, reservation)
	mockCache.AssertNotCalled(t, "AcquireSeatLock")
}

func TestBookingService_CreateReservation_SeatHeld(t *testing.T) {
	mockRes := &MockReservationRepository{}
	mockFlights := &MockFlightRepository{}
	mockPassengers := &MockPassengerRepository{}
	mockPayments := &MockPaymentRepository{}
	mockCache := &MockCache{}
	mockProducer := &MockProducer{}

	service := newService(mockRes, mockFlights, mockPassengers, mockPayments, mockCache, mockProducer)

	ctx := context.Background()
	mockPassengers.On("GetByID", ctx, int64(7)).Return(&domain.Passenger{ID: 7}, nil).Once()
	mockFlights.On("GetByID", ctx, int64(4)).Return(&domain.Flight{ID: 4, TotalSeats: 150, AvailableSeats: 3}, nil).Once()
	mockCache.On("AcquireSeatLock", ctx, int64(4), "12A", time.Minute).Return(false, nil).Once()

	reservation, err := service.CreateReservation(ctx, CreateReservationInput{PassengerID: 7, FlightID: 4, SeatNumber: "12A"})

	assert.Error(t, err)
	assert.Nil(t, reservation)
	assert.Contains(t, err.Error(), "held by another booking attempt")
	mockRes.AssertNotCalled(t, "CreatePending")
}

func TestBookingService_CreateReservation_RepositoryErrorReleasesLock(t *testing.T) {
	mockRes := &MockReservationRepository{}
	mockFlights := &MockFlightRepository{}
	mockPassengers := &MockPassengerRepository{}
	mockPayments := &MockPaymentRepository{}
	mockCache := &MockCache{}
	mockProducer := &MockProducer{}

	service := newService(mockRes, mockFlights, mockPassengers, mockPayments, mockCache, mockProducer)

	ctx := context.Background()
	expectedErr := errors.New("database error")

	mockPassengers.On("GetByID", ctx, int64(7)).Return(&domain.Passenger{ID: 7}, nil).Once()
	mockFlights.On("GetByID", ctx, int64(4)).Return(&domain.Flight{ID: 4, TotalSeats: 150, AvailableSeats: 3}, nil).Once()
	mockCache.On("AcquireSeatLock", ctx, int64(4), "12A", time.Minute).Return(true, nil).Once()
	mockRes.On("CreatePending", ctx, mock.Anything).Return(expectedErr).Once()
	mockCache.On("ReleaseSeatLock", ctx, int64(4), "12A").Return(nil).Once()

	reservation, err := service.CreateReservation(ctx, CreateReservationInput{PassengerID: 7, FlightID: 4, SeatNumber: "12A"})

	assert.Equal(t, expectedErr, err)
	assert.Nil(t, reservation)
	mockCache.AssertExpectations(t)
}

func TestBookingService_ConfirmReservation_Success(t *testing.T) {
	mockRes := &MockReservationRepository{}
	mockFlights := &MockFlightRepository{}
	mockPassengers := &MockPassengerRepository{}
	mockPayments := &MockPaymentRepository{}
	mockCache := &MockCache{}
	mockProducer := &MockProducer{}

	service := newService(mockRes, mockFlights, mockPassengers, mockPayments, mockCache, mockProducer)

	ctx := context.Background()
	confirmed := &domain.Reservation{ID: 99, PassengerID: 7, FlightID: 4, SeatNumber: "12A", Status: domain.ReservationStatusConfirmed}

	mockRes.On("Confirm", ctx, int64(99)).Return(confirmed, true, nil).Once()
	mockProducer.On("Publish", ctx, "reservations", "99", mock.Anything).Return(nil).Once()
	mockCache.On("ReleaseSeatLock", ctx, int64(4), "12A").Return(nil).Once()

	reservation, err := service.ConfirmReservation(ctx, 99)

	assert.NoError(t, err)
	assert.Equal(t, domain.ReservationStatusConfirmed, reservation.Status)
	mockRes.AssertExpectations(t)
	mockCache.AssertExpectations(t)
	mockProducer.AssertExpectations(t)
}

func TestBookingService_ConfirmReservation_AlreadyConfirmedIsNoOp(t *testing.T) {
	mockRes := &MockReservationRepository{}
	mockFlights := &MockFlightRepository{}
	mockPassengers := &MockPassengerRepository{}
	mockPayments := &MockPaymentRepository{}
	mockCache := &MockCache{}
	mockProducer := &MockProducer{}

	service := newService(mockRes, mockFlights, mockPassengers, mockPayments, mockCache, mockProducer)

	ctx := context.Background()
	current := &domain.Reservation{ID: 99, FlightID: 4, SeatNumber: "12A", Status: domain.ReservationStatusConfirmed}

	// The second of two racing confirms loses the conditional update
	// and must see the confirmed row, not an error.
	mockRes.On("Confirm", ctx, int64(99)).Return(current, false, nil).Once()

	reservation, err := service.ConfirmReservation(ctx, 99)

	assert.NoError(t, err)
	assert.Equal(t, current, reservation)
	assert.Equal(t, domain.ReservationStatusConfirmed, reservation.Status)
	mockProducer.AssertNotCalled(t, "Publish")
	mockCache.AssertNotCalled(t, "ReleaseSeatLock")
}

func TestBookingService_CancelReservation_RefundsCompletedPayment(t *testing.T) {
	mockRes := &MockReservationRepository{}
	mockFlights := &MockFlightRepository{}
	mockPassengers := &MockPassengerRepository{}
	mockPayments := &MockPaymentRepository{}
	mockCache := &MockCache{}
	mockProducer := &MockProducer{}

	service := newService(mockRes, mockFlights, mockPassengers, mockPayments, mockCache, mockProducer)

	ctx := context.Background()
	cancelled := &domain.Reservation{ID: 99, PassengerID: 7, FlightID: 4, SeatNumber: "12A", Status: domain.ReservationStatusCanceled}
	payment := &domain.Payment{ID: 5, ReservationID: 99, Status: domain.PaymentStatusCompleted, Refundable: true}

	mockRes.On("Cancel", ctx, int64(99)).Return(cancelled, true, nil).Once()
	mockPayments.On("LatestByReservation", ctx, int64(99)).Return(payment, nil).Once()
	mockPayments.On("Refund", ctx, int64(5)).Return(&domain.Payment{ID: 5, Status: domain.PaymentStatusRefunded}, true, nil).Once()
	mockProducer.On("Publish", ctx, "reservations", "99", mock.Anything).Return(nil).Once()
	mockCache.On("ReleaseSeatLock", ctx, int64(4), "12A").Return(nil).Once()

	reservation, err := service.CancelReservation(ctx, 99)

	assert.NoError(t, err)
	assert.Equal(t, domain.ReservationStatusCanceled, reservation.Status)
	mockPayments.AssertExpectations(t)
}

func TestBookingService_CancelReservation_AlreadyCancelled(t *testing.T) {
	mockRes := &MockReservationRepository{}
	mockFlights := &MockFlightRepository{}
	mockPassengers := &MockPassengerRepository{}
	mockPayments := &MockPaymentRepository{}
	mockCache := &MockCache{}
	mockProducer := &MockProducer{}

	service := newService(mockRes, mockFlights, mockPassengers, mockPayments, mockCache, mockProducer)

	ctx := context.Background()
	current := &domain.Reservation{ID: 99, Status: domain.ReservationStatusCanceled}

	mockRes.On("Cancel", ctx, int64(99)).Return(current, false, nil).Once()

	reservation, err := service.CancelReservation(ctx, 99)

	assert.NoError(t, err)
	assert.Equal(t, current, reservation)
	mockPayments.AssertNotCalled(t, "LatestByReservation")
	mockProducer.AssertNotCalled(t, "Publish")
}

func TestBookingService_CancelReservation_NonRefundablePaymentKept(t *testing.T) {
	mockRes := &MockReservationRepository{}
	mockFlights := &MockFlightRepository{}
	mockPassengers := &MockPassengerRepository{}
	mockPayments := &MockPaymentRepository{}
	mockCache := &MockCache{}
	mockProducer := &MockProducer{}

	service := newService(mockRes, mockFlights, mockPassengers, mockPayments, mockCache, mockProducer)

	ctx := context.Background()
	cancelled := &domain.Reservation{ID: 99, FlightID: 4, SeatNumber: "12A", Status: domain.ReservationStatusCanceled}
	payment := &domain.Payment{ID: 5, ReservationID: 99, Status: domain.PaymentStatusCompleted, Refundable: false}

	mockRes.On("Cancel", ctx, int64(99)).Return(cancelled, true, nil).Once()
	mockPayments.On("LatestByReservation", ctx, int64(99)).Return(payment, nil).Once()
	mockProducer.On("Publish", ctx, "reservations", "99", mock.Anything).Return(nil).Once()
	mockCache.On("ReleaseSeatLock", ctx, int64(4), "12A").Return(nil).Once()

	_, err := service.CancelReservation(ctx, 99)

	assert.NoError(t, err)
	mockPayments.AssertNotCalled(t, "Refund")
}

func TestBookingService_CancelReservation_RefundFailureLogged(t *testing.T) {
	mockRes := &MockReservationRepository{}
	mockFlights := &MockFlightRepository{}
	mockPassengers := &MockPassengerRepository{}
	mockPayments := &MockPaymentRepository{}
	mockCache := &MockCache{}
	mockProducer := &MockProducer{}

	service := newService(mockRes, mockFlights, mockPassengers, mockPayments, mockCache, mockProducer)
	core, logs := observer.New(zapcore.ErrorLevel)
	service.logger = zap.New(core)

	ctx := context.Background()
	cancelled := &domain.Reservation{ID: 99, FlightID: 4, SeatNumber: "12A", Status: domain.ReservationStatusCanceled}
	payment := &domain.Payment{ID: 5, ReservationID: 99, Status: domain.PaymentStatusCompleted, Refundable: true}

	mockRes.On("Cancel", ctx, int64(99)).Return(cancelled, true, nil).Once()
	mockPayments.On("LatestByReservation", ctx, int64(99)).Return(payment, nil).Once()
	mockPayments.On("Refund", ctx, int64(5)).Return(nil, false, errors.New("db connection lost")).Once()
	mockProducer.On("Publish", ctx, "reservations", "99", mock.Anything).Return(nil).Once()
	mockCache.On("ReleaseSeatLock", ctx, int64(4), "12A").Return(nil).Once()

	reservation, err := service.CancelReservation(ctx, 99)

	// The cancellation stands; the lost refund must leave a trace.
	assert.NoError(t, err)
	assert.Equal(t, domain.ReservationStatusCanceled, reservation.Status)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "refund payment on cancel", entry.Message)
	assert.Equal(t, int64(5), entry.ContextMap()["payment_id"])
	mockPayments.AssertExpectations(t)
}

func TestBookingService_CancelReservation_PaymentLookupFailureLogged(t *testing.T) {
	mockRes := &MockReservationRepository{}
	mockFlights := &MockFlightRepository{}
	mockPassengers := &MockPassengerRepository{}
	mockPayments := &MockPaymentRepository{}
	mockCache := &MockCache{}
	mockProducer := &MockProducer{}

	service := newService(mockRes, mockFlights, mockPassengers, mockPayments, mockCache, mockProducer)
	core, logs := observer.New(zapcore.ErrorLevel)
	service.logger = zap.New(core)

	ctx := context.Background()
	cancelled := &domain.Reservation{ID: 99, FlightID: 4, SeatNumber: "12A", Status: domain.ReservationStatusCanceled}

	mockRes.On("Cancel", ctx, int64(99)).Return(cancelled, true, nil).Once()
	mockPayments.On("LatestByReservation", ctx, int64(99)).Return(nil, errors.New("connection refused")).Once()
	mockProducer.On("Publish", ctx, "reservations", "99", mock.Anything).Return(nil).Once()
	mockCache.On("ReleaseSeatLock", ctx, int64(4), "12A").Return(nil).Once()

	_, err := service.CancelReservation(ctx, 99)

	assert.NoError(t, err)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "look up payment on cancel", logs.All()[0].Message)
	mockPayments.AssertNotCalled(t, "Refund")
}

func TestBookingService_CancelReservation_NoPaymentStaysQuiet(t *testing.T) {
	mockRes := &MockReservationRepository{}
	mockFlights := &MockFlightRepository{}
	mockPassengers := &MockPassengerRepository{}
	mockPayments := &MockPaymentRepository{}
	mockCache := &MockCache{}
	mockProducer := &MockProducer{}

	service := newService(mockRes, mockFlights, mockPassengers, mockPayments, mockCache, mockProducer)
	core, logs := observer.New(zapcore.ErrorLevel)
	service.logger = zap.New(core)

	ctx := context.Background()
	cancelled := &domain.Reservation{ID: 99, FlightID: 4, SeatNumber: "12A", Status: domain.ReservationStatusCanceled}

	mockRes.On("Cancel", ctx, int64(99)).Return(cancelled, true, nil).Once()
	mockPayments.On("LatestByReservation", ctx, int64(99)).Return(nil, repository.ErrNotFound).Once()
	mockProducer.On("Publish", ctx, "reservations", "99", mock.Anything).Return(nil).Once()
	mockCache.On("ReleaseSeatLock", ctx, int64(4), "12A").Return(nil).Once()

	_, err := service.CancelReservation(ctx, 99)

	assert.NoError(t, err)
	assert.Zero(t, logs.Len())
}
