package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/selimhany/airreserve/api"
	"github.com/selimhany/airreserve/config"
	"github.com/selimhany/airreserve/internal/bootstrap"
	"github.com/selimhany/airreserve/internal/cache"
	"github.com/selimhany/airreserve/internal/heatmap"
	"github.com/selimhany/airreserve/internal/kafka"
	"github.com/selimhany/airreserve/internal/logging"
	"github.com/selimhany/airreserve/internal/repository"
	"github.com/selimhany/airreserve/internal/service/auth"
	"github.com/selimhany/airreserve/internal/service/booking"
	"github.com/selimhany/airreserve/internal/service/flights"
	heatmapsvc "github.com/selimhany/airreserve/internal/service/heatmap"
	"github.com/selimhany/airreserve/internal/service/loyalty"
	"github.com/selimhany/airreserve/internal/service/luggage"
	"github.com/selimhany/airreserve/internal/service/payments"
	"github.com/selimhany/airreserve/internal/service/tickets"
	"github.com/selimhany/airreserve/internal/token"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New("airreserve-api")
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logger.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, cfg.Booking.FlightsCacheTTL())
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	flightRepo := repository.NewFlightRepository(pool)
	seatRepo := repository.NewSeatRepository(pool)
	reservationRepo := repository.NewReservationRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	promotionRepo := repository.NewPromotionRepository(pool)
	passengerRepo := repository.NewPassengerRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)
	airportRepo := repository.NewAirportRepository(pool)
	luggageRepo := repository.NewLuggageRepository(pool)
	loyaltyRepo := repository.NewLoyaltyRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	interactionRepo := repository.NewInteractionRepository(pool)

	tokenManager := token.NewManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())

	bookingService := booking.NewBookingService(
		reservationRepo,
		flightRepo,
		passengerRepo,
		paymentRepo,
		redisCache,
		producer,
		cfg.Kafka.ReservationsTopic,
		cfg.Booking.SeatLockTTL(),
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithLogger(logger),
	)
	flightService := flights.NewFlightService(flightRepo, redisCache)
	ticketService := tickets.NewTicketService(ticketRepo, reservationRepo, seatRepo, promotionRepo)
	paymentService := payments.NewPaymentService(paymentRepo, reservationRepo, producer, cfg.Kafka.PaymentsTopic, payments.WithLogger(logger))
	luggageService := luggage.NewLuggageService(luggageRepo, ticketRepo)
	loyaltyService := loyalty.NewLoyaltyService(loyaltyRepo, passengerRepo)
	authService := auth.NewAuthService(userRepo, tokenManager)
	heatmapService := heatmapsvc.NewHeatmapService(interactionRepo, heatmap.NewRenderer(cfg.Heatmap.Width, cfg.Heatmap.Height))

	handlers := bootstrap.Handlers{
		Auth:         api.NewAuthHandler(authService, tokenManager),
		Flights:      api.NewFlightHandler(flightService),
		Passengers:   api.NewPassengerHandler(passengerRepo),
		Reservations: api.NewReservationHandler(bookingService),
		Tickets:      api.NewTicketHandler(ticketService),
		Payments:     api.NewPaymentHandler(paymentService),
		Promotions:   api.NewPromotionHandler(ticketService),
		Airports:     api.NewAirportHandler(airportRepo),
		Luggage:      api.NewLuggageHandler(luggageService),
		Loyalty:      api.NewLoyaltyHandler(loyaltyService),
		Track:        api.NewTrackHandler(heatmapService),
	}

	if err := bootstrap.Run(ctx, cfg, logger, handlers); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
