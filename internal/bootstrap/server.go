package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	"github.com/selimhany/airreserve/api"
	"github.com/selimhany/airreserve/config"
)

// Handlers bundles every route group the HTTP server mounts.
type Handlers struct {
	Auth         *api.AuthHandler
	Flights      *api.FlightHandler
	Passengers   *api.PassengerHandler
	Reservations *api.ReservationHandler
	Tickets      *api.TicketHandler
	Payments     *api.PaymentHandler
	Promotions   *api.PromotionHandler
	Airports     *api.AirportHandler
	Luggage      *api.LuggageHandler
	Loyalty      *api.LoyaltyHandler
	Track        *api.TrackHandler
}

// Run starts the HTTP server and blocks until the context is cancelled
// or the server fails.
func Run(ctx context.Context, cfg *config.Config, logger *zap.Logger, h Handlers) error {
	router := newRouter(logger, h)

	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	logger.Info("http server started", zap.String("address", cfg.HTTP.Address))

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newRouter(logger *zap.Logger, h Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	h.Auth.Register(router.Group("/auth"))
	h.Track.Register(router.Group("/"))
	h.Airports.Register(router.Group("/"))
	h.Flights.Register(router.Group("/flights"))

	// Booking operations sit behind the JWT guard.
	guarded := router.Group("/", h.Auth.JWTAuth())
	h.Passengers.Register(guarded.Group("/passengers"))
	h.Reservations.Register(guarded.Group("/reservations"))
	h.Tickets.Register(guarded.Group("/tickets"))
	h.Payments.Register(guarded.Group("/payments"))
	h.Promotions.Register(guarded.Group("/promotions"))
	h.Luggage.Register(guarded.Group("/luggage"))
	h.Loyalty.Register(guarded.Group("/loyalty"))

	router.GET("/swagger/*any", gin.WrapH(httpSwagger.WrapHandler))
	return router
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("took", time.Since(start)),
		)
	}
}
