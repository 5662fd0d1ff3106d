package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/selimhany/airreserve/config"
	"github.com/selimhany/airreserve/internal/email"
	"github.com/selimhany/airreserve/internal/heatmap"
	"github.com/selimhany/airreserve/internal/kafka"
	"github.com/selimhany/airreserve/internal/logging"
	"github.com/selimhany/airreserve/internal/repository"
	heatmapsvc "github.com/selimhany/airreserve/internal/service/heatmap"
	"github.com/selimhany/airreserve/internal/service/tickets"
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

	logger, err := logging.New("airreserve-worker")
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

	ticketRepo := repository.NewTicketRepository(pool)
	reservationRepo := repository.NewReservationRepository(pool)
	seatRepo := repository.NewSeatRepository(pool)
	promotionRepo := repository.NewPromotionRepository(pool)
	interactionRepo := repository.NewInteractionRepository(pool)

	ticketService := tickets.NewTicketService(ticketRepo, reservationRepo, seatRepo, promotionRepo)
	heatmapService := heatmapsvc.NewHeatmapService(interactionRepo, heatmap.NewRenderer(cfg.Heatmap.Width, cfg.Heatmap.Height))

	consumer := kafka.NewConsumer(cfg.Kafka, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	sender := email.NewSender(cfg.Email.From)

	go func() {
		err := consumer.Consume(ctx, func(ctx context.Context, event kafka.ReservationEvent) error {
			return sender.Send(ctx, event)
		})
		if err != nil && ctx.Err() == nil {
			logger.Error("consumer stopped", zap.Error(err))
		}
	}()

	expireTicker := time.NewTicker(time.Duration(cfg.Worker.ExpirySweepMinutes) * time.Minute)
	defer expireTicker.Stop()

	heatmapTicker := time.NewTicker(time.Duration(cfg.Worker.HeatmapRenderMinutes) * time.Minute)
	defer heatmapTicker.Stop()

	for {
		select {
		case <-expireTicker.C:
			expired, err := ticketService.ExpireTickets(ctx)
			if err != nil {
				logger.Error("expire tickets", zap.Error(err))
				continue
			}
			if len(expired) > 0 {
				logger.Info("expired tickets", zap.Int("count", len(expired)))
			}
		case <-heatmapTicker.C:
			if err := heatmapService.RenderToFile(ctx, cfg.Heatmap.OutputPath); err != nil {
				logger.Error("render heatmap", zap.Error(err))
			}
		case <-ctx.Done():
			logger.Info("shutting down")
			return
		}
	}
}
