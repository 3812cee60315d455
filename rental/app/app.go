package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hotdrive/rental-service/pkg/kafka"
	"github.com/hotdrive/rental-service/pkg/logger"
	"github.com/hotdrive/rental-service/pkg/postgres"
	"github.com/hotdrive/rental-service/rental/config"
	"github.com/hotdrive/rental-service/rental/internal/dashboard"
	"github.com/hotdrive/rental-service/rental/internal/handler"
	"github.com/hotdrive/rental-service/rental/internal/mailer"
	"github.com/hotdrive/rental-service/rental/internal/model"
	"github.com/hotdrive/rental-service/rental/internal/repository"
	"github.com/hotdrive/rental-service/rental/internal/server"
	"github.com/hotdrive/rental-service/rental/internal/service"
	"github.com/hotdrive/rental-service/rental/migrations"
	"go.uber.org/zap"
)

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "rental")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.NewPostgresDB(ctx, &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		log.Fatal("repo", zap.Error(err))
	}

	opts := []service.Option{
		service.WithFailMode(failMode(cfg.AvailabilityFailMode)),
	}
	// the booking flow works without kafka, confirmations just never go out
	producer, err := kafka.NewProducer(cfg.Kafka)
	if err != nil {
		log.Warn("kafka producer unavailable, notifications disabled", zap.Error(err))
	} else {
		opts = append(opts, service.WithProducer(producer))
	}
	svc := service.NewService(repo, log, opts...)

	dash := dashboard.NewStore(ctx, repo, log, model.DateOf(time.Now()))

	if producer != nil {
		consumer, err := kafka.NewConsumer(cfg.Kafka, kafka.NotificationConsumerGroup)
		if err != nil {
			log.Fatal("kafka.NewConsumer", zap.Error(err))
		}
		mail := mailer.New(log, cfg.MailWebhookURL)
		go func() {
			if err := kafka.Consume(ctx, consumer, handler.NewConsumer(mail.Send, log), kafka.NotificationTopic); err != nil {
				log.Error("kafka consume", zap.Error(err))
			}
		}()
	}

	h := handler.New(svc, dash, cfg.AdminKey, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, closeCancel := context.WithTimeout(context.Background(), time.Second*5)
	defer closeCancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	cancel()
	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Error("producer.Close", zap.Error(err))
		}
	}
	db.Close()
	log.Info("Graceful shutdown finished")
}

func failMode(raw string) service.FailMode {
	if raw == "fail_closed" {
		return service.FailClosed
	}
	return service.FailOpen
}
