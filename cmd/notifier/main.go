package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vraj1599/jasubhaichappal/config"
	"github.com/vraj1599/jasubhaichappal/internal/consumer"
	"github.com/vraj1599/jasubhaichappal/internal/logger"
	"github.com/vraj1599/jasubhaichappal/internal/sender"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)

	if len(cfg.Kafka.Brokers) == 0 {
		log.Fatal("no kafka brokers configured (KAFKA_BROKERS)")
	}
	if cfg.SMTP.Host == "" {
		log.Fatal("SMTP_HOST is not set")
	}

	emailSender := sender.NewEmailSender(&cfg.SMTP)
	cons := consumer.NewKafkaOrderConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.OrdersTopic, emailSender, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := cons.Run(ctx); err != nil {
			log.Error("consumer stopped", zap.Error(err))
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Info("shutdown signal received")
	cancel()
	_ = cons.Close()
	time.Sleep(200 * time.Millisecond)
}
