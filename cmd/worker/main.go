package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	kafkaGo "github.com/segmentio/kafka-go"

	"github.com/mukundrex/flight-mcp-server/config"
	"github.com/mukundrex/flight-mcp-server/internal/audit"
	"github.com/mukundrex/flight-mcp-server/internal/kafka"
	"github.com/mukundrex/flight-mcp-server/internal/logging"
)

const reportInterval = time.Minute

func main() {
	cfg, err := config.LoadConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := logging.Init(cfg.App.Env); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logging.Close()

	if !cfg.Kafka.Enabled() {
		logging.Error("kafka is not configured, set KAFKA_BROKERS")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.SearchEventsTopic)
	defer consumer.Close()

	recorder := audit.NewRecorder()

	go func() {
		err := consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
			event, err := kafka.DecodeSearchEvent(msg.Value)
			if err != nil {
				logging.Warn("decode search event", "offset", msg.Offset, "error", err)
				return nil
			}
			return recorder.Record(ctx, event)
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error("consumer stopped", "error", err)
			cancel()
		}
	}()

	reportTicker := time.NewTicker(reportInterval)
	defer reportTicker.Stop()

	logging.Info("search audit worker started", "topic", cfg.Kafka.SearchEventsTopic, "group", cfg.Kafka.GroupID)
	for {
		select {
		case <-reportTicker.C:
			if top := recorder.Top(5); len(top) > 0 {
				logging.Info("top searched routes", "routes", top)
			}
		case <-ctx.Done():
			logging.Info("shutting down worker")
			return
		}
	}
}
