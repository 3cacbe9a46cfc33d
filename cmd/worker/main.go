package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/okravchuk/airport-service/config"
	"github.com/okravchuk/airport-service/internal/email"
	"github.com/okravchuk/airport-service/internal/kafka"
	kafkaGo "github.com/segmentio/kafka-go"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	emailSender := email.NewSender()

	go func() {
		if err := consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
			var event kafka.OrderEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				log.Printf("decode event error: %v", err)
				return nil
			}
			return emailSender.Send(ctx, event)
		}); err != nil {
			log.Printf("consumer stopped: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	s := <-sig
	log.Printf("received signal %v, shutting down", s)
}
