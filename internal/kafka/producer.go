package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
)

// OrderEvent is published when an order commits. Key is the order reference
// so all events for one booking land on the same partition.
type OrderEvent struct {
	Type      string      `json:"type"`
	Reference string      `json:"reference"`
	UserID    int64       `json:"user_id"`
	Tickets   []SeatEvent `json:"tickets"`
	CreatedAt time.Time   `json:"created_at"`
}

type SeatEvent struct {
	FlightID int64 `json:"flight_id"`
	Row      int   `json:"row"`
	Seat     int   `json:"seat"`
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (p *Producer) Publish(ctx context.Context, topic, key string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to write message to kafka: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
