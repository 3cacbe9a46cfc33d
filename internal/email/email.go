package email

import (
	"context"
	"fmt"

	"github.com/okravchuk/airport-service/internal/kafka"
)

type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.OrderEvent) error {
	fmt.Printf("send booking confirmation for order %s (user %d, %d tickets)\n", event.Reference, event.UserID, len(event.Tickets))
	return nil
}
