package email

import (
	"context"
	"fmt"

	"github.com/selimhany/airreserve/internal/kafka"
)

// Sender delivers reservation notifications. The transport is a stub
// that writes to stdout; swapping in SMTP only changes Send.
type Sender struct {
	from string
}

func NewSender(from string) *Sender {
	return &Sender{from: from}
}

func (s *Sender) Send(ctx context.Context, event kafka.ReservationEvent) error {
	fmt.Printf("send email from %s about %s: reservation %d flight %d seat %s status %s\n",
		s.from, event.Type, event.ReservationID, event.FlightID, event.SeatNumber, event.Status)
	return nil
}
