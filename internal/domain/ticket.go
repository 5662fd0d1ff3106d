package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type TicketClass string

const (
	ClassFirst          TicketClass = "first"
	ClassBusiness       TicketClass = "business"
	ClassPremiumEconomy TicketClass = "premium economy"
	ClassEconomy        TicketClass = "economy"
)

var ErrInvalidClass = errors.New("invalid ticket class")

var basePrices = map[TicketClass]float64{
	ClassFirst:          6000.0,
	ClassBusiness:       3000.0,
	ClassPremiumEconomy: 2000.0,
	ClassEconomy:        1000.0,
}

// ParseTicketClass normalizes a class tag and rejects anything outside
// the four known fare classes.
func ParseTicketClass(s string) (TicketClass, error) {
	class := TicketClass(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := basePrices[class]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidClass, s)
	}
	return class, nil
}

func BasePrice(class TicketClass) float64 {
	return basePrices[class]
}

type TicketStatus string

const (
	TicketStatusActive   TicketStatus = "active"
	TicketStatusCanceled TicketStatus = "canceled"
	TicketStatusExpired  TicketStatus = "expired"
)

type Ticket struct {
	TicketNumber   int64        `json:"ticket_number"`
	ReservationID  int64        `json:"reservation_id"`
	PassengerID    int64        `json:"passenger_id"`
	FlightID       int64        `json:"flight_id"`
	SeatNumber     string       `json:"seat_number"`
	Class          TicketClass  `json:"class"`
	Status         TicketStatus `json:"status"`
	IssueDate      time.Time    `json:"issue_date"`
	ExpirationDate time.Time    `json:"expiration_date,omitzero"`
	BasePrice      float64      `json:"base_price"`
	FinalPrice     float64      `json:"final_price"`
	Changeable     bool         `json:"changeable"`
	Refundable     bool         `json:"refundable"`
	PromoID        string       `json:"promo_id,omitempty"`
}

type TicketOption func(*Ticket)

// WithChangeable overrides the class default.
func WithChangeable(changeable bool) TicketOption {
	return func(t *Ticket) { t.Changeable = changeable }
}

// WithRefundable overrides the class default.
func WithRefundable(refundable bool) TicketOption {
	return func(t *Ticket) { t.Refundable = refundable }
}

// NewTicket builds an active ticket for an existing reservation. The
// reservation id is explicit: a ticket never attaches itself anywhere.
// First and business class are changeable by default; only first class
// is refundable.
func NewTicket(reservationID, passengerID, flightID int64, seatNumber, class string, issuedAt time.Time, opts ...TicketOption) (*Ticket, error) {
	ticketClass, err := ParseTicketClass(class)
	if err != nil {
		return nil, err
	}

	price := BasePrice(ticketClass)
	t := &Ticket{
		ReservationID: reservationID,
		PassengerID:   passengerID,
		FlightID:      flightID,
		SeatNumber:    seatNumber,
		Class:         ticketClass,
		Status:        TicketStatusActive,
		IssueDate:     issuedAt,
		BasePrice:     price,
		FinalPrice:    price,
		Changeable:    ticketClass == ClassFirst || ticketClass == ClassBusiness,
		Refundable:    ticketClass == ClassFirst,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Issue stamps the expiration date one year past the issue date.
func (t *Ticket) Issue() {
	t.ExpirationDate = t.IssueDate.AddDate(1, 0, 0)
}

// Valid lazily expires the ticket once its expiration date has passed.
func (t *Ticket) Valid(now time.Time) bool {
	if !t.ExpirationDate.IsZero() && now.After(t.ExpirationDate) {
		t.Status = TicketStatusExpired
		return false
	}
	return t.Status == TicketStatusActive
}

// Cancel refuses non-refundable tickets and leaves them active. A
// canceled ticket is terminal.
func (t *Ticket) Cancel() Outcome {
	if t.Status == TicketStatusCanceled {
		return Refused("ticket is already canceled")
	}
	if !t.Refundable {
		return Refused("this ticket is nonrefundable")
	}
	t.Status = TicketStatusCanceled
	return Allowed()
}

// ChangeSeat moves the ticket to a new seat when the fare allows it.
func (t *Ticket) ChangeSeat(newSeat string) Outcome {
	if !t.Changeable {
		return Refused("this ticket is not changeable")
	}
	t.SeatNumber = newSeat
	return Allowed()
}

// ApplyPromotion recomputes the final price from the base price. It is
// the only path by which a ticket's discount changes; an invalid
// promotion leaves the ticket untouched.
func (t *Ticket) ApplyPromotion(p *Promotion, now time.Time) bool {
	discounted, err := p.Apply(t.BasePrice, now)
	if err != nil {
		return false
	}
	t.PromoID = p.PromoID
	t.FinalPrice = discounted
	return true
}
