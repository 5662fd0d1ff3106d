package domain

import "time"

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "Pending"
	ReservationStatusConfirmed ReservationStatus = "Confirmed"
	ReservationStatusCanceled  ReservationStatus = "Canceled"
)

type Reservation struct {
	ID          int64             `json:"id"`
	PassengerID int64             `json:"passenger_id"`
	FlightID    int64             `json:"flight_id"`
	SeatNumber  string            `json:"seat_number"`
	Status      ReservationStatus `json:"status"`
	FinalPrice  float64           `json:"final_price"`
	CreatedAt   time.Time         `json:"created_at"`

	Tickets []*Ticket `json:"tickets,omitempty"`
}

// Confirm moves a pending reservation to Confirmed and takes one seat
// from the flight. Any other starting status is a no-op returning false,
// so the loser of two racing confirms sees an idempotent result.
func (r *Reservation) Confirm(f *Flight) bool {
	if r.Status != ReservationStatusPending {
		return false
	}
	if f.AvailableSeats <= 0 {
		return false
	}
	r.Status = ReservationStatusConfirmed
	f.AvailableSeats--
	return true
}

// Cancel is terminal: it gives the seat back and refunds the linked
// payment if one completed. Cancelling twice is a no-op.
func (r *Reservation) Cancel(f *Flight, p *Payment) bool {
	if r.Status == ReservationStatusCanceled {
		return false
	}
	releaseSeat := r.Status == ReservationStatusConfirmed
	r.Status = ReservationStatusCanceled
	if releaseSeat && f.AvailableSeats < f.TotalSeats {
		f.AvailableSeats++
	}
	if p != nil {
		p.Refund()
	}
	return true
}

// AddTicket appends the ticket once, folds its price into the running
// final price and back-links the ticket to this reservation.
func (r *Reservation) AddTicket(t *Ticket) bool {
	for _, existing := range r.Tickets {
		if existing.TicketNumber == t.TicketNumber {
			return false
		}
	}
	r.Tickets = append(r.Tickets, t)
	r.FinalPrice += t.FinalPrice
	t.ReservationID = r.ID
	return true
}
