package domain

import "time"

type Seat struct {
	ID         int64      `json:"id"`
	FlightID   int64      `json:"flight_id"`
	SeatNumber string     `json:"seat_number"`
	ClassType  string     `json:"class_type"`
	SeatType   string     `json:"seat_type"`
	Available  bool       `json:"available"`
	ReservedAt *time.Time `json:"reserved_at,omitempty"`
	Features   []string   `json:"features,omitempty"`
}

// Reserve flips the seat to unavailable and stamps the reservation time.
// Reserving an already-taken seat is a refusal, not an error.
func (s *Seat) Reserve(now time.Time) Outcome {
	if !s.Available {
		return Refused("seat " + s.SeatNumber + " is already reserved")
	}
	s.Available = false
	s.ReservedAt = &now
	return Allowed()
}

// Release clears both the availability flag and the reservation time so
// the two never disagree.
func (s *Seat) Release() Outcome {
	if s.Available {
		return Refused("seat " + s.SeatNumber + " is not reserved")
	}
	s.Available = true
	s.ReservedAt = nil
	return Allowed()
}
