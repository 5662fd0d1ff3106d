package domain

import "time"

// Weekdays is a days-of-operation bitmask, bit 0 = Sunday.
type Weekdays uint8

const EveryDay Weekdays = 0x7F

func (w Weekdays) Has(d time.Weekday) bool {
	return w&(1<<uint(d)) != 0
}

func (w Weekdays) With(d time.Weekday) Weekdays {
	return w | 1<<uint(d)
}

type Flight struct {
	ID              int64     `json:"id"`
	AirlineID       int64     `json:"airline_id"`
	FlightNumber    string    `json:"flight_number"`
	DepartureCode   string    `json:"departure_code"`
	DestinationCode string    `json:"destination_code"`
	DepartureTime   time.Time `json:"departure_time"`
	ArrivalTime     time.Time `json:"arrival_time"`
	TotalSeats      int       `json:"total_seats"`
	AvailableSeats  int       `json:"available_seats"`
	Gate            string    `json:"gate"`
	Terminal        string    `json:"terminal"`
	OperatingDays   Weekdays  `json:"operating_days"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (f *Flight) Duration() time.Duration {
	return f.ArrivalTime.Sub(f.DepartureTime)
}

func (f *Flight) OperatesOn(d time.Weekday) bool {
	return f.OperatingDays.Has(d)
}

// SeatCountConsistent checks the cross-entity invariant: the flight's
// available-seat counter must match the number of seats not taken.
func (f *Flight) SeatCountConsistent(reservedSeats int) bool {
	return f.AvailableSeats+reservedSeats == f.TotalSeats
}
