package domain

import (
	"fmt"
	"time"
)

// Luggage policy constants, in kilograms and flat currency units.
const (
	FreeWeightLimit = 20.0
	MaxWeightLimit  = 50.0
	FeePerKg        = 10.0
	OverweightFine  = 100.0
)

const (
	LuggageWithinFreeLimit = "Within free limit"
	LuggageExtraWeight     = "Extra Weight"
	LuggageExceedsMaximum  = "Exceeds maximum limit"
	LuggageOverweight      = "Overweight"
	LuggageApproved        = "Approved"

	fragileNote = " - Fragile, handle with care"
)

type TrackingEntry struct {
	Status string    `json:"status"`
	At     time.Time `json:"at"`
}

type Luggage struct {
	ID           string          `json:"id"`
	PassengerID  int64           `json:"passenger_id"`
	TicketNumber int64           `json:"ticket_number"`
	Weight       float64         `json:"weight"`
	Dimensions   string          `json:"dimensions"`
	Fee          float64         `json:"fee"`
	Fine         float64         `json:"fine"`
	Status       string          `json:"status"`
	CheckedIn    bool            `json:"checked_in"`
	Fragile      bool            `json:"fragile"`
	Tracking     []TrackingEntry `json:"tracking,omitempty"`
}

// WeightStatus derives the weight band and the base fee: free up to the
// free limit, per-kg above it, and zero base fee past the maximum where
// the flat fine takes over.
func (l *Luggage) WeightStatus() (string, float64) {
	switch {
	case l.Weight <= FreeWeightLimit:
		return LuggageWithinFreeLimit, 0
	case l.Weight <= MaxWeightLimit:
		return LuggageExtraWeight, (l.Weight - FreeWeightLimit) * FeePerKg
	default:
		return LuggageExceedsMaximum, 0
	}
}

// ApplyOverweightFine adds the flat fine on top of the current fee for
// pieces past the maximum weight.
func (l *Luggage) ApplyOverweightFine() Outcome {
	if l.Weight <= MaxWeightLimit {
		return Refused("no fine applies")
	}
	l.Fine = OverweightFine
	l.Fee += l.Fine
	return Allowed()
}

// UpdateStatus settles the piece as Approved or Overweight (applying the
// fine), annotates fragile items, and appends to the tracking log.
func (l *Luggage) UpdateStatus(now time.Time) {
	if l.Weight > MaxWeightLimit {
		l.Status = LuggageOverweight
		l.ApplyOverweightFine()
	} else {
		l.Status = LuggageApproved
	}
	if l.Fragile {
		l.Status += fragileNote
	}
	l.Track(now)
}

// Track appends the current status to the ordered tracking history.
// Entries are never rewritten.
func (l *Luggage) Track(now time.Time) {
	l.Tracking = append(l.Tracking, TrackingEntry{Status: l.Status, At: now})
}

func (l *Luggage) Summary() string {
	return fmt.Sprintf("luggage %s: %.1fkg, fee %.2f, fine %.2f, status %q", l.ID, l.Weight, l.Fee, l.Fine, l.Status)
}
