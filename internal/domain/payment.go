package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

type Payment struct {
	ID            int64         `json:"id"`
	ReservationID int64         `json:"reservation_id"`
	Amount        float64       `json:"amount"`
	Method        string        `json:"method"`
	Status        PaymentStatus `json:"status"`
	TransactionID string        `json:"transaction_id"`
	Currency      string        `json:"currency"`
	Refundable    bool          `json:"refundable"`
	PaidAt        time.Time     `json:"paid_at,omitzero"`
}

// Complete moves a pending payment to completed. Completing twice is an
// idempotent no-op returning false.
func (p *Payment) Complete(now time.Time) bool {
	if p.Status != PaymentStatusPending {
		return false
	}
	p.Status = PaymentStatusCompleted
	p.PaidAt = now
	return true
}

// Refund only succeeds from completed on a refundable payment. Refunded
// is terminal.
func (p *Payment) Refund() Outcome {
	if p.Status == PaymentStatusRefunded {
		return Refused("payment is already refunded")
	}
	if p.Status != PaymentStatusCompleted {
		return Refused("only completed payments can be refunded")
	}
	if !p.Refundable {
		return Refused("payment is not refundable")
	}
	p.Status = PaymentStatusRefunded
	return Allowed()
}
