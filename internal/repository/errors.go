package repository

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrSeatNotAvailable   = errors.New("seat not available")
	ErrNoAvailableSeats   = errors.New("no available seats")
	ErrPromotionExhausted = errors.New("promotion expired or usage limit reached")
	ErrDuplicate          = errors.New("already exists")
)
