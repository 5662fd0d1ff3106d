package repository

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	pool := &pgxpool.Pool{}

	assert.NotNil(t, NewFlightRepository(pool))
	assert.NotNil(t, NewSeatRepository(pool))
	assert.NotNil(t, NewReservationRepository(pool))
	assert.NotNil(t, NewTicketRepository(pool))
	assert.NotNil(t, NewPromotionRepository(pool))
	assert.NotNil(t, NewPassengerRepository(pool))
	assert.NotNil(t, NewPaymentRepository(pool))
	assert.NotNil(t, NewAirportRepository(pool))
	assert.NotNil(t, NewLuggageRepository(pool))
	assert.NotNil(t, NewLoyaltyRepository(pool))
	assert.NotNil(t, NewUserRepository(pool))
	assert.NotNil(t, NewInteractionRepository(pool))
}
