package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTicketClass(t *testing.T) {
	tests := []struct {
		in      string
		want    TicketClass
		wantErr bool
	}{
		{"economy", ClassEconomy, false},
		{"  First ", ClassFirst, false},
		{"BUSINESS", ClassBusiness, false},
		{"premium economy", ClassPremiumEconomy, false},
		{"coach", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseTicketClass(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidClass, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestNewTicket_ClassDefaults(t *testing.T) {
	now := time.Now()

	first, err := NewTicket(1, 1, 1, "1A", "first", now)
	require.NoError(t, err)
	assert.Equal(t, 6000.0, first.BasePrice)
	assert.Equal(t, first.BasePrice, first.FinalPrice)
	assert.True(t, first.Changeable)
	assert.True(t, first.Refundable)

	business, err := NewTicket(1, 1, 1, "3C", "business", now)
	require.NoError(t, err)
	assert.Equal(t, 3000.0, business.BasePrice)
	assert.True(t, business.Changeable)
	assert.False(t, business.Refundable)

	economy, err := NewTicket(1, 1, 1, "20F", "economy", now)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, economy.BasePrice)
	assert.False(t, economy.Changeable)
	assert.False(t, economy.Refundable)
}

func TestNewTicket_Overrides(t *testing.T) {
	ticket, err := NewTicket(1, 1, 1, "20F", "economy", time.Now(),
		WithChangeable(true), WithRefundable(true))
	require.NoError(t, err)
	assert.True(t, ticket.Changeable)
	assert.True(t, ticket.Refundable)
}

func TestTicket_CancelNonRefundable(t *testing.T) {
	ticket, err := NewTicket(1, 1, 1, "20F", "economy", time.Now())
	require.NoError(t, err)

	outcome := ticket.Cancel()
	assert.False(t, outcome.Allowed)
	assert.NotEmpty(t, outcome.Reason)
	assert.Equal(t, TicketStatusActive, ticket.Status)
}

func TestTicket_CancelRefundableIsTerminal(t *testing.T) {
	ticket, err := NewTicket(1, 1, 1, "1A", "first", time.Now())
	require.NoError(t, err)

	assert.True(t, ticket.Cancel().Allowed)
	assert.Equal(t, TicketStatusCanceled, ticket.Status)

	again := ticket.Cancel()
	assert.False(t, again.Allowed)
	assert.Equal(t, TicketStatusCanceled, ticket.Status)
}

func TestTicket_ChangeSeat(t *testing.T) {
	changeable, err := NewTicket(1, 1, 1, "3C", "business", time.Now())
	require.NoError(t, err)
	assert.True(t, changeable.ChangeSeat("4D").Allowed)
	assert.Equal(t, "4D", changeable.SeatNumber)

	fixed, err := NewTicket(1, 1, 1, "20F", "economy", time.Now())
	require.NoError(t, err)
	assert.False(t, fixed.ChangeSeat("21A").Allowed)
	assert.Equal(t, "20F", fixed.SeatNumber)
}

func TestTicket_LazyExpiry(t *testing.T) {
	issued := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	ticket, err := NewTicket(1, 1, 1, "12A", "economy", issued)
	require.NoError(t, err)
	ticket.Issue()
	assert.Equal(t, issued.AddDate(1, 0, 0), ticket.ExpirationDate)

	assert.True(t, ticket.Valid(issued.AddDate(0, 6, 0)))
	assert.Equal(t, TicketStatusActive, ticket.Status)

	assert.False(t, ticket.Valid(issued.AddDate(1, 0, 1)))
	assert.Equal(t, TicketStatusExpired, ticket.Status)
}

func TestTicket_ApplyPromotion(t *testing.T) {
	now := time.Now()
	ticket, err := NewTicket(1, 1, 1, "12A", "economy", now)
	require.NoError(t, err)

	promo := &Promotion{
		PromoID:            "P1",
		Kind:               PromotionStandard,
		DiscountPercentage: 10,
		MaxDiscount:        100,
		StartDate:          now.Add(-time.Hour),
		EndDate:            now.Add(time.Hour),
		UsageLimit:         5,
	}

	assert.True(t, ticket.ApplyPromotion(promo, now))
	// 1000 * 0.9 = 900 clamped to the 100 ceiling.
	assert.Equal(t, 100.0, ticket.FinalPrice)
	assert.Equal(t, 1000.0, ticket.BasePrice)
	assert.Equal(t, "P1", ticket.PromoID)
	assert.Equal(t, 1, promo.UsageCount)
}

func TestTicket_ApplyInvalidPromotionIsNoop(t *testing.T) {
	now := time.Now()
	ticket, err := NewTicket(1, 1, 1, "12A", "economy", now)
	require.NoError(t, err)

	expired := &Promotion{
		PromoID:            "OLD",
		DiscountPercentage: 50,
		MaxDiscount:        5000,
		StartDate:          now.Add(-48 * time.Hour),
		EndDate:            now.Add(-24 * time.Hour),
		UsageLimit:         10,
	}

	assert.False(t, ticket.ApplyPromotion(expired, now))
	assert.Equal(t, 1000.0, ticket.FinalPrice)
	assert.Empty(t, ticket.PromoID)
	assert.Zero(t, expired.UsageCount)
}
